package memory

import (
	"context"
	"sync"
	"time"

	"github.com/raffleworks/sorteo-backend/internal/models"
	"github.com/raffleworks/sorteo-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminUserRepository is a mutex-guarded in-memory implementation of
// repositories.AdminUserRepository.
type AdminUserRepository struct {
	mu     sync.RWMutex
	admins []*models.AdminUser
}

// NewAdminUserRepository creates a new in-memory AdminUserRepository
func NewAdminUserRepository() repositories.AdminUserRepository {
	return &AdminUserRepository{admins: make([]*models.AdminUser, 0)}
}

// Create creates a new admin user
func (r *AdminUserRepository) Create(_ context.Context, admin *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	admin.ID = primitive.NewObjectID()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	c := *admin
	r.admins = append(r.admins, &c)
	return nil
}

// FindByEmail finds an admin user by email
func (r *AdminUserRepository) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.admins {
		if a.Email == email {
			c := *a
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}
