package memory

import (
	"context"
	"sync"
	"time"

	"github.com/raffleworks/sorteo-backend/internal/models"
	"github.com/raffleworks/sorteo-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrizeRepository is a mutex-guarded in-memory implementation of
// repositories.PrizeRepository. Prizes keep insertion order.
type PrizeRepository struct {
	mu     sync.RWMutex
	prizes []*models.Prize
}

// NewPrizeRepository creates a new in-memory PrizeRepository
func NewPrizeRepository() repositories.PrizeRepository {
	return &PrizeRepository{prizes: make([]*models.Prize, 0)}
}

func clonePrize(p *models.Prize) *models.Prize {
	c := *p
	return &c
}

// Create creates a new prize
func (r *PrizeRepository) Create(_ context.Context, prize *models.Prize) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	prize.ID = primitive.NewObjectID()
	prize.CreatedAt = now
	prize.UpdatedAt = now
	r.prizes = append(r.prizes, clonePrize(prize))
	return nil
}

// CreateMany creates a batch of prizes
func (r *PrizeRepository) CreateMany(ctx context.Context, prizes []*models.Prize) error {
	for _, p := range prizes {
		if err := r.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// FindByID finds a prize by ID
func (r *PrizeRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Prize, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.prizes {
		if p.ID == id {
			return clonePrize(p), nil
		}
	}
	return nil, repositories.ErrNotFound
}

// FindAll finds all prizes in insertion order
func (r *PrizeRepository) FindAll(_ context.Context) ([]*models.Prize, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Prize, 0, len(r.prizes))
	for _, p := range r.prizes {
		out = append(out, clonePrize(p))
	}
	return out, nil
}

// FindFirstUndrawn finds the oldest prize that has not been drawn yet
func (r *PrizeRepository) FindFirstUndrawn(_ context.Context) (*models.Prize, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.prizes {
		if !p.Drawn {
			return clonePrize(p), nil
		}
	}
	return nil, repositories.ErrNotFound
}

// Update updates a prize
func (r *PrizeRepository) Update(_ context.Context, prize *models.Prize) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.prizes {
		if p.ID == prize.ID {
			prize.UpdatedAt = time.Now()
			prize.CreatedAt = p.CreatedAt
			r.prizes[i] = clonePrize(prize)
			return nil
		}
	}
	return repositories.ErrNotFound
}

// SetDrawn conditionally flips the drawn flag
func (r *PrizeRepository) SetDrawn(_ context.Context, id primitive.ObjectID, drawn bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.prizes {
		if p.ID == id {
			if p.Drawn == drawn {
				return false, nil
			}
			p.Drawn = drawn
			p.UpdatedAt = time.Now()
			return true, nil
		}
	}
	return false, nil
}

// ResetAllDrawn clears the drawn flag on every prize
func (r *PrizeRepository) ResetAllDrawn(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, p := range r.prizes {
		if p.Drawn {
			p.Drawn = false
			p.UpdatedAt = now
		}
	}
	return nil
}

// Delete deletes a prize
func (r *PrizeRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.prizes {
		if p.ID == id {
			r.prizes = append(r.prizes[:i], r.prizes[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

// DeleteAll deletes all prizes
func (r *PrizeRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prizes = r.prizes[:0]
	return nil
}

// Count counts all prizes
func (r *PrizeRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.prizes)), nil
}

// CountDrawn counts prizes that have been drawn
func (r *PrizeRepository) CountDrawn(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, p := range r.prizes {
		if p.Drawn {
			n++
		}
	}
	return n, nil
}
