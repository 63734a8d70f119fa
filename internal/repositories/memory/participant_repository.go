package memory

import (
	"context"
	"sync"
	"time"

	"github.com/raffleworks/sorteo-backend/internal/models"
	"github.com/raffleworks/sorteo-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParticipantRepository is a mutex-guarded in-memory implementation of
// repositories.ParticipantRepository.
type ParticipantRepository struct {
	mu           sync.RWMutex
	participants []*models.Participant
}

// NewParticipantRepository creates a new in-memory ParticipantRepository
func NewParticipantRepository() repositories.ParticipantRepository {
	return &ParticipantRepository{participants: make([]*models.Participant, 0)}
}

func cloneParticipant(p *models.Participant) *models.Participant {
	c := *p
	return &c
}

// Create creates a new participant
func (r *ParticipantRepository) Create(_ context.Context, participant *models.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	participant.ID = primitive.NewObjectID()
	participant.CreatedAt = now
	participant.UpdatedAt = now
	r.participants = append(r.participants, cloneParticipant(participant))
	return nil
}

// CreateMany creates a batch of participants
func (r *ParticipantRepository) CreateMany(ctx context.Context, participants []*models.Participant) error {
	for _, p := range participants {
		if err := r.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// FindByID finds a participant by ID
func (r *ParticipantRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.participants {
		if p.ID == id {
			return cloneParticipant(p), nil
		}
	}
	return nil, repositories.ErrNotFound
}

// FindByCedula finds a participant by cedula
func (r *ParticipantRepository) FindByCedula(_ context.Context, cedula string) (*models.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.participants {
		if p.Cedula == cedula {
			return cloneParticipant(p), nil
		}
	}
	return nil, repositories.ErrNotFound
}

// FindByTicketNumber finds a participant by ticket number
func (r *ParticipantRepository) FindByTicketNumber(_ context.Context, ticketNumber string) (*models.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.participants {
		if p.TicketNumber != "" && p.TicketNumber == ticketNumber {
			return cloneParticipant(p), nil
		}
	}
	return nil, repositories.ErrNotFound
}

// FindAll finds all participants in insertion order
func (r *ParticipantRepository) FindAll(_ context.Context) ([]*models.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Participant, 0, len(r.participants))
	for _, p := range r.participants {
		out = append(out, cloneParticipant(p))
	}
	return out, nil
}

// Update updates a participant
func (r *ParticipantRepository) Update(_ context.Context, participant *models.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.participants {
		if p.ID == participant.ID {
			participant.UpdatedAt = time.Now()
			participant.CreatedAt = p.CreatedAt
			r.participants[i] = cloneParticipant(participant)
			return nil
		}
	}
	return repositories.ErrNotFound
}

// SetActive conditionally flips the active flag
func (r *ParticipantRepository) SetActive(_ context.Context, id primitive.ObjectID, active bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants {
		if p.ID == id {
			if p.Active == active {
				return false, nil
			}
			p.Active = active
			p.UpdatedAt = time.Now()
			return true, nil
		}
	}
	return false, nil
}

// SetActiveByIDs marks the given participants active
func (r *ParticipantRepository) SetActiveByIDs(_ context.Context, ids []primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	now := time.Now()
	for _, p := range r.participants {
		if wanted[p.ID] && !p.Active {
			p.Active = true
			p.UpdatedAt = now
		}
	}
	return nil
}

// Delete deletes a participant
func (r *ParticipantRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.participants {
		if p.ID == id {
			r.participants = append(r.participants[:i], r.participants[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

// DeleteAll deletes all participants
func (r *ParticipantRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.participants = r.participants[:0]
	return nil
}

// Count counts all participants
func (r *ParticipantRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.participants)), nil
}

// CountActive counts active participants
func (r *ParticipantRepository) CountActive(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, p := range r.participants {
		if p.Active {
			n++
		}
	}
	return n, nil
}
