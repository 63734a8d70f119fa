package memory

import (
	"context"
	"sync"
	"time"

	"github.com/raffleworks/sorteo-backend/internal/models"
	"github.com/raffleworks/sorteo-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WinnerRepository is a mutex-guarded in-memory implementation of
// repositories.WinnerRepository. Winners keep draw order.
type WinnerRepository struct {
	mu      sync.RWMutex
	winners []*models.Winner
}

// NewWinnerRepository creates a new in-memory WinnerRepository
func NewWinnerRepository() repositories.WinnerRepository {
	return &WinnerRepository{winners: make([]*models.Winner, 0)}
}

func cloneWinner(w *models.Winner) *models.Winner {
	c := *w
	return &c
}

// Create creates a new winner
func (r *WinnerRepository) Create(_ context.Context, winner *models.Winner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	winner.ID = primitive.NewObjectID()
	winner.CreatedAt = time.Now()
	r.winners = append(r.winners, cloneWinner(winner))
	return nil
}

// FindByID finds a winner by ID
func (r *WinnerRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Winner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.winners {
		if w.ID == id {
			return cloneWinner(w), nil
		}
	}
	return nil, repositories.ErrNotFound
}

// FindByPrizeID finds winners for a prize
func (r *WinnerRepository) FindByPrizeID(_ context.Context, prizeID primitive.ObjectID) ([]*models.Winner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Winner, 0)
	for _, w := range r.winners {
		if w.PrizeID == prizeID {
			out = append(out, cloneWinner(w))
		}
	}
	return out, nil
}

// FindByParticipantID finds winners for a participant
func (r *WinnerRepository) FindByParticipantID(_ context.Context, participantID primitive.ObjectID) ([]*models.Winner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Winner, 0)
	for _, w := range r.winners {
		if w.ParticipantID == participantID {
			out = append(out, cloneWinner(w))
		}
	}
	return out, nil
}

// FindAll finds all winners in draw order
func (r *WinnerRepository) FindAll(_ context.Context) ([]*models.Winner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Winner, 0, len(r.winners))
	for _, w := range r.winners {
		out = append(out, cloneWinner(w))
	}
	return out, nil
}

// Delete deletes a winner
func (r *WinnerRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, w := range r.winners {
		if w.ID == id {
			r.winners = append(r.winners[:i], r.winners[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

// DeleteAll deletes all winners
func (r *WinnerRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.winners = r.winners[:0]
	return nil
}

// Count counts all winners
func (r *WinnerRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.winners)), nil
}
