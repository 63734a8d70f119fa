package repositories

import (
	"context"
	"errors"

	"github.com/raffleworks/sorteo-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by all repositories when a lookup matches nothing,
// regardless of the backing engine.
var ErrNotFound = errors.New("record not found")

// PrizeRepository defines the interface for prize data operations
type PrizeRepository interface {
	Create(ctx context.Context, prize *models.Prize) error
	CreateMany(ctx context.Context, prizes []*models.Prize) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error)
	// FindAll returns prizes in insertion order.
	FindAll(ctx context.Context) ([]*models.Prize, error)
	// FindFirstUndrawn returns the oldest prize with drawn == false.
	FindFirstUndrawn(ctx context.Context) (*models.Prize, error)
	Update(ctx context.Context, prize *models.Prize) error
	// SetDrawn flips the drawn flag only if it currently holds the opposite
	// value; the boolean result reports whether the flip happened. This is
	// the guard against two draws racing on the same prize.
	SetDrawn(ctx context.Context, id primitive.ObjectID, drawn bool) (bool, error)
	// ResetAllDrawn clears the drawn flag on every prize.
	ResetAllDrawn(ctx context.Context) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	CountDrawn(ctx context.Context) (int64, error)
}

// ParticipantRepository defines the interface for participant data operations
type ParticipantRepository interface {
	Create(ctx context.Context, participant *models.Participant) error
	CreateMany(ctx context.Context, participants []*models.Participant) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error)
	FindByCedula(ctx context.Context, cedula string) (*models.Participant, error)
	FindByTicketNumber(ctx context.Context, ticketNumber string) (*models.Participant, error)
	FindAll(ctx context.Context) ([]*models.Participant, error)
	Update(ctx context.Context, participant *models.Participant) error
	// SetActive flips the active flag only if it currently holds the opposite
	// value; the boolean result reports whether the flip happened.
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) (bool, error)
	// SetActiveByIDs marks the given participants active.
	SetActiveByIDs(ctx context.Context, ids []primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

// WinnerRepository defines the interface for winner data operations
type WinnerRepository interface {
	Create(ctx context.Context, winner *models.Winner) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Winner, error)
	FindByPrizeID(ctx context.Context, prizeID primitive.ObjectID) ([]*models.Winner, error)
	FindByParticipantID(ctx context.Context, participantID primitive.ObjectID) ([]*models.Winner, error)
	// FindAll returns winners in draw order.
	FindAll(ctx context.Context) ([]*models.Winner, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

// AdminUserRepository defines the interface for admin account operations
type AdminUserRepository interface {
	Create(ctx context.Context, admin *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}
