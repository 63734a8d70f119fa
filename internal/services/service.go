package services

import (
	"context"

	"github.com/raffleworks/sorteo-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawService defines the interface for the draw and reversal workflow
type DrawService interface {
	// EligibleParticipants returns the participants that may win the given
	// prize: active, holding a ticket number that parses to an integer
	// inside the prize's range.
	EligibleParticipants(prize *models.Prize, participants []*models.Participant) []*models.Participant

	// DrawPrize picks a winner for one prize uniformly at random and commits
	// the three-way transition (prize drawn, participant inactive, winner
	// recorded).
	DrawPrize(ctx context.Context, prizeID primitive.ObjectID) (*models.Winner, error)

	// DrawNext draws the first undrawn prize in insertion order, returning
	// ErrAllPrizesDrawn once nothing is left.
	DrawNext(ctx context.Context) (*models.Winner, error)

	// UndoWinner reverts a single draw: the winner record is removed and the
	// referenced prize and participant are restored.
	UndoWinner(ctx context.Context, winnerID primitive.ObjectID) error

	// ClearAllWinners reverts every draw, restoring the pre-draw world.
	// Calling it twice has the same effect as once.
	ClearAllWinners(ctx context.Context) error

	// ResetAll unconditionally empties prizes, participants and winners.
	// It refuses to run unless keyword equals ResetKeyword.
	ResetAll(ctx context.Context, keyword string) error

	// VerifyConsistency checks the prize/participant/winner invariants and
	// reports violations.
	VerifyConsistency(ctx context.Context) (*models.ConsistencyReport, error)

	// GetStats summarizes the dataset for the dashboard.
	GetStats(ctx context.Context) (*models.Stats, error)
}

// PrizeInput is one pre-validated row for prize creation
type PrizeInput struct {
	Name       string `json:"name" binding:"required"`
	RangeStart int    `json:"range_start" binding:"required"`
	RangeEnd   int    `json:"range_end" binding:"required"`
}

// PrizeService defines the interface for prize management
type PrizeService interface {
	CreatePrize(ctx context.Context, input PrizeInput) (*models.Prize, error)
	CreatePrizes(ctx context.Context, inputs []PrizeInput) ([]*models.Prize, error)
	GetPrizeByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error)
	GetAllPrizes(ctx context.Context) ([]*models.Prize, error)
	UpdatePrize(ctx context.Context, id primitive.ObjectID, input PrizeInput) (*models.Prize, error)
	DeletePrize(ctx context.Context, id primitive.ObjectID) error
}

// ParticipantInput is one pre-validated row for participant creation.
// TicketNumber is optional; a participant without one starts inactive.
type ParticipantInput struct {
	Name         string `json:"name" binding:"required"`
	Cedula       string `json:"cedula" binding:"required"`
	TicketNumber string `json:"ticket_number"`
}

// ParticipantService defines the interface for participant management
type ParticipantService interface {
	CreateParticipant(ctx context.Context, input ParticipantInput) (*models.Participant, error)
	CreateParticipants(ctx context.Context, inputs []ParticipantInput) ([]*models.Participant, error)
	GetParticipantByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error)
	GetParticipantByCedula(ctx context.Context, cedula string) (*models.Participant, error)
	GetAllParticipants(ctx context.Context) ([]*models.Participant, error)
	// AssignTicket gives a registered participant their ticket number and
	// activates them.
	AssignTicket(ctx context.Context, id primitive.ObjectID, ticketNumber string) (*models.Participant, error)
	DeleteParticipant(ctx context.Context, id primitive.ObjectID) error
}

// WinnerService defines the read-side interface for winner history
type WinnerService interface {
	GetAllWinners(ctx context.Context) ([]*models.Winner, error)
}

// AuthService defines the interface for admin authentication
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	// EnsureAdmin seeds the configured admin account if it does not exist.
	EnsureAdmin(ctx context.Context, email, password string) error
}
