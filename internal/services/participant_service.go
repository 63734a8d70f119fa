package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/raffleworks/sorteo-backend/internal/models"
	"github.com/raffleworks/sorteo-backend/internal/repositories"
	"github.com/raffleworks/sorteo-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure ParticipantServiceImpl implements ParticipantService
var _ ParticipantService = (*ParticipantServiceImpl)(nil)

// ParticipantServiceImpl handles participant registration and management
type ParticipantServiceImpl struct {
	participantRepo repositories.ParticipantRepository
	winnerRepo      repositories.WinnerRepository
}

// NewParticipantService creates a new ParticipantServiceImpl
func NewParticipantService(
	participantRepo repositories.ParticipantRepository,
	winnerRepo repositories.WinnerRepository,
) *ParticipantServiceImpl {
	return &ParticipantServiceImpl{
		participantRepo: participantRepo,
		winnerRepo:      winnerRepo,
	}
}

func validateParticipantInput(input ParticipantInput) error {
	if err := utils.ValidateName(input.Name); err != nil {
		return err
	}
	if err := utils.ValidateCedula(input.Cedula); err != nil {
		return err
	}
	if input.TicketNumber != "" {
		return utils.ValidateTicketNumber(input.TicketNumber)
	}
	return nil
}

// checkUnique rejects a cedula or ticket number already held by another
// participant. excludeID skips the participant being edited.
func (s *ParticipantServiceImpl) checkUnique(ctx context.Context, cedula, ticketNumber string, excludeID primitive.ObjectID) error {
	existing, err := s.participantRepo.FindByCedula(ctx, cedula)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check cedula uniqueness: %w", err)
	}
	if err == nil && existing.ID != excludeID {
		return ErrDuplicateCedula
	}

	if ticketNumber != "" {
		existing, err := s.participantRepo.FindByTicketNumber(ctx, ticketNumber)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("failed to check ticket uniqueness: %w", err)
		}
		if err == nil && existing.ID != excludeID {
			return ErrDuplicateTicket
		}
	}
	return nil
}

// CreateParticipant validates and registers a single participant. A
// participant becomes active only once they hold a ticket number.
func (s *ParticipantServiceImpl) CreateParticipant(ctx context.Context, input ParticipantInput) (*models.Participant, error) {
	if err := validateParticipantInput(input); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, input.Cedula, input.TicketNumber, primitive.NilObjectID); err != nil {
		return nil, err
	}

	participant := &models.Participant{
		Name:         input.Name,
		Cedula:       input.Cedula,
		TicketNumber: input.TicketNumber,
		Active:       input.TicketNumber != "",
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		slog.Error("CreateParticipant: failed to create participant", "error", err, "cedula", maskCedula(input.Cedula))
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}

	slog.Info("CreateParticipant: participant registered",
		"participantId", participant.ID.Hex(), "cedula", maskCedula(participant.Cedula),
		"hasTicket", participant.TicketNumber != "")
	return participant, nil
}

// CreateParticipants validates and registers a batch of participants. Any
// invalid or duplicate row rejects the whole batch before a single write
// happens; duplicates are also checked within the batch itself.
func (s *ParticipantServiceImpl) CreateParticipants(ctx context.Context, inputs []ParticipantInput) ([]*models.Participant, error) {
	seenCedulas := make(map[string]bool, len(inputs))
	seenTickets := make(map[string]bool, len(inputs))
	participants := make([]*models.Participant, 0, len(inputs))

	for i, input := range inputs {
		if err := validateParticipantInput(input); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if seenCedulas[input.Cedula] {
			return nil, fmt.Errorf("row %d: %w", i+1, ErrDuplicateCedula)
		}
		if input.TicketNumber != "" && seenTickets[input.TicketNumber] {
			return nil, fmt.Errorf("row %d: %w", i+1, ErrDuplicateTicket)
		}
		if err := s.checkUnique(ctx, input.Cedula, input.TicketNumber, primitive.NilObjectID); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		seenCedulas[input.Cedula] = true
		if input.TicketNumber != "" {
			seenTickets[input.TicketNumber] = true
		}
		participants = append(participants, &models.Participant{
			Name:         input.Name,
			Cedula:       input.Cedula,
			TicketNumber: input.TicketNumber,
			Active:       input.TicketNumber != "",
		})
	}

	if err := s.participantRepo.CreateMany(ctx, participants); err != nil {
		slog.Error("CreateParticipants: bulk create failed", "error", err, "count", len(participants))
		return nil, fmt.Errorf("failed to create participants: %w", err)
	}

	slog.Info("CreateParticipants: batch registered", "count", len(participants))
	return participants, nil
}

// GetParticipantByID retrieves a participant by ID
func (s *ParticipantServiceImpl) GetParticipantByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error) {
	return s.participantRepo.FindByID(ctx, id)
}

// GetParticipantByCedula retrieves a participant by cedula
func (s *ParticipantServiceImpl) GetParticipantByCedula(ctx context.Context, cedula string) (*models.Participant, error) {
	if err := utils.ValidateCedula(cedula); err != nil {
		return nil, err
	}
	return s.participantRepo.FindByCedula(ctx, cedula)
}

// GetAllParticipants retrieves all participants in insertion order
func (s *ParticipantServiceImpl) GetAllParticipants(ctx context.Context) ([]*models.Participant, error) {
	return s.participantRepo.FindAll(ctx)
}

// AssignTicket gives a participant their ticket number and activates them
func (s *ParticipantServiceImpl) AssignTicket(ctx context.Context, id primitive.ObjectID, ticketNumber string) (*models.Participant, error) {
	if err := utils.ValidateTicketNumber(ticketNumber); err != nil {
		return nil, err
	}

	participant, err := s.participantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, participant.Cedula, ticketNumber, participant.ID); err != nil {
		return nil, err
	}

	participant.TicketNumber = ticketNumber
	participant.Active = true
	if err := s.participantRepo.Update(ctx, participant); err != nil {
		slog.Error("AssignTicket: failed to update participant", "error", err, "participantId", id.Hex())
		return nil, fmt.Errorf("failed to assign ticket: %w", err)
	}

	slog.Info("AssignTicket: ticket assigned", "participantId", participant.ID.Hex(), "ticket", ticketNumber)
	return participant, nil
}

// DeleteParticipant deletes a participant unless a winner record references
// them; undo the draw first.
func (s *ParticipantServiceImpl) DeleteParticipant(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.participantRepo.FindByID(ctx, id); err != nil {
		return err
	}

	winners, err := s.winnerRepo.FindByParticipantID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check winner records: %w", err)
	}
	if len(winners) > 0 {
		slog.Warn("DeleteParticipant: rejected, participant has won", "participantId", id.Hex())
		return ErrParticipantHasWon
	}

	if err := s.participantRepo.Delete(ctx, id); err != nil {
		slog.Error("DeleteParticipant: failed to delete participant", "error", err, "participantId", id.Hex())
		return fmt.Errorf("failed to delete participant: %w", err)
	}

	slog.Info("DeleteParticipant: participant deleted", "participantId", id.Hex())
	return nil
}

// maskCedula masks a cedula for logging (first 2 and last 2 digits visible)
func maskCedula(cedula string) string {
	if len(cedula) > 4 {
		return cedula[:2] + "******" + cedula[len(cedula)-2:]
	}
	return "******"
}
