package services

import (
	"context"
	"fmt"

	"github.com/raffleworks/sorteo-backend/internal/models"
	"github.com/raffleworks/sorteo-backend/internal/repositories"
	"github.com/raffleworks/sorteo-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure PrizeServiceImpl implements PrizeService
var _ PrizeService = (*PrizeServiceImpl)(nil)

// PrizeServiceImpl handles prize management
type PrizeServiceImpl struct {
	prizeRepo repositories.PrizeRepository
}

// NewPrizeService creates a new PrizeServiceImpl
func NewPrizeService(prizeRepo repositories.PrizeRepository) *PrizeServiceImpl {
	return &PrizeServiceImpl{prizeRepo: prizeRepo}
}

func validatePrizeInput(input PrizeInput) error {
	if input.Name == "" {
		return utils.NewValidationError("name", "name is required")
	}
	return utils.ValidatePrizeRange(input.RangeStart, input.RangeEnd)
}

// CreatePrize validates and creates a single prize
func (s *PrizeServiceImpl) CreatePrize(ctx context.Context, input PrizeInput) (*models.Prize, error) {
	if err := validatePrizeInput(input); err != nil {
		return nil, err
	}

	prize := &models.Prize{
		Name:       input.Name,
		RangeStart: input.RangeStart,
		RangeEnd:   input.RangeEnd,
		Drawn:      false,
	}
	if err := s.prizeRepo.Create(ctx, prize); err != nil {
		slog.Error("CreatePrize: failed to create prize", "error", err, "name", input.Name)
		return nil, fmt.Errorf("failed to create prize: %w", err)
	}

	slog.Info("CreatePrize: prize created", "prizeId", prize.ID.Hex(), "name", prize.Name,
		"rangeStart", prize.RangeStart, "rangeEnd", prize.RangeEnd)
	return prize, nil
}

// CreatePrizes validates and creates a batch of prizes. Any invalid row
// rejects the whole batch before a single write happens.
func (s *PrizeServiceImpl) CreatePrizes(ctx context.Context, inputs []PrizeInput) ([]*models.Prize, error) {
	prizes := make([]*models.Prize, 0, len(inputs))
	for i, input := range inputs {
		if err := validatePrizeInput(input); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		prizes = append(prizes, &models.Prize{
			Name:       input.Name,
			RangeStart: input.RangeStart,
			RangeEnd:   input.RangeEnd,
			Drawn:      false,
		})
	}

	if err := s.prizeRepo.CreateMany(ctx, prizes); err != nil {
		slog.Error("CreatePrizes: bulk create failed", "error", err, "count", len(prizes))
		return nil, fmt.Errorf("failed to create prizes: %w", err)
	}

	slog.Info("CreatePrizes: batch created", "count", len(prizes))
	return prizes, nil
}

// GetPrizeByID retrieves a prize by its ID
func (s *PrizeServiceImpl) GetPrizeByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error) {
	return s.prizeRepo.FindByID(ctx, id)
}

// GetAllPrizes retrieves all prizes in insertion order
func (s *PrizeServiceImpl) GetAllPrizes(ctx context.Context) ([]*models.Prize, error) {
	return s.prizeRepo.FindAll(ctx)
}

// UpdatePrize edits a prize's name and range. Drawn prizes are frozen until
// their draw is undone.
func (s *PrizeServiceImpl) UpdatePrize(ctx context.Context, id primitive.ObjectID, input PrizeInput) (*models.Prize, error) {
	if err := validatePrizeInput(input); err != nil {
		return nil, err
	}

	prize, err := s.prizeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if prize.Drawn {
		return nil, ErrPrizeAlreadyDrawn
	}

	prize.Name = input.Name
	prize.RangeStart = input.RangeStart
	prize.RangeEnd = input.RangeEnd
	if err := s.prizeRepo.Update(ctx, prize); err != nil {
		slog.Error("UpdatePrize: failed to update prize", "error", err, "prizeId", id.Hex())
		return nil, fmt.Errorf("failed to update prize: %w", err)
	}

	slog.Info("UpdatePrize: prize updated", "prizeId", prize.ID.Hex(), "name", prize.Name)
	return prize, nil
}

// DeletePrize deletes a prize unless it has already been drawn
func (s *PrizeServiceImpl) DeletePrize(ctx context.Context, id primitive.ObjectID) error {
	prize, err := s.prizeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if prize.Drawn {
		slog.Warn("DeletePrize: rejected, prize already drawn", "prizeId", id.Hex())
		return ErrPrizeAlreadyDrawn
	}

	if err := s.prizeRepo.Delete(ctx, id); err != nil {
		slog.Error("DeletePrize: failed to delete prize", "error", err, "prizeId", id.Hex())
		return fmt.Errorf("failed to delete prize: %w", err)
	}

	slog.Info("DeletePrize: prize deleted", "prizeId", id.Hex(), "name", prize.Name)
	return nil
}
