package services

import (
	"context"

	"github.com/raffleworks/sorteo-backend/internal/models"
	"github.com/raffleworks/sorteo-backend/internal/repositories"
)

// Compile-time check to ensure WinnerServiceImpl implements WinnerService
var _ WinnerService = (*WinnerServiceImpl)(nil)

// WinnerServiceImpl exposes the winner history. Winner records carry
// denormalized participant and prize names so the history survives later
// edits to either entity.
type WinnerServiceImpl struct {
	winnerRepo repositories.WinnerRepository
}

// NewWinnerService creates a new WinnerServiceImpl
func NewWinnerService(winnerRepo repositories.WinnerRepository) *WinnerServiceImpl {
	return &WinnerServiceImpl{winnerRepo: winnerRepo}
}

// GetAllWinners retrieves all winners in draw order
func (s *WinnerServiceImpl) GetAllWinners(ctx context.Context) ([]*models.Winner, error) {
	return s.winnerRepo.FindAll(ctx)
}
