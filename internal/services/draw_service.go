package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/raffleworks/sorteo-backend/internal/models"
	"github.com/raffleworks/sorteo-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// ResetKeyword is the literal confirmation string a caller must supply
// before ResetAll will destroy the dataset.
const ResetKeyword = "REINICIAR_TODO"

// randIntn is swapped out in tests for deterministic draws.
var randIntn = rand.Intn

// Compile-time check to ensure DrawServiceImpl implements DrawService
var _ DrawService = (*DrawServiceImpl)(nil)

// DrawServiceImpl orchestrates draws and reversals over the three stores.
// All mutating operations serialize on mu: the UI never issues overlapping
// draws, but nothing server-side would stop a second client from trying.
type DrawServiceImpl struct {
	mu              sync.Mutex
	prizeRepo       repositories.PrizeRepository
	participantRepo repositories.ParticipantRepository
	winnerRepo      repositories.WinnerRepository
}

// NewDrawService creates a new DrawServiceImpl
func NewDrawService(
	prizeRepo repositories.PrizeRepository,
	participantRepo repositories.ParticipantRepository,
	winnerRepo repositories.WinnerRepository,
) *DrawServiceImpl {
	return &DrawServiceImpl{
		prizeRepo:       prizeRepo,
		participantRepo: participantRepo,
		winnerRepo:      winnerRepo,
	}
}

// EligibleParticipants filters the candidate set for a prize: active
// participants whose ticket number parses to an integer inside the prize's
// range. Missing or non-numeric ticket numbers are silently ineligible.
func (s *DrawServiceImpl) EligibleParticipants(prize *models.Prize, participants []*models.Participant) []*models.Participant {
	eligible := make([]*models.Participant, 0)
	for _, p := range participants {
		if !p.Active || p.TicketNumber == "" {
			continue
		}
		n, err := strconv.Atoi(p.TicketNumber)
		if err != nil {
			continue
		}
		if n >= prize.RangeStart && n <= prize.RangeEnd {
			eligible = append(eligible, p)
		}
	}
	return eligible
}

// DrawPrize draws a winner for the given prize
func (s *DrawServiceImpl) DrawPrize(ctx context.Context, prizeID primitive.ObjectID) (*models.Winner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawPrizeLocked(ctx, prizeID)
}

// drawPrizeLocked performs the three-way transition. Write order is prize,
// participant, winner-record-last, so a failure never leaves a winner
// pointing at an un-flipped prize or participant; earlier writes are
// compensated when a later one fails.
func (s *DrawServiceImpl) drawPrizeLocked(ctx context.Context, prizeID primitive.ObjectID) (*models.Winner, error) {
	prize, err := s.prizeRepo.FindByID(ctx, prizeID)
	if err != nil {
		slog.Error("DrawPrize: failed to find prize", "error", err, "prizeId", prizeID.Hex())
		return nil, fmt.Errorf("prize not found: %w", err)
	}
	if prize.Drawn {
		slog.Warn("DrawPrize: prize already drawn", "prizeId", prizeID.Hex())
		return nil, ErrPrizeAlreadyDrawn
	}

	participants, err := s.participantRepo.FindAll(ctx)
	if err != nil {
		slog.Error("DrawPrize: failed to fetch participants", "error", err)
		return nil, fmt.Errorf("failed to fetch participants: %w", err)
	}

	eligible := s.EligibleParticipants(prize, participants)
	if len(eligible) == 0 {
		slog.Warn("DrawPrize: no eligible participants",
			"prizeId", prizeID.Hex(), "rangeStart", prize.RangeStart, "rangeEnd", prize.RangeEnd)
		return nil, ErrNoEligibleParticipants
	}

	selected := eligible[randIntn(len(eligible))]
	slog.Info("DrawPrize: participant selected",
		"prizeId", prizeID.Hex(), "participantId", selected.ID.Hex(),
		"ticket", selected.TicketNumber, "eligibleCount", len(eligible))

	flipped, err := s.prizeRepo.SetDrawn(ctx, prize.ID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to mark prize drawn: %w", err)
	}
	if !flipped {
		// Another draw got here first.
		return nil, ErrPrizeAlreadyDrawn
	}

	deactivated, err := s.participantRepo.SetActive(ctx, selected.ID, false)
	if err != nil || !deactivated {
		s.compensatePrize(ctx, prize.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to deactivate participant: %w", err)
		}
		slog.Warn("DrawPrize: participant no longer active, draw aborted",
			"participantId", selected.ID.Hex())
		return nil, ErrParticipantHasWon
	}

	winner := &models.Winner{
		PrizeID:         prize.ID,
		ParticipantID:   selected.ID,
		DrawDate:        time.Now(),
		ParticipantName: selected.Name,
		TicketNumber:    selected.TicketNumber,
		PrizeName:       prize.Name,
	}
	if err := s.winnerRepo.Create(ctx, winner); err != nil {
		s.compensateParticipant(ctx, selected.ID)
		s.compensatePrize(ctx, prize.ID)
		slog.Error("DrawPrize: failed to record winner", "error", err, "prizeId", prize.ID.Hex())
		return nil, fmt.Errorf("failed to record winner: %w", err)
	}

	slog.Info("DrawPrize: draw completed", "winnerId", winner.ID.Hex(),
		"prize", prize.Name, "participant", selected.Name)
	return winner, nil
}

func (s *DrawServiceImpl) compensatePrize(ctx context.Context, prizeID primitive.ObjectID) {
	if _, err := s.prizeRepo.SetDrawn(ctx, prizeID, false); err != nil {
		slog.Error("compensation failed: prize left marked drawn", "error", err, "prizeId", prizeID.Hex())
	}
}

func (s *DrawServiceImpl) compensateParticipant(ctx context.Context, participantID primitive.ObjectID) {
	if _, err := s.participantRepo.SetActive(ctx, participantID, true); err != nil {
		slog.Error("compensation failed: participant left inactive", "error", err, "participantId", participantID.Hex())
	}
}

// DrawNext draws the first undrawn prize in insertion order
func (s *DrawServiceImpl) DrawNext(ctx context.Context) (*models.Winner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prize, err := s.prizeRepo.FindFirstUndrawn(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			slog.Info("DrawNext: no undrawn prizes remain")
			return nil, ErrAllPrizesDrawn
		}
		slog.Error("DrawNext: failed to find next prize", "error", err)
		return nil, fmt.Errorf("failed to find next prize: %w", err)
	}
	return s.drawPrizeLocked(ctx, prize.ID)
}

// UndoWinner reverts a single draw. The prize and participant are restored
// first and the winner record removed last, mirroring the draw's write
// order; a failed removal re-applies the flips.
func (s *DrawServiceImpl) UndoWinner(ctx context.Context, winnerID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	winner, err := s.winnerRepo.FindByID(ctx, winnerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrWinnerNotFound
		}
		slog.Error("UndoWinner: failed to find winner", "error", err, "winnerId", winnerID.Hex())
		return fmt.Errorf("failed to find winner: %w", err)
	}

	if _, err := s.prizeRepo.SetDrawn(ctx, winner.PrizeID, false); err != nil {
		slog.Error("UndoWinner: failed to restore prize", "error", err, "prizeId", winner.PrizeID.Hex())
		return fmt.Errorf("failed to restore prize: %w", err)
	}
	if _, err := s.participantRepo.SetActive(ctx, winner.ParticipantID, true); err != nil {
		s.markDrawnBack(ctx, winner.PrizeID)
		slog.Error("UndoWinner: failed to restore participant", "error", err, "participantId", winner.ParticipantID.Hex())
		return fmt.Errorf("failed to restore participant: %w", err)
	}
	if err := s.winnerRepo.Delete(ctx, winner.ID); err != nil {
		if _, flipErr := s.participantRepo.SetActive(ctx, winner.ParticipantID, false); flipErr != nil {
			slog.Error("compensation failed: participant left active", "error", flipErr, "participantId", winner.ParticipantID.Hex())
		}
		s.markDrawnBack(ctx, winner.PrizeID)
		slog.Error("UndoWinner: failed to delete winner", "error", err, "winnerId", winner.ID.Hex())
		return fmt.Errorf("failed to delete winner: %w", err)
	}

	slog.Info("UndoWinner: draw reverted", "winnerId", winner.ID.Hex(),
		"prizeId", winner.PrizeID.Hex(), "participantId", winner.ParticipantID.Hex())
	return nil
}

func (s *DrawServiceImpl) markDrawnBack(ctx context.Context, prizeID primitive.ObjectID) {
	if _, err := s.prizeRepo.SetDrawn(ctx, prizeID, true); err != nil {
		slog.Error("compensation failed: prize left undrawn", "error", err, "prizeId", prizeID.Hex())
	}
}

// ClearAllWinners reverts every draw. Only participants referenced by a
// winner record are reactivated; participants who never held a ticket stay
// as they were.
func (s *DrawServiceImpl) ClearAllWinners(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	winners, err := s.winnerRepo.FindAll(ctx)
	if err != nil {
		slog.Error("ClearAllWinners: failed to fetch winners", "error", err)
		return fmt.Errorf("failed to fetch winners: %w", err)
	}

	participantIDs := make([]primitive.ObjectID, 0, len(winners))
	for _, w := range winners {
		participantIDs = append(participantIDs, w.ParticipantID)
	}

	if err := s.prizeRepo.ResetAllDrawn(ctx); err != nil {
		slog.Error("ClearAllWinners: failed to restore prizes", "error", err)
		return fmt.Errorf("failed to restore prizes: %w", err)
	}
	if err := s.participantRepo.SetActiveByIDs(ctx, participantIDs); err != nil {
		slog.Error("ClearAllWinners: failed to restore participants", "error", err)
		return fmt.Errorf("failed to restore participants: %w", err)
	}
	if err := s.winnerRepo.DeleteAll(ctx); err != nil {
		slog.Error("ClearAllWinners: failed to delete winners", "error", err)
		return fmt.Errorf("failed to delete winners: %w", err)
	}

	slog.Info("ClearAllWinners: winner history cleared", "restoredParticipants", len(participantIDs))
	return nil
}

// ResetAll empties all three stores. The keyword guard lives here, not in
// the UI: the operation is irreversible and must never run on a bare call.
func (s *DrawServiceImpl) ResetAll(ctx context.Context, keyword string) error {
	if keyword != ResetKeyword {
		slog.Warn("ResetAll: rejected, confirmation keyword mismatch")
		return ErrConfirmationRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.winnerRepo.DeleteAll(ctx); err != nil {
		slog.Error("ResetAll: failed to delete winners", "error", err)
		return fmt.Errorf("failed to delete winners: %w", err)
	}
	if err := s.prizeRepo.DeleteAll(ctx); err != nil {
		slog.Error("ResetAll: failed to delete prizes", "error", err)
		return fmt.Errorf("failed to delete prizes: %w", err)
	}
	if err := s.participantRepo.DeleteAll(ctx); err != nil {
		slog.Error("ResetAll: failed to delete participants", "error", err)
		return fmt.Errorf("failed to delete participants: %w", err)
	}

	slog.Info("ResetAll: dataset emptied")
	return nil
}

// VerifyConsistency checks the three-way invariants between prizes,
// participants and winners
func (s *DrawServiceImpl) VerifyConsistency(ctx context.Context) (*models.ConsistencyReport, error) {
	prizes, err := s.prizeRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prizes: %w", err)
	}
	participants, err := s.participantRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch participants: %w", err)
	}
	winners, err := s.winnerRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch winners: %w", err)
	}

	prizesByID := make(map[primitive.ObjectID]*models.Prize, len(prizes))
	for _, p := range prizes {
		prizesByID[p.ID] = p
	}
	participantsByID := make(map[primitive.ObjectID]*models.Participant, len(participants))
	for _, p := range participants {
		participantsByID[p.ID] = p
	}
	winnersByPrize := make(map[primitive.ObjectID]int, len(winners))
	winnersByParticipant := make(map[primitive.ObjectID]int, len(winners))
	for _, w := range winners {
		winnersByPrize[w.PrizeID]++
		winnersByParticipant[w.ParticipantID]++
	}

	violations := make([]string, 0)
	for _, p := range prizes {
		n := winnersByPrize[p.ID]
		if p.Drawn && n != 1 {
			violations = append(violations, fmt.Sprintf("prize %s is drawn but has %d winner records", p.ID.Hex(), n))
		}
		if !p.Drawn && n != 0 {
			violations = append(violations, fmt.Sprintf("prize %s is undrawn but has %d winner records", p.ID.Hex(), n))
		}
	}
	for _, w := range winners {
		if _, ok := prizesByID[w.PrizeID]; !ok {
			violations = append(violations, fmt.Sprintf("winner %s references missing prize %s", w.ID.Hex(), w.PrizeID.Hex()))
		}
		participant, ok := participantsByID[w.ParticipantID]
		if !ok {
			violations = append(violations, fmt.Sprintf("winner %s references missing participant %s", w.ID.Hex(), w.ParticipantID.Hex()))
			continue
		}
		if participant.Active {
			violations = append(violations, fmt.Sprintf("winner %s references participant %s who is still active", w.ID.Hex(), w.ParticipantID.Hex()))
		}
	}
	if n := winnersByParticipantMax(winnersByParticipant); n > 1 {
		violations = append(violations, fmt.Sprintf("a participant holds %d winner records, at most one is allowed", n))
	}

	if len(violations) > 0 {
		slog.Warn("VerifyConsistency: violations detected", "count", len(violations))
	}
	return &models.ConsistencyReport{
		Consistent: len(violations) == 0,
		Violations: violations,
	}, nil
}

func winnersByParticipantMax(counts map[primitive.ObjectID]int) int {
	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}
	return max
}

// GetStats summarizes the dataset
func (s *DrawServiceImpl) GetStats(ctx context.Context) (*models.Stats, error) {
	totalPrizes, err := s.prizeRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count prizes: %w", err)
	}
	drawnPrizes, err := s.prizeRepo.CountDrawn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count drawn prizes: %w", err)
	}
	totalParticipants, err := s.participantRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count participants: %w", err)
	}
	activeParticipants, err := s.participantRepo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count active participants: %w", err)
	}
	totalWinners, err := s.winnerRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count winners: %w", err)
	}

	return &models.Stats{
		TotalPrizes:        totalPrizes,
		DrawnPrizes:        drawnPrizes,
		TotalParticipants:  totalParticipants,
		ActiveParticipants: activeParticipants,
		TotalWinners:       totalWinners,
	}, nil
}
