package services

import (
	"context"
	"errors"
	"testing"

	"github.com/raffleworks/sorteo-backend/internal/models"
	"github.com/raffleworks/sorteo-backend/internal/repositories"
	"github.com/raffleworks/sorteo-backend/internal/repositories/memory"
)

type drawFixture struct {
	prizeRepo       repositories.PrizeRepository
	participantRepo repositories.ParticipantRepository
	winnerRepo      repositories.WinnerRepository
	svc             *DrawServiceImpl
}

func newDrawFixture() *drawFixture {
	prizeRepo := memory.NewPrizeRepository()
	participantRepo := memory.NewParticipantRepository()
	winnerRepo := memory.NewWinnerRepository()
	return &drawFixture{
		prizeRepo:       prizeRepo,
		participantRepo: participantRepo,
		winnerRepo:      winnerRepo,
		svc:             NewDrawService(prizeRepo, participantRepo, winnerRepo),
	}
}

func (f *drawFixture) addPrize(t *testing.T, name string, rangeStart, rangeEnd int) *models.Prize {
	t.Helper()
	prize := &models.Prize{Name: name, RangeStart: rangeStart, RangeEnd: rangeEnd}
	if err := f.prizeRepo.Create(context.Background(), prize); err != nil {
		t.Fatalf("failed to create prize: %v", err)
	}
	return prize
}

func (f *drawFixture) addParticipant(t *testing.T, name, cedula, ticket string, active bool) *models.Participant {
	t.Helper()
	p := &models.Participant{Name: name, Cedula: cedula, TicketNumber: ticket, Active: active}
	if err := f.participantRepo.Create(context.Background(), p); err != nil {
		t.Fatalf("failed to create participant: %v", err)
	}
	return p
}

// pickFirst makes draws deterministic for the duration of a test.
func pickFirst(t *testing.T) {
	t.Helper()
	orig := randIntn
	randIntn = func(n int) int { return 0 }
	t.Cleanup(func() { randIntn = orig })
}

func TestEligibleParticipants(t *testing.T) {
	f := newDrawFixture()
	prize := &models.Prize{Name: "TV", RangeStart: 100, RangeEnd: 200}

	participants := []*models.Participant{
		{Name: "Ana", TicketNumber: "150", Active: true},
		{Name: "Luis", TicketNumber: "250", Active: true},
		{Name: "Marta", TicketNumber: "120", Active: false},
		{Name: "Pedro", TicketNumber: "", Active: true},
		{Name: "Rosa", TicketNumber: "abc", Active: true},
		{Name: "Julia", TicketNumber: "100", Active: true},
		{Name: "Diego", TicketNumber: "200", Active: true},
	}

	eligible := f.svc.EligibleParticipants(prize, participants)
	if len(eligible) != 3 {
		t.Fatalf("expected 3 eligible participants, got %d", len(eligible))
	}
	names := map[string]bool{}
	for _, p := range eligible {
		names[p.Name] = true
	}
	for _, want := range []string{"Ana", "Julia", "Diego"} {
		if !names[want] {
			t.Errorf("expected %s to be eligible", want)
		}
	}
}

func TestEligibleParticipantsLeadingZeros(t *testing.T) {
	f := newDrawFixture()
	prize := &models.Prize{Name: "Radio", RangeStart: 1, RangeEnd: 50}

	participants := []*models.Participant{
		{Name: "Ana", TicketNumber: "007", Active: true},
		{Name: "Luis", TicketNumber: "060", Active: true},
	}

	eligible := f.svc.EligibleParticipants(prize, participants)
	if len(eligible) != 1 || eligible[0].Name != "Ana" {
		t.Fatalf("expected only Ana (ticket 007) to be eligible, got %d", len(eligible))
	}
}

func TestDrawPrize(t *testing.T) {
	ctx := context.Background()
	pickFirst(t)

	f := newDrawFixture()
	prize := f.addPrize(t, "TV", 100, 200)
	winner := f.addParticipant(t, "Ana", "1234567890", "150", true)
	bystander := f.addParticipant(t, "Luis", "0987654321", "250", true)

	w, err := f.svc.DrawPrize(ctx, prize.ID)
	if err != nil {
		t.Fatalf("DrawPrize failed: %v", err)
	}
	if w.PrizeID != prize.ID || w.ParticipantID != winner.ID {
		t.Errorf("winner references wrong entities")
	}
	if w.ParticipantName != "Ana" || w.TicketNumber != "150" || w.PrizeName != "TV" {
		t.Errorf("winner snapshot wrong: %+v", w)
	}
	if w.DrawDate.IsZero() {
		t.Errorf("draw date not set")
	}

	gotPrize, _ := f.prizeRepo.FindByID(ctx, prize.ID)
	if !gotPrize.Drawn {
		t.Errorf("prize should be marked drawn")
	}
	gotWinner, _ := f.participantRepo.FindByID(ctx, winner.ID)
	if gotWinner.Active {
		t.Errorf("winning participant should be inactive")
	}
	gotBystander, _ := f.participantRepo.FindByID(ctx, bystander.ID)
	if !gotBystander.Active {
		t.Errorf("non-winning participant must be untouched")
	}
}

func TestDrawPrizeNoEligibleLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	f := newDrawFixture()
	prize := f.addPrize(t, "Radio", 1, 50)
	p := f.addParticipant(t, "Luis", "0987654321", "060", true)

	_, err := f.svc.DrawPrize(ctx, prize.ID)
	if !errors.Is(err, ErrNoEligibleParticipants) {
		t.Fatalf("expected ErrNoEligibleParticipants, got %v", err)
	}

	gotPrize, _ := f.prizeRepo.FindByID(ctx, prize.ID)
	if gotPrize.Drawn {
		t.Errorf("failed draw must not mark the prize drawn")
	}
	gotP, _ := f.participantRepo.FindByID(ctx, p.ID)
	if !gotP.Active {
		t.Errorf("failed draw must not deactivate anyone")
	}
	if n, _ := f.winnerRepo.Count(ctx); n != 0 {
		t.Errorf("failed draw must not record a winner, got %d", n)
	}
}

func TestDrawPrizeAlreadyDrawn(t *testing.T) {
	ctx := context.Background()
	pickFirst(t)

	f := newDrawFixture()
	prize := f.addPrize(t, "TV", 1, 500)
	f.addParticipant(t, "Ana", "1234567890", "150", true)
	f.addParticipant(t, "Luis", "0987654321", "250", true)

	if _, err := f.svc.DrawPrize(ctx, prize.ID); err != nil {
		t.Fatalf("first draw failed: %v", err)
	}
	if _, err := f.svc.DrawPrize(ctx, prize.ID); !errors.Is(err, ErrPrizeAlreadyDrawn) {
		t.Fatalf("expected ErrPrizeAlreadyDrawn, got %v", err)
	}
	if n, _ := f.winnerRepo.Count(ctx); n != 1 {
		t.Errorf("expected exactly one winner record, got %d", n)
	}
}

func TestDrawnParticipantCannotWinTwice(t *testing.T) {
	ctx := context.Background()
	pickFirst(t)

	f := newDrawFixture()
	first := f.addPrize(t, "TV", 1, 500)
	second := f.addPrize(t, "Radio", 1, 500)
	f.addParticipant(t, "Ana", "1234567890", "150", true)
	f.addParticipant(t, "Luis", "0987654321", "250", true)

	w1, err := f.svc.DrawPrize(ctx, first.ID)
	if err != nil {
		t.Fatalf("first draw failed: %v", err)
	}
	w2, err := f.svc.DrawPrize(ctx, second.ID)
	if err != nil {
		t.Fatalf("second draw failed: %v", err)
	}
	if w1.ParticipantID == w2.ParticipantID {
		t.Errorf("a participant won twice")
	}
}

func TestDrawNextSequencer(t *testing.T) {
	ctx := context.Background()
	pickFirst(t)

	f := newDrawFixture()
	first := f.addPrize(t, "TV", 1, 500)
	second := f.addPrize(t, "Radio", 1, 500)
	f.addParticipant(t, "Ana", "1234567890", "150", true)
	f.addParticipant(t, "Luis", "0987654321", "250", true)

	w1, err := f.svc.DrawNext(ctx)
	if err != nil {
		t.Fatalf("first DrawNext failed: %v", err)
	}
	if w1.PrizeID != first.ID {
		t.Errorf("DrawNext must follow insertion order, drew %s first", w1.PrizeName)
	}

	w2, err := f.svc.DrawNext(ctx)
	if err != nil {
		t.Fatalf("second DrawNext failed: %v", err)
	}
	if w2.PrizeID != second.ID {
		t.Errorf("DrawNext drew the wrong prize second")
	}

	if _, err := f.svc.DrawNext(ctx); !errors.Is(err, ErrAllPrizesDrawn) {
		t.Fatalf("expected ErrAllPrizesDrawn, got %v", err)
	}
	// Terminal state is stable.
	if _, err := f.svc.DrawNext(ctx); !errors.Is(err, ErrAllPrizesDrawn) {
		t.Fatalf("expected ErrAllPrizesDrawn again, got %v", err)
	}
}

func TestUndoWinnerRestoresState(t *testing.T) {
	ctx := context.Background()
	pickFirst(t)

	f := newDrawFixture()
	prize := f.addPrize(t, "TV", 1, 500)
	f.addParticipant(t, "Ana", "1234567890", "150", true)

	w, err := f.svc.DrawPrize(ctx, prize.ID)
	if err != nil {
		t.Fatalf("draw failed: %v", err)
	}

	if err := f.svc.UndoWinner(ctx, w.ID); err != nil {
		t.Fatalf("UndoWinner failed: %v", err)
	}

	gotPrize, _ := f.prizeRepo.FindByID(ctx, prize.ID)
	if gotPrize.Drawn {
		t.Errorf("prize should be undrawn after undo")
	}
	gotP, _ := f.participantRepo.FindByID(ctx, w.ParticipantID)
	if !gotP.Active {
		t.Errorf("participant should be active after undo")
	}
	if n, _ := f.winnerRepo.Count(ctx); n != 0 {
		t.Errorf("winner record should be gone, got %d", n)
	}

	// The prize is drawable again.
	if _, err := f.svc.DrawPrize(ctx, prize.ID); err != nil {
		t.Fatalf("re-draw after undo failed: %v", err)
	}
}

func TestUndoWinnerNotFound(t *testing.T) {
	f := newDrawFixture()
	w := &models.Winner{}
	if err := f.svc.UndoWinner(context.Background(), w.ID); !errors.Is(err, ErrWinnerNotFound) {
		t.Fatalf("expected ErrWinnerNotFound, got %v", err)
	}
}

func TestClearAllWinners(t *testing.T) {
	ctx := context.Background()
	pickFirst(t)

	f := newDrawFixture()
	f.addPrize(t, "TV", 1, 500)
	f.addPrize(t, "Radio", 1, 500)
	f.addParticipant(t, "Ana", "1234567890", "150", true)
	f.addParticipant(t, "Luis", "0987654321", "250", true)
	// Registered but never claimed a ticket; must stay inactive.
	pending := f.addParticipant(t, "Marta", "1111111111", "", false)

	for {
		_, err := f.svc.DrawNext(ctx)
		if errors.Is(err, ErrAllPrizesDrawn) {
			break
		}
		if err != nil {
			t.Fatalf("DrawNext failed: %v", err)
		}
	}

	if err := f.svc.ClearAllWinners(ctx); err != nil {
		t.Fatalf("ClearAllWinners failed: %v", err)
	}

	prizes, _ := f.prizeRepo.FindAll(ctx)
	for _, p := range prizes {
		if p.Drawn {
			t.Errorf("prize %s should be undrawn", p.Name)
		}
	}
	if n, _ := f.participantRepo.CountActive(ctx); n != 2 {
		t.Errorf("expected 2 active participants, got %d", n)
	}
	gotPending, _ := f.participantRepo.FindByID(ctx, pending.ID)
	if gotPending.Active {
		t.Errorf("ticketless participant must not be activated by clear")
	}
	if n, _ := f.winnerRepo.Count(ctx); n != 0 {
		t.Errorf("winner history should be empty, got %d", n)
	}

	// Idempotent: clearing an already clear dataset changes nothing.
	if err := f.svc.ClearAllWinners(ctx); err != nil {
		t.Fatalf("second ClearAllWinners failed: %v", err)
	}
	if n, _ := f.participantRepo.CountActive(ctx); n != 2 {
		t.Errorf("second clear changed active count to %d", n)
	}
}

func TestResetAll(t *testing.T) {
	ctx := context.Background()
	f := newDrawFixture()
	f.addPrize(t, "TV", 1, 500)
	f.addParticipant(t, "Ana", "1234567890", "150", true)

	if err := f.svc.ResetAll(ctx, "reiniciar_todo"); !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	if n, _ := f.prizeRepo.Count(ctx); n != 1 {
		t.Fatalf("rejected reset must not delete anything, got %d prizes", n)
	}

	if err := f.svc.ResetAll(ctx, ResetKeyword); err != nil {
		t.Fatalf("ResetAll failed: %v", err)
	}
	if n, _ := f.prizeRepo.Count(ctx); n != 0 {
		t.Errorf("prizes not emptied, got %d", n)
	}
	if n, _ := f.participantRepo.Count(ctx); n != 0 {
		t.Errorf("participants not emptied, got %d", n)
	}
	if n, _ := f.winnerRepo.Count(ctx); n != 0 {
		t.Errorf("winners not emptied, got %d", n)
	}
}

func TestVerifyConsistency(t *testing.T) {
	ctx := context.Background()

	t.Run("clean dataset", func(t *testing.T) {
		pickFirst(t)
		f := newDrawFixture()
		prize := f.addPrize(t, "TV", 1, 500)
		f.addParticipant(t, "Ana", "1234567890", "150", true)
		if _, err := f.svc.DrawPrize(ctx, prize.ID); err != nil {
			t.Fatalf("draw failed: %v", err)
		}

		report, err := f.svc.VerifyConsistency(ctx)
		if err != nil {
			t.Fatalf("VerifyConsistency failed: %v", err)
		}
		if !report.Consistent {
			t.Errorf("expected consistent dataset, violations: %v", report.Violations)
		}
	})

	t.Run("orphan winner", func(t *testing.T) {
		f := newDrawFixture()
		prize := f.addPrize(t, "TV", 1, 500)
		p := f.addParticipant(t, "Ana", "1234567890", "150", true)
		// Winner injected behind the service's back: the prize is still
		// undrawn and the participant still active.
		w := &models.Winner{PrizeID: prize.ID, ParticipantID: p.ID, ParticipantName: p.Name, PrizeName: prize.Name}
		if err := f.winnerRepo.Create(ctx, w); err != nil {
			t.Fatalf("failed to inject winner: %v", err)
		}

		report, err := f.svc.VerifyConsistency(ctx)
		if err != nil {
			t.Fatalf("VerifyConsistency failed: %v", err)
		}
		if report.Consistent {
			t.Fatalf("expected violations")
		}
		if len(report.Violations) < 2 {
			t.Errorf("expected undrawn-prize and active-participant violations, got %v", report.Violations)
		}
	})
}

func TestGetStats(t *testing.T) {
	ctx := context.Background()
	pickFirst(t)

	f := newDrawFixture()
	prize := f.addPrize(t, "TV", 1, 500)
	f.addPrize(t, "Radio", 1, 500)
	f.addParticipant(t, "Ana", "1234567890", "150", true)
	f.addParticipant(t, "Luis", "0987654321", "250", true)
	f.addParticipant(t, "Marta", "1111111111", "", false)

	if _, err := f.svc.DrawPrize(ctx, prize.ID); err != nil {
		t.Fatalf("draw failed: %v", err)
	}

	stats, err := f.svc.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	want := models.Stats{
		TotalPrizes:        2,
		DrawnPrizes:        1,
		TotalParticipants:  3,
		ActiveParticipants: 1,
		TotalWinners:       1,
	}
	if *stats != want {
		t.Errorf("stats mismatch: got %+v want %+v", *stats, want)
	}
}
