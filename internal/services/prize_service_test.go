package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/raffleworks/sorteo-backend/internal/repositories"
	"github.com/raffleworks/sorteo-backend/internal/repositories/memory"
	"github.com/raffleworks/sorteo-backend/internal/utils"
)

func TestCreatePrizeValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewPrizeService(memory.NewPrizeRepository())

	cases := []struct {
		name  string
		input PrizeInput
	}{
		{"empty name", PrizeInput{Name: "", RangeStart: 1, RangeEnd: 100}},
		{"start below range", PrizeInput{Name: "TV", RangeStart: 0, RangeEnd: 100}},
		{"end above range", PrizeInput{Name: "TV", RangeStart: 1, RangeEnd: 501}},
		{"inverted range", PrizeInput{Name: "TV", RangeStart: 200, RangeEnd: 100}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreatePrize(ctx, tc.input)
			var vErr *utils.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}

	// Single-number range is legal.
	if _, err := svc.CreatePrize(ctx, PrizeInput{Name: "TV", RangeStart: 42, RangeEnd: 42}); err != nil {
		t.Fatalf("single-number range rejected: %v", err)
	}
}

func TestCreatePrizesBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("one bad row rejects the whole batch", func(t *testing.T) {
		repo := memory.NewPrizeRepository()
		svc := NewPrizeService(repo)
		_, err := svc.CreatePrizes(ctx, []PrizeInput{
			{Name: "TV", RangeStart: 1, RangeEnd: 100},
			{Name: "Radio", RangeStart: 300, RangeEnd: 200},
		})
		if err == nil {
			t.Fatalf("expected error")
		}
		if !strings.Contains(err.Error(), "row 2") {
			t.Errorf("error should name the bad row, got %v", err)
		}
		if n, _ := repo.Count(ctx); n != 0 {
			t.Errorf("rejected batch must not persist anything, got %d", n)
		}
	})

	t.Run("valid batch", func(t *testing.T) {
		repo := memory.NewPrizeRepository()
		svc := NewPrizeService(repo)
		created, err := svc.CreatePrizes(ctx, []PrizeInput{
			{Name: "TV", RangeStart: 1, RangeEnd: 100},
			{Name: "Radio", RangeStart: 101, RangeEnd: 200},
		})
		if err != nil {
			t.Fatalf("CreatePrizes failed: %v", err)
		}
		if len(created) != 2 {
			t.Fatalf("expected 2 created, got %d", len(created))
		}
		for _, p := range created {
			if p.ID.IsZero() {
				t.Errorf("created prize %s has no ID", p.Name)
			}
			if p.Drawn {
				t.Errorf("new prize %s must start undrawn", p.Name)
			}
		}
	})
}

func TestUpdateAndDeleteDrawnPrize(t *testing.T) {
	ctx := context.Background()
	pickFirst(t)

	prizeRepo := memory.NewPrizeRepository()
	participantRepo := memory.NewParticipantRepository()
	winnerRepo := memory.NewWinnerRepository()
	svc := NewPrizeService(prizeRepo)
	drawSvc := NewDrawService(prizeRepo, participantRepo, winnerRepo)

	prize, err := svc.CreatePrize(ctx, PrizeInput{Name: "TV", RangeStart: 1, RangeEnd: 500})
	if err != nil {
		t.Fatalf("CreatePrize failed: %v", err)
	}
	p := &drawFixture{participantRepo: participantRepo}
	p.addParticipant(t, "Ana", "1234567890", "150", true)

	w, err := drawSvc.DrawPrize(ctx, prize.ID)
	if err != nil {
		t.Fatalf("draw failed: %v", err)
	}

	if _, err := svc.UpdatePrize(ctx, prize.ID, PrizeInput{Name: "TV 4K", RangeStart: 1, RangeEnd: 500}); !errors.Is(err, ErrPrizeAlreadyDrawn) {
		t.Errorf("expected ErrPrizeAlreadyDrawn on update, got %v", err)
	}
	if err := svc.DeletePrize(ctx, prize.ID); !errors.Is(err, ErrPrizeAlreadyDrawn) {
		t.Errorf("expected ErrPrizeAlreadyDrawn on delete, got %v", err)
	}

	// Undoing the draw unfreezes the prize.
	if err := drawSvc.UndoWinner(ctx, w.ID); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	updated, err := svc.UpdatePrize(ctx, prize.ID, PrizeInput{Name: "TV 4K", RangeStart: 1, RangeEnd: 250})
	if err != nil {
		t.Fatalf("update after undo failed: %v", err)
	}
	if updated.Name != "TV 4K" || updated.RangeEnd != 250 {
		t.Errorf("update not applied: %+v", updated)
	}
	if err := svc.DeletePrize(ctx, prize.ID); err != nil {
		t.Fatalf("delete after undo failed: %v", err)
	}
	if _, err := svc.GetPrizeByID(ctx, prize.ID); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("prize should be gone, got %v", err)
	}
}
