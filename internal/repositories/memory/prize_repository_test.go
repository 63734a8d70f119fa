package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/raffleworks/sorteo-backend/internal/models"
	"github.com/raffleworks/sorteo-backend/internal/repositories"
)

func TestPrizeSetDrawnIsConditional(t *testing.T) {
	ctx := context.Background()
	repo := NewPrizeRepository()

	prize := &models.Prize{Name: "TV", RangeStart: 1, RangeEnd: 100}
	if err := repo.Create(ctx, prize); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	flipped, err := repo.SetDrawn(ctx, prize.ID, true)
	if err != nil || !flipped {
		t.Fatalf("first flip: flipped=%v err=%v", flipped, err)
	}

	// A second flip to the same state reports the lost race.
	flipped, err = repo.SetDrawn(ctx, prize.ID, true)
	if err != nil || flipped {
		t.Fatalf("second flip: flipped=%v err=%v, want false nil", flipped, err)
	}

	flipped, err = repo.SetDrawn(ctx, prize.ID, false)
	if err != nil || !flipped {
		t.Fatalf("flip back: flipped=%v err=%v", flipped, err)
	}
}

func TestPrizeFindFirstUndrawnFollowsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewPrizeRepository()

	first := &models.Prize{Name: "TV", RangeStart: 1, RangeEnd: 100}
	second := &models.Prize{Name: "Radio", RangeStart: 1, RangeEnd: 100}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.FindFirstUndrawn(ctx)
	if err != nil {
		t.Fatalf("FindFirstUndrawn failed: %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("expected oldest prize, got %s", got.Name)
	}

	if _, err := repo.SetDrawn(ctx, first.ID, true); err != nil {
		t.Fatalf("SetDrawn failed: %v", err)
	}
	got, err = repo.FindFirstUndrawn(ctx)
	if err != nil {
		t.Fatalf("FindFirstUndrawn failed: %v", err)
	}
	if got.ID != second.ID {
		t.Errorf("expected second prize, got %s", got.Name)
	}

	if _, err := repo.SetDrawn(ctx, second.ID, true); err != nil {
		t.Fatalf("SetDrawn failed: %v", err)
	}
	if _, err := repo.FindFirstUndrawn(ctx); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound when everything is drawn, got %v", err)
	}
}

func TestPrizeRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewPrizeRepository()

	prize := &models.Prize{Name: "TV", RangeStart: 1, RangeEnd: 100}
	if err := repo.Create(ctx, prize); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.FindByID(ctx, prize.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	got.Name = "mutated"

	again, _ := repo.FindByID(ctx, prize.ID)
	if again.Name != "TV" {
		t.Errorf("stored prize mutated through a returned pointer")
	}
}
