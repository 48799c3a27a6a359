package prediction

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func storedEvaluation(createdAt time.Time) *Evaluation {
	return &Evaluation{
		ID:        uuid.New(),
		Inputs:    map[string]float64{"baseline_egfr": 58},
		CreatedAt: createdAt,
	}
}

func TestEvaluationRepoMem_GetByID(t *testing.T) {
	repo := NewEvaluationRepoMem()
	e := storedEvaluation(time.Now())
	if err := repo.Create(context.Background(), e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetByID(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != e.ID {
		t.Errorf("id: got %v, want %v", got.ID, e.ID)
	}

	if _, err := repo.GetByID(context.Background(), uuid.New()); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestEvaluationRepoMem_ListNewestFirst(t *testing.T) {
	repo := NewEvaluationRepoMem()
	base := time.Now()
	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		e := storedEvaluation(base.Add(time.Duration(i) * time.Minute))
		ids = append(ids, e.ID)
		if err := repo.Create(context.Background(), e); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	items, total, err := repo.List(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 5 || len(items) != 2 {
		t.Fatalf("got %d items, total %d", len(items), total)
	}
	if items[0].ID != ids[4] || items[1].ID != ids[3] {
		t.Error("expected newest evaluations first")
	}

	// Offset past the end yields an empty page, not an error.
	items, total, err = repo.List(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 5 || len(items) != 0 {
		t.Errorf("got %d items, total %d", len(items), total)
	}
}
