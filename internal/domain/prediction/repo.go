package prediction

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// EvaluationRepository records completed evaluations for clinical audit.
type EvaluationRepository interface {
	Create(ctx context.Context, e *Evaluation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Evaluation, error)
	List(ctx context.Context, limit, offset int) ([]*Evaluation, int, error)
}

// evaluationRepoMem is the in-memory repository used in development (no
// DATABASE_URL) and in tests.
type evaluationRepoMem struct {
	mu   sync.RWMutex
	data map[uuid.UUID]*Evaluation
}

func NewEvaluationRepoMem() EvaluationRepository {
	return &evaluationRepoMem{data: make(map[uuid.UUID]*Evaluation)}
}

func (r *evaluationRepoMem) Create(_ context.Context, e *Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[e.ID] = e
	return nil
}

func (r *evaluationRepoMem) GetByID(_ context.Context, id uuid.UUID) (*Evaluation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.data[id]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("evaluation %s not found", id)
}

func (r *evaluationRepoMem) List(_ context.Context, limit, offset int) ([]*Evaluation, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*Evaluation, 0, len(r.data))
	for _, e := range r.data {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}
