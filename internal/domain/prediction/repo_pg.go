package prediction

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type evaluationRepoPG struct{ pool *pgxpool.Pool }

// NewEvaluationRepoPG returns a Postgres-backed evaluation repository.
// Inputs and results are stored as JSONB; the table is append-only.
func NewEvaluationRepoPG(pool *pgxpool.Pool) EvaluationRepository {
	return &evaluationRepoPG{pool: pool}
}

const evalCols = `id, inputs, creatinine_unit, results, created_at`

func (r *evaluationRepoPG) Create(ctx context.Context, e *Evaluation) error {
	inputs, err := json.Marshal(e.Inputs)
	if err != nil {
		return fmt.Errorf("marshal inputs: %w", err)
	}
	results, err := json.Marshal(e.Results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO evaluation (id, inputs, creatinine_unit, results, created_at)
		VALUES ($1,$2,$3,$4,$5)`,
		e.ID, inputs, e.CreatinineUnit, results, e.CreatedAt)
	return err
}

func (r *evaluationRepoPG) scan(row interface{ Scan(dest ...any) error }) (*Evaluation, error) {
	var (
		e       Evaluation
		inputs  []byte
		results []byte
	)
	if err := row.Scan(&e.ID, &inputs, &e.CreatinineUnit, &results, &e.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(inputs, &e.Inputs); err != nil {
		return nil, fmt.Errorf("unmarshal inputs: %w", err)
	}
	if err := json.Unmarshal(results, &e.Results); err != nil {
		return nil, fmt.Errorf("unmarshal results: %w", err)
	}
	return &e, nil
}

func (r *evaluationRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Evaluation, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+evalCols+` FROM evaluation WHERE id = $1`, id))
}

func (r *evaluationRepoPG) List(ctx context.Context, limit, offset int) ([]*Evaluation, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM evaluation`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+evalCols+` FROM evaluation ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Evaluation
	for rows.Next() {
		e, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}
