package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haikalvidya/lmnr/internal/domain"
)

// EvaluationRepository handles the evaluation run registry
type EvaluationRepository struct {
	db *pgxpool.Pool
}

// NewEvaluationRepository creates a new evaluation repository
func NewEvaluationRepository(db *pgxpool.Pool) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// Create registers a new evaluation run
func (r *EvaluationRepository) Create(ctx context.Context, eval *domain.Evaluation) error {
	query := `
		INSERT INTO evaluations (id, project_id, group_id, name, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		eval.ID, eval.ProjectID, eval.GroupID, eval.Name, eval.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create evaluation: %w", err)
	}

	return nil
}

// GetByID retrieves an evaluation by id within a project
func (r *EvaluationRepository) GetByID(ctx context.Context, projectID, id uuid.UUID) (*domain.Evaluation, error) {
	query := `
		SELECT id, project_id, group_id, name, created_at
		FROM evaluations
		WHERE project_id = $1 AND id = $2`

	var eval domain.Evaluation
	err := pgxscan.Get(ctx, r.db, &eval, query, projectID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}

	return &eval, nil
}

// ListByProject retrieves a project's evaluations, newest first, optionally
// restricted to one run group.
func (r *EvaluationRepository) ListByProject(ctx context.Context, projectID uuid.UUID, groupID string) ([]*domain.Evaluation, error) {
	query := `
		SELECT id, project_id, group_id, name, created_at
		FROM evaluations
		WHERE project_id = $1`
	args := []interface{}{projectID}

	if groupID != "" {
		query += ` AND group_id = $2`
		args = append(args, groupID)
	}
	query += ` ORDER BY created_at DESC`

	var evals []*domain.Evaluation
	if err := pgxscan.Select(ctx, r.db, &evals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}

	return evals, nil
}
