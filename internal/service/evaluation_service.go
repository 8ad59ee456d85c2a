package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haikalvidya/lmnr/internal/domain"
	"github.com/haikalvidya/lmnr/internal/repository/postgres"
)

// EvaluationService handles the evaluation run registry
type EvaluationService struct {
	evaluationRepo *postgres.EvaluationRepository
	logger         *zap.Logger
}

// NewEvaluationService creates a new evaluation service
func NewEvaluationService(evaluationRepo *postgres.EvaluationRepository, logger *zap.Logger) *EvaluationService {
	return &EvaluationService{
		evaluationRepo: evaluationRepo,
		logger:         logger,
	}
}

// CreateEvaluation registers a new evaluation run. An empty group id falls
// back to the default group.
func (s *EvaluationService) CreateEvaluation(ctx context.Context, projectID uuid.UUID, groupID, name string) (*domain.Evaluation, error) {
	if groupID == "" {
		groupID = domain.DefaultGroupID
	}

	eval := &domain.Evaluation{
		ID:        uuid.New(),
		ProjectID: projectID,
		GroupID:   groupID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.evaluationRepo.Create(ctx, eval); err != nil {
		return nil, err
	}

	s.logger.Info("evaluation created",
		zap.String("evaluation_id", eval.ID.String()),
		zap.String("group_id", eval.GroupID),
	)

	return eval, nil
}

// GetEvaluation fetches one evaluation within a project
func (s *EvaluationService) GetEvaluation(ctx context.Context, projectID, id uuid.UUID) (*domain.Evaluation, error) {
	return s.evaluationRepo.GetByID(ctx, projectID, id)
}

// ListEvaluations lists a project's evaluations, optionally by group
func (s *EvaluationService) ListEvaluations(ctx context.Context, projectID uuid.UUID, groupID string) ([]*domain.Evaluation, error) {
	return s.evaluationRepo.ListByProject(ctx, projectID, groupID)
}
