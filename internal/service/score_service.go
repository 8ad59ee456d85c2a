package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haikalvidya/lmnr/internal/domain"
)

// ScoreStore is the analytical store behind ScoreService.
type ScoreStore interface {
	InsertBatch(ctx context.Context, scores []domain.EvaluationScore) error
	AverageScore(ctx context.Context, projectID, evaluationID uuid.UUID, name string) (float64, error)
	ScoreBuckets(ctx context.Context, projectID, evaluationID uuid.UUID, name string, lowerBound, upperBound float64, bucketCount int) ([]domain.HistogramBucket, error)
	ScoreBounds(ctx context.Context, projectID uuid.UUID, evaluationIDs []uuid.UUID, name string) (*domain.ScoreBounds, error)
}

// ScoreEnqueuer accepts scores for asynchronous batched writing.
type ScoreEnqueuer interface {
	Enqueue(ctx context.Context, scores []domain.EvaluationScore) error
}

// ScoreService handles score ingestion and the aggregate queries backing
// run comparison views.
type ScoreService struct {
	store  ScoreStore
	writer ScoreEnqueuer
	logger *zap.Logger
}

// NewScoreService creates a score service with synchronous writes
func NewScoreService(store ScoreStore, logger *zap.Logger) *ScoreService {
	return &ScoreService{
		store:  store,
		logger: logger,
	}
}

// NewScoreServiceWithBatchWriter creates a score service that hands ingested
// rows to an asynchronous batch writer instead of writing inline.
func NewScoreServiceWithBatchWriter(store ScoreStore, writer ScoreEnqueuer, logger *zap.Logger) *ScoreService {
	return &ScoreService{
		store:  store,
		writer: writer,
		logger: logger,
	}
}

// IngestScores flattens datapoint results into score rows and persists them.
// All rows of one call share the group, evaluation and timestamp. NaN and
// infinite values are rejected before anything is written: they would poison
// every downstream avg/max aggregate. Returns the number of rows written.
func (s *ScoreService) IngestScores(
	ctx context.Context,
	projectID uuid.UUID,
	groupID string,
	evaluationID uuid.UUID,
	results []domain.DatapointResult,
) (int, error) {
	timestamp := time.Now().UTC()
	scores := domain.FlattenScores(results, projectID, groupID, evaluationID, timestamp)

	for _, score := range scores {
		if math.IsNaN(score.Value) || math.IsInf(score.Value, 0) {
			return 0, fmt.Errorf("%w: score %q has a non-finite value", domain.ErrInvalidInput, score.Name)
		}
	}

	if len(scores) == 0 {
		return 0, nil
	}

	if s.writer != nil {
		if err := s.writer.Enqueue(ctx, scores); err != nil {
			return 0, err
		}
	} else if err := s.store.InsertBatch(ctx, scores); err != nil {
		return 0, err
	}

	s.logger.Debug("ingested evaluation scores",
		zap.String("evaluation_id", evaluationID.String()),
		zap.Int("count", len(scores)),
	)

	return len(scores), nil
}

// AverageScore returns the mean of one metric within an evaluation.
// Propagates domain.ErrNoData when the evaluation has no rows for the
// metric.
func (s *ScoreService) AverageScore(ctx context.Context, projectID, evaluationID uuid.UUID, name string) (float64, error) {
	return s.store.AverageScore(ctx, projectID, evaluationID, name)
}

// ScoreBuckets returns the histogram of one metric within an evaluation.
func (s *ScoreService) ScoreBuckets(
	ctx context.Context,
	projectID, evaluationID uuid.UUID,
	name string,
	lowerBound, upperBound float64,
	bucketCount int,
) ([]domain.HistogramBucket, error) {
	return s.store.ScoreBuckets(ctx, projectID, evaluationID, name, lowerBound, upperBound, bucketCount)
}

// ScoreBounds returns the shared upper bound of one metric across a set of
// evaluation runs.
func (s *ScoreService) ScoreBounds(ctx context.Context, projectID uuid.UUID, evaluationIDs []uuid.UUID, name string) (*domain.ScoreBounds, error) {
	return s.store.ScoreBounds(ctx, projectID, evaluationIDs, name)
}

// EvaluationHistogram is one run's histogram within a comparison.
type EvaluationHistogram struct {
	EvaluationID uuid.UUID                `json:"evaluationId"`
	Buckets      []domain.HistogramBucket `json:"buckets"`
}

// ScoreComparison holds per-run histograms of one metric over a shared
// [0, upperBound] axis, so the distributions are directly comparable.
type ScoreComparison struct {
	Name        string                `json:"name"`
	LowerBound  float64               `json:"lowerBound"`
	UpperBound  float64               `json:"upperBound"`
	BucketCount int                   `json:"bucketCount"`
	Histograms  []EvaluationHistogram `json:"histograms"`
}

// CompareScoreDistributions queries the metric's upper bound once across the
// given runs, then builds each run's histogram over the shared [0, upper]
// axis. Runs are returned in request order. Propagates domain.ErrNoData when
// no run has rows for the metric.
func (s *ScoreService) CompareScoreDistributions(
	ctx context.Context,
	projectID uuid.UUID,
	evaluationIDs []uuid.UUID,
	name string,
	bucketCount int,
) (*ScoreComparison, error) {
	bounds, err := s.store.ScoreBounds(ctx, projectID, evaluationIDs, name)
	if err != nil {
		return nil, err
	}
	if bounds.UpperBound <= 0 {
		return nil, fmt.Errorf("%w: metric %q has no positive values, cannot build a shared [0, max] axis", domain.ErrInvalidInput, name)
	}

	comparison := &ScoreComparison{
		Name:        name,
		LowerBound:  0,
		UpperBound:  bounds.UpperBound,
		BucketCount: bucketCount,
		Histograms:  make([]EvaluationHistogram, 0, len(evaluationIDs)),
	}

	for _, evaluationID := range evaluationIDs {
		buckets, err := s.store.ScoreBuckets(ctx, projectID, evaluationID, name, 0, bounds.UpperBound, bucketCount)
		if err != nil {
			return nil, err
		}
		comparison.Histograms = append(comparison.Histograms, EvaluationHistogram{
			EvaluationID: evaluationID,
			Buckets:      buckets,
		})
	}

	return comparison, nil
}
