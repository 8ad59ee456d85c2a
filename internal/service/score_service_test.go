package service

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/haikalvidya/lmnr/internal/domain"
)

// fakeScoreStore records calls and replays canned answers.
type fakeScoreStore struct {
	inserted [][]domain.EvaluationScore

	average    float64
	averageErr error

	buckets     []domain.HistogramBucket
	bucketCalls []bucketCall
	bucketsErr  error

	bounds    *domain.ScoreBounds
	boundsErr error
}

type bucketCall struct {
	evaluationID uuid.UUID
	lowerBound   float64
	upperBound   float64
	bucketCount  int
}

func (f *fakeScoreStore) InsertBatch(_ context.Context, scores []domain.EvaluationScore) error {
	f.inserted = append(f.inserted, scores)
	return nil
}

func (f *fakeScoreStore) AverageScore(_ context.Context, _, _ uuid.UUID, _ string) (float64, error) {
	return f.average, f.averageErr
}

func (f *fakeScoreStore) ScoreBuckets(_ context.Context, _, evaluationID uuid.UUID, _ string, lowerBound, upperBound float64, bucketCount int) ([]domain.HistogramBucket, error) {
	f.bucketCalls = append(f.bucketCalls, bucketCall{
		evaluationID: evaluationID,
		lowerBound:   lowerBound,
		upperBound:   upperBound,
		bucketCount:  bucketCount,
	})
	return f.buckets, f.bucketsErr
}

func (f *fakeScoreStore) ScoreBounds(_ context.Context, _ uuid.UUID, _ []uuid.UUID, _ string) (*domain.ScoreBounds, error) {
	return f.bounds, f.boundsErr
}

func TestIngestScoresFlattensAndWrites(t *testing.T) {
	store := &fakeScoreStore{}
	svc := NewScoreService(store, zap.NewNop())

	results := []domain.DatapointResult{
		{ResultID: uuid.New(), Scores: map[string]float64{"accuracy": 0.9, "f1": 0.8}},
		{ResultID: uuid.New(), Scores: map[string]float64{"accuracy": 0.7}},
	}

	ingested, err := svc.IngestScores(context.Background(), uuid.New(), "default", uuid.New(), results)
	require.NoError(t, err)
	assert.Equal(t, 3, ingested)

	require.Len(t, store.inserted, 1)
	assert.Len(t, store.inserted[0], 3)

	// All rows of one call share the timestamp.
	ts := store.inserted[0][0].Timestamp
	for _, score := range store.inserted[0] {
		assert.Equal(t, ts, score.Timestamp)
	}
}

func TestIngestScoresEmptyInputWritesNothing(t *testing.T) {
	store := &fakeScoreStore{}
	svc := NewScoreService(store, zap.NewNop())

	ingested, err := svc.IngestScores(context.Background(), uuid.New(), "default", uuid.New(), nil)
	require.NoError(t, err)
	assert.Zero(t, ingested)
	assert.Empty(t, store.inserted)
}

func TestIngestScoresRejectsNonFiniteValues(t *testing.T) {
	tests := []struct {
		name  string
		value float64
	}{
		{name: "NaN", value: math.NaN()},
		{name: "positive infinity", value: math.Inf(1)},
		{name: "negative infinity", value: math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeScoreStore{}
			svc := NewScoreService(store, zap.NewNop())

			results := []domain.DatapointResult{
				{ResultID: uuid.New(), Scores: map[string]float64{"loss": tt.value}},
			}

			_, err := svc.IngestScores(context.Background(), uuid.New(), "default", uuid.New(), results)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, store.inserted)
		})
	}
}

func TestCompareScoreDistributionsSharesAxis(t *testing.T) {
	store := &fakeScoreStore{
		bounds: &domain.ScoreBounds{UpperBound: 9},
		buckets: []domain.HistogramBucket{
			{LowerBound: 0, UpperBound: 4.5, Height: 2},
			{LowerBound: 4.5, UpperBound: 9, Height: 1},
		},
	}
	svc := NewScoreService(store, zap.NewNop())

	evalA := uuid.New()
	evalB := uuid.New()

	comparison, err := svc.CompareScoreDistributions(context.Background(), uuid.New(), []uuid.UUID{evalA, evalB}, "accuracy", 2)
	require.NoError(t, err)

	assert.Equal(t, 0.0, comparison.LowerBound)
	assert.Equal(t, 9.0, comparison.UpperBound)
	require.Len(t, comparison.Histograms, 2)
	assert.Equal(t, evalA, comparison.Histograms[0].EvaluationID)
	assert.Equal(t, evalB, comparison.Histograms[1].EvaluationID)

	// Every histogram was issued over the shared [0, max] range.
	require.Len(t, store.bucketCalls, 2)
	for _, call := range store.bucketCalls {
		assert.Equal(t, 0.0, call.lowerBound)
		assert.Equal(t, 9.0, call.upperBound)
		assert.Equal(t, 2, call.bucketCount)
	}
}

func TestCompareScoreDistributionsPropagatesNoData(t *testing.T) {
	store := &fakeScoreStore{boundsErr: domain.ErrNoData}
	svc := NewScoreService(store, zap.NewNop())

	_, err := svc.CompareScoreDistributions(context.Background(), uuid.New(), []uuid.UUID{uuid.New()}, "accuracy", 10)
	assert.ErrorIs(t, err, domain.ErrNoData)
	assert.Empty(t, store.bucketCalls)
}

func TestCompareScoreDistributionsRejectsNonPositiveMax(t *testing.T) {
	store := &fakeScoreStore{bounds: &domain.ScoreBounds{UpperBound: 0}}
	svc := NewScoreService(store, zap.NewNop())

	_, err := svc.CompareScoreDistributions(context.Background(), uuid.New(), []uuid.UUID{uuid.New()}, "accuracy", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
