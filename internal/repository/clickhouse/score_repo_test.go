package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haikalvidya/lmnr/internal/domain"
)

// The repositories below run against a nil connection: every case exercises
// a path that must settle before the store is contacted.

func TestInsertBatchEmptyInputSkipsStore(t *testing.T) {
	repo := NewEvaluationScoreRepository(nil)

	assert.NoError(t, repo.InsertBatch(context.Background(), nil))
	assert.NoError(t, repo.InsertBatch(context.Background(), []domain.EvaluationScore{}))
}

func TestAverageScoreRejectsBadName(t *testing.T) {
	repo := NewEvaluationScoreRepository(nil)

	_, err := repo.AverageScore(context.Background(), uuid.New(), uuid.New(), "acc'; --")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestScoreBucketsRejectsInvalidRequests(t *testing.T) {
	repo := NewEvaluationScoreRepository(nil)
	projectID := uuid.New()
	evaluationID := uuid.New()

	tests := []struct {
		name        string
		metric      string
		lowerBound  float64
		upperBound  float64
		bucketCount int
	}{
		{name: "zero bucket count", metric: "accuracy", lowerBound: 0, upperBound: 10, bucketCount: 0},
		{name: "negative bucket count", metric: "accuracy", lowerBound: 0, upperBound: 10, bucketCount: -3},
		{name: "equal bounds", metric: "accuracy", lowerBound: 5, upperBound: 5, bucketCount: 5},
		{name: "inverted bounds", metric: "accuracy", lowerBound: 10, upperBound: 0, bucketCount: 5},
		{name: "nan lower bound", metric: "accuracy", lowerBound: math.NaN(), upperBound: 10, bucketCount: 5},
		{name: "infinite upper bound", metric: "accuracy", lowerBound: 0, upperBound: math.Inf(1), bucketCount: 5},
		{name: "unsafe name", metric: "a;b", lowerBound: 0, upperBound: 10, bucketCount: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.ScoreBuckets(context.Background(), projectID, evaluationID, tt.metric, tt.lowerBound, tt.upperBound, tt.bucketCount)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestScoreBoundsEmptyIDSetReturnsNoData(t *testing.T) {
	repo := NewEvaluationScoreRepository(nil)

	_, err := repo.ScoreBounds(context.Background(), uuid.New(), nil, "accuracy")
	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestBucketEdges(t *testing.T) {
	t.Run("worked range splits evenly", func(t *testing.T) {
		edges := bucketEdges(0, 10, 5)
		require.Len(t, edges, 5)

		expected := []domain.HistogramBucket{
			{LowerBound: 0, UpperBound: 2},
			{LowerBound: 2, UpperBound: 4},
			{LowerBound: 4, UpperBound: 6},
			{LowerBound: 6, UpperBound: 8},
			{LowerBound: 8, UpperBound: 10},
		}
		assert.Equal(t, expected, edges)
	})

	t.Run("final edge is the exact requested bound", func(t *testing.T) {
		// 0.3/3 is not representable, so accumulating steps would drift.
		edges := bucketEdges(0, 0.3, 3)
		require.Len(t, edges, 3)
		assert.Equal(t, 0.3, edges[2].UpperBound)
	})

	t.Run("edges are contiguous and ascending", func(t *testing.T) {
		edges := bucketEdges(-1.7, 3.9, 7)
		require.Len(t, edges, 7)

		assert.Equal(t, -1.7, edges[0].LowerBound)
		assert.Equal(t, 3.9, edges[6].UpperBound)
		for i := 1; i < len(edges); i++ {
			assert.Equal(t, edges[i-1].UpperBound, edges[i].LowerBound)
			assert.Less(t, edges[i].LowerBound, edges[i].UpperBound)
		}
	})

	t.Run("negative range", func(t *testing.T) {
		edges := bucketEdges(-5, 0, 5)
		require.Len(t, edges, 5)
		assert.Equal(t, -5.0, edges[0].LowerBound)
		assert.Equal(t, 0.0, edges[4].UpperBound)
	})
}

func TestValidateBucketRange(t *testing.T) {
	assert.NoError(t, validateBucketRange(0, 10, 1))
	assert.NoError(t, validateBucketRange(-5, 5, 100))

	assert.ErrorIs(t, validateBucketRange(0, 10, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, validateBucketRange(3, 3, 5), domain.ErrInvalidInput)
	assert.ErrorIs(t, validateBucketRange(3, 2, 5), domain.ErrInvalidInput)
	assert.ErrorIs(t, validateBucketRange(0, math.NaN(), 5), domain.ErrInvalidInput)
}

func TestEvaluationIDList(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	list := evaluationIDList([]uuid.UUID{a, b})
	assert.Equal(t, fmt.Sprintf("'%s','%s'", a, b), list)
}

func TestStoreErrorPhases(t *testing.T) {
	cause := errors.New("connection reset")
	err := &domain.StoreError{Op: "insert", Phase: "send", Err: cause}

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "insert")
	assert.Contains(t, err.Error(), "send")
}
