package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenScores(t *testing.T) {
	projectID := uuid.New()
	evaluationID := uuid.New()
	resultA := uuid.New()
	resultB := uuid.New()
	resultC := uuid.New()

	now := time.Now().UTC()

	tests := []struct {
		name     string
		results  []DatapointResult
		expected int
	}{
		{
			name:     "empty input",
			results:  nil,
			expected: 0,
		},
		{
			name: "result without scores contributes nothing",
			results: []DatapointResult{
				{ResultID: resultA, Scores: map[string]float64{}},
			},
			expected: 0,
		},
		{
			name: "one row per metric per result",
			results: []DatapointResult{
				{ResultID: resultA, Scores: map[string]float64{"accuracy": 0.9, "f1": 0.8}},
				{ResultID: resultB, Scores: map[string]float64{"accuracy": 0.7}},
				{ResultID: resultC, Scores: nil},
			},
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := FlattenScores(tt.results, projectID, "default", evaluationID, now)
			assert.Len(t, scores, tt.expected)

			for _, score := range scores {
				assert.Equal(t, projectID, score.ProjectID)
				assert.Equal(t, "default", score.GroupID)
				assert.Equal(t, evaluationID, score.EvaluationID)
				assert.Equal(t, now, score.Timestamp)
			}
		})
	}
}

func TestFlattenScoresPreservesValues(t *testing.T) {
	projectID := uuid.New()
	evaluationID := uuid.New()
	resultID := uuid.New()
	now := time.Now().UTC()

	results := []DatapointResult{
		{ResultID: resultID, Scores: map[string]float64{"rouge.l": 0.42}},
	}

	scores := FlattenScores(results, projectID, "exp-group", evaluationID, now)
	require.Len(t, scores, 1)

	assert.Equal(t, resultID, scores[0].ResultID)
	assert.Equal(t, "rouge.l", scores[0].Name)
	assert.Equal(t, 0.42, scores[0].Value)
}
