package domain

import (
	"time"

	"github.com/google/uuid"
)

// EvaluationScore is one named metric value produced for a single datapoint
// result. Rows are append-only and immutable once written; uniqueness of
// (result_id, name) is not enforced at this layer, so duplicate writes are
// accepted.
type EvaluationScore struct {
	// ProjectID scopes access: reads always filter on it.
	ProjectID    uuid.UUID `json:"projectId"`
	GroupID      string    `json:"groupId"`
	EvaluationID uuid.UUID `json:"evaluationId"`
	ResultID     uuid.UUID `json:"resultId"`
	// One evaluator can produce multiple named scores per result.
	Name      string    `json:"name"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// DatapointResult is the outcome of evaluating one input item: the id of the
// stored result together with zero or more named numeric scores. Carrying the
// result id on the result itself keeps ingestion input unambiguous instead of
// pairing two parallel sequences positionally.
type DatapointResult struct {
	ResultID uuid.UUID          `json:"resultId" binding:"required"`
	Scores   map[string]float64 `json:"scores"`
}

// HistogramBucket is one sub-range of a score distribution. Buckets with no
// matching rows are still reported with Height 0.
type HistogramBucket struct {
	LowerBound float64 `json:"lowerBound"`
	UpperBound float64 `json:"upperBound"`
	Height     uint64  `json:"height"`
}

// ScoreBounds is the maximum value a metric reaches across a set of
// evaluation runs, used to build a shared histogram axis before comparing
// them.
type ScoreBounds struct {
	UpperBound float64 `json:"upperBound"`
}

// FlattenScores explodes datapoint results into flat score rows, one row per
// (result, metric) entry. All emitted rows share the given project, group,
// evaluation and timestamp. Results without scores contribute nothing.
func FlattenScores(
	results []DatapointResult,
	projectID uuid.UUID,
	groupID string,
	evaluationID uuid.UUID,
	timestamp time.Time,
) []EvaluationScore {
	scores := make([]EvaluationScore, 0, len(results))
	for _, result := range results {
		for name, value := range result.Scores {
			scores = append(scores, EvaluationScore{
				ProjectID:    projectID,
				GroupID:      groupID,
				EvaluationID: evaluationID,
				ResultID:     result.ResultID,
				Name:         name,
				Value:        value,
				Timestamp:    timestamp,
			})
		}
	}
	return scores
}
