package clickhouse

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/google/uuid"

	"github.com/haikalvidya/lmnr/internal/domain"
)

// EvaluationScoreRepository handles evaluation score storage and the
// analytical queries backing run comparison views.
type EvaluationScoreRepository struct {
	conn clickhouse.Conn
}

// NewEvaluationScoreRepository creates a new EvaluationScoreRepository
func NewEvaluationScoreRepository(conn clickhouse.Conn) *EvaluationScoreRepository {
	return &EvaluationScoreRepository{conn: conn}
}

// InsertBatch writes evaluation scores in a single batch. The whole batch is
// buffered client-side before Send, so a reported send failure means nothing
// from this call was committed by the driver; callers should still treat any
// error as "an unknown subset may be persisted" since the server offers no
// cross-block atomicity. Empty input returns immediately without touching
// the connection.
func (r *EvaluationScoreRepository) InsertBatch(ctx context.Context, scores []domain.EvaluationScore) error {
	if len(scores) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, `
		INSERT INTO evaluation_scores (
			project_id, group_id, evaluation_id, result_id,
			name, value, timestamp
		)
	`)
	if err != nil {
		return &domain.StoreError{Op: "insert", Phase: "prepare", Err: err}
	}

	for _, score := range scores {
		if err := batch.Append(
			score.ProjectID,
			score.GroupID,
			score.EvaluationID,
			score.ResultID,
			score.Name,
			score.Value,
			score.Timestamp.UTC().UnixNano(),
		); err != nil {
			return &domain.StoreError{Op: "insert", Phase: "append", Err: err}
		}
	}

	if err := batch.Send(); err != nil {
		return &domain.StoreError{Op: "insert", Phase: "send", Err: err}
	}

	return nil
}

// AverageScore computes the mean value of one metric within an evaluation.
// ClickHouse returns a single row with a NaN average for an empty set, so
// the sample count is what signals absence: zero matching rows yield
// domain.ErrNoData, never a blindly-read first row.
func (r *EvaluationScoreRepository) AverageScore(ctx context.Context, projectID, evaluationID uuid.UUID, name string) (float64, error) {
	if err := validateScoreName(name); err != nil {
		return 0, err
	}

	query := `
		SELECT avg(value) AS average_value, count() AS sample_count
		FROM evaluation_scores
		WHERE project_id = ? AND evaluation_id = ? AND name = ?
	`

	var (
		average float64
		samples uint64
	)
	row := r.conn.QueryRow(ctx, query, projectID, evaluationID, name)
	if err := row.Scan(&average, &samples); err != nil {
		return 0, &domain.StoreError{Op: "query", Phase: "scan", Err: err}
	}
	if samples == 0 {
		return 0, domain.ErrNoData
	}

	return average, nil
}

// scoreBucketsQuery generates one interval row per requested bucket with
// arrayJoin(range(...)), independently of the data, then left-joins the
// matching score rows against it so empty buckets still come back with
// height 0. The bucket edges mirror bucketEdges: bucket i covers
// [lower+(i-1)*step, lower+i*step), and the final bucket's upper edge is
// pinned to the exact requested upper bound and closed on both ends. Only
// heights come back; the reported boundaries are computed in bucketEdges so
// the same arithmetic is what callers see. toFloat64 keeps the bound
// expressions Float64 regardless of how the driver renders the bound
// literals.
const scoreBucketsQuery = `
	WITH buckets AS (
		SELECT
			arrayJoin(range(1, toUInt64(?) + 1)) AS bucket_num,
			1 AS join_key,
			toFloat64(?) + ((bucket_num - 1) * toFloat64(?)) AS lower_bound,
			if(bucket_num = toUInt64(?),
				toFloat64(?),
				toFloat64(?) + (bucket_num * toFloat64(?))) AS upper_bound
	),
	matched AS (
		SELECT value, 1 AS join_key
		FROM evaluation_scores
		WHERE project_id = ? AND evaluation_id = ? AND name = ?
	)
	SELECT
		COUNT(CASE
			WHEN matched.value >= buckets.lower_bound
				AND matched.value < buckets.upper_bound THEN 1
			WHEN buckets.bucket_num = toUInt64(?)
				AND matched.value >= buckets.lower_bound
				AND matched.value <= buckets.upper_bound THEN 1
			ELSE NULL
		END) AS height
	FROM buckets
	LEFT JOIN matched ON buckets.join_key = matched.join_key
	GROUP BY buckets.bucket_num, buckets.lower_bound, buckets.upper_bound
	ORDER BY buckets.bucket_num
	SETTINGS join_use_nulls = 1
`

// bucketEdges computes the boundaries of count contiguous equal-width
// buckets over [lower, upper]. Every edge is lower + i*step so rounding
// never accumulates across buckets, and the final upper edge is pinned to
// the exact requested bound. scoreBucketsQuery assigns values with the same
// arithmetic.
func bucketEdges(lower, upper float64, count int) []domain.HistogramBucket {
	step := (upper - lower) / float64(count)
	edges := make([]domain.HistogramBucket, count)
	for i := range edges {
		edges[i].LowerBound = lower + float64(i)*step
		edges[i].UpperBound = lower + float64(i+1)*step
	}
	edges[count-1].UpperBound = upper

	return edges
}

// ScoreBuckets returns the value distribution of one metric within an
// evaluation as bucketCount buckets spanning [lowerBound, upperBound],
// ordered ascending. Every requested bucket is present in the result even
// when no row falls in it. Non-final buckets are half-open; the final bucket
// includes its upper edge so a value equal to upperBound is counted.
func (r *EvaluationScoreRepository) ScoreBuckets(
	ctx context.Context,
	projectID, evaluationID uuid.UUID,
	name string,
	lowerBound, upperBound float64,
	bucketCount int,
) ([]domain.HistogramBucket, error) {
	if err := validateScoreName(name); err != nil {
		return nil, err
	}
	if err := validateBucketRange(lowerBound, upperBound, bucketCount); err != nil {
		return nil, err
	}

	step := (upperBound - lowerBound) / float64(bucketCount)
	buckets := bucketEdges(lowerBound, upperBound, bucketCount)

	rows, err := r.conn.Query(ctx, scoreBucketsQuery,
		bucketCount,
		lowerBound, step,
		bucketCount, upperBound, lowerBound, step,
		projectID, evaluationID, name,
		bucketCount,
	)
	if err != nil {
		return nil, &domain.StoreError{Op: "query", Phase: "execute", Err: err}
	}
	defer rows.Close()

	scanned := 0
	for rows.Next() {
		if scanned >= len(buckets) {
			return nil, &domain.StoreError{Op: "query", Phase: "scan",
				Err: fmt.Errorf("more than %d bucket rows returned", bucketCount)}
		}
		if err := rows.Scan(&buckets[scanned].Height); err != nil {
			return nil, &domain.StoreError{Op: "query", Phase: "scan", Err: err}
		}
		scanned++
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "query", Phase: "execute", Err: err}
	}
	if scanned != len(buckets) {
		return nil, &domain.StoreError{Op: "query", Phase: "scan",
			Err: fmt.Errorf("expected %d bucket rows, got %d", bucketCount, scanned)}
	}

	return buckets, nil
}

// ScoreBounds computes the maximum value one metric reaches across a set of
// evaluation runs, so callers can issue per-run histogram queries over a
// shared axis. An empty id set or zero matching rows yield domain.ErrNoData.
func (r *EvaluationScoreRepository) ScoreBounds(ctx context.Context, projectID uuid.UUID, evaluationIDs []uuid.UUID, name string) (*domain.ScoreBounds, error) {
	if err := validateScoreName(name); err != nil {
		return nil, err
	}
	if len(evaluationIDs) == 0 {
		return nil, domain.ErrNoData
	}

	// UUIDs render to a fixed hex-and-hyphen alphabet, so splicing the IN
	// list is structurally safe. The remaining values are bound.
	query := fmt.Sprintf(`
		SELECT max(value) AS upper_bound, count() AS sample_count
		FROM evaluation_scores
		WHERE project_id = ? AND evaluation_id IN (%s) AND name = ?
	`, evaluationIDList(evaluationIDs))

	var (
		upper   float64
		samples uint64
	)
	row := r.conn.QueryRow(ctx, query, projectID, name)
	if err := row.Scan(&upper, &samples); err != nil {
		return nil, &domain.StoreError{Op: "query", Phase: "scan", Err: err}
	}
	if samples == 0 {
		return nil, domain.ErrNoData
	}

	return &domain.ScoreBounds{UpperBound: upper}, nil
}

// validateBucketRange rejects degenerate histogram requests before any query
// is issued: a zero bucket count would divide by zero and an empty or
// inverted range has no usable step.
func validateBucketRange(lowerBound, upperBound float64, bucketCount int) error {
	if bucketCount < 1 {
		return fmt.Errorf("%w: bucket count must be at least 1, got %d", domain.ErrInvalidInput, bucketCount)
	}
	if math.IsNaN(lowerBound) || math.IsInf(lowerBound, 0) ||
		math.IsNaN(upperBound) || math.IsInf(upperBound, 0) {
		return fmt.Errorf("%w: bucket bounds must be finite", domain.ErrInvalidInput)
	}
	if upperBound <= lowerBound {
		return fmt.Errorf("%w: upper bound %v must exceed lower bound %v", domain.ErrInvalidInput, upperBound, lowerBound)
	}
	return nil
}

// evaluationIDList renders ids as a quoted, comma-separated SQL list.
func evaluationIDList(ids []uuid.UUID) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = "'" + id.String() + "'"
	}
	return strings.Join(quoted, ",")
}
