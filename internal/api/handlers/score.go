package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haikalvidya/lmnr/internal/domain"
	"github.com/haikalvidya/lmnr/internal/service"
)

// ScoreHandler handles score ingestion and analytics endpoints
type ScoreHandler struct {
	scoreService      *service.ScoreService
	evaluationService *service.EvaluationService
	logger            *zap.Logger
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(
	scoreService *service.ScoreService,
	evaluationService *service.EvaluationService,
	logger *zap.Logger,
) *ScoreHandler {
	return &ScoreHandler{
		scoreService:      scoreService,
		evaluationService: evaluationService,
		logger:            logger,
	}
}

// IngestScoresRequest is the request body for score ingestion
type IngestScoresRequest struct {
	Results []domain.DatapointResult `json:"results" binding:"required,min=1,dive"`
}

// IngestScoresResponse reports how many score rows were written
type IngestScoresResponse struct {
	Ingested int `json:"ingested"`
}

// Ingest flattens and persists the scores of a batch of datapoint results
// for one evaluation. The evaluation must exist in the project; its group id
// is carried onto every row.
func (h *ScoreHandler) Ingest(c *gin.Context) {
	projectID, evaluationID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	var req IngestScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: err.Error()})
		return
	}

	eval, err := h.evaluationService.GetEvaluation(c.Request.Context(), projectID, evaluationID)
	if err != nil {
		c.Error(err)
		return
	}

	ingested, err := h.scoreService.IngestScores(c.Request.Context(), projectID, eval.GroupID, evaluationID, req.Results)
	if err != nil {
		h.logger.Error("failed to ingest scores",
			zap.String("evaluation_id", evaluationID.String()),
			zap.Error(err),
		)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, IngestScoresResponse{Ingested: ingested})
}

// AverageResponse is the average-score response
type AverageResponse struct {
	Name    string  `json:"name"`
	Average float64 `json:"average"`
}

// Average returns the mean of one metric within an evaluation
func (h *ScoreHandler) Average(c *gin.Context) {
	projectID, evaluationID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	var query struct {
		Name string `form:"name" binding:"required,metricname"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: err.Error()})
		return
	}

	average, err := h.scoreService.AverageScore(c.Request.Context(), projectID, evaluationID, query.Name)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, AverageResponse{Name: query.Name, Average: average})
}

// BucketsResponse is the histogram response
type BucketsResponse struct {
	Name    string                   `json:"name"`
	Buckets []domain.HistogramBucket `json:"buckets"`
}

// BucketsRequest is the query for a histogram of one metric. UpperBound is a
// pointer so that "required" checks presence, not non-zero: a range ending at
// zero (e.g. lower_bound=-5&upper_bound=0) is a legal request.
type BucketsRequest struct {
	Name        string   `form:"name" binding:"required,metricname"`
	LowerBound  float64  `form:"lower_bound"`
	UpperBound  *float64 `form:"upper_bound" binding:"required"`
	BucketCount int      `form:"bucket_count,default=10" binding:"omitempty,min=1,max=1000"`
}

// Buckets returns the histogram of one metric within an evaluation
func (h *ScoreHandler) Buckets(c *gin.Context) {
	projectID, evaluationID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	var query BucketsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: err.Error()})
		return
	}

	buckets, err := h.scoreService.ScoreBuckets(
		c.Request.Context(),
		projectID,
		evaluationID,
		query.Name,
		query.LowerBound,
		*query.UpperBound,
		query.BucketCount,
	)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, BucketsResponse{Name: query.Name, Buckets: buckets})
}

// Bounds returns the shared upper bound of one metric across evaluations
func (h *ScoreHandler) Bounds(c *gin.Context) {
	projectID, err := uuid.Parse(c.GetString("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: "invalid project_id"})
		return
	}

	var query struct {
		Name          string `form:"name" binding:"required,metricname"`
		EvaluationIDs string `form:"evaluation_ids" binding:"required"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: err.Error()})
		return
	}

	evaluationIDs, err := parseUUIDList(query.EvaluationIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: "invalid evaluation_ids"})
		return
	}

	bounds, err := h.scoreService.ScoreBounds(c.Request.Context(), projectID, evaluationIDs, query.Name)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, bounds)
}

// Compare returns per-evaluation histograms of one metric over a shared axis
func (h *ScoreHandler) Compare(c *gin.Context) {
	projectID, err := uuid.Parse(c.GetString("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: "invalid project_id"})
		return
	}

	var query struct {
		Name          string `form:"name" binding:"required,metricname"`
		EvaluationIDs string `form:"evaluation_ids" binding:"required"`
		BucketCount   int    `form:"bucket_count,default=10" binding:"omitempty,min=1,max=1000"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: err.Error()})
		return
	}

	evaluationIDs, err := parseUUIDList(query.EvaluationIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: "invalid evaluation_ids"})
		return
	}

	comparison, err := h.scoreService.CompareScoreDistributions(
		c.Request.Context(),
		projectID,
		evaluationIDs,
		query.Name,
		query.BucketCount,
	)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, comparison)
}

// pathIDs resolves the project id from the request context and the
// evaluation id from the path.
func (h *ScoreHandler) pathIDs(c *gin.Context) (projectID, evaluationID uuid.UUID, ok bool) {
	projectID, err := uuid.Parse(c.GetString("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: "invalid project_id"})
		return uuid.Nil, uuid.Nil, false
	}

	evaluationID, err = uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: "invalid evaluation id"})
		return uuid.Nil, uuid.Nil, false
	}

	return projectID, evaluationID, true
}

// parseUUIDList parses a comma-separated list of UUIDs
func parseUUIDList(raw string) ([]uuid.UUID, error) {
	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
