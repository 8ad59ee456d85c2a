package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haikalvidya/lmnr/internal/service"
)

// EvaluationHandler handles the evaluation run registry endpoints
type EvaluationHandler struct {
	evaluationService *service.EvaluationService
	logger            *zap.Logger
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(evaluationService *service.EvaluationService, logger *zap.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		evaluationService: evaluationService,
		logger:            logger,
	}
}

// CreateEvaluationRequest is the request body for creating an evaluation
type CreateEvaluationRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=255"`
	GroupID string `json:"groupId" binding:"omitempty,max=255"`
}

// Create registers a new evaluation run
func (h *EvaluationHandler) Create(c *gin.Context) {
	projectID, err := uuid.Parse(c.GetString("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: "invalid project_id"})
		return
	}

	var req CreateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: err.Error()})
		return
	}

	eval, err := h.evaluationService.CreateEvaluation(c.Request.Context(), projectID, req.GroupID, req.Name)
	if err != nil {
		h.logger.Error("failed to create evaluation", zap.Error(err))
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, eval)
}

// Get fetches one evaluation
func (h *EvaluationHandler) Get(c *gin.Context) {
	projectID, err := uuid.Parse(c.GetString("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: "invalid project_id"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: "invalid evaluation id"})
		return
	}

	eval, err := h.evaluationService.GetEvaluation(c.Request.Context(), projectID, id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, eval)
}

// List returns a project's evaluations, optionally filtered by group
func (h *EvaluationHandler) List(c *gin.Context) {
	projectID, err := uuid.Parse(c.GetString("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: "invalid project_id"})
		return
	}

	evals, err := h.evaluationService.ListEvaluations(c.Request.Context(), projectID, c.Query("group_id"))
	if err != nil {
		h.logger.Error("failed to list evaluations", zap.Error(err))
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{Data: evals, Total: len(evals)})
}
