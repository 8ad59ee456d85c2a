package wire

import (
	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/haikalvidya/lmnr/internal/api"
	"github.com/haikalvidya/lmnr/internal/api/handlers"
	"github.com/haikalvidya/lmnr/internal/service"
)

// HandlerSet provides all HTTP handler instances.
var HandlerSet = wire.NewSet(
	ProvideHealthHandler,
	ProvideEvaluationHandler,
	ProvideScoreHandler,
	ProvideHandlers,
)

// ProvideHealthHandler creates a new HealthHandler.
func ProvideHealthHandler(pg *pgxpool.Pool, ch clickhouse.Conn, logger *zap.Logger) *handlers.HealthHandler {
	return handlers.NewHealthHandler(pg, ch, logger)
}

// ProvideEvaluationHandler creates a new EvaluationHandler.
func ProvideEvaluationHandler(evaluationService *service.EvaluationService, logger *zap.Logger) *handlers.EvaluationHandler {
	return handlers.NewEvaluationHandler(evaluationService, logger)
}

// ProvideScoreHandler creates a new ScoreHandler.
func ProvideScoreHandler(
	scoreService *service.ScoreService,
	evaluationService *service.EvaluationService,
	logger *zap.Logger,
) *handlers.ScoreHandler {
	return handlers.NewScoreHandler(scoreService, evaluationService, logger)
}

// ProvideHandlers groups all handlers for the router.
func ProvideHandlers(
	health *handlers.HealthHandler,
	evaluation *handlers.EvaluationHandler,
	score *handlers.ScoreHandler,
) *api.Handlers {
	return &api.Handlers{
		Health:     health,
		Evaluation: evaluation,
		Score:      score,
	}
}
