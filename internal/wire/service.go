package wire

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/haikalvidya/lmnr/internal/config"
	chrepo "github.com/haikalvidya/lmnr/internal/repository/clickhouse"
	pgrepo "github.com/haikalvidya/lmnr/internal/repository/postgres"
	"github.com/haikalvidya/lmnr/internal/service"
)

// ServiceSet provides all service instances.
var ServiceSet = wire.NewSet(
	ProvideEvaluationService,
	ProvideBatchWriter,
	ProvideScoreService,
)

// ProvideEvaluationService creates a new EvaluationService.
func ProvideEvaluationService(
	evaluationRepo *pgrepo.EvaluationRepository,
	logger *zap.Logger,
) *service.EvaluationService {
	return service.NewEvaluationService(evaluationRepo, logger)
}

// BatchWriterResult holds the optional async score writer.
type BatchWriterResult struct {
	Writer *chrepo.ScoreBatchWriter
}

// ProvideBatchWriter creates a ScoreBatchWriter if async writes are enabled.
func ProvideBatchWriter(
	scoreRepo *chrepo.EvaluationScoreRepository,
	cfg *config.Config,
	logger *zap.Logger,
) *BatchWriterResult {
	if !cfg.ClickHouse.AsyncWrite {
		return &BatchWriterResult{}
	}

	bwConfig := &chrepo.BatchWriterConfig{
		BatchSize:     cfg.ClickHouse.BatchSize,
		FlushInterval: cfg.ClickHouse.FlushInterval,
		MaxRetries:    cfg.ClickHouse.MaxRetries,
		RetryDelay:    cfg.ClickHouse.RetryDelay,
	}

	return &BatchWriterResult{
		Writer: chrepo.NewScoreBatchWriter(scoreRepo, bwConfig, logger),
	}
}

// ProvideScoreService creates a new ScoreService, wiring in the batch writer
// when async writes are enabled.
func ProvideScoreService(
	scoreRepo *chrepo.EvaluationScoreRepository,
	batchWriter *BatchWriterResult,
	logger *zap.Logger,
) *service.ScoreService {
	if batchWriter != nil && batchWriter.Writer != nil {
		return service.NewScoreServiceWithBatchWriter(scoreRepo, batchWriter.Writer, logger)
	}
	return service.NewScoreService(scoreRepo, logger)
}
