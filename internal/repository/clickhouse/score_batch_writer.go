package clickhouse

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/haikalvidya/lmnr/internal/domain"
)

// BatchWriterConfig contains configuration for the score batch writer
type BatchWriterConfig struct {
	BatchSize     int           `envconfig:"CLICKHOUSE_BATCH_SIZE" default:"1000"`
	FlushInterval time.Duration `envconfig:"CLICKHOUSE_FLUSH_INTERVAL" default:"5s"`
	MaxRetries    int           `envconfig:"CLICKHOUSE_MAX_RETRIES" default:"3"`
	RetryDelay    time.Duration `envconfig:"CLICKHOUSE_RETRY_DELAY" default:"1s"`
}

// DefaultBatchWriterConfig returns default configuration
func DefaultBatchWriterConfig() *BatchWriterConfig {
	return &BatchWriterConfig{
		BatchSize:     1000,
		FlushInterval: 5 * time.Second,
		MaxRetries:    3,
		RetryDelay:    time.Second,
	}
}

// ScoreBatchWriter buffers evaluation scores and flushes them to ClickHouse
// asynchronously, either when the buffer fills or on a timer. A flush that
// keeps failing past the retry budget puts the rows back in front of the
// buffer so a later flush retries them.
type ScoreBatchWriter struct {
	repo   *EvaluationScoreRepository
	config *BatchWriterConfig
	logger *zap.Logger

	mu     sync.Mutex
	buffer []domain.EvaluationScore

	stopCh chan struct{}
	wg     sync.WaitGroup

	// Metrics
	metricsMu     sync.RWMutex
	scoresWritten int64
	flushCount    int64
	errorCount    int64
}

// NewScoreBatchWriter creates a new batch writer flushing through repo
func NewScoreBatchWriter(repo *EvaluationScoreRepository, config *BatchWriterConfig, logger *zap.Logger) *ScoreBatchWriter {
	if config == nil {
		config = DefaultBatchWriterConfig()
	}

	return &ScoreBatchWriter{
		repo:   repo,
		config: config,
		logger: logger,
		buffer: make([]domain.EvaluationScore, 0, config.BatchSize),
		stopCh: make(chan struct{}),
	}
}

// Start begins the background flush goroutine
func (w *ScoreBatchWriter) Start() {
	w.wg.Add(1)
	go w.flushLoop()
	w.logger.Info("score batch writer started",
		zap.Int("batch_size", w.config.BatchSize),
		zap.Duration("flush_interval", w.config.FlushInterval),
	)
}

// Stop gracefully stops the batch writer, flushing any remaining data
func (w *ScoreBatchWriter) Stop(ctx context.Context) error {
	close(w.stopCh)

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if err := w.Flush(ctx); err != nil {
			w.logger.Error("failed to flush remaining scores on shutdown", zap.Error(err))
			return err
		}
		w.logger.Info("score batch writer stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// flushLoop runs periodically to flush buffered scores
func (w *ScoreBatchWriter) flushLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := w.Flush(ctx); err != nil {
				w.logger.Error("periodic score flush failed", zap.Error(err))
			}
			cancel()
		case <-w.stopCh:
			return
		}
	}
}

// Enqueue adds scores to the buffer, flushing inline once the buffer
// reaches the configured batch size.
func (w *ScoreBatchWriter) Enqueue(ctx context.Context, scores []domain.EvaluationScore) error {
	if len(scores) == 0 {
		return nil
	}

	w.mu.Lock()
	w.buffer = append(w.buffer, scores...)
	shouldFlush := len(w.buffer) >= w.config.BatchSize
	w.mu.Unlock()

	if shouldFlush {
		return w.Flush(ctx)
	}
	return nil
}

// Flush writes the buffered scores to ClickHouse
func (w *ScoreBatchWriter) Flush(ctx context.Context) error {
	w.mu.Lock()
	if len(w.buffer) == 0 {
		w.mu.Unlock()
		return nil
	}

	// Swap out the buffer
	scores := w.buffer
	w.buffer = make([]domain.EvaluationScore, 0, w.config.BatchSize)
	w.mu.Unlock()

	err := w.writeWithRetry(ctx, scores)
	if err != nil {
		w.incrementErrorCount()
		// Re-add scores to buffer on failure
		w.mu.Lock()
		w.buffer = append(scores, w.buffer...)
		w.mu.Unlock()
		return err
	}

	w.incrementScoresWritten(int64(len(scores)))
	w.incrementFlushCount()

	w.logger.Debug("flushed evaluation scores", zap.Int("count", len(scores)))

	return nil
}

// writeWithRetry writes scores with retry logic
func (w *ScoreBatchWriter) writeWithRetry(ctx context.Context, scores []domain.EvaluationScore) error {
	var lastErr error

	for attempt := 0; attempt <= w.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.config.RetryDelay * time.Duration(attempt)):
			}
			w.logger.Debug("retrying score write",
				zap.Int("attempt", attempt),
				zap.Int("count", len(scores)),
			)
		}

		if err := w.repo.InsertBatch(ctx, scores); err != nil {
			lastErr = err
			continue
		}

		return nil
	}

	return lastErr
}

// Metrics helpers
func (w *ScoreBatchWriter) incrementScoresWritten(n int64) {
	w.metricsMu.Lock()
	w.scoresWritten += n
	w.metricsMu.Unlock()
}

func (w *ScoreBatchWriter) incrementFlushCount() {
	w.metricsMu.Lock()
	w.flushCount++
	w.metricsMu.Unlock()
}

func (w *ScoreBatchWriter) incrementErrorCount() {
	w.metricsMu.Lock()
	w.errorCount++
	w.metricsMu.Unlock()
}

// BatchWriterMetrics contains metrics about the batch writer
type BatchWriterMetrics struct {
	ScoresWritten int64 `json:"scoresWritten"`
	FlushCount    int64 `json:"flushCount"`
	ErrorCount    int64 `json:"errorCount"`
	Buffered      int   `json:"buffered"`
}

// GetMetrics returns current metrics
func (w *ScoreBatchWriter) GetMetrics() *BatchWriterMetrics {
	w.metricsMu.RLock()
	defer w.metricsMu.RUnlock()

	w.mu.Lock()
	buffered := len(w.buffer)
	w.mu.Unlock()

	return &BatchWriterMetrics{
		ScoresWritten: w.scoresWritten,
		FlushCount:    w.flushCount,
		ErrorCount:    w.errorCount,
		Buffered:      buffered,
	}
}
