package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/decklist/internal/model"
)

// BatchProcessor runs the pipeline for several deck URLs, one after another.
// The browser serves one page at a time, so URLs are never processed
// concurrently.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each URL.
	pipelineFactory func() *Pipeline

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch processes each URL and returns one job per URL that was
// started. A failed deck does not stop the batch; cancellation does, and
// its error is returned along with the jobs finished so far.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, urls []string, masterDuel bool) ([]*model.Job, error) {
	jobs := make([]*model.Job, 0, len(urls))
	err := bp.ProcessBatchWithCallback(ctx, urls, masterDuel, func(job *model.Job, _ int) {
		jobs = append(jobs, job)
	})
	return jobs, err
}

// ProcessBatchWithCallback processes each URL and calls callback with the
// finished job and its index in urls.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	urls []string,
	masterDuel bool,
	callback func(job *model.Job, index int),
) error {
	bp.logger.Debug("starting batch processing", "total", len(urls))
	start := time.Now()

	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return err
		}

		job := model.NewJob(url, masterDuel)
		if err := bp.pipelineFactory().Execute(ctx, job); err != nil {
			bp.logger.Debug("deck failed",
				"url", url,
				"index", i+1,
				"total", len(urls),
				"error", err,
			)
		}
		callback(job, i)
	}

	bp.logger.Debug("batch processing complete",
		"total", len(urls),
		"elapsed", time.Since(start),
	)
	return ctx.Err()
}
