package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/decklist/internal/model"
)

// Step is one stage of deck processing.
type Step interface {
	// Do works on the job. A returned error stops the pipeline; steps whose
	// failure should not stop the deck record it on the job and return nil.
	Do(ctx context.Context, job *model.Job) error

	// Name identifies the step in logs and in Job.PerformedSteps.
	Name() string
}

// Pipeline runs steps over one job at a time.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates an empty Pipeline. Add steps with AddStep or AddSteps.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends steps in the given order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs the steps in order until one fails or ctx is done. The
// error that stopped the job is returned and kept in job.Err.
//
// Failures are logged at Debug only: the caller prints them to the
// operator from job.Err.
func (p *Pipeline) Execute(ctx context.Context, job *model.Job) error {
	logger := p.logger.With("url", job.RawURL)

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			logger.Debug("pipeline cancelled", "step", step.Name(), "reason", err)
			return stop(job, err)
		}

		logger.Debug("executing step", "step", step.Name())
		if err := step.Do(ctx, job); err != nil {
			logger.Debug("step failed", "step", step.Name(), "error", err)
			return stop(job, err)
		}
		job.PerformedSteps = append(job.PerformedSteps, step.Name())
	}

	logger.Debug("pipeline completed", "steps", len(job.PerformedSteps))
	return nil
}

// stop records err as the reason the job ended, keeping an earlier one.
func stop(job *model.Job, err error) error {
	if job.Err == nil {
		job.Err = err
	}
	return err
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
