// Package logging provides a pipeline option writing structured logs with zerolog.
package logging

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/askiada/go-lazypipe/pkg/pipeline/model"
)

// Standard field keys.
const (
	FieldStep     = "step"
	FieldParent   = "parent"
	FieldKind     = "kind"
	FieldElements = "elements"
	FieldElapsed  = "elapsed"
	FieldDuration = "duration"
)

type pipelineLogger struct {
	logger zerolog.Logger

	mu     sync.Mutex
	order  []string
	counts map[string]int
}

func (pl *pipelineLogger) Start() error {
	pl.mu.Lock()
	pl.order = nil
	pl.counts = make(map[string]int)
	pl.mu.Unlock()

	pl.logger.Debug().Msg("replaying plan")

	return nil
}

func (pl *pipelineLogger) prepare(parentStep, step *model.StepInfo, msg string) {
	pl.logger.Debug().
		Str(FieldStep, step.Name).
		Str(FieldKind, string(step.Kind)).
		Str(FieldParent, parentStep.Name).
		Msg(msg)
}

func (pl *pipelineLogger) PrepareStep(parentStep, step *model.StepInfo) error {
	pl.mu.Lock()
	pl.order = append(pl.order, step.Name)
	pl.counts[step.Name] = 0
	pl.mu.Unlock()

	pl.prepare(parentStep, step, "step prepared")

	return nil
}

func (pl *pipelineLogger) PrepareSink(parentStep, step *model.StepInfo) error {
	pl.prepare(parentStep, step, "terminal step prepared")

	return nil
}

func (pl *pipelineLogger) OnStepOutput(_, step *model.StepInfo, elapsed time.Duration) error {
	pl.mu.Lock()
	pl.counts[step.Name]++
	pl.mu.Unlock()

	pl.logger.Trace().Str(FieldStep, step.Name).Dur(FieldElapsed, elapsed).Msg("element yielded")

	return nil
}

func (pl *pipelineLogger) AfterSink(step *model.StepInfo, totalDuration time.Duration) error {
	pl.logger.Info().
		Str(FieldStep, step.Name).
		Str(FieldKind, string(step.Kind)).
		Dur(FieldDuration, totalDuration).
		Msg("plan replayed")

	return nil
}

func (pl *pipelineLogger) Finish() error {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	for _, name := range pl.order {
		pl.logger.Debug().Str(FieldStep, name).Int(FieldElements, pl.counts[name]).Msg("step summary")
	}

	return nil
}

// PipelineLogger logs every replay with logger. Per element events are written at
// trace level.
func PipelineLogger(logger zerolog.Logger) model.PipelineOption {
	return &pipelineLogger{
		logger: logger,
		counts: make(map[string]int),
	}
}
