package model

import "time"

// PipelineOption defines the interface for pipeline options.
//
// An option observes every replay of a plan. Hooks run on the goroutine calling the
// terminal operation, except Finish which may run concurrently with other options.
type PipelineOption interface {
	// Start runs before the plan is replayed.
	Start() error

	pipelineStepOption
	pipelineSinkOption

	// Finish runs after a successful replay.
	Finish() error
}

// pipelineStepOption defines the interface for step options at the pipeline level.
type pipelineStepOption interface {
	// PrepareStep runs before the step is applied.
	PrepareStep(parentStep, step *StepInfo) error
	// OnStepOutput runs everytime the step yields an element. elapsed is the time it
	// took to produce that element, upstream steps included.
	OnStepOutput(parentStep, step *StepInfo, elapsed time.Duration) error
}

// pipelineSinkOption defines the interface for terminal step options at the pipeline level.
type pipelineSinkOption interface {
	// PrepareSink runs before the terminal step is applied.
	PrepareSink(parentStep, step *StepInfo) error
	// AfterSink runs once the terminal step produced its result.
	AfterSink(step *StepInfo, totalDuration time.Duration) error
}
