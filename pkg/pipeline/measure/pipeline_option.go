package measure

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-lazypipe/pkg/pipeline/model"
)

var errUnknownStep = errors.New("no metric for step")

type pipelineMeasure struct {
	Measure
}

func (pm *pipelineMeasure) metric(step *model.StepInfo) (Metric, error) {
	mt := pm.GetMetric(step.Name)
	if mt == nil {
		return nil, errors.Wrap(errUnknownStep, step.Name)
	}

	return mt, nil
}

func (pm *pipelineMeasure) Start() error {
	pm.Reset()
	pm.AddMetric(model.StartStep.Name)
	pm.AddMetric(model.EndStep.Name)

	return nil
}

func (pm *pipelineMeasure) PrepareStep(_, step *model.StepInfo) error {
	pm.AddMetric(step.Name)

	return nil
}

func (pm *pipelineMeasure) PrepareSink(_, step *model.StepInfo) error {
	pm.AddMetric(step.Name)

	return nil
}

func (pm *pipelineMeasure) OnStepOutput(parentStep, step *model.StepInfo, elapsed time.Duration) error {
	mt, err := pm.metric(step)
	if err != nil {
		return err
	}
	mt.AddDuration(elapsed)
	mt.AddTransportDuration(parentStep.Name, elapsed)

	return nil
}

func (pm *pipelineMeasure) AfterSink(step *model.StepInfo, totalDuration time.Duration) error {
	mt, err := pm.metric(step)
	if err != nil {
		return err
	}
	mt.SetTotalDuration(totalDuration)

	end, err := pm.metric(model.EndStep)
	if err != nil {
		return err
	}
	end.SetTotalDuration(totalDuration)

	return nil
}

func (pm *pipelineMeasure) Finish() error {
	return nil
}

// PipelineMeasure records the metrics of every replay into measure. Each replay
// resets the metrics of the previous one.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{measure}
}
