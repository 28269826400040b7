package drawer

import (
	"time"

	"github.com/askiada/go-lazypipe/pkg/pipeline/measure"
)

// Drawer is an interface that defines the methods for drawing a replayed plan.
type Drawer interface {
	// AddStep adds a step to the drawing.
	AddStep(stepName string) error
	// AddLink adds a link between parent and child steps.
	AddLink(parentStepName, childStepName string) error
	// Draw writes the drawing.
	Draw() error
	// SetTotalTime labels the step with the time elapsed since startTime.
	SetTotalTime(stepName string, startTime time.Time) error
	// AddMeasure annotates steps and links with the metrics of measure.
	AddMeasure(measure measure.Measure) error
	// Reset drops every step and link.
	Reset() error
}
