package model

import "fmt"

// StepKind identifies the operation queued by a step.
type StepKind string

const (
	MapStepKind         StepKind = "map"
	FilterStepKind      StepKind = "filter"
	FlattenStepKind     StepKind = "flatten"
	ZipStepKind         StepKind = "zip"
	ProductStepKind     StepKind = "product"
	GroupByStepKind     StepKind = "groupby"
	ReduceStepKind      StepKind = "reduce"
	SumStepKind         StepKind = "sum"
	CountStepKind       StepKind = "count"
	MaterializeStepKind StepKind = "materialize"
)

// IsTerminal reports whether the kind ends a plan.
func (k StepKind) IsTerminal() bool {
	switch k {
	case ReduceStepKind, SumStepKind, CountStepKind, MaterializeStepKind:
		return true
	default:
		return false
	}
}

type StepInfo struct {
	Kind StepKind
	Name string
	// Position of the step in its plan, starting at 1.
	Position int
}

// NewStepInfo names a step after its position and kind, e.g. "2. filter".
func NewStepInfo(kind StepKind, position int) *StepInfo {
	return &StepInfo{
		Kind:     kind,
		Name:     fmt.Sprintf("%d. %s", position, kind),
		Position: position,
	}
}

var (
	StartStep = &StepInfo{Name: "start"}
	EndStep   = &StepInfo{Name: "end"}
)
