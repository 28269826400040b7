package pipeline

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-lazypipe/pkg/pipeline/model"
)

// Pipeline queues operations over a source and replays them when a terminal
// operation is called.
//
// Chaining operations only append a step to the plan and return the same Pipeline.
// Terminal operations append a last step, detach the plan, replay it over the source
// and return the result. The plan is always empty once a terminal operation returns,
// successful or not, so the Pipeline can be reused with a new plan against the same
// source.
//
// A Pipeline is not safe for concurrent use.
type Pipeline struct {
	source Source
	plan   []step
	opts   []model.PipelineOption
}

// New creates a new pipeline over source.
func New(source Source, opts ...model.PipelineOption) *Pipeline {
	return &Pipeline{
		source: source,
		opts:   opts,
	}
}

// Plan describes the queued steps in execution order.
func (p *Pipeline) Plan() []model.StepInfo {
	if p == nil {
		return nil
	}

	infos := make([]model.StepInfo, len(p.plan))
	for i, st := range p.plan {
		infos[i] = *st.details()
	}

	return infos
}

func (p *Pipeline) queue(kind model.StepKind, build func(info stepDetails) step) *Pipeline {
	if p == nil {
		return nil
	}
	p.plan = append(p.plan, build(stepDetails{info: model.NewStepInfo(kind, len(p.plan)+1)}))

	return p
}

// Map transforms every element with fn.
func (p *Pipeline) Map(fn MapFunc) *Pipeline {
	return p.queue(model.MapStepKind, func(d stepDetails) step {
		return &mapStep{stepDetails: d, fn: fn}
	})
}

// Filter keeps the elements for which predicate returns true.
func (p *Pipeline) Filter(predicate Predicate) *Pipeline {
	return p.queue(model.FilterStepKind, func(d stepDetails) step {
		return &filterStep{stepDetails: d, predicate: predicate}
	})
}

// Flatten concatenates the elements of every element, one level deep.
// Elements must be sequences: a Source, a Tuple, a slice, an array, a string,
// an iter.Seq[any] or a channel.
func (p *Pipeline) Flatten() *Pipeline {
	return p.queue(model.FlattenStepKind, func(d stepDetails) step {
		return &flattenStep{stepDetails: d}
	})
}

// Zip pairs elements positionally with the elements of others into Tuples.
// It stops with the shortest input.
func (p *Pipeline) Zip(others ...any) *Pipeline {
	return p.queue(model.ZipStepKind, func(d stepDetails) step {
		return &zipStep{stepDetails: d, others: others}
	})
}

// Product yields the cartesian product of the elements and others as Tuples.
// The rightmost input varies fastest.
func (p *Pipeline) Product(others ...any) *Pipeline {
	return p.queue(model.ProductStepKind, func(d stepDetails) step {
		return &productStep{stepDetails: d, others: others}
	})
}

// GroupBy groups valFn(x) by keyFn(x). It yields one Tuple{key, []any} per key,
// in the order keys were first seen. Keys must be comparable.
func (p *Pipeline) GroupBy(keyFn, valFn MapFunc) *Pipeline {
	return p.queue(model.GroupByStepKind, func(d stepDetails) step {
		return &groupByStep{stepDetails: d, keyFn: keyFn, valFn: valFn}
	})
}

// Reduce folds the elements from the left, starting with the first one.
// It returns ErrEmptySequence when there is no element.
func (p *Pipeline) Reduce(fn ReduceFunc) (any, error) {
	return p.Fold(nil, fn)
}

// Fold folds the elements from the left, starting with initial.
// A nil initial behaves like Reduce.
func (p *Pipeline) Fold(initial any, fn ReduceFunc) (any, error) {
	return p.execute(model.ReduceStepKind, func(d stepDetails) step {
		return &reduceStep{stepDetails: d, fn: fn, initial: initial}
	})
}

// Sum adds the elements. It returns 0 when there is no element.
func (p *Pipeline) Sum() (any, error) {
	return p.execute(model.SumStepKind, func(d stepDetails) step {
		return &sumStep{stepDetails: d}
	})
}

// Count returns the number of elements, without iterating when the size is known.
func (p *Pipeline) Count() (int, error) {
	out, err := p.execute(model.CountStepKind, func(d stepDetails) step {
		return &countStep{stepDetails: d}
	})
	if err != nil {
		return 0, err
	}

	return out.(int), nil //nolint:forcetypeassert // count always returns an int
}

// To materializes the elements into container. An unknown container is rejected
// before anything runs and the plan is left untouched.
func (p *Pipeline) To(container Container) (any, error) {
	if !container.valid() {
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown container %q", container)
	}

	return p.execute(model.MaterializeStepKind, func(d stepDetails) step {
		return &materializeStep{stepDetails: d, container: container}
	})
}

// ToList materializes the elements into a slice.
func (p *Pipeline) ToList() ([]any, error) {
	out, err := p.To(List)
	if err != nil {
		return nil, err
	}

	return out.([]any), nil //nolint:forcetypeassert // list always returns a slice
}

// ToSet materializes the elements into a set. Elements must be comparable.
func (p *Pipeline) ToSet() (map[any]struct{}, error) {
	out, err := p.To(Set)
	if err != nil {
		return nil, err
	}

	return out.(map[any]struct{}), nil //nolint:forcetypeassert // set always returns a map
}

// ToDict materializes pairs into a map. Later keys overwrite earlier ones.
func (p *Pipeline) ToDict() (map[any]any, error) {
	out, err := p.To(Dict)
	if err != nil {
		return nil, err
	}

	return out.(map[any]any), nil //nolint:forcetypeassert // dict always returns a map
}
