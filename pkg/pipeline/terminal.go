package pipeline

import (
	"github.com/pkg/errors"
)

// Container names the concrete container a sequence is materialized into.
type Container string

const (
	List Container = "list"
	Set  Container = "set"
	Dict Container = "dict"
)

func (c Container) valid() bool {
	switch c {
	case List, Set, Dict:
		return true
	default:
		return false
	}
}

type reduceStep struct {
	stepDetails
	fn      ReduceFunc
	initial any
}

type sumStep struct {
	stepDetails
}

type countStep struct {
	stepDetails
}

type materializeStep struct {
	stepDetails
	container Container
}

// settle consumes in with the terminal step st.
func settle(fail *failure, st step, in Source) (any, error) {
	switch s := st.(type) {
	case *reduceStep:
		return reduce(fail, in, s.fn, s.initial)
	case *sumStep:
		return sum(fail, in)
	case *countStep:
		return count(fail, in)
	case *materializeStep:
		return materialize(fail, in, s.container)
	default:
		return nil, errors.Errorf("unexpected terminal step %T", st)
	}
}

func reduce(fail *failure, in Source, fn ReduceFunc, initial any) (any, error) {
	if fn == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "reduce function must be set")
	}

	acc, seeded := initial, initial != nil
	for x := range in.All() {
		if !seeded {
			acc, seeded = x, true

			continue
		}
		next, err := fn(acc, x)
		if err != nil {
			return nil, err
		}
		acc = next
	}
	if fail.failed() {
		return nil, fail.err
	}
	if !seeded {
		return nil, errors.Wrap(ErrEmptySequence, "reduce of empty sequence with no initial value")
	}

	return acc, nil
}

func sum(fail *failure, in Source) (any, error) {
	var total any
	for x := range in.All() {
		if total == nil {
			if !isNumeric(x) {
				return nil, errors.Wrapf(ErrTypeMismatch, "unsupported operand type %T for sum", x)
			}
			total = x

			continue
		}
		next, err := add(total, x)
		if err != nil {
			return nil, err
		}
		total = next
	}
	if fail.failed() {
		return nil, fail.err
	}
	if total == nil {
		return 0, nil
	}

	return total, nil
}

func count(fail *failure, in Source) (int, error) {
	if size, ok := in.Len(); ok {
		return size, nil
	}

	total := 0
	for range in.All() {
		total++
	}
	if fail.failed() {
		return 0, fail.err
	}

	return total, nil
}

func materialize(fail *failure, in Source, container Container) (any, error) {
	var (
		out any
		err error
	)
	switch container {
	case List:
		out = toList(in)
	case Set:
		out, err = toSet(in)
	case Dict:
		out, err = toDict(in)
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown container %q", container)
	}
	if fail.failed() {
		return nil, fail.err
	}
	if err != nil {
		return nil, err
	}

	return out, nil
}

func toList(in Source) []any {
	list := []any{}
	if size, ok := in.Len(); ok {
		list = make([]any, 0, size)
	}
	for x := range in.All() {
		list = append(list, x)
	}

	return list
}

func toSet(in Source) (map[any]struct{}, error) {
	set := make(map[any]struct{})
	for x := range in.All() {
		if !isComparable(x) {
			return nil, errors.Wrapf(ErrTypeMismatch, "set element of type %T is not comparable", x)
		}
		set[x] = struct{}{}
	}

	return set, nil
}

func toDict(in Source) (map[any]any, error) {
	dict := make(map[any]any)
	for x := range in.All() {
		pair, ok := pairOf(x)
		if !ok {
			return nil, errors.Wrapf(ErrConstruction, "dict element of type %T is not a pair", x)
		}
		if !isComparable(pair.Key()) {
			return nil, errors.Wrapf(ErrTypeMismatch, "dict key of type %T is not comparable", pair.Key())
		}
		dict[pair.Key()] = pair.Value()
	}

	return dict, nil
}
