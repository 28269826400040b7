package pipeline

import (
	"iter"
	"reflect"

	"github.com/pkg/errors"

	"github.com/askiada/go-lazypipe/pkg/pipeline/model"
)

// MapFunc transforms an element. GroupBy also uses it to extract keys and values.
type MapFunc func(x any) (any, error)

// Predicate reports whether an element must be kept.
type Predicate func(x any) (bool, error)

// ReduceFunc combines the accumulator with the next element.
type ReduceFunc func(acc, x any) (any, error)

// step is a queued operation with its bound arguments. The set of implementations
// is closed: chaining steps are handled by apply and terminal steps by settle.
type step interface {
	details() *model.StepInfo
}

type stepDetails struct {
	info *model.StepInfo
}

func (s stepDetails) details() *model.StepInfo {
	return s.info
}

type mapStep struct {
	stepDetails
	fn MapFunc
}

type filterStep struct {
	stepDetails
	predicate Predicate
}

type flattenStep struct {
	stepDetails
}

type zipStep struct {
	stepDetails
	others []any
}

type productStep struct {
	stepDetails
	others []any
}

type groupByStep struct {
	stepDetails
	keyFn MapFunc
	valFn MapFunc
}

// apply returns the lazy sequence produced by st over in. Only argument checks fail
// here, everything else is reported through fail while the sequence is consumed.
func apply(fail *failure, st step, in Source) (Source, error) {
	switch s := st.(type) {
	case *mapStep:
		if s.fn == nil {
			return Source{}, errors.Wrap(ErrInvalidArgument, "map function must be set")
		}

		return mapSeq(fail, in, s.fn), nil
	case *filterStep:
		if s.predicate == nil {
			return Source{}, errors.Wrap(ErrInvalidArgument, "predicate must be set")
		}

		return filterSeq(fail, in, s.predicate), nil
	case *flattenStep:
		return flattenSeq(fail, in), nil
	case *zipStep:
		others, err := sequencesOf(s.others)
		if err != nil {
			return Source{}, errors.Wrap(err, "unable to zip")
		}

		return zipSeq(in, others), nil
	case *productStep:
		others, err := sequencesOf(s.others)
		if err != nil {
			return Source{}, errors.Wrap(err, "unable to compute product")
		}

		return productSeq(fail, in, others), nil
	case *groupByStep:
		if s.keyFn == nil || s.valFn == nil {
			return Source{}, errors.Wrap(ErrInvalidArgument, "key and value functions must be set")
		}

		return groupBySeq(fail, in, s.keyFn, s.valFn), nil
	default:
		return Source{}, errors.Errorf("unexpected chaining step %T", st)
	}
}

func mapSeq(fail *failure, in Source, fn MapFunc) Source {
	return unsized(func(yield func(any) bool) {
		for x := range in.All() {
			out, err := fn(x)
			if err != nil {
				fail.fail(err)

				return
			}
			if !yield(out) {
				return
			}
		}
	})
}

func filterSeq(fail *failure, in Source, predicate Predicate) Source {
	return unsized(func(yield func(any) bool) {
		for x := range in.All() {
			keep, err := predicate(x)
			if err != nil {
				fail.fail(err)

				return
			}
			if keep && !yield(x) {
				return
			}
		}
	})
}

func flattenSeq(fail *failure, in Source) Source {
	return unsized(func(yield func(any) bool) {
		for x := range in.All() {
			inner, err := sequenceOf(x)
			if err != nil {
				fail.fail(errors.Wrap(err, "unable to flatten element"))

				return
			}
			for y := range inner.All() {
				if !yield(y) {
					return
				}
			}
		}
	})
}

// zipSeq pulls one element from every input in turn and stops at the first exhausted one.
func zipSeq(in Source, others []Source) Source {
	inputs := append([]Source{in}, others...)

	return unsized(func(yield func(any) bool) {
		nexts := make([]func() (any, bool), len(inputs))
		for i, input := range inputs {
			next, stop := iter.Pull(input.All())
			defer stop()
			nexts[i] = next
		}
		for {
			tuple := make(Tuple, len(nexts))
			for i, next := range nexts {
				v, ok := next()
				if !ok {
					return
				}
				tuple[i] = v
			}
			if !yield(tuple) {
				return
			}
		}
	})
}

// productSeq materializes every input then walks the indices like an odometer,
// the rightmost input varying fastest.
func productSeq(fail *failure, in Source, others []Source) Source {
	inputs := append([]Source{in}, others...)

	return unsized(func(yield func(any) bool) {
		pools := make([][]any, len(inputs))
		for i, input := range inputs {
			for v := range input.All() {
				pools[i] = append(pools[i], v)
			}
		}
		if fail.failed() {
			return
		}
		for _, pool := range pools {
			if len(pool) == 0 {
				return
			}
		}

		indices := make([]int, len(pools))
		for {
			tuple := make(Tuple, len(pools))
			for i, idx := range indices {
				tuple[i] = pools[i][idx]
			}
			if !yield(tuple) {
				return
			}

			pos := len(indices) - 1
			for ; pos >= 0; pos-- {
				indices[pos]++
				if indices[pos] < len(pools[pos]) {
					break
				}
				indices[pos] = 0
			}
			if pos < 0 {
				return
			}
		}
	})
}

// groupBySeq consumes its input before yielding the groups in first-seen-key order.
func groupBySeq(fail *failure, in Source, keyFn, valFn MapFunc) Source {
	return unsized(func(yield func(any) bool) {
		var (
			keys   []any
			groups [][]any
		)
		index := make(map[any]int)
		for x := range in.All() {
			key, err := keyFn(x)
			if err != nil {
				fail.fail(err)

				return
			}
			if !isComparable(key) {
				fail.fail(errors.Wrapf(ErrTypeMismatch, "group key of type %T is not comparable", key))

				return
			}
			val, err := valFn(x)
			if err != nil {
				fail.fail(err)

				return
			}
			idx, ok := index[key]
			if !ok {
				idx = len(groups)
				index[key] = idx
				keys = append(keys, key)
				groups = append(groups, []any{})
			}
			groups[idx] = append(groups[idx], val)
		}
		if fail.failed() {
			return
		}
		for i, key := range keys {
			if !yield(Tuple{key, groups[i]}) {
				return
			}
		}
	})
}

// isComparable reports whether v can be used as a map key without panicking.
func isComparable(v any) bool {
	if v == nil {
		return true
	}

	return reflect.ValueOf(v).Comparable()
}
