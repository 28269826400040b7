package pipeline

import (
	"reflect"

	"github.com/pkg/errors"
)

func assertElem[T any](x any) (T, error) {
	v, ok := x.(T)
	if !ok {
		return v, errors.Wrapf(ErrTypeMismatch, "expected %s, got %T", reflect.TypeFor[T](), x)
	}

	return v, nil
}

// MapOf adapts a typed function to a MapFunc. Elements that are not an I fail with
// ErrTypeMismatch.
func MapOf[I, O any](fn func(I) O) MapFunc {
	return func(x any) (any, error) {
		in, err := assertElem[I](x)
		if err != nil {
			return nil, err
		}

		return fn(in), nil
	}
}

// TryMapOf is MapOf for functions that can fail. Their errors are returned as is.
func TryMapOf[I, O any](fn func(I) (O, error)) MapFunc {
	return func(x any) (any, error) {
		in, err := assertElem[I](x)
		if err != nil {
			return nil, err
		}

		return fn(in)
	}
}

// FilterOf adapts a typed predicate.
func FilterOf[T any](fn func(T) bool) Predicate {
	return func(x any) (bool, error) {
		in, err := assertElem[T](x)
		if err != nil {
			return false, err
		}

		return fn(in), nil
	}
}

// ReduceOf adapts a typed reducer where the accumulator and the elements share a type.
func ReduceOf[T any](fn func(acc, x T) T) ReduceFunc {
	return func(acc, x any) (any, error) {
		a, err := assertElem[T](acc)
		if err != nil {
			return nil, err
		}
		v, err := assertElem[T](x)
		if err != nil {
			return nil, err
		}

		return fn(a, v), nil
	}
}

// Collect replays the plan of p and returns its elements as a []T.
func Collect[T any](p *Pipeline) ([]T, error) {
	list, err := p.ToList()
	if err != nil {
		return nil, err
	}

	out := make([]T, len(list))
	for i, x := range list {
		v, err := assertElem[T](x)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out[i] = v
	}

	return out, nil
}
