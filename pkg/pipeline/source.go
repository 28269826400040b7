package pipeline

import (
	"iter"
	"reflect"

	"github.com/pkg/errors"
)

const unknownSize = -1

// Source is a sequence of dynamically typed elements. It is the value threaded from
// one step to the next while a plan is replayed.
type Source struct {
	seq  iter.Seq[any]
	size int
}

// FromSlice creates a restartable source over items. Its size is known.
func FromSlice[T any](items []T) Source {
	return Source{
		size: len(items),
		seq: func(yield func(any) bool) {
			for _, item := range items {
				if !yield(item) {
					return
				}
			}
		},
	}
}

// FromValues creates a restartable source over values.
func FromValues(values ...any) Source {
	return FromSlice(values)
}

// FromSeq creates a source from seq. The source is restartable only if seq is.
func FromSeq[T any](seq iter.Seq[T]) Source {
	return Source{
		size: unknownSize,
		seq: func(yield func(any) bool) {
			for v := range seq {
				if !yield(v) {
					return
				}
			}
		},
	}
}

// FromChan creates a single pass source reading c until it is closed.
func FromChan[T any](c <-chan T) Source {
	return Source{
		size: unknownSize,
		seq: func(yield func(any) bool) {
			for v := range c {
				if !yield(v) {
					return
				}
			}
		},
	}
}

// All returns the elements of the source.
func (s Source) All() iter.Seq[any] {
	if s.seq == nil {
		return func(func(any) bool) {}
	}

	return s.seq
}

// Len returns the size of the source when it is known without iterating.
func (s Source) Len() (int, bool) {
	if s.seq == nil {
		return 0, true
	}

	return s.size, s.size >= 0
}

func unsized(seq iter.Seq[any]) Source {
	return Source{seq: seq, size: unknownSize}
}

// sequenceOf converts an element or a bound argument into a Source.
func sequenceOf(v any) (Source, error) {
	switch val := v.(type) {
	case nil:
		return Source{}, errors.Wrap(ErrTypeMismatch, "nil is not a sequence")
	case Source:
		return val, nil
	case Tuple:
		return FromSlice([]any(val)), nil
	case []any:
		return FromSlice(val), nil
	case iter.Seq[any]:
		return unsized(val), nil
	case string:
		runes := []rune(val)
		return Source{
			size: len(runes),
			seq: func(yield func(any) bool) {
				for _, r := range runes {
					if !yield(string(r)) {
						return
					}
				}
			},
		}, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return Source{
			size: rv.Len(),
			seq: func(yield func(any) bool) {
				for i := 0; i < rv.Len(); i++ {
					if !yield(rv.Index(i).Interface()) {
						return
					}
				}
			},
		}, nil
	case reflect.Chan:
		if rv.Type().ChanDir()&reflect.RecvDir == 0 {
			return Source{}, errors.Wrapf(ErrTypeMismatch, "%T is a send-only channel", v)
		}

		return unsized(func(yield func(any) bool) {
			for {
				elem, ok := rv.Recv()
				if !ok || !yield(elem.Interface()) {
					return
				}
			}
		}), nil
	default:
		return Source{}, errors.Wrapf(ErrTypeMismatch, "%T is not a sequence", v)
	}
}

// sequencesOf converts every value, failing on the first one that is not a sequence.
func sequencesOf(values []any) ([]Source, error) {
	sources := make([]Source, len(values))
	for i, v := range values {
		src, err := sequenceOf(v)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i)
		}
		sources[i] = src
	}

	return sources, nil
}
