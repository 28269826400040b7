package pipeline

import (
	"github.com/pkg/errors"
)

var (
	ErrPipelineMustBeSet = errors.New("p must be set")
	ErrInputMustBeSet    = errors.New("input must be set")
	// ErrInvalidArgument is returned for arguments rejected before any replay.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEmptySequence is returned when reducing an empty sequence without an initial value.
	ErrEmptySequence = errors.New("empty sequence")
	// ErrTypeMismatch is returned when an element does not have the shape an operation needs.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrConstruction is returned when a container cannot be built from the elements.
	ErrConstruction = errors.New("unable to construct container")
)

// failure is shared by every lazy sequence of a single replay. The first error
// wins and stops all the sequences reading it.
type failure struct {
	err error
}

func (f *failure) fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

func (f *failure) failed() bool {
	return f.err != nil
}
