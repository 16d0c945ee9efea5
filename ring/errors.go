package ring

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is matched by every *IndexError.
	ErrOutOfRange = errors.New("ring: index out of range")
	// ErrIllegalArgument reports a malformed argument such as a reversed subrange.
	ErrIllegalArgument = errors.New("ring: illegal argument")
	// ErrEmpty is returned by the deque style peek and pop operations on an empty Sequence.
	ErrEmpty = errors.New("ring: empty sequence")
	// ErrInvalidated is reported by an Iterator or Cursor whose Sequence changed structurally after creation.
	ErrInvalidated = errors.New("ring: sequence modified during iteration")
	// ErrExhausted is returned by Cursor operations that need a current element when there is none.
	ErrExhausted = errors.New("ring: no current element")
)

// IndexError carries the offending index as supplied by the caller, and the size at the time of the call.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: index %d with size %d", ErrOutOfRange, e.Index, e.Size)
}

func (e *IndexError) Unwrap() error {
	return ErrOutOfRange
}
