package transfer

import (
	"errors"
	"fmt"
)

// ErrFinished is returned by Transfer.Finish when the outcome has already
// been consumed by an earlier call.
var ErrFinished = errors.New("transfer: already finished")

// ReadError wraps an I/O failure reading from the source.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("transfer: read source: %v", e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError wraps an I/O failure writing to, or flushing, the sink.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("transfer: write sink: %v", e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// PanicError reports a panic recovered from the copy worker. It surfaces
// from Finish so that an internal fault fails the join instead of hanging it.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("transfer: worker panicked: %v", e.Value)
}
