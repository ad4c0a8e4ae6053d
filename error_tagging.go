package lanes

import (
	"errors"
	"fmt"
)

// JobMetaError exposes the index of the job an error belongs to.
type JobMetaError interface {
	error
	JobIndex() (int, bool)
}

type jobTaggedError struct {
	err   error
	index int
}

func newJobTaggedError(err error, index int) error {
	if err == nil {
		return nil
	}
	return &jobTaggedError{err: err, index: index}
}

func (e *jobTaggedError) Error() string         { return e.err.Error() }
func (e *jobTaggedError) Unwrap() error         { return e.err }
func (e *jobTaggedError) JobIndex() (int, bool) { return e.index, true }

func (e *jobTaggedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "job(index=%d): %+v", e.index, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// AbortError is returned by Run when the abort-on-failure policy fired.
// Index and Err identify the failure that triggered the abort; Results is the slot
// snapshot taken at that moment, so jobs that had not completed yet are StatusEmpty.
//
// With more than one lane the failure is the first one recorded, which is not
// necessarily the lowest failing index.
type AbortError[R any] struct {
	Index   int
	Err     error
	Results []Result[R]
}

func (e *AbortError[R]) Error() string {
	return fmt.Sprintf("%s: job %d: %v", ErrBatchAborted, e.Index, e.Err)
}

// Unwrap makes both ErrBatchAborted and the job error reachable via errors.Is/As.
func (e *AbortError[R]) Unwrap() []error { return []error{ErrBatchAborted, e.Err} }

func (e *AbortError[R]) JobIndex() (int, bool) { return e.Index, true }

// AsAbortError returns the *AbortError[R] in err's tree, if any.
func AsAbortError[R any](err error) (*AbortError[R], bool) {
	var ae *AbortError[R]
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// ExtractJobIndex returns the job index from err if present.
func ExtractJobIndex(err error) (int, bool) {
	var jme JobMetaError
	if errors.As(err, &jme) {
		return jme.JobIndex()
	}
	return 0, false
}
