package lanes

import (
	"errors"
	"fmt"
)

// Status tags a result slot.
type Status uint8

const (
	// StatusEmpty means no job outcome has been recorded for the slot.
	StatusEmpty Status = iota
	// StatusSuccess means the job returned a value.
	StatusSuccess
	// StatusFailure means the job returned an error (or panicked).
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Result is the outcome slot of the job at Index.
// Value is meaningful only for StatusSuccess, Err only for StatusFailure.
type Result[R any] struct {
	Index  int
	Status Status
	Value  R
	Err    error
}

func (r Result[R]) IsEmpty() bool   { return r.Status == StatusEmpty }
func (r Result[R]) IsSuccess() bool { return r.Status == StatusSuccess }
func (r Result[R]) IsFailure() bool { return r.Status == StatusFailure }

func emptyResult[R any](index int) Result[R] {
	return Result[R]{Index: index, Status: StatusEmpty}
}

func successResult[R any](index int, v R) Result[R] {
	return Result[R]{Index: index, Status: StatusSuccess, Value: v}
}

func failureResult[R any](index int, err error) Result[R] {
	return Result[R]{Index: index, Status: StatusFailure, Err: err}
}

// Values returns the values of successful slots in index order.
func Values[R any](results []Result[R]) []R {
	out := make([]R, 0, len(results))
	for _, r := range results {
		if r.IsSuccess() {
			out = append(out, r.Value)
		}
	}
	return out
}

// Errors returns errors.Join of the errors of failed slots in index order, or nil.
func Errors[R any](results []Result[R]) error {
	var errs []error
	for _, r := range results {
		if r.IsFailure() {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}
