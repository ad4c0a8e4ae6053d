package lanes

import "errors"

const Namespace = "lanes"

var (
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
	ErrInvalidJob    = errors.New(Namespace + ": invalid job")
	ErrBatchAborted  = errors.New(Namespace + ": batch aborted on job failure")
	ErrJobPanicked   = errors.New(Namespace + ": job execution panicked")
	ErrCancelled     = errors.New(Namespace + ": run cancelled before all jobs completed")
)
