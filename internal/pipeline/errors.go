package pipeline

import "errors"

var (
	// ErrStepNotFound marks a step name that could not be resolved.
	ErrStepNotFound = errors.New("step not found")
	// ErrStepFailed marks an unhandled error raised inside a step.
	ErrStepFailed = errors.New("step failed")
)
