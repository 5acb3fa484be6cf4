package scheduler

import "context"

// Job is a unit of work executed by the worker pool. Different job types can
// be plugged in (reminder checks today, cleanup or export jobs later).
type Job interface {
	// Execute runs the job. The context carries the worker's timeout and
	// cancellation.
	Execute(ctx context.Context) error

	// UserID returns the user this job operates on, for logging and metrics.
	UserID() string

	// Description returns a human-readable description of the job.
	Description() string
}
