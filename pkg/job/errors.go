package job

import "errors"

// Job errors.
var (
	// ErrPoolRequired is returned when attempting to create a manager
	// or enqueuer without providing a database pool.
	ErrPoolRequired = errors.New("job: pool is required")

	// ErrSenderRequired is returned when creating a manager without a sender.
	ErrSenderRequired = errors.New("job: sender is required")

	// ErrInvalidPayload is returned when a message cannot be encoded into
	// job arguments or decoded back from them.
	ErrInvalidPayload = errors.New("job: invalid payload")

	// ErrUnknownPeriodic is returned when a periodic job has no registered builder.
	ErrUnknownPeriodic = errors.New("job: unknown periodic job")

	// ErrAlreadyStarted is returned when attempting to start a manager
	// that is already running.
	ErrAlreadyStarted = errors.New("job: already started")

	// ErrNotStarted is returned when attempting to stop a manager
	// that is not running.
	ErrNotStarted = errors.New("job: not started")
)
