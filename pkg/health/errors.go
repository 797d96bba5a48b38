package health

import "errors"

var (
	// ErrCheckFailed wraps every failure reported by HTTPCheck.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout is reported when a check is cut off by the readiness timeout.
	ErrCheckTimeout = errors.New("health: check timeout")
)
