package entity

import (
	"context"
	"errors"
)

var (
	ErrSurfaceNotStarted = errors.New("automation surface not started")
	ErrElementNotFound   = errors.New("element not found")
	ErrTimeout           = errors.New("operation timed out")
	ErrValidation        = errors.New("validation failed")
	ErrUserCancelled     = errors.New("cancelled by user")
)

// OutcomeFromError maps an automation error to its outcome.
func OutcomeFromError(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeFound
	case errors.Is(err, ErrElementNotFound):
		return OutcomeNotFound
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	default:
		return OutcomeFailed
	}
}
