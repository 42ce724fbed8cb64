package poller

import (
	"errors"
	"fmt"

	"github.com/pepwatch/pepwatch/pkg/models"
)

var (
	ErrCycleFailed     = errors.New("refresh cycle failed")
	ErrRefreshInFlight = errors.New("refresh already in progress")
	ErrInvalidInterval = errors.New("poll interval must be positive")
)

// CycleError reports a cycle in which every attempted fetcher failed,
// carrying the root cause and the per-section failures.
type CycleError struct {
	Cause    error
	Failures map[models.Section]error
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: all %d sections failed, root cause: %v", ErrCycleFailed, len(e.Failures), e.Cause)
}

func (e *CycleError) Unwrap() []error {
	return []error{ErrCycleFailed, e.Cause}
}
