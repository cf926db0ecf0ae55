package auth

import (
	"errors"
	"fmt"
)

// ErrAuthTimeout marks a login transition that did not complete within
// budget. Match with errors.Is; use errors.As with *TimeoutError for the
// last reached state.
var ErrAuthTimeout = errors.New("authentication timeout")

// TimeoutError reports which state the login machine had reached when a
// transition failed.
type TimeoutError struct {
	State State
	Cause error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("authentication timed out after %s: %v", e.State, e.Cause)
}

func (e *TimeoutError) Unwrap() error { return e.Cause }

func (e *TimeoutError) Is(target error) bool { return target == ErrAuthTimeout }
