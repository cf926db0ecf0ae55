package automation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"meetjoin/internal/locator"
)

// ErrLocatorNotFound marks an exhausted fallback set. Match with errors.Is;
// use errors.As with *NotFoundError for the candidates tried and the time
// spent.
var ErrLocatorNotFound = errors.New("locator not found")

// NotFoundError reports that no candidate in a fallback set became
// interactable within its budget. Elapsed covers the whole set, so callers
// can tell a UI that changed shape from one that is merely slow.
type NotFoundError struct {
	Set     string
	Tried   []locator.Candidate
	Elapsed time.Duration
}

func (e *NotFoundError) Error() string {
	selectors := make([]string, 0, len(e.Tried))
	for _, c := range e.Tried {
		selectors = append(selectors, c.String())
	}
	return fmt.Sprintf("locator not found: set %q exhausted after %s (tried %s)",
		e.Set, e.Elapsed.Round(time.Millisecond), strings.Join(selectors, ", "))
}

func (e *NotFoundError) Is(target error) bool { return target == ErrLocatorNotFound }
