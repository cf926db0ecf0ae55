// Package automation holds the UI-automation primitives the login and join
// stages are built on: the capability surface expected from the remote
// browser control channel, ordered fallback resolution over that surface,
// and best-effort diagnostics capture for failure paths.
package automation

import (
	"context"
	"time"

	"meetjoin/internal/locator"
)

// Handle is the capability surface the stages need from the remote browser
// control channel. internal/browser provides the production implementation;
// tests substitute scripted fakes. Present reports whether an element
// matching the candidate is rendered; Interactable additionally requires it
// to accept input. The split matters: web UIs commonly render a field before
// it becomes usable.
type Handle interface {
	Navigate(ctx context.Context, url string) error
	Present(c locator.Candidate) (bool, error)
	Interactable(c locator.Candidate) (bool, error)
	Click(c locator.Candidate) error
	Type(c locator.Candidate, text string) error
	Screenshot(path string) error
	Markup() (string, error)
	URL() string
	Close() error
}

// Settle pauses for a fixed delay, returning early if the context ends.
// Settle delays tolerate asynchronous rendering that no checkable condition
// reflects; every delay in this module is a named constant at its call site.
func Settle(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
