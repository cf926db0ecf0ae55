// Package testsupport provides a scriptable automation.Handle for stage
// tests: which selectors are present or interactable is declared up front,
// and every probe, click, and keystroke is recorded for assertions.
package testsupport

import (
	"context"
	"errors"
	"os"
	"sync"

	"meetjoin/internal/locator"
)

// Handle is a scripted fake of the remote browser control channel.
// The zero value is usable: nothing is present and all actions succeed.
type Handle struct {
	mu sync.Mutex

	// Present and Interactable declare which selector strings match. A
	// selector in Present but not Interactable simulates a rendered element
	// that does not accept input yet.
	PresentSelectors      map[string]bool
	InteractableSelectors map[string]bool
	// InteractableAfter makes a selector interactable only from the Nth
	// probe, simulating a slow render.
	InteractableAfter map[string]int

	// Failing makes every call return an error, simulating a degraded or
	// closed session.
	Failing bool

	NavigateErr error
	ClickErr    error

	// Recorded activity.
	Navigations []string
	ProbeOrder  []string
	probeCounts map[string]int
	Clicks      []string
	Typed       map[string]string
	Screenshots []string
	MarkupValue string
	CloseCount  int
	CloseErr    error
}

var errDegraded = errors.New("session degraded")

func (h *Handle) Navigate(_ context.Context, url string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Failing {
		return errDegraded
	}
	h.Navigations = append(h.Navigations, url)
	return h.NavigateErr
}

func (h *Handle) Present(c locator.Candidate) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Failing {
		return false, errDegraded
	}
	h.ProbeOrder = append(h.ProbeOrder, c.Selector)
	return h.PresentSelectors[c.Selector], nil
}

func (h *Handle) Interactable(c locator.Candidate) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Failing {
		return false, errDegraded
	}
	if h.probeCounts == nil {
		h.probeCounts = make(map[string]int)
	}
	h.probeCounts[c.Selector]++
	if after, ok := h.InteractableAfter[c.Selector]; ok {
		return h.probeCounts[c.Selector] >= after, nil
	}
	return h.InteractableSelectors[c.Selector], nil
}

func (h *Handle) Click(c locator.Candidate) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Failing {
		return errDegraded
	}
	if h.ClickErr != nil {
		return h.ClickErr
	}
	h.Clicks = append(h.Clicks, c.Selector)
	return nil
}

func (h *Handle) Type(c locator.Candidate, text string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Failing {
		return errDegraded
	}
	if h.Typed == nil {
		h.Typed = make(map[string]string)
	}
	h.Typed[c.Selector] = text
	return nil
}

// Screenshot writes a placeholder file so diagnostics tests can assert on
// artifact names.
func (h *Handle) Screenshot(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Failing {
		return errDegraded
	}
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		return err
	}
	h.Screenshots = append(h.Screenshots, path)
	return nil
}

func (h *Handle) Markup() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Failing {
		return "", errDegraded
	}
	if h.MarkupValue == "" {
		return "<html></html>", nil
	}
	return h.MarkupValue, nil
}

func (h *Handle) URL() string { return "https://example.test" }

func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.CloseCount++
	return h.CloseErr
}

// MarkInteractable declares selectors both present and interactable.
func (h *Handle) MarkInteractable(selectors ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.PresentSelectors == nil {
		h.PresentSelectors = make(map[string]bool)
	}
	if h.InteractableSelectors == nil {
		h.InteractableSelectors = make(map[string]bool)
	}
	for _, sel := range selectors {
		h.PresentSelectors[sel] = true
		h.InteractableSelectors[sel] = true
	}
}

// MarkPresent declares selectors present but not interactable.
func (h *Handle) MarkPresent(selectors ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.PresentSelectors == nil {
		h.PresentSelectors = make(map[string]bool)
	}
	for _, sel := range selectors {
		h.PresentSelectors[sel] = true
	}
}
