// Package locator defines fallback-candidate sets: ordered lists of element
// descriptors tried until one resolves. Sets are data, not code, so adapting
// to a UI change means editing a list (or overriding it in the config file)
// rather than touching orchestration logic.
package locator

import (
	"fmt"
	"strings"
	"time"
)

// Strategy selects how a selector string is interpreted by the remote
// control channel.
type Strategy string

const (
	CSS   Strategy = "css"
	XPath Strategy = "xpath"
)

// Candidate describes one way to find a single UI element. WaitMillis, when
// positive, overrides the caller's per-candidate budget for this entry.
type Candidate struct {
	Strategy   Strategy `toml:"strategy"`
	Selector   string   `toml:"selector"`
	WaitMillis int      `toml:"wait_millis,omitempty"`
}

// Query renders the candidate as a selector string for the control channel.
// XPath selectors carry an explicit engine prefix; CSS is the default engine.
func (c Candidate) Query() string {
	if c.Strategy == XPath {
		return "xpath=" + c.Selector
	}
	return c.Selector
}

// Budget returns the candidate's own wait budget, or fallback when none is set.
func (c Candidate) Budget(fallback time.Duration) time.Duration {
	if c.WaitMillis > 0 {
		return time.Duration(c.WaitMillis) * time.Millisecond
	}
	return fallback
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s:%s", c.Strategy, c.Selector)
}

// Css is a shorthand constructor for the default-set tables below.
func Css(selector string) Candidate {
	return Candidate{Strategy: CSS, Selector: selector}
}

// Xpath is a shorthand constructor for the default-set tables below.
func Xpath(selector string) Candidate {
	return Candidate{Strategy: XPath, Selector: selector}
}

// Sets maps a set name to its ordered fallback candidates. Order encodes
// priority: the most specific, most stable descriptor first.
type Sets map[string][]Candidate

// Get returns the named set, or nil when it does not exist.
func (s Sets) Get(name string) []Candidate {
	return s[name]
}

// Apply replaces sets wholesale with the provided overrides. Unknown names
// are accepted so a config file can define sets for future use; empty
// override lists are ignored rather than erasing a built-in set.
func (s Sets) Apply(overrides map[string][]Candidate) {
	for name, candidates := range overrides {
		if len(candidates) == 0 {
			continue
		}
		s[strings.TrimSpace(name)] = candidates
	}
}
