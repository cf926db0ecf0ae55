package automation

import (
	"context"
	"log/slog"
	"time"

	"meetjoin/internal/locator"
	"meetjoin/internal/logging"
)

// DefaultPollInterval is the fixed re-check interval for bounded waits. UI
// actions are treated as instantaneous relative to this granularity.
const DefaultPollInterval = 250 * time.Millisecond

// Resolver tries an ordered fallback set of locator candidates until one
// becomes usable or the whole set is exhausted. Resolution only queries the
// UI; the caller performs the interaction afterwards.
type Resolver struct {
	logger *slog.Logger
	poll   time.Duration
}

// NewResolver constructs a resolver. A non-positive poll interval selects
// DefaultPollInterval.
func NewResolver(logger *slog.Logger, poll time.Duration) *Resolver {
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &Resolver{logger: logger, poll: poll}
}

// Resolve returns the first candidate in the set that is present and
// interactable, polling each candidate for up to perCandidate (or the
// candidate's own budget when it carries one). Candidates are tried strictly
// in order and later candidates are never evaluated once one succeeds.
// Worst case latency is the sum of all candidate budgets.
func (r *Resolver) Resolve(ctx context.Context, h Handle, set string, candidates []locator.Candidate, perCandidate time.Duration) (locator.Candidate, error) {
	return r.await(ctx, h, set, candidates, perCandidate, true)
}

// Await is Resolve without the interactability requirement: it returns the
// first candidate that is merely present. Used for indicators that are read,
// never clicked.
func (r *Resolver) Await(ctx context.Context, h Handle, set string, candidates []locator.Candidate, perCandidate time.Duration) (locator.Candidate, error) {
	return r.await(ctx, h, set, candidates, perCandidate, false)
}

func (r *Resolver) await(ctx context.Context, h Handle, set string, candidates []locator.Candidate, perCandidate time.Duration, interactable bool) (locator.Candidate, error) {
	start := time.Now()
	for _, candidate := range candidates {
		ok, err := r.pollCandidate(ctx, h, candidate, candidate.Budget(perCandidate), interactable)
		if err != nil {
			return locator.Candidate{}, err
		}
		if ok {
			r.logger.Debug("locator resolved",
				logging.String(logging.FieldSet, set),
				logging.String(logging.FieldSelector, candidate.String()),
				logging.Duration("elapsed", time.Since(start)))
			return candidate, nil
		}
		r.logger.Debug("locator candidate exhausted",
			logging.String(logging.FieldSet, set),
			logging.String(logging.FieldSelector, candidate.String()))
	}
	return locator.Candidate{}, &NotFoundError{Set: set, Tried: candidates, Elapsed: time.Since(start)}
}

// pollCandidate re-checks one candidate at the fixed interval until it
// matches or its budget elapses. Probe errors are treated as "not yet": a
// mid-render page can briefly fail element queries without the candidate
// being a miss.
func (r *Resolver) pollCandidate(ctx context.Context, h Handle, c locator.Candidate, budget time.Duration, interactable bool) (bool, error) {
	deadline := time.Now().Add(budget)
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		ok := r.probe(h, c, interactable)
		if ok {
			return true, nil
		}
		if time.Now().After(deadline) {
			return false, nil
		}
		Settle(ctx, r.poll)
	}
}

func (r *Resolver) probe(h Handle, c locator.Candidate, interactable bool) bool {
	present, err := h.Present(c)
	if err != nil || !present {
		return false
	}
	if !interactable {
		return true
	}
	usable, err := h.Interactable(c)
	return err == nil && usable
}
