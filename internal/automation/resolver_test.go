package automation_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetjoin/internal/automation"
	"meetjoin/internal/locator"
	"meetjoin/internal/testsupport"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastResolver() *automation.Resolver {
	return automation.NewResolver(quietLogger(), time.Millisecond)
}

func candidates(selectors ...string) []locator.Candidate {
	out := make([]locator.Candidate, 0, len(selectors))
	for _, sel := range selectors {
		out = append(out, locator.Css(sel))
	}
	return out
}

func TestResolveReturnsFirstInteractableWithoutEvaluatingLater(t *testing.T) {
	h := &testsupport.Handle{}
	h.MarkInteractable("#second")

	got, err := fastResolver().Resolve(context.Background(), h, "test-set",
		candidates("#first", "#second", "#third"), 30*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "#second", got.Selector)

	require.NotEmpty(t, h.ProbeOrder)
	assert.Equal(t, "#first", h.ProbeOrder[0])
	assert.NotContains(t, h.ProbeOrder, "#third")
}

func TestResolveShortCircuitsOnFirstCandidate(t *testing.T) {
	h := &testsupport.Handle{}
	h.MarkInteractable("#first")

	got, err := fastResolver().Resolve(context.Background(), h, "test-set",
		candidates("#first", "#second"), 30*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "#first", got.Selector)
	assert.NotContains(t, h.ProbeOrder, "#second")
}

func TestResolveExhaustsAllBudgetsBeforeFailing(t *testing.T) {
	h := &testsupport.Handle{}
	perCandidate := 40 * time.Millisecond

	start := time.Now()
	_, err := fastResolver().Resolve(context.Background(), h, "test-set",
		candidates("#a", "#b"), perCandidate)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.ErrorIs(t, err, automation.ErrLocatorNotFound)
	assert.GreaterOrEqual(t, elapsed, 2*perCandidate)

	var notFound *automation.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "test-set", notFound.Set)
	assert.Len(t, notFound.Tried, 2)
	assert.GreaterOrEqual(t, notFound.Elapsed, 2*perCandidate)
}

func TestResolveHonorsPerCandidateBudgetOverride(t *testing.T) {
	h := &testsupport.Handle{}
	h.MarkInteractable("#fallback")

	// The first candidate carries a short budget of its own; the generous
	// shared budget must not apply to it.
	cands := []locator.Candidate{
		{Strategy: locator.CSS, Selector: "#missing", WaitMillis: 20},
		locator.Css("#fallback"),
	}
	start := time.Now()
	got, err := fastResolver().Resolve(context.Background(), h, "test-set", cands, 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "#fallback", got.Selector)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestResolveWaitsForInteractability(t *testing.T) {
	h := &testsupport.Handle{}
	h.MarkPresent("#slow")
	h.InteractableAfter = map[string]int{"#slow": 3}

	got, err := fastResolver().Resolve(context.Background(), h, "test-set",
		candidates("#slow"), 500*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "#slow", got.Selector)
}

func TestAwaitAcceptsPresentButNotInteractable(t *testing.T) {
	h := &testsupport.Handle{}
	h.MarkPresent("#indicator")

	resolver := fastResolver()
	got, err := resolver.Await(context.Background(), h, "test-set",
		candidates("#indicator"), 30*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "#indicator", got.Selector)

	_, err = resolver.Resolve(context.Background(), h, "test-set",
		candidates("#indicator"), 30*time.Millisecond)
	assert.ErrorIs(t, err, automation.ErrLocatorNotFound)
}

func TestResolveStopsWhenContextEnds(t *testing.T) {
	h := &testsupport.Handle{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fastResolver().Resolve(ctx, h, "test-set", candidates("#a"), time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveTreatsProbeErrorsAsNotYet(t *testing.T) {
	h := &testsupport.Handle{Failing: true}

	start := time.Now()
	_, err := fastResolver().Resolve(context.Background(), h, "test-set",
		candidates("#a"), 30*time.Millisecond)
	assert.ErrorIs(t, err, automation.ErrLocatorNotFound)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}
