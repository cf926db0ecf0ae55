package locator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetjoin/internal/locator"
)

func TestCandidateQueryPrefixesXPath(t *testing.T) {
	assert.Equal(t, "button.join", locator.Css("button.join").Query())
	assert.Equal(t, "xpath=//div[@id='x']", locator.Xpath("//div[@id='x']").Query())
}

func TestCandidateBudgetOverride(t *testing.T) {
	fallback := 5 * time.Second
	assert.Equal(t, fallback, locator.Css("a").Budget(fallback))

	c := locator.Candidate{Strategy: locator.CSS, Selector: "a", WaitMillis: 750}
	assert.Equal(t, 750*time.Millisecond, c.Budget(fallback))
}

func TestDefaultsContainAllNamedSets(t *testing.T) {
	sets := locator.Defaults()
	for _, name := range []string{
		locator.SetIdentifierInput,
		locator.SetIdentifierNext,
		locator.SetSecretInput,
		locator.SetSecretNext,
		locator.SetLandingIndicator,
		locator.SetMicrophoneMute,
		locator.SetCameraMute,
		locator.SetJoinControl,
		locator.SetJoinedIndicator,
		locator.SetMicrophoneMuted,
		locator.SetCameraMuted,
		locator.SetLeaveControl,
		locator.SetLeftIndicator,
		locator.SetMicrophoneEnable,
	} {
		require.NotEmpty(t, sets.Get(name), "set %q should have candidates", name)
	}
}

func TestApplyReplacesSetWholesale(t *testing.T) {
	sets := locator.Defaults()
	override := []locator.Candidate{locator.Css("button.custom-join")}
	sets.Apply(map[string][]locator.Candidate{locator.SetJoinControl: override})

	got := sets.Get(locator.SetJoinControl)
	require.Len(t, got, 1)
	assert.Equal(t, "button.custom-join", got[0].Selector)
}

func TestApplyIgnoresEmptyOverride(t *testing.T) {
	sets := locator.Defaults()
	before := len(sets.Get(locator.SetJoinControl))
	sets.Apply(map[string][]locator.Candidate{locator.SetJoinControl: nil})
	assert.Len(t, sets.Get(locator.SetJoinControl), before)
}

func TestApplyAcceptsUnknownSetNames(t *testing.T) {
	sets := locator.Defaults()
	sets.Apply(map[string][]locator.Candidate{"future-set": {locator.Css("div.new")}})
	require.Len(t, sets.Get("future-set"), 1)
}
