package meeting_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetjoin/internal/automation"
	"meetjoin/internal/locator"
	"meetjoin/internal/meeting"
	"meetjoin/internal/testsupport"
)

const (
	micSelector    = "div[role='button'][aria-label*='Turn off microphone']"
	cameraSelector = "div[role='button'][aria-label*='Turn off camera']"
	cameraThird    = "div[data-is-muted='false'][aria-label*='camera']"
	joinSelector   = "button[jsname='Qx7uuf']"
	joinedSelector = "div[data-self-name]"
	meetingLink    = "https://meet.google.com/abc-defg-hij"
)

func newJoiner(t *testing.T, cfg meeting.Config) (*meeting.Joiner, string) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	diagDir := t.TempDir()
	if cfg.Link == "" {
		cfg.Link = meetingLink
	}
	cfg.DeviceTimeout = 20 * time.Millisecond
	cfg.JoinTimeout = 20 * time.Millisecond
	cfg.IndicatorTimeout = 10 * time.Millisecond
	j := meeting.New(cfg,
		locator.Defaults(),
		automation.NewResolver(logger, time.Millisecond),
		automation.NewDiagnostics(diagDir, logger),
		logger,
	)
	j.WithSettleFunc(func(context.Context, time.Duration) {})
	return j, diagDir
}

func artifacts(t *testing.T, dir, pattern string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	require.NoError(t, err)
	return matches
}

func TestJoinHappyPathMutesBothDevicesThenJoins(t *testing.T) {
	j, diagDir := newJoiner(t, meeting.Config{})
	h := &testsupport.Handle{}
	h.MarkInteractable(micSelector, cameraSelector, joinSelector)
	h.MarkPresent(joinedSelector)

	require.NoError(t, j.Join(context.Background(), h))

	assert.Equal(t, []string{meetingLink}, h.Navigations)
	assert.Equal(t, []string{micSelector, cameraSelector, joinSelector}, h.Clicks)
	assert.Empty(t, artifacts(t, diagDir, "*"), "success must not produce diagnostics")
}

func TestJoinProceedsWhenMicrophoneControlExhausted(t *testing.T) {
	j, diagDir := newJoiner(t, meeting.Config{})
	h := &testsupport.Handle{}
	// No microphone candidate ever resolves; the camera resolves on its
	// third candidate; the join control resolves immediately.
	h.MarkInteractable(cameraThird, joinSelector)
	h.MarkPresent(joinedSelector)

	require.NoError(t, j.Join(context.Background(), h))

	assert.Equal(t, []string{cameraThird, joinSelector}, h.Clicks)
	assert.Empty(t, artifacts(t, diagDir, "*"), "device-mute exhaustion is non-fatal and captures nothing")
}

func TestJoinFailsWhenJoinControlExhausted(t *testing.T) {
	j, diagDir := newJoiner(t, meeting.Config{})
	h := &testsupport.Handle{}
	h.MarkInteractable(micSelector, cameraSelector)

	err := j.Join(context.Background(), h)
	require.Error(t, err)
	assert.ErrorIs(t, err, meeting.ErrJoinFailed)
	assert.ErrorIs(t, err, automation.ErrLocatorNotFound)

	assert.Len(t, artifacts(t, diagDir, "screenshot_join_failure_*.png"), 1,
		"exactly one diagnostics capture for the fatal join path")
}

func TestJoinNavigationFailureIsFatal(t *testing.T) {
	j, diagDir := newJoiner(t, meeting.Config{})
	h := &testsupport.Handle{NavigateErr: assert.AnError}

	err := j.Join(context.Background(), h)
	require.Error(t, err)
	assert.ErrorIs(t, err, meeting.ErrJoinFailed)
	assert.Len(t, artifacts(t, diagDir, "screenshot_join_navigation_*.png"), 1)
}

func TestJoinUnconfirmedIsWarningByDefault(t *testing.T) {
	j, diagDir := newJoiner(t, meeting.Config{})
	h := &testsupport.Handle{}
	h.MarkInteractable(micSelector, cameraSelector, joinSelector)
	// No joined indicator ever appears.

	require.NoError(t, j.Join(context.Background(), h))
	assert.Empty(t, artifacts(t, diagDir, "*"))
}

func TestJoinUnconfirmedIsFatalWhenVerifyJoinSet(t *testing.T) {
	j, diagDir := newJoiner(t, meeting.Config{VerifyJoin: true})
	h := &testsupport.Handle{}
	h.MarkInteractable(micSelector, cameraSelector, joinSelector)

	err := j.Join(context.Background(), h)
	require.Error(t, err)
	assert.ErrorIs(t, err, meeting.ErrJoinFailed)
	assert.Len(t, artifacts(t, diagDir, "screenshot_join_unconfirmed_*.png"), 1)
}

func TestJoinedReportsIndicatorPresence(t *testing.T) {
	j, _ := newJoiner(t, meeting.Config{})
	h := &testsupport.Handle{}
	assert.False(t, j.Joined(context.Background(), h))

	h.MarkPresent(joinedSelector)
	assert.True(t, j.Joined(context.Background(), h))
}

func TestLeaveActivatesLeaveControl(t *testing.T) {
	j, _ := newJoiner(t, meeting.Config{})
	h := &testsupport.Handle{}
	h.MarkInteractable("button[aria-label*='Leave call']")

	require.NoError(t, j.Leave(context.Background(), h))
	assert.Equal(t, []string{"button[aria-label*='Leave call']"}, h.Clicks)
}

func TestEnableMicrophoneSurfacesResolverError(t *testing.T) {
	j, _ := newJoiner(t, meeting.Config{})
	h := &testsupport.Handle{}

	err := j.EnableMicrophone(context.Background(), h)
	require.Error(t, err)
	assert.ErrorIs(t, err, automation.ErrLocatorNotFound)
}
