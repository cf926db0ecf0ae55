// Package meeting drives the Meet surface: navigating to the meeting,
// muting the local devices, activating the join control, and the advisory
// verification of the joined and muted states. It also carries the
// in-meeting controls the session exposes afterwards (leave, re-enable
// microphone).
package meeting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"meetjoin/internal/automation"
	"meetjoin/internal/locator"
	"meetjoin/internal/logging"
)

// ErrJoinFailed marks the fatal join path: no join control could be
// resolved, or activating it failed. Without a join control the stage
// cannot proceed.
var ErrJoinFailed = errors.New("join failed")

// Config parameterizes the joiner.
type Config struct {
	Link string
	// VerifyJoin makes an unconfirmed join fatal instead of a warning.
	VerifyJoin bool
	// VerifyMute enables the advisory post-join muted-state check.
	VerifyMute bool
	// DeviceTimeout, JoinTimeout, and IndicatorTimeout override the
	// per-candidate budgets. Zero selects the defaults.
	DeviceTimeout    time.Duration
	JoinTimeout      time.Duration
	IndicatorTimeout time.Duration
}

// Joiner performs the join stage over an automation.Handle.
type Joiner struct {
	cfg      Config
	sets     locator.Sets
	resolver *automation.Resolver
	diag     *automation.Diagnostics
	logger   *slog.Logger

	settle func(context.Context, time.Duration)
}

// New constructs a Joiner.
func New(cfg Config, sets locator.Sets, resolver *automation.Resolver, diag *automation.Diagnostics, logger *slog.Logger) *Joiner {
	if cfg.DeviceTimeout <= 0 {
		cfg.DeviceTimeout = defaultDeviceTimeout
	}
	if cfg.JoinTimeout <= 0 {
		cfg.JoinTimeout = defaultJoinTimeout
	}
	if cfg.IndicatorTimeout <= 0 {
		cfg.IndicatorTimeout = defaultIndicatorTimeout
	}
	return &Joiner{
		cfg:      cfg,
		sets:     sets,
		resolver: resolver,
		diag:     diag,
		logger:   logger,
		settle:   automation.Settle,
	}
}

// WithSettleFunc replaces the settle-delay implementation (for testing).
func (j *Joiner) WithSettleFunc(settle func(context.Context, time.Duration)) {
	j.settle = settle
}

// Join navigates to the meeting, mutes microphone and camera, and activates
// the join control. Device-mute resolution failures are non-fatal: the goal
// is attending muted-by-default where possible, and aborting over an
// unconfirmable mute control is worse for the caller than joining unmuted.
// Join-control failures are fatal and capture diagnostics.
func (j *Joiner) Join(ctx context.Context, h automation.Handle) error {
	j.logger.Info("navigating to meeting", logging.String("link", j.cfg.Link))
	if err := h.Navigate(ctx, j.cfg.Link); err != nil {
		j.diag.Capture(h, "join_navigation")
		return fmt.Errorf("%w: %w", ErrJoinFailed, err)
	}
	j.settle(ctx, permissionSurfaceSettle)

	j.muteDevice(ctx, h, "microphone", locator.SetMicrophoneMute)
	j.muteDevice(ctx, h, "camera", locator.SetCameraMute)

	control, err := j.resolver.Resolve(ctx, h, locator.SetJoinControl, j.sets.Get(locator.SetJoinControl), j.cfg.JoinTimeout)
	if err != nil {
		j.diag.Capture(h, "join_failure")
		return fmt.Errorf("%w: locate join control: %w", ErrJoinFailed, err)
	}
	j.logger.Info("join control found", logging.String(logging.FieldSelector, control.String()))

	j.settle(ctx, preJoinClickSettle)
	if err := h.Click(control); err != nil {
		j.diag.Capture(h, "join_failure")
		return fmt.Errorf("%w: activate join control: %w", ErrJoinFailed, err)
	}
	j.settle(ctx, postJoinSettle)

	if joined := j.Joined(ctx, h); !joined {
		if j.cfg.VerifyJoin {
			j.diag.Capture(h, "join_unconfirmed")
			return fmt.Errorf("%w: joined state not confirmed", ErrJoinFailed)
		}
		// Indicator markup is the least stable part of the UI; absence means
		// unknown, not failure.
		j.logger.Warn("joined state unconfirmed, continuing")
	} else {
		j.logger.Info("joined meeting")
	}

	if j.cfg.VerifyMute {
		j.verifyMuted(ctx, h)
	}
	return nil
}

// muteDevice resolves and activates one device-mute control. Exhaustion of
// the fallback set logs a warning and returns; it never aborts the join.
func (j *Joiner) muteDevice(ctx context.Context, h automation.Handle, device, set string) {
	control, err := j.resolver.Resolve(ctx, h, set, j.sets.Get(set), j.cfg.DeviceTimeout)
	if err != nil {
		j.logger.Warn("device mute control not found, continuing",
			logging.String("device", device), logging.Error(err))
		return
	}
	if err := h.Click(control); err != nil {
		j.logger.Warn("device mute click failed, continuing",
			logging.String("device", device), logging.Error(err))
		return
	}
	j.settle(ctx, deviceToggleSettle)
	j.logger.Info("device muted",
		logging.String("device", device),
		logging.String(logging.FieldSelector, control.String()))
}

// Joined reports whether any in-meeting indicator is present. Best effort:
// false means unconfirmed, not absent.
func (j *Joiner) Joined(ctx context.Context, h automation.Handle) bool {
	_, err := j.resolver.Await(ctx, h, locator.SetJoinedIndicator, j.sets.Get(locator.SetJoinedIndicator), j.cfg.IndicatorTimeout)
	return err == nil
}

// verifyMuted probes the muted-state markers for both devices and logs the
// result. Advisory only.
func (j *Joiner) verifyMuted(ctx context.Context, h automation.Handle) {
	for device, set := range map[string]string{
		"microphone": locator.SetMicrophoneMuted,
		"camera":     locator.SetCameraMuted,
	} {
		if _, err := j.resolver.Await(ctx, h, set, j.sets.Get(set), j.cfg.IndicatorTimeout); err != nil {
			j.logger.Warn("muted state unconfirmed", logging.String("device", device))
		} else {
			j.logger.Info("muted state confirmed", logging.String("device", device))
		}
	}
}

// Leave activates the leave-call control and confirms departure best-effort.
func (j *Joiner) Leave(ctx context.Context, h automation.Handle) error {
	control, err := j.resolver.Resolve(ctx, h, locator.SetLeaveControl, j.sets.Get(locator.SetLeaveControl), j.cfg.DeviceTimeout)
	if err != nil {
		return fmt.Errorf("locate leave control: %w", err)
	}
	if err := h.Click(control); err != nil {
		return fmt.Errorf("activate leave control: %w", err)
	}
	j.settle(ctx, deviceToggleSettle)
	if _, err := j.resolver.Await(ctx, h, locator.SetLeftIndicator, j.sets.Get(locator.SetLeftIndicator), j.cfg.IndicatorTimeout); err != nil {
		j.logger.Warn("departure unconfirmed, leave control was activated")
	} else {
		j.logger.Info("left meeting")
	}
	return nil
}

// EnableMicrophone unmutes the microphone from inside the meeting.
func (j *Joiner) EnableMicrophone(ctx context.Context, h automation.Handle) error {
	control, err := j.resolver.Resolve(ctx, h, locator.SetMicrophoneEnable, j.sets.Get(locator.SetMicrophoneEnable), j.cfg.DeviceTimeout)
	if err != nil {
		return fmt.Errorf("locate microphone enable control: %w", err)
	}
	if err := h.Click(control); err != nil {
		return fmt.Errorf("activate microphone enable control: %w", err)
	}
	j.settle(ctx, deviceToggleSettle)
	j.logger.Info("microphone enabled")
	return nil
}
