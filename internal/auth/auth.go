// Package auth drives the Google sign-in stage: submit the account
// identifier, advance, submit the password, advance, and confirm the
// authenticated landing state. One pass, fail fast; retry policy belongs to
// whatever supervises the process, not here.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"meetjoin/internal/automation"
	"meetjoin/internal/locator"
	"meetjoin/internal/logging"
)

// LoginURL is the sign-in entry point.
const LoginURL = "https://accounts.google.com/ServiceLogin"

// State names the steps of the login state machine, in order.
type State string

const (
	StateStart               State = "start"
	StateIdentitySubmitted   State = "identity_submitted"
	StateSecretPromptVisible State = "secret_prompt_visible"
	StateSecretSubmitted     State = "secret_submitted"
	StateAuthenticated       State = "authenticated"
)

const (
	// secretPromptSettle separates "password field rendered" from "password
	// field accepts input": the sign-in page animates the transition and the
	// field rejects keystrokes until it finishes.
	secretPromptSettle = 2 * time.Second
	// preAdvanceSettle pauses between finishing the password and activating
	// the advance control; clicking mid-validation loses the click.
	preAdvanceSettle = 1 * time.Second
	// defaultFieldTimeout is the per-candidate budget for form controls.
	defaultFieldTimeout = 5 * time.Second
)

// Config parameterizes the authenticator.
type Config struct {
	Email    string
	Password string
	// StageTimeout bounds the secret-prompt and landing waits. Zero selects
	// the 20s default.
	StageTimeout time.Duration
	// FieldTimeout is the per-candidate budget for form controls. Zero
	// selects the default.
	FieldTimeout time.Duration
}

// Authenticator performs the login stage over an automation.Handle.
type Authenticator struct {
	cfg      Config
	sets     locator.Sets
	resolver *automation.Resolver
	diag     *automation.Diagnostics
	logger   *slog.Logger

	settle func(context.Context, time.Duration)
}

// New constructs an Authenticator.
func New(cfg Config, sets locator.Sets, resolver *automation.Resolver, diag *automation.Diagnostics, logger *slog.Logger) *Authenticator {
	if cfg.StageTimeout <= 0 {
		cfg.StageTimeout = 20 * time.Second
	}
	if cfg.FieldTimeout <= 0 {
		cfg.FieldTimeout = defaultFieldTimeout
	}
	return &Authenticator{
		cfg:      cfg,
		sets:     sets,
		resolver: resolver,
		diag:     diag,
		logger:   logger,
		settle:   automation.Settle,
	}
}

// WithSettleFunc replaces the settle-delay implementation (for testing).
func (a *Authenticator) WithSettleFunc(settle func(context.Context, time.Duration)) {
	a.settle = settle
}

// Login executes the full state machine. Any transition that times out
// captures diagnostics under a transition-specific label and returns a
// *TimeoutError carrying the last reached state.
func (a *Authenticator) Login(ctx context.Context, h automation.Handle) error {
	state := StateStart
	a.logger.Info("starting sign-in", logging.String("url", LoginURL))

	if err := h.Navigate(ctx, LoginURL); err != nil {
		return a.failed(h, state, "login_navigation", err)
	}

	// Identity: resolve the field, fill it, advance.
	field, err := a.resolver.Resolve(ctx, h, locator.SetIdentifierInput, a.sets.Get(locator.SetIdentifierInput), a.cfg.FieldTimeout)
	if err != nil {
		return a.failed(h, state, "login_identifier", err)
	}
	if err := h.Type(field, a.cfg.Email); err != nil {
		return a.failed(h, state, "login_identifier", err)
	}
	next, err := a.resolver.Resolve(ctx, h, locator.SetIdentifierNext, a.sets.Get(locator.SetIdentifierNext), a.cfg.FieldTimeout)
	if err != nil {
		return a.failed(h, state, "login_identifier_advance", err)
	}
	if err := h.Click(next); err != nil {
		return a.failed(h, state, "login_identifier_advance", err)
	}
	state = StateIdentitySubmitted
	a.logger.Info("identity submitted")

	// Secret: wait for the prompt to render, let it settle, then wait for it
	// to accept input. The two waits are distinct on purpose.
	secretSet := a.sets.Get(locator.SetSecretInput)
	if _, err := a.resolver.Await(ctx, h, locator.SetSecretInput, secretSet, a.cfg.StageTimeout); err != nil {
		return a.failed(h, state, "password_field_timeout", err)
	}
	state = StateSecretPromptVisible
	a.settle(ctx, secretPromptSettle)

	secret, err := a.resolver.Resolve(ctx, h, locator.SetSecretInput, secretSet, a.cfg.StageTimeout)
	if err != nil {
		return a.failed(h, state, "password_field_timeout", err)
	}
	if err := h.Type(secret, a.cfg.Password); err != nil {
		return a.failed(h, state, "password_entry", err)
	}
	a.settle(ctx, preAdvanceSettle)

	advance, err := a.resolver.Resolve(ctx, h, locator.SetSecretNext, a.sets.Get(locator.SetSecretNext), a.cfg.FieldTimeout)
	if err != nil {
		return a.failed(h, state, "password_advance", err)
	}
	if err := h.Click(advance); err != nil {
		return a.failed(h, state, "password_advance", err)
	}
	state = StateSecretSubmitted
	a.logger.Info("secret submitted")

	// Landing: an authenticated Google page renders the account bar.
	if _, err := a.resolver.Await(ctx, h, locator.SetLandingIndicator, a.sets.Get(locator.SetLandingIndicator), a.cfg.StageTimeout); err != nil {
		return a.failed(h, state, "login_landing", err)
	}
	state = StateAuthenticated
	a.logger.Info("signed in", logging.String("landing_url", h.URL()))
	return nil
}

func (a *Authenticator) failed(h automation.Handle, state State, label string, cause error) error {
	a.logger.Error("sign-in transition failed",
		logging.String(logging.FieldStage, label),
		logging.String("state", string(state)),
		logging.Error(cause))
	a.diag.Capture(h, label)
	return &TimeoutError{State: state, Cause: fmt.Errorf("%s: %w", label, cause)}
}
