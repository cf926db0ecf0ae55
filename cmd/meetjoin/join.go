package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"meetjoin/internal/auth"
	"meetjoin/internal/automation"
	"meetjoin/internal/browser"
	"meetjoin/internal/capture"
	"meetjoin/internal/config"
	"meetjoin/internal/locator"
	"meetjoin/internal/logging"
	"meetjoin/internal/meeting"
	"meetjoin/internal/orchestrator"
	"meetjoin/internal/transcribe"
)

func newJoinCommand(configFlag *string) *cobra.Command {
	var headless bool
	var link string

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Run the full pipeline: sign in, join, record, transcribe",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFlag)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("headless") {
				cfg.Meeting.Headless = headless
			}
			if link != "" {
				cfg.Meeting.Link = link
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
			})

			orch := buildOrchestrator(cfg, uuid.NewString(), logger)
			res, err := orch.Run(cmd.Context())
			if err != nil {
				logger.Error("run failed", logging.Error(err))
				return err
			}
			if res.Transcript != "" {
				fmt.Fprintln(cmd.OutOrStdout(), res.Transcript)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&headless, "headless", false, "run the browser without a visible window")
	cmd.Flags().StringVar(&link, "link", "", "meeting link (overrides config and MEET_LINK)")
	return cmd
}

// buildOrchestrator wires the components for one run. Every component logs
// through a run-scoped logger, and the diagnostics sink writes into a
// per-run subdirectory, so concurrent or consecutive runs never interleave
// artifacts.
func buildOrchestrator(cfg *config.Config, runID string, logger *slog.Logger) *orchestrator.Orchestrator {
	runLogger := logger.With(logging.String(logging.FieldRunID, runID))

	sets := locator.Defaults()
	sets.Apply(cfg.Selectors)
	resolver := automation.NewResolver(runLogger, 0)
	diag := automation.NewDiagnostics(filepath.Join(cfg.Diagnostics.Dir, runID), runLogger)

	authn := auth.New(auth.Config{
		Email:        cfg.Auth.Email,
		Password:     cfg.Auth.Password,
		StageTimeout: cfg.StageTimeout(),
	}, sets, resolver, diag, runLogger)

	joiner := meeting.New(meeting.Config{
		Link:       cfg.Meeting.Link,
		VerifyJoin: cfg.Meeting.VerifyJoin,
		VerifyMute: cfg.Meeting.VerifyMute,
	}, sets, resolver, diag, runLogger)

	recorder := capture.NewRecorder(cfg.Recording.SampleRate, runLogger)
	transcriber := transcribe.New(cfg.Transcription.Model, runLogger)

	launch := func() (automation.Handle, error) {
		return browser.Launch(browser.Config{Headless: cfg.Meeting.Headless}, runLogger)
	}
	return orchestrator.New(cfg, runID, launch, authn, joiner, recorder, transcriber, logger)
}
