// Package orchestrator sequences a full run: acquire the browser session,
// authenticate, join the meeting, then hand off to the audio capture and
// transcription collaborators. The session handle is released exactly once
// on every exit path, and a fatal stage failure aborts everything after it.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"meetjoin/internal/automation"
	"meetjoin/internal/config"
	"meetjoin/internal/logging"
)

// Stage names used in outcomes and logs.
const (
	StageAuthenticate = "authenticate"
	StageJoin         = "join"
	StageRecord       = "record"
	StageTranscribe   = "transcribe"
)

// audioFileName is the capture target inside the per-run recording directory.
const audioFileName = "output.wav"

// Authenticator is the login stage contract.
type Authenticator interface {
	Login(ctx context.Context, h automation.Handle) error
}

// Joiner is the join stage contract.
type Joiner interface {
	Join(ctx context.Context, h automation.Handle) error
}

// Recorder captures meeting audio to a file.
type Recorder interface {
	CaptureTo(ctx context.Context, path string, duration time.Duration) error
}

// Transcriber converts captured audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// Launcher acquires the browser session handle. Injected so tests can
// substitute scripted handles and acquisition failures.
type Launcher func() (automation.Handle, error)

// Outcome records how one stage ended.
type Outcome struct {
	Stage string
	Err   error
}

// Failed reports whether the stage ended in error.
func (o Outcome) Failed() bool { return o.Err != nil }

// Result summarizes a run.
type Result struct {
	RunID      string
	Outcomes   []Outcome
	AudioPath  string
	Transcript string
}

// Orchestrator wires the stages together for one run.
type Orchestrator struct {
	cfg         *config.Config
	runID       string
	launch      Launcher
	auth        Authenticator
	joiner      Joiner
	recorder    Recorder
	transcriber Transcriber
	logger      *slog.Logger
}

// New constructs an Orchestrator for a single run. An empty runID generates
// one. The run ID namespaces every artifact path the run writes, so two runs
// sharing a configuration never touch the same files.
func New(cfg *config.Config, runID string, launch Launcher, auth Authenticator, joiner Joiner, recorder Recorder, transcriber Transcriber, logger *slog.Logger) *Orchestrator {
	if runID == "" {
		runID = uuid.NewString()
	}
	return &Orchestrator{
		cfg:         cfg,
		runID:       runID,
		launch:      launch,
		auth:        auth,
		joiner:      joiner,
		recorder:    recorder,
		transcriber: transcriber,
		logger:      logger.With(logging.String(logging.FieldRunID, runID)),
	}
}

// Run executes the pipeline. The returned Result is populated as far as the
// run got, including on failure.
func (o *Orchestrator) Run(ctx context.Context) (Result, error) {
	res := Result{RunID: o.runID}
	logger := o.logger

	handle, err := o.launch()
	if err != nil {
		return res, fmt.Errorf("acquire session: %w", err)
	}
	defer func() {
		if err := handle.Close(); err != nil {
			logger.Warn("session release failed", logging.Error(err))
		}
	}()

	if err := o.runStage(ctx, logger, &res, StageAuthenticate, func(ctx context.Context) error {
		return o.auth.Login(ctx, handle)
	}); err != nil {
		return res, err
	}
	if err := o.runStage(ctx, logger, &res, StageJoin, func(ctx context.Context) error {
		return o.joiner.Join(ctx, handle)
	}); err != nil {
		return res, err
	}

	res.AudioPath = filepath.Join(o.cfg.Recording.OutputDir, o.runID, audioFileName)
	if err := o.runStage(ctx, logger, &res, StageRecord, func(ctx context.Context) error {
		return o.recorder.CaptureTo(ctx, res.AudioPath, o.cfg.RecordingDuration())
	}); err != nil {
		return res, err
	}

	if !o.cfg.Transcription.Enabled {
		logger.Info("transcription disabled, run complete")
		return res, nil
	}
	if err := o.runStage(ctx, logger, &res, StageTranscribe, func(ctx context.Context) error {
		text, err := o.transcriber.Transcribe(ctx, res.AudioPath)
		if err != nil {
			return err
		}
		res.Transcript = text
		return nil
	}); err != nil {
		return res, err
	}

	logger.Info("run complete", logging.Int("transcript_chars", len(res.Transcript)))
	return res, nil
}

// runStage executes one stage with uniform start/complete/failure logging
// and records its outcome. A stage error aborts the remainder of the run;
// the deferred session release in Run still happens.
func (o *Orchestrator) runStage(ctx context.Context, logger *slog.Logger, res *Result, name string, run func(context.Context) error) error {
	stageLogger := logger.With(logging.String(logging.FieldStage, name))
	stageLogger.Info("stage started")
	start := time.Now()

	err := run(ctx)
	res.Outcomes = append(res.Outcomes, Outcome{Stage: name, Err: err})
	if err != nil {
		stageLogger.Error("stage failed",
			logging.Duration("elapsed", time.Since(start)),
			logging.Error(err))
		return fmt.Errorf("%s: %w", name, err)
	}
	stageLogger.Info("stage completed", logging.Duration("elapsed", time.Since(start)))
	return nil
}
