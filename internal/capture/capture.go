// Package capture records meeting audio by driving ffmpeg against the
// default input device. The recorder is a collaborator invoked once after a
// successful join; its output is an append-only WAV file nothing else in
// the run mutates.
package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"meetjoin/internal/logging"
)

// ErrRecording marks audio capture failures.
var ErrRecording = errors.New("recording error")

// External tool defaults.
const (
	FFmpegCommand      = "ffmpeg"
	DefaultInputFormat = "pulse"
	DefaultInputDevice = "default"
)

// Recorder captures mono PCM audio for a fixed duration.
type Recorder struct {
	ffmpegBinary  string
	inputFormat   string
	inputDevice   string
	sampleRate    int
	logger        *slog.Logger
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewRecorder constructs a Recorder for the given sample rate.
func NewRecorder(sampleRate int, logger *slog.Logger) *Recorder {
	return &Recorder{
		ffmpegBinary: FFmpegCommand,
		inputFormat:  DefaultInputFormat,
		inputDevice:  DefaultInputDevice,
		sampleRate:   sampleRate,
		logger:       logger,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (r *Recorder) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	r.commandRunner = runner
}

// CaptureTo records duration's worth of audio into path.
func (r *Recorder) CaptureTo(ctx context.Context, path string, duration time.Duration) error {
	if duration <= 0 {
		return fmt.Errorf("%w: invalid duration %s", ErrRecording, duration)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: ensure output dir: %w", ErrRecording, err)
	}

	args := r.buildArgs(path, duration)
	r.logger.Info("recording audio",
		logging.String(logging.FieldPath, path),
		logging.Duration("duration", duration))
	if err := r.run(ctx, r.ffmpegBinary, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrRecording, err)
	}
	r.logger.Info("recording finished", logging.String(logging.FieldPath, path))
	return nil
}

func (r *Recorder) buildArgs(path string, duration time.Duration) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", r.inputFormat,
		"-i", r.inputDevice,
		"-t", fmt.Sprintf("%d", int(duration.Seconds())),
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", r.sampleRate),
		"-c:a", "pcm_s16le",
		path,
	}
}

func (r *Recorder) run(ctx context.Context, name string, args ...string) error {
	if r.commandRunner != nil {
		return r.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
