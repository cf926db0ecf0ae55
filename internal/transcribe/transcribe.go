// Package transcribe turns captured meeting audio into text by invoking the
// WhisperX CLI through uvx and extracting the plain transcript from its
// JSON output.
package transcribe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"meetjoin/internal/logging"
)

// ErrTranscribe marks transcription failures.
var ErrTranscribe = errors.New("transcription error")

// External tool defaults.
const (
	UVXCommand   = "uvx"
	DefaultModel = "large-v3"
	cpuDevice    = "cpu"
	computeType  = "float32"
)

// Transcriber runs speech-to-text over a recorded audio file.
type Transcriber struct {
	model         string
	logger        *slog.Logger
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// New constructs a Transcriber. An empty model selects the default.
func New(model string, logger *slog.Logger) *Transcriber {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return &Transcriber{model: model, logger: logger}
}

// WithCommandRunner sets a custom command runner (for testing).
func (t *Transcriber) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	t.commandRunner = runner
}

// Transcribe converts the audio file at path to text. WhisperX writes its
// output next to the source file; the transcript is assembled from the JSON
// segment payload.
func (t *Transcriber) Transcribe(ctx context.Context, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: source path required", ErrTranscribe)
	}
	outputDir := filepath.Dir(path)

	t.logger.Info("transcribing audio",
		logging.String(logging.FieldPath, path),
		logging.String("model", t.model))
	if err := t.run(ctx, UVXCommand, t.buildArgs(path, outputDir)...); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranscribe, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	jsonPath := filepath.Join(outputDir, base+".json")
	text, err := loadTranscriptText(jsonPath)
	if err != nil {
		return "", fmt.Errorf("%w: read transcript %s: %w", ErrTranscribe, jsonPath, err)
	}
	return text, nil
}

func (t *Transcriber) buildArgs(source, outputDir string) []string {
	return []string{
		"whisperx",
		source,
		"--model", t.model,
		"--output_dir", outputDir,
		"--output_format", "json",
		"--device", cpuDevice,
		"--compute_type", computeType,
	}
}

func (t *Transcriber) run(ctx context.Context, name string, args ...string) error {
	if t.commandRunner != nil {
		return t.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// segment is one transcribed span in the WhisperX JSON payload.
type segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type payload struct {
	Segments []segment `json:"segments"`
}

func loadTranscriptText(jsonPath string) (string, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return "", err
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return "", fmt.Errorf("parse transcript json: %w", err)
	}
	parts := make([]string, 0, len(p.Segments))
	for _, seg := range p.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}
