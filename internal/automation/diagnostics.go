package automation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"meetjoin/internal/logging"
)

// Diagnostics persists post-mortem artifacts when a stage fails: a
// timestamped screenshot and a raw markup dump named after the failing
// stage. Artifacts are advisory and never read back.
type Diagnostics struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewDiagnostics constructs a capture sink writing into dir.
func NewDiagnostics(dir string, logger *slog.Logger) *Diagnostics {
	return &Diagnostics{dir: dir, logger: logger, now: time.Now}
}

// WithNowFunc replaces the timestamp source (for testing).
func (d *Diagnostics) WithNowFunc(now func() time.Time) {
	d.now = now
}

// Capture writes a screenshot and page markup labeled for the failing stage.
// It never returns or raises an error, even when the handle is unusable:
// diagnostics must not mask or replace the failure that triggered them.
func (d *Diagnostics) Capture(h Handle, label string) {
	if h == nil {
		d.logger.Warn("diagnostics skipped: no session handle",
			logging.String(logging.FieldStage, label))
		return
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		d.logger.Warn("diagnostics directory unavailable", logging.Error(err))
		return
	}

	stamp := d.now().Format("20060102-150405")

	shot := filepath.Join(d.dir, fmt.Sprintf("screenshot_%s_%s.png", label, stamp))
	if err := h.Screenshot(shot); err != nil {
		d.logger.Warn("screenshot capture failed",
			logging.String(logging.FieldStage, label), logging.Error(err))
	} else {
		d.logger.Info("screenshot saved",
			logging.String(logging.FieldStage, label),
			logging.String(logging.FieldPath, shot))
	}

	markup, err := h.Markup()
	if err != nil {
		d.logger.Warn("page markup dump failed",
			logging.String(logging.FieldStage, label), logging.Error(err))
		return
	}
	page := filepath.Join(d.dir, fmt.Sprintf("page_%s_%s.html", label, stamp))
	if err := os.WriteFile(page, []byte(markup), 0o644); err != nil {
		d.logger.Warn("page markup write failed",
			logging.String(logging.FieldStage, label), logging.Error(err))
		return
	}
	d.logger.Info("page markup saved",
		logging.String(logging.FieldStage, label),
		logging.String(logging.FieldPath, page))
}
