package logging

import (
	"log/slog"
	"time"
)

// Standardized structured logging keys.
const (
	// FieldStage is the key for orchestration stage names.
	FieldStage = "stage"
	// FieldRunID is the key for the per-run correlation identifier.
	FieldRunID = "run_id"
	// FieldSet is the key for fallback-set names.
	FieldSet = "set"
	// FieldSelector is the key for the selector that resolved or was tried.
	FieldSelector = "selector"
	// FieldPath is the key for artifact file paths.
	FieldPath = "path"
)

type Attr = slog.Attr

func String(key, value string) Attr { return slog.String(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

// Error renders an error under the conventional "error" key, tolerating nil.
func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}
