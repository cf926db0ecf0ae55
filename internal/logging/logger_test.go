package logging_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetjoin/internal/logging"
)

func TestNewAppliesLevel(t *testing.T) {
	ctx := context.Background()

	info := logging.New(logging.Options{Level: "", Format: "json"})
	require.NotNil(t, info)
	assert.False(t, info.Handler().Enabled(ctx, slog.LevelDebug))
	assert.True(t, info.Handler().Enabled(ctx, slog.LevelInfo))

	debug := logging.New(logging.Options{Level: "debug", Format: "console"})
	assert.True(t, debug.Handler().Enabled(ctx, slog.LevelDebug))

	warn := logging.New(logging.Options{Level: "warn", Format: "json"})
	assert.False(t, warn.Handler().Enabled(ctx, slog.LevelInfo))
}

func TestNewToleratesUnknownLevelAndFormat(t *testing.T) {
	logger := logging.New(logging.Options{Level: "shouting", Format: "interpretive-dance"})
	require.NotNil(t, logger)
	assert.True(t, logger.Handler().Enabled(context.Background(), slog.LevelInfo))
}

func TestErrorAttrToleratesNil(t *testing.T) {
	attr := logging.Error(nil)
	assert.Equal(t, "error", attr.Key)
}
