package res1d

import (
	"context"
	"io"
	"log/slog"
	"os"
)

const (
	LevelStage = slog.Level(41)
	LevelFatal = slog.Level(99)
)

// LevelNames maps custom log levels to their string representations.
var LevelNames = map[slog.Leveler]string{
	LevelStage: "STAGE",
	LevelFatal: "FATAL",
}

// MergeLoggerInput holds the input parameters required to create a MergeLogger.
type MergeLoggerInput struct {
	RunID  string
	Writer io.Writer
}

// MergeLogger provides structured logging for a merge run with a custom
// stage level. Every record carries the run id.
type MergeLogger struct {
	input MergeLoggerInput
	*slog.Logger
}

// NewMergeLogger creates a new MergeLogger writing JSON records. A nil
// writer defaults to stdout.
func NewMergeLogger(input MergeLoggerInput) *MergeLogger {
	writer := input.Writer
	if writer == nil {
		writer = os.Stdout
	}
	logger := slog.New(slog.NewJSONHandler(writer, mergeLoggerOpts(slog.LevelDebug)))
	if input.RunID != "" {
		logger = logger.With(slog.String("run_id", input.RunID))
	}
	return &MergeLogger{
		input,
		logger,
	}
}

// Stage logs a merge stage transition at the custom stage level.
func (l *MergeLogger) Stage(stage Stage, args ...any) {
	ctx := context.Background()
	l.Logger.Log(ctx, LevelStage, string(stage), args...)
}

// mergeLoggerOpts returns slog.HandlerOptions configured with custom log
// levels and attribute replacement.
func mergeLoggerOpts(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				level := a.Value.Any().(slog.Level)
				levelLabel, exists := LevelNames[level]
				if !exists {
					levelLabel = level.String()
				}
				a.Value = slog.StringValue(levelLabel)
			}
			return a
		},
	}
}
