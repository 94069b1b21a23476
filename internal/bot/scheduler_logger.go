package bot

import (
	"context"
	"log/slog"

	"github.com/go-co-op/gocron/v2"
)

// gocronLogger routes gocron's internal logging to slog. gocron is chatty,
// so its info messages are demoted to debug.
type gocronLogger struct {
	log *slog.Logger
}

var _ gocron.Logger = (*gocronLogger)(nil)

func newGocronLogger(log *slog.Logger) *gocronLogger {
	return &gocronLogger{log: log.With("source", "gocron")}
}

func (l *gocronLogger) Debug(msg string, args ...any) { l.emit(slog.LevelDebug, msg, args) }
func (l *gocronLogger) Info(msg string, args ...any)  { l.emit(slog.LevelDebug, msg, args) }
func (l *gocronLogger) Warn(msg string, args ...any)  { l.emit(slog.LevelWarn, msg, args) }
func (l *gocronLogger) Error(msg string, args ...any) { l.emit(slog.LevelError, msg, args) }

func (l *gocronLogger) emit(level slog.Level, msg string, args []any) {
	l.log.Log(context.Background(), level, msg, pairArgs(args)...)
}

// pairArgs keeps a trailing key without a value from turning into a
// "!BADKEY" attribute.
func pairArgs(args []any) []any {
	if len(args)%2 == 0 {
		return args
	}
	out := make([]any, 0, len(args)+1)
	out = append(out, args[:len(args)-1]...)
	return append(out, "extra", args[len(args)-1])
}
