package logging

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// ZerologLogger writes human-readable lines through zerolog's console writer.
type ZerologLogger struct {
	l zerolog.Logger
}

// NewZerologLogger writes uncoloured console lines to w at level.
func NewZerologLogger(w io.Writer, level string) *ZerologLogger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}
	l := zerolog.New(out).Level(zerologLevel(level)).With().Timestamp().Logger()
	return &ZerologLogger{l: l}
}

func zerologLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (z *ZerologLogger) event(ctx context.Context, e *zerolog.Event, args []any) *zerolog.Event {
	if id := RequestIDFromContext(ctx); id != "" {
		e = e.Str(string(requestIDKey), id)
	}
	return e.Fields(args)
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.event(ctx, z.l.Debug(), args).Msg(msg)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	z.event(ctx, z.l.Info(), args).Msg(msg)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.event(ctx, z.l.Warn(), args).Msg(msg)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	z.event(ctx, z.l.Error(), args).Msg(msg)
}

func (z *ZerologLogger) With(args ...any) Logger {
	return &ZerologLogger{l: z.l.With().Fields(args).Logger()}
}
