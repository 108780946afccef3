package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// WithComponent returns a child logger tagged with the component name.
	WithComponent(name string) Logger

	// Printf makes the logger usable as an fx.Printer.
	Printf(format string, args ...any)
}

type Opts struct {
	Env       string
	Level     string
	SentryDSN string
	FilePath  string

	// Writer overrides stdout for the console sink.
	Writer io.Writer
}

type Impl struct {
	log *slog.Logger
}

var _ Logger = (*Impl)(nil)

func New(opts Opts) *Impl {
	level := parseLevel(opts.Level)

	out := opts.Writer
	if out == nil {
		out = os.Stdout
	}

	var console io.Writer = out
	if opts.Env == "" || opts.Env == "development" {
		console = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: opts.Writer != nil}
	}

	writers := []io.Writer{console}
	if opts.FilePath != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     14,
		})
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()

	handlers := []slog.Handler{
		slogzerolog.Option{Level: level, Logger: &zl}.NewZerologHandler(),
	}

	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: opts.Env,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "sentry init failed: %v\n", err)
		} else {
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
		}
	}

	return &Impl{log: slog.New(slogmulti.Fanout(handlers...))}
}

func (l *Impl) Debug(msg string, args ...any) { l.log.Debug(msg, args...) }
func (l *Impl) Info(msg string, args ...any)  { l.log.Info(msg, args...) }
func (l *Impl) Warn(msg string, args ...any)  { l.log.Warn(msg, args...) }
func (l *Impl) Error(msg string, args ...any) { l.log.Error(msg, args...) }

func (l *Impl) WithComponent(name string) Logger {
	return &Impl{log: l.log.With(slog.String("component", name))}
}

func (l *Impl) Printf(format string, args ...any) {
	l.log.Log(context.Background(), slog.LevelDebug, fmt.Sprintf(format, args...))
}

// Flush waits for buffered Sentry events. It is a no-op without Sentry.
func (l *Impl) Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
