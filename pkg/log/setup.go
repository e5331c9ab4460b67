package log

import (
	"io"
	"os"
	"time"

	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the process-wide logger.
type Options struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string
	// File, when set, additionally writes JSON lines to a size-rotated file.
	File       string
	MaxSizeMB  int
	MaxBackups int
	// Console is the human-readable destination. Defaults to os.Stderr.
	Console io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup builds the zerolog logger described by opts, installs it as the
// global zerolog logger and the default LoggerProvider, and routes library
// warnings (errors.Warn) through it. The returned Closer releases the
// rotating log file, if any.
func Setup(opts Options) (io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, errors.NewValidationError("log.level", "must be one of debug, info, warn, error", opts.Level)
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339}}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		maxSize := opts.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 10
		}
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSize,
			MaxBackups: opts.MaxBackups,
			Compress:   true,
		}
		writers = append(writers, rotating)
		closer = rotating
	}

	zerolog.SetGlobalLevel(toZerologLevel(level))
	base := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	zlog.Logger = base

	SetProvider(NewZerologProviderFrom(base, level))
	errors.SetZerologWarnFunc(func(w error) {
		ev := base.Warn()
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			ev = ev.Object("warning", m)
		}
		ev.Msg(w.Error())
	})
	return closer, nil
}
