package log

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
	badKey            = "!BADKEY"
)

// ZerologProvider implements LoggerProvider on top of a zerolog.Logger.
// All loggers obtained from one provider share its level.
type ZerologProvider struct {
	base  zerolog.Logger
	level *atomic.Int32
}

// NewZerologProvider creates a provider writing human-readable lines to
// stderr at the given minimum level.
func NewZerologProvider(level Level) *ZerologProvider {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return NewZerologProviderFrom(zerolog.New(out).With().Timestamp().Logger(), level)
}

// NewZerologProviderFrom wraps an existing zerolog.Logger.
func NewZerologProviderFrom(base zerolog.Logger, level Level) *ZerologProvider {
	lv := &atomic.Int32{}
	lv.Store(int32(level))
	return &ZerologProvider{base: base, level: lv}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *ZerologProvider) GetLogger() Logger {
	return &ZerologLogger{zl: p.base, level: p.level}
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	return &ZerologLogger{zl: p.base.With().Str(ComponentKey, name).Logger(), level: p.level}
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *ZerologProvider) SetLevel(level Level) {
	p.level.Store(int32(level))
}

// ZerologLogger implements Logger using zerolog events.
type ZerologLogger struct {
	zl    zerolog.Logger
	level *atomic.Int32
}

// Debug implements Logger.Debug.
func (l *ZerologLogger) Debug(msg string, fields ...any) {
	l.log(LevelDebug, msg, fields)
}

// Info implements Logger.Info.
func (l *ZerologLogger) Info(msg string, fields ...any) {
	l.log(LevelInfo, msg, fields)
}

// Warn implements Logger.Warn.
func (l *ZerologLogger) Warn(msg string, fields ...any) {
	l.log(LevelWarn, msg, fields)
}

// Error implements Logger.Error.
func (l *ZerologLogger) Error(msg string, fields ...any) {
	l.log(LevelError, msg, fields)
}

// With implements Logger.With.
func (l *ZerologLogger) With(fields ...any) Logger {
	ctx := l.zl.With()
	m := make(map[string]interface{}, len(fields)/2)
	for i := 0; i < len(fields); {
		if err, ok := fields[i].(error); ok {
			m[ErrAttrKey] = err.Error()
			i++
			continue
		}
		if i+1 >= len(fields) {
			m[badKey] = fields[i]
			break
		}
		key := fmt.Sprint(fields[i])
		if err, ok := fields[i+1].(error); ok {
			m[key] = err.Error()
		} else {
			m[key] = fields[i+1]
		}
		i += 2
	}
	return &ZerologLogger{zl: ctx.Fields(m).Logger(), level: l.level}
}

// Enabled implements Logger.Enabled.
func (l *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	return level >= Level(l.level.Load())
}

func (l *ZerologLogger) log(level Level, msg string, fields []any) {
	if !l.Enabled(context.Background(), level) {
		return
	}
	ev := l.zl.WithLevel(toZerologLevel(level))
	if ev == nil {
		return
	}
	for i := 0; i < len(fields); {
		if err, ok := fields[i].(error); ok {
			addErr(ev, ErrAttrKey, err)
			i++
			continue
		}
		if i+1 >= len(fields) {
			ev.Interface(badKey, fields[i])
			break
		}
		key := fmt.Sprint(fields[i])
		switch v := fields[i+1].(type) {
		case error:
			addErr(ev, key, v)
		case zerolog.LogObjectMarshaler:
			ev.Object(key, v)
		default:
			ev.Interface(key, v)
		}
		i += 2
	}
	ev.Msg(msg)
}

func addErr(ev *zerolog.Event, key string, err error) {
	ev.AnErr(key, err)
	if st := extractStacktrace(err); st != "" {
		ev.Str(StacktraceAttrKey, st)
	}
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level >= LevelError:
		return zerolog.ErrorLevel
	case level >= LevelWarn:
		return zerolog.WarnLevel
	case level >= LevelInfo:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

var (
	providerMu      sync.RWMutex
	defaultProvider LoggerProvider = NewZerologProvider(LevelInfo)
)

// SetProvider replaces the process-wide logger provider.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	defaultProvider = p
}

// GetProvider returns the process-wide logger provider.
func GetProvider() LoggerProvider {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return defaultProvider
}

// GetLogger returns the default logger of the process-wide provider.
func GetLogger() Logger {
	return GetProvider().GetLogger()
}

// GetLoggerWithName returns a component logger from the process-wide provider.
func GetLoggerWithName(name string) Logger {
	return GetProvider().GetLoggerWithName(name)
}
