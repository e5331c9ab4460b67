// Testing utilities for structured logging.
//
// TestLogger captures JSON lines in memory so tests can assert on messages
// and fields without touching the process-wide zerolog configuration.

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// syncBuffer is a bytes.Buffer shared by a TestLogger and its children.
type syncBuffer struct {
	mu  sync.Mutex
	buf *bytes.Buffer
}

// TestLogger is a logger implementation designed for testing.
// It captures all log messages in memory for later inspection and verification.
type TestLogger struct {
	out    *syncBuffer
	level  Level
	fields map[string]interface{}
}

// NewTestLogger creates a new TestLogger with the specified minimum level.
//
// Example:
//
//	logger, buffer := log.NewTestLogger(log.LevelDebug)
//	logger.Info("test message", "key", "value")
//	output := buffer.String()
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	buffer := &bytes.Buffer{}
	return &TestLogger{
		out:    &syncBuffer{buf: buffer},
		level:  level,
		fields: make(map[string]interface{}),
	}, buffer
}

// Debug implements Logger.Debug.
func (t *TestLogger) Debug(msg string, fields ...any) {
	if t.level <= LevelDebug {
		t.writeLog(LevelDebug, msg, fields...)
	}
}

// Info implements Logger.Info.
func (t *TestLogger) Info(msg string, fields ...any) {
	if t.level <= LevelInfo {
		t.writeLog(LevelInfo, msg, fields...)
	}
}

// Warn implements Logger.Warn.
func (t *TestLogger) Warn(msg string, fields ...any) {
	if t.level <= LevelWarn {
		t.writeLog(LevelWarn, msg, fields...)
	}
}

// Error implements Logger.Error.
func (t *TestLogger) Error(msg string, fields ...any) {
	if t.level <= LevelError {
		t.writeLog(LevelError, msg, fields...)
	}
}

// With implements Logger.With.
func (t *TestLogger) With(fields ...any) Logger {
	newFields := make(map[string]interface{}, len(t.fields)+len(fields)/2)
	for k, v := range t.fields {
		newFields[k] = v
	}
	addFields(newFields, fields)

	return &TestLogger{
		out:    t.out,
		level:  t.level,
		fields: newFields,
	}
}

// Enabled implements Logger.Enabled.
func (t *TestLogger) Enabled(_ context.Context, level Level) bool {
	return t.level <= level
}

func addFields(dst map[string]interface{}, fields []any) {
	for i := 0; i < len(fields); {
		if err, ok := fields[i].(error); ok {
			dst[ErrAttrKey] = err.Error()
			i++
			continue
		}
		if i+1 >= len(fields) {
			dst[badKey] = fields[i]
			break
		}
		key := fmt.Sprintf("%v", fields[i])
		if err, ok := fields[i+1].(error); ok {
			dst[key] = err.Error()
		} else {
			dst[key] = fields[i+1]
		}
		i += 2
	}
}

// writeLog writes a log entry to the buffer in JSON format.
func (t *TestLogger) writeLog(level Level, msg string, fields ...any) {
	entry := map[string]interface{}{
		"level":   level.String(),
		"message": msg,
	}
	for k, v := range t.fields {
		entry[k] = v
	}
	addFields(entry, fields)

	jsonData, err := json.Marshal(entry)
	if err != nil {
		jsonData, _ = json.Marshal(map[string]interface{}{
			"level":   level.String(),
			"message": msg,
			"!ERROR":  err.Error(),
		})
	}

	t.out.mu.Lock()
	defer t.out.mu.Unlock()
	t.out.buf.Write(jsonData)
	t.out.buf.WriteByte('\n')
}

func (t *TestLogger) snapshot() string {
	t.out.mu.Lock()
	defer t.out.mu.Unlock()
	return t.out.buf.String()
}

// GetLogEntries parses the captured log output and returns structured log entries.
func (t *TestLogger) GetLogEntries() ([]map[string]interface{}, error) {
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(t.snapshot()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ContainsMessage checks if the captured logs contain a message with the specified content.
func (t *TestLogger) ContainsMessage(message string) bool {
	return strings.Contains(t.snapshot(), message)
}

// ContainsField checks if the captured logs contain an entry with the specified field and value.
// Numbers decode as float64.
//
// Example:
//
//	if !testLogger.ContainsField("ml.operation", "fit") {
//	    t.Error("Expected fit operation in logs")
//	}
func (t *TestLogger) ContainsField(key string, value interface{}) bool {
	entries, err := t.GetLogEntries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if fieldValue, exists := entry[key]; exists && fieldValue == value {
			return true
		}
	}
	return false
}

// Clear clears all captured log content.
func (t *TestLogger) Clear() {
	t.out.mu.Lock()
	defer t.out.mu.Unlock()
	t.out.buf.Reset()
}

// TestLoggerProvider implements LoggerProvider for testing scenarios.
type TestLoggerProvider struct {
	logger *TestLogger
}

// NewTestLoggerProvider creates a new test logger provider.
func NewTestLoggerProvider(level Level) (*TestLoggerProvider, *TestLogger) {
	logger, _ := NewTestLogger(level)
	return &TestLoggerProvider{logger: logger}, logger
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *TestLoggerProvider) GetLogger() Logger {
	return p.logger
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *TestLoggerProvider) GetLoggerWithName(name string) Logger {
	return p.logger.With(ComponentKey, name)
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *TestLoggerProvider) SetLevel(level Level) {
	p.logger.level = level
}
