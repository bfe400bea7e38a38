// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// keeper-commander client.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, etc.) are available directly on *Logger.
// Application code should pass *Logger by pointer. Code running inside the
// command loop obtains the session logger via FromContext.
//
// Constructors never change the process-wide log level. The level is set
// exactly once per invocation by the bootstrap through Configure.
package logger

import (
	"context"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs a JSON *Logger for the given role label writing to w.
//
// Every entry carries a "role" field, a timestamp and a "func" caller field
// holding the fully-qualified function name instead of file:line.
func NewLogger(role string, w io.Writer) *Logger {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name() // return function name
	}
	zerolog.CallerFieldName = "func"

	logger := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// NewClientLogger constructs the human-readable logger used by the CLI.
// Output goes to os.Stderr so that command output on stdout stays clean for
// scripting. Lines are rendered as "LEVEL message key=value".
func NewClientLogger(role string) *Logger {
	return newConsoleLogger(role, os.Stderr)
}

func newConsoleLogger(role string, w io.Writer) *Logger {
	out := zerolog.ConsoleWriter{
		Out:           w,
		NoColor:       true,
		PartsOrder:    []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
		FieldsExclude: []string{"role"},
	}

	logger := zerolog.New(out).With().
		Str("role", role).
		Logger()

	return &Logger{logger}
}

// Configure sets the process-wide log level for the current invocation.
// Debug wins over batch mode; batch mode only emits warnings and errors so
// that scripted runs stay quiet.
func Configure(debug, batchMode bool) zerolog.Level {
	level := zerolog.InfoLevel
	switch {
	case debug:
		level = zerolog.DebugLevel
	case batchMode:
		level = zerolog.WarnLevel
	}

	zerolog.SetGlobalLevel(level)
	return level
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child logger can be enriched with additional context fields
// without affecting the parent logger.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithRunID returns a child logger tagged with the invocation id.
func (l *Logger) WithRunID(runID string) *Logger {
	return &Logger{l.With().Str("run_id", runID).Logger()}
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its global logger,
// or a disabled logger, so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
