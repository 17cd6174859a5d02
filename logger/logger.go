// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package logger provides the logging capability for envresolve, both for
// the CLI and for library consumers that opt in to resolution logging.
package logger

import (
	"strconv"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stacklok/envresolve/env"
)

// Debugw logs a message at debug level using the singleton logger with additional key-value pairs.
func Debugw(msg string, keysAndValues ...any) {
	zap.S().Debugw(msg, keysAndValues...)
}

// Infow logs a message at info level using the singleton logger with additional key-value pairs.
func Infow(msg string, keysAndValues ...any) {
	zap.S().Infow(msg, keysAndValues...)
}

// Warnw logs a message at warning level using the singleton logger with additional key-value pairs.
func Warnw(msg string, keysAndValues ...any) {
	zap.S().Warnw(msg, keysAndValues...)
}

// Errorw logs a message at error level using the singleton logger with additional key-value pairs.
func Errorw(msg string, keysAndValues ...any) {
	zap.S().Errorw(msg, keysAndValues...)
}

// Infof logs a formatted message at info level using the singleton logger.
func Infof(msg string, args ...any) {
	zap.S().Infof(msg, args...)
}

// Errorf logs a formatted message at error level using the singleton logger.
func Errorf(msg string, args ...any) {
	zap.S().Errorf(msg, args...)
}

// NewLogr returns a logr.Logger which uses the singleton zap logger.
func NewLogr() logr.Logger {
	return zapr.NewLogger(zap.L())
}

// Initialize creates and configures the singleton logger from the process
// environment. If ENVRESOLVE_JSON_LOGS is set to true, output is
// structured JSON on stdout; otherwise it is a plain human-readable format
// on stderr. ENVRESOLVE_DEBUG enables debug-level logging.
func Initialize() {
	InitializeWithEnv(&env.OSReader{})
}

// InitializeWithEnv creates and configures the singleton logger with a
// custom environment reader, allowing dependency injection for testing.
func InitializeWithEnv(envReader env.Reader) {
	var config zap.Config
	if jsonLogs(envReader) {
		config = zap.NewProductionConfig()
		config.OutputPaths = []string{"stdout"}
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.Kitchen)
		config.OutputPaths = []string{"stderr"}
		config.DisableStacktrace = true
		config.DisableCaller = true
	}

	if debugEnabled(envReader) {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	zap.ReplaceGlobals(zap.Must(config.Build()))
}

func jsonLogs(envReader env.Reader) bool {
	v, err := strconv.ParseBool(envReader.Getenv("ENVRESOLVE_JSON_LOGS"))
	if err != nil {
		// unset or unparsable, default to the plain format
		return false
	}
	return v
}

func debugEnabled(envReader env.Reader) bool {
	v, err := strconv.ParseBool(envReader.Getenv("ENVRESOLVE_DEBUG"))
	return err == nil && v
}
