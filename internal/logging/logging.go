// Package logging builds the zap logger shared by every command.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON logger on stderr. Only warnings and errors are written
// unless verbose is set, which enables debug output.
func New(verbose bool) (*zap.Logger, error) {
	logConfig := zap.NewProductionConfig()
	logConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logConfig.OutputPaths = []string{"stderr"}
	logConfig.ErrorOutputPaths = []string{"stderr"}
	logConfig.Level = zap.NewAtomicLevelAt(Level(verbose))
	if verbose {
		logConfig.Sampling = nil
	}
	return logConfig.Build()
}

// Level maps the verbose flag to a zap level.
func Level(verbose bool) zapcore.Level {
	if verbose {
		return zapcore.DebugLevel
	}
	return zapcore.WarnLevel
}
