// Package logger builds the zap loggers used across resume-screener and the
// structured fields they share.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the CLI logger. It writes to stderr so stdout stays free for command output.
func New(json bool, debug bool) *zap.Logger {
	return NewWriter(os.Stderr, json, debug)
}

// NewWriter builds a logger writing to w. Messages go under the "step" key so a run
// reads as a list of steps.
func NewWriter(w io.Writer, json bool, debug bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	enc := zapcore.EncoderConfig{
		MessageKey: "step",

		LevelKey:    "level",
		EncodeLevel: zapcore.LowercaseLevelEncoder,

		TimeKey:    "time",
		EncodeTime: zapcore.RFC3339TimeEncoder,

		CallerKey:    "caller",
		EncodeCaller: zapcore.ShortCallerEncoder,

		EncodeDuration: zapcore.StringDurationEncoder,
	}

	encoder := zapcore.NewConsoleEncoder(enc)
	if json {
		encoder = zapcore.NewJSONEncoder(enc)
	}

	sink := zapcore.Lock(zapcore.AddSync(w))
	return zap.New(zapcore.NewCore(encoder, sink, level), zap.AddCaller(), zap.ErrorOutput(sink))
}
