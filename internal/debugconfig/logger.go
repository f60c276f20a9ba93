package debugconfig

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// NewLogger builds a zap.Logger from the Logger block: console or JSON
// encoding, level parsed from the configured string (defaulting to
// info), caller/stacktrace disabled since this is a short-lived CLI
// process rather than a long-running service. Timestamps are only
// emitted when stdout is a terminal, matching the convention that piped
// output stays greppable without a repeated clock column.
func NewLogger(l Logger) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if l.LogLevel != "" {
		parsed, err := zapcore.ParseLevel(l.LogLevel)
		if err != nil {
			return nil, err
		}
		level = parsed
	}
	encoding := "console"
	if l.LogEncoding != "" {
		encoding = l.LogEncoding
	}

	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.Encoding = encoding
	cc.Level = zap.NewAtomicLevelAt(level)
	cc.Sampling = nil
	cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	if term.IsTerminal(int(os.Stdout.Fd())) {
		cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cc.EncoderConfig.EncodeTime = func(time.Time, zapcore.PrimitiveArrayEncoder) {}
	}
	if l.LogPath != "" {
		cc.OutputPaths = []string{l.LogPath}
	}

	return cc.Build()
}
