package logger

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options control how verbose the logger is.
type Options struct {
	// Format is "console" or "json".
	Format  string
	Verbose bool
	Quiet   bool
}

// Level returns the minimum level logged for the options. Verbose wins over
// quiet.
func (o Options) Level() zapcore.Level {
	switch {
	case o.Verbose:
		return zapcore.DebugLevel
	case o.Quiet:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) (*zap.Logger, error) {
	var encoder zapcore.Encoder
	switch opts.Format {
	case "", "console":
		cfg := zap.NewDevelopmentEncoderConfig()
		// No timestamps so output is reproducible.
		cfg.TimeKey = ""
		encoder = zapcore.NewConsoleEncoder(cfg)
	case "json":
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), opts.Level())
	return zap.New(core), nil
}
