// Package logger keeps a logrus entry in the context so every layer of a
// conversion logs with the fields of the document it is working on.
package logger

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	// G is a shorthand for GetLogger
	G = GetLogger
	// L is the global entry used when the context carries none
	L = logrus.NewEntry(newLogger())
)

type loggerKey struct{}

// WithLogger returns a context carrying the entry
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger.WithContext(ctx))
}

// GetLogger returns the entry stored in ctx, or L
func GetLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(loggerKey{})
	if logger == nil {
		return L.WithContext(ctx)
	}
	return logger.(*logrus.Entry)
}

// WithFields returns a context whose logger carries the extra fields
func WithFields(ctx context.Context, fields logrus.Fields) context.Context {
	return WithLogger(ctx, G(ctx).WithFields(fields))
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.Formatter = formatters["text"]()
	return l
}

var formatters = map[string]func() logrus.Formatter{
	"text": func() logrus.Formatter {
		return &logrus.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
			FullTimestamp:   true,
		}
	},
	"json": func() logrus.Formatter {
		return &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "logLevel",
				logrus.FieldKeyMsg:   "message",
			},
			TimestampFormat: time.RFC3339Nano,
		}
	},
}

// SetLogLevel sets the level of the global logger
func SetLogLevel(level string) error {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	L.Logger.SetLevel(logLevel)
	return nil
}

// SetLogFormat sets the format of the global logger, json or text
func SetLogFormat(format string) error {
	newFormatter, ok := formatters[format]
	if !ok {
		return errors.Errorf("invalid log format %q: expected text or json", format)
	}
	L.Logger.SetFormatter(newFormatter())
	return nil
}

// SetLogOutput sets the output of the global logger
func SetLogOutput(w io.Writer) {
	L.Logger.SetOutput(w)
}
