// Package logging builds the process logger.
//
// Everything goes to stderr: stdout belongs to the MCP stdio transport
// and any stray byte there corrupts the protocol stream.
package logging

import (
	"io"
	"log"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// Options controls the logger's level, format and destination.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// New returns a configured logrus logger.
func New(opts Options) (*logrus.Logger, error) {
	l := logrus.New()

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	l.SetOutput(out)

	level := opts.Level
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing log level %q", level)
	}
	l.SetLevel(lvl)

	switch opts.Format {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, errors.Newf("unknown log format %q", opts.Format)
	}

	return l, nil
}

// StdLogger adapts l to a standard library *log.Logger at error level,
// for components (like the MCP stdio server) that only accept one.
func StdLogger(l *logrus.Logger) *log.Logger {
	return log.New(l.WriterLevel(logrus.ErrorLevel), "", 0)
}
