// Package logger holds the process-wide structured logger.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. It writes text to stderr at info level until
// Configure is called.
var Log = logrus.New()

// Configure sets the level and destination of Log. An empty level keeps the
// current one; a nil out discards all output.
func Configure(level string, out io.Writer) error {
	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("parse log level: %w", err)
		}
		Log.SetLevel(lvl)
	}
	if out == nil {
		out = io.Discard
	}
	Log.SetOutput(out)
	Log.SetFormatter(&logrus.TextFormatter{
		DisableColors: out != os.Stderr && out != os.Stdout,
		FullTimestamp: true,
	})
	return nil
}

// OpenFile opens path for appending log lines. An empty path yields a nil
// writer, which Configure treats as discard.
func OpenFile(path string) (io.WriteCloser, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
