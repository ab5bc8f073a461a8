// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits of the log file.
const (
	MaxSizeMB  = 10
	MaxBackups = 3
	MaxAgeDays = 14
)

// Options selects the level and the destination. With no File, logs go to
// stderr so they never mix with command output on stdout.
type Options struct {
	Level string
	File  string
	JSON  bool
}

// Setup applies opts to the standard logger. The returned closer releases the
// log file, if any.
func Setup(opts Options) (io.Closer, error) {
	level := logrus.InfoLevel
	if opts.Level != "" {
		l, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nopCloser{}, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = l
	}
	logrus.SetLevel(level)

	if opts.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if opts.File == "" {
		logrus.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}

	rotating := NewRotatingFile(opts.File)
	logrus.SetOutput(rotating)
	return rotating, nil
}

// NewRotatingFile is a size-rotated log file.
func NewRotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    MaxSizeMB,
		MaxBackups: MaxBackups,
		MaxAge:     MaxAgeDays,
		Compress:   true,
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
