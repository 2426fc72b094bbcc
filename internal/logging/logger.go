// Package logging provides the structured logger used by the check pipeline,
// the indexer and the HTTP server.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/baditaflorin/l"
	"github.com/luizchimenes/debugae/internal/config"
)

// Logger is a key/value structured logger
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Close() error
}

// stdLogger adapts l.Logger to Logger
type stdLogger struct {
	logger l.Logger
	debug  bool
	file   *os.File
}

// New creates a logger from the log section of the config.
// Output goes to stdout unless a file is configured, in which case it is appended to.
func New(cfg config.LogConfig) (Logger, error) {
	var output io.Writer = os.Stdout
	var file *os.File
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = f
		file = f
	}

	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  cfg.JSON,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,      // 1MB buffer
		MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
		MaxBackups:  5,
		AddSource:   cfg.Debug,
		Metrics:     false,
	})
	if err != nil {
		if file != nil {
			file.Close()
		}
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &stdLogger{logger: logger, debug: cfg.Debug, file: file}, nil
}

// Wrap adapts an existing l.Logger
func Wrap(logger l.Logger, debug bool) Logger {
	return &stdLogger{logger: logger, debug: debug}
}

func (s *stdLogger) Debug(msg string, keysAndValues ...interface{}) {
	if !s.debug {
		return
	}
	s.logger.Debug(msg, keysAndValues...)
}

func (s *stdLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

func (s *stdLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.logger.Warn(msg, keysAndValues...)
}

func (s *stdLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}

// Close flushes pending writes and releases the log file
func (s *stdLogger) Close() error {
	err := s.logger.Close()
	if s.file != nil {
		// l may already have closed its output
		if cerr := s.file.Close(); err == nil && !errors.Is(cerr, os.ErrClosed) {
			err = cerr
		}
	}
	return err
}

type nopLogger struct{}

// Nop returns a logger that discards everything
func Nop() Logger {
	return nopLogger{}
}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Close() error                 { return nil }
