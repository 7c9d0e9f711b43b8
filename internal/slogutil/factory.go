package slogutil

import (
	"io"
	"log/slog"

	"deploydiff/internal/config"
)

// LoggerFactory creates the loggers for a run and owns the files they write to.
// Level precedence: CLI flags > configured level > warn.
type LoggerFactory struct {
	config   *config.Config
	cliLevel slog.Level
	cliSet   bool
	closers  []io.Closer
}

// NewLoggerFactory creates a new logger factory. verbosity and quiet are
// the -v and -q flags; when neither is given the configured level applies.
func NewLoggerFactory(cfg *config.Config, verbosity int, quiet bool) *LoggerFactory {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	f := &LoggerFactory{config: cfg}
	if quiet || verbosity > 0 {
		f.cliLevel = LevelFromVerbosity(verbosity, quiet)
		f.cliSet = true
	}
	return f
}

// RunLogger creates the logger for a comparison run. It writes to stderr
// and, when logging.file is configured, tees the same lines into that file.
func (f *LoggerFactory) RunLogger(stderr io.Writer) (*slog.Logger, error) {
	level := f.effectiveLevel()
	logger := NewLogger(stderr, level)
	if f.config.Logging.File == "" {
		return logger, nil
	}

	fileLogger, file, err := NewFileLogger(f.config.Logging.File, level)
	if err != nil {
		return nil, err
	}
	f.closers = append(f.closers, file)

	return slog.New(NewTeeHandler(logger.Handler(), fileLogger.Handler())), nil
}

// effectiveLevel returns the level for the run logger.
func (f *LoggerFactory) effectiveLevel() slog.Level {
	// CLI flags take highest precedence
	if f.cliSet {
		return f.cliLevel
	}
	if f.config.Logging.Level != "" {
		return LevelFromString(f.config.Logging.Level)
	}
	return slog.LevelWarn
}

// Close closes all open log files.
func (f *LoggerFactory) Close() error {
	var firstErr error
	for _, c := range f.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	f.closers = nil
	return firstErr
}
