package main

import (
	"io"
	"log/slog"

	"deploydiff/internal/config"
	"deploydiff/internal/errors"
	"deploydiff/internal/slogutil"
)

// newLogger builds the run logger. -q and -v win over the configured
// level; a configured log file receives the same lines as stderr.
func newLogger(cfg *config.Config, verbosity int, quiet bool, stderr io.Writer) (*slog.Logger, func(), error) {
	factory := slogutil.NewLoggerFactory(cfg, verbosity, quiet)
	logger, err := factory.RunLogger(stderr)
	if err != nil {
		return nil, nil, errors.New(errors.ConfigInvalid, "failed to open log file", err).WithPath(cfg.Logging.File)
	}
	return logger, func() { _ = factory.Close() }, nil
}
