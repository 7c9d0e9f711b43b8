package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"deploydiff/internal/compare"
	"deploydiff/internal/config"
	"deploydiff/internal/format"
	"deploydiff/internal/report"
	"deploydiff/internal/slogutil"
	"deploydiff/internal/walk"
)

// compareRun is everything a comparison needs once configuration is resolved.
type compareRun struct {
	Paths  config.Paths
	Format report.Format
	Jobs   int
	Ignore []string
}

// runCompare walks both trees and writes the report. Nothing is written
// when the walk fails.
func runCompare(ctx context.Context, run compareRun, logger *slog.Logger) (report.Summary, error) {
	logger = logger.With(slogutil.RunKey, uuid.New().String())
	start := time.Now()

	logger.Info("Starting comparison",
		"original", run.Paths.Original,
		"deployed", run.Paths.Deployed,
		"jobs", run.Jobs,
	)
	if !format.IsLayoutAvailable() {
		logger.Warn("Built without cgo: typescript, scss and less files will fail to normalize")
	}

	w := walk.New(compare.New(format.DefaultNormalizer()), walk.Options{
		Jobs:   run.Jobs,
		Ignore: run.Ignore,
		Logger: logger,
	})
	r, err := w.Walk(ctx, run.Paths.Original, run.Paths.Deployed)
	if err != nil {
		return report.Summary{}, err
	}

	if err := report.Write(r, run.Paths.Output, run.Format); err != nil {
		return report.Summary{}, err
	}

	if r.Empty() {
		logger.Info("No differences found")
	}
	summary := r.Summary()
	logger.Info("Comparison finished",
		"output", run.Paths.Output,
		"paths", summary.Paths,
		"lineMismatches", summary.LineMismatches,
		"structuralNotes", summary.StructuralNotes,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return summary, nil
}
