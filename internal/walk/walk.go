// Package walk traverses an original and a deployed directory tree in
// lockstep and collects their differences into a report.
package walk

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"deploydiff/internal/errors"
	"deploydiff/internal/paths"
	"deploydiff/internal/report"
	"deploydiff/internal/slogutil"
)

// FileComparer compares one original file with its deployed counterpart.
type FileComparer interface {
	CompareFiles(ctx context.Context, originalPath, deployedPath string) ([]report.Record, error)
}

// Options configures a Walker.
type Options struct {
	// Jobs bounds how many sibling files are compared at once. Values
	// below 1 mean 1.
	Jobs int
	// Ignore holds doublestar patterns matched against root-relative keys.
	Ignore []string
	Logger *slog.Logger
}

// Walker compares two trees. It holds no per-run state and can be reused.
type Walker struct {
	comparer FileComparer
	jobs     int
	ignore   []string
	logger   *slog.Logger
}

// New creates a walker that compares files with c.
func New(c FileComparer, opts Options) *Walker {
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &Walker{
		comparer: c,
		jobs:     jobs,
		ignore:   opts.Ignore,
		logger:   logger,
	}
}

// run is the state of a single Walk call.
type run struct {
	*Walker
	originalRoot string
	deployedRoot string
	report       *report.Report
	visited      map[[2]string]bool
}

// Walk compares originalRoot against deployedRoot and returns the
// differences. Keys are POSIX paths relative to the roots. Any read,
// format or enumeration failure aborts the walk and no report is returned.
func (w *Walker) Walk(ctx context.Context, originalRoot, deployedRoot string) (*report.Report, error) {
	for _, root := range []string{originalRoot, deployedRoot} {
		isDir, err := paths.IsDir(root)
		if err != nil {
			return nil, errors.New(errors.WalkFailed, "comparison root is not accessible", err).WithPath(root)
		}
		if !isDir {
			return nil, errors.New(errors.WalkFailed, "comparison root is not a directory", nil).WithPath(root)
		}
	}

	r := &run{
		Walker:       w,
		originalRoot: originalRoot,
		deployedRoot: deployedRoot,
		report:       report.New(),
		visited:      make(map[[2]string]bool),
	}

	if err := r.walkDir(ctx, originalRoot, deployedRoot); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.IsCode(err, errors.Canceled) {
			return nil, errors.New(errors.Canceled, "comparison interrupted", ctxErr)
		}
		return nil, err
	}
	r.logger.Debug("Walk finished", "paths", r.report.Len())
	return r.report, nil
}

// entry is a directory entry with its kind resolved through symlinks.
type entry struct {
	name  string
	key   string
	isDir bool
}

func (r *run) walkDir(ctx context.Context, originalDir, deployedDir string) error {
	if err := ctx.Err(); err != nil {
		return errors.New(errors.Canceled, "comparison interrupted", err)
	}

	pair := [2]string{paths.RealPath(originalDir), paths.RealPath(deployedDir)}
	if r.visited[pair] {
		r.logger.Debug("Skipping directory already visited", "original", originalDir, "deployed", deployedDir)
		return nil
	}
	r.visited[pair] = true

	r.logger.Debug("Comparing directory", "original", originalDir, "deployed", deployedDir)

	originals, err := r.readDir(r.originalRoot, originalDir)
	if err != nil {
		return err
	}

	// Whether each entry has a deployed counterpart is decided once, here.
	// The report reflects that decision even if the deployed tree changes
	// while the walk runs.
	counterpart := make([]bool, len(originals))
	for i, e := range originals {
		counterpart[i] = paths.Exists(filepath.Join(deployedDir, e.name))
	}

	// Compare files whose counterpart exists first, so they can run in
	// parallel; results are inserted below in entry order.
	results := make([][]report.Record, len(originals))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)
	for i, e := range originals {
		if e.isDir || !counterpart[i] {
			continue
		}
		originalPath := filepath.Join(originalDir, e.name)
		deployedPath := filepath.Join(deployedDir, e.name)
		g.Go(func() error {
			records, err := r.comparer.CompareFiles(gctx, originalPath, deployedPath)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, e := range originals {
		if err := ctx.Err(); err != nil {
			return errors.New(errors.Canceled, "comparison interrupted", err)
		}

		switch {
		case e.isDir && counterpart[i]:
			if err := r.walkDir(ctx, filepath.Join(originalDir, e.name), filepath.Join(deployedDir, e.name)); err != nil {
				return err
			}
		case e.isDir:
			r.report.Set(e.key, []report.Record{report.Note(report.NoteDirectoryOnlyInOriginal)})
		case counterpart[i]:
			if len(results[i]) > 0 {
				r.logger.Debug("Differences found", slogutil.PathKey, e.key, "records", len(results[i]))
			}
			r.report.Set(e.key, results[i])
		default:
			r.report.Set(e.key, []report.Record{report.Note(report.NoteFileOnlyInOriginal)})
		}
	}

	deployed, err := r.readDir(r.deployedRoot, deployedDir)
	if err != nil {
		return err
	}
	for _, e := range deployed {
		if paths.Exists(filepath.Join(originalDir, e.name)) {
			continue
		}
		note := report.NoteFileOnlyInDeployed
		if e.isDir {
			note = report.NoteDirectoryOnlyInDeployed
		}
		r.report.Set(e.key, []report.Record{report.Note(note)})
	}

	return nil
}

// readDir lists dir sorted by name, dropping ignored entries.
func (r *run) readDir(root, dir string) ([]entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.New(errors.WalkFailed, "failed to read directory", err).WithPath(dir)
	}

	entries := make([]entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		full := filepath.Join(dir, de.Name())
		key, err := paths.RelativeKey(root, full)
		if err != nil {
			return nil, errors.New(errors.InternalError,
				fmt.Sprintf("path escapes root %s", root), err).WithPath(full)
		}
		if r.ignored(key) {
			r.logger.Debug("Ignoring path", slogutil.PathKey, key)
			continue
		}

		isDir := de.IsDir()
		if de.Type()&os.ModeSymlink != 0 {
			// Dangling links stay files and fail when read.
			isDir, _ = paths.IsDir(full)
		}
		entries = append(entries, entry{name: de.Name(), key: key, isDir: isDir})
	}
	return entries, nil
}

func (r *run) ignored(key string) bool {
	for _, pattern := range r.ignore {
		if ok, err := doublestar.Match(pattern, key); err == nil && ok {
			return true
		}
	}
	return false
}
