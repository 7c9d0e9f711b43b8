// Package compare normalizes a pair of files and compares them line by
// line, by position.
package compare

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"deploydiff/internal/errors"
	"deploydiff/internal/report"
)

// Normalizer turns file content into the line sequence that gets compared.
type Normalizer interface {
	Normalize(ctx context.Context, path string, content []byte) ([]string, error)
}

// Comparator compares an original file against its deployed counterpart.
type Comparator struct {
	normalizer Normalizer
	readFile   func(string) ([]byte, error)
}

// New creates a comparator that normalizes both sides with n.
func New(n Normalizer) *Comparator {
	return &Comparator{
		normalizer: n,
		readFile:   os.ReadFile,
	}
}

// CompareFiles reads and normalizes both files, then compares the results.
// An empty result means the files are equivalent after normalization.
func (c *Comparator) CompareFiles(ctx context.Context, originalPath, deployedPath string) ([]report.Record, error) {
	var original, deployed []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lines, err := c.load(gctx, originalPath)
		original = lines
		return err
	})
	g.Go(func() error {
		lines, err := c.load(gctx, deployedPath)
		deployed = lines
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return CompareLines(original, deployed), nil
}

func (c *Comparator) load(ctx context.Context, path string) ([]string, error) {
	content, err := c.readFile(path)
	if err != nil {
		return nil, errors.New(errors.ReadFailed, "failed to read file", err).WithPath(path)
	}
	return c.normalizer.Normalize(ctx, path, content)
}

// CompareLines compares two normalized line sequences by index.
//
// Every original line that differs from the deployed line at the same
// index becomes a mismatch; a missing deployed line compares as "". A
// length difference then adds exactly one trailing note: additional lines
// at len(original)+1, or missing lines at len(deployed)+1.
func CompareLines(original, deployed []string) []report.Record {
	var records []report.Record

	for i, line := range original {
		var other string
		if i < len(deployed) {
			other = deployed[i]
		}
		if line != other {
			records = append(records, report.Mismatch(i+1, line, other))
		}
	}

	switch {
	case len(deployed) > len(original):
		records = append(records, report.LineNote(len(original)+1, report.NoteAdditionalLines))
	case len(deployed) < len(original):
		records = append(records, report.LineNote(len(deployed)+1, report.NoteMissingLines))
	}

	return records
}
