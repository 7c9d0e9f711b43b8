//go:build !cgo

package format

import (
	"context"
	stderrors "errors"
)

// ErrNoCGO is returned when tree-sitter formatting is unavailable due to missing CGO.
var ErrNoCGO = stderrors.New("typescript, scss and less formatting requires CGO (tree-sitter)")

// LayoutFormatter is a stub for non-CGO builds.
type LayoutFormatter struct{}

// NewLayoutFormatter creates the stub formatter.
func NewLayoutFormatter() *LayoutFormatter {
	return &LayoutFormatter{}
}

// IsLayoutAvailable returns false when CGO is disabled.
func IsLayoutAvailable() bool {
	return false
}

// Format always fails with ErrNoCGO.
func (f *LayoutFormatter) Format(ctx context.Context, path string, src []byte) ([]byte, error) {
	return nil, ErrNoCGO
}
