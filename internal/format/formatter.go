package format

import (
	"context"
	"fmt"
	"strings"

	"deploydiff/internal/errors"
)

// Formatter rewrites source into a canonical layout. path is passed for
// formatters whose grammar depends on the exact extension.
type Formatter interface {
	Format(ctx context.Context, path string, src []byte) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(ctx context.Context, path string, src []byte) ([]byte, error)

// Format calls f.
func (f FormatterFunc) Format(ctx context.Context, path string, src []byte) ([]byte, error) {
	return f(ctx, path, src)
}

// Identity returns content unchanged.
var Identity = FormatterFunc(func(_ context.Context, _ string, src []byte) ([]byte, error) {
	return src, nil
})

// Normalizer turns file content into the line sequence used for comparison.
type Normalizer struct {
	formatters map[Dialect]Formatter
}

// NewNormalizer creates a normalizer with the given formatters. Dialects
// without a formatter fail to normalize.
func NewNormalizer(formatters map[Dialect]Formatter) *Normalizer {
	n := &Normalizer{formatters: make(map[Dialect]Formatter, len(formatters))}
	for d, f := range formatters {
		n.formatters[d] = f
	}
	return n
}

// DefaultNormalizer registers the built-in formatter for every dialect.
// Without cgo, JavaScript and CSS fall back to esbuild; TypeScript, SCSS
// and Less have no fallback and fail to format.
func DefaultNormalizer() *Normalizer {
	layout := NewLayoutFormatter()
	var script, stylesheet Formatter = layout, layout
	if !IsLayoutAvailable() {
		script, stylesheet = EsbuildFormatter{}, EsbuildFormatter{}
	}
	return NewNormalizer(map[Dialect]Formatter{
		DialectScript:     script,
		DialectTypeScript: layout,
		DialectCSS:        stylesheet,
		DialectSCSS:       layout,
		DialectLess:       layout,
		DialectJSON:       JSONFormatter{},
		DialectYAML:       YAMLFormatter{},
		DialectTOML:       TOMLFormatter{},
		DialectMarkdown:   MarkdownFormatter{},
	})
}

// Register sets the formatter for a dialect, replacing any existing one.
func (n *Normalizer) Register(d Dialect, f Formatter) {
	n.formatters[d] = f
}

// Normalize returns content as an ordered sequence of lines. Exempt
// extensions are split verbatim; everything else goes through the
// dialect's formatter first. A formatter failure is returned as is:
// there is no fallback to the raw lines.
func (n *Normalizer) Normalize(ctx context.Context, path string, content []byte) ([]string, error) {
	if IsExempt(path) {
		return SplitLines(content), nil
	}

	dialect := DialectFor(path)
	f, ok := n.formatters[dialect]
	if !ok {
		return nil, errors.New(errors.FormatFailed,
			fmt.Sprintf("no formatter registered for dialect %s", dialect), nil).WithPath(path)
	}

	formatted, err := f.Format(ctx, path, content)
	if err != nil {
		return nil, errors.New(errors.FormatFailed,
			fmt.Sprintf("%s formatter rejected content", dialect), err).WithPath(path)
	}
	return SplitLines(formatted), nil
}

// SplitLines splits on "\n" only. A trailing newline yields a final empty
// element and "\r" is kept as part of the line.
func SplitLines(content []byte) []string {
	return strings.Split(string(content), "\n")
}
