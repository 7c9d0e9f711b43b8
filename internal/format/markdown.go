package format

import (
	"bytes"
	"context"
	"fmt"

	markdownfmt "github.com/Kunde21/markdownfmt/v3"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownFormatter parses a document with goldmark and renders it back
// with markdownfmt, so heading style, emphasis delimiters, list markers
// and blank-line runs all come out in one canonical form. List markers
// are fixed before rendering: "-" for bullets and "." for ordered items.
type MarkdownFormatter struct{}

// Format implements Formatter.
func (MarkdownFormatter) Format(ctx context.Context, _ string, src []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	md := markdownfmt.NewGoldmark()
	doc := md.Parser().Parse(text.NewReader(src))
	if err := ast.Walk(doc, canonicalListMarkers); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, src, doc); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	out := bytes.TrimRight(buf.Bytes(), "\n")
	if len(bytes.TrimSpace(out)) == 0 {
		return nil, nil
	}
	return append(out, '\n'), nil
}

func canonicalListMarkers(n ast.Node, entering bool) (ast.WalkStatus, error) {
	if list, ok := n.(*ast.List); ok && entering {
		if list.IsOrdered() {
			list.Marker = '.'
		} else {
			list.Marker = '-'
		}
	}
	return ast.WalkContinue, nil
}
