package format

import (
	"context"
	"strings"
	"testing"
)

func formatMarkdown(t *testing.T, src string) string {
	t.Helper()
	out, err := MarkdownFormatter{}.Format(context.Background(), "README.md", []byte(src))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	return string(out)
}

func TestMarkdownFormatter_FormattingOnlyDifferences(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{"setext heading", "Title\n=====\n", "# Title\n"},
		{"closed atx heading", "##   Install ##\n", "## Install\n"},
		{"emphasis delimiters", "*em* and __b__\n", "_em_ and **b**\n"},
		{"ordered list delimiter", "1) one\n2) two\n", "1. one\n2. two\n"},
		{"bullet markers", "* one\n+ two\n", "- one\n- two\n"},
		{"nested bullets", "* one\n  * nested\n", "- one\n  - nested\n"},
		{"blank lines and trailing spaces", "\n\n# Title   \n\n\n\nText  \n\n", "# Title\n\nText\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fa := formatMarkdown(t, tt.a)
			fb := formatMarkdown(t, tt.b)
			if fa != fb {
				t.Errorf("formatted documents differ:\n%q\n%q", fa, fb)
			}
		})
	}
}

func TestMarkdownFormatter_RealDifferencesSurvive(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{"paragraph text", "Runs jobs.\n", "Runs builds.\n"},
		{"heading level", "# Title\n", "## Title\n"},
		{"emphasis strength", "*word*\n", "**word**\n"},
		{"list kind", "- one\n", "1. one\n"},
		{"code block content", "```\nx  = 1\n```\n", "```\nx = 1\n```\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if formatMarkdown(t, tt.a) == formatMarkdown(t, tt.b) {
				t.Errorf("difference between %q and %q was normalized away", tt.a, tt.b)
			}
		})
	}
}

func TestMarkdownFormatter_FencedCodeIsKept(t *testing.T) {
	got := formatMarkdown(t, "```js\n*  not a bullet\n```\n* bullet")
	if !strings.Contains(got, "*  not a bullet\n") {
		t.Errorf("code block was rewritten:\n%s", got)
	}
	if !strings.HasSuffix(got, "\n") || strings.HasSuffix(got, "\n\n") {
		t.Errorf("output should end with exactly one newline: %q", got)
	}
}

func TestMarkdownFormatter_Empty(t *testing.T) {
	if got := formatMarkdown(t, "  \n\n"); got != "" {
		t.Errorf("Format(blank) = %q, want empty", got)
	}
}

func TestMarkdownFormatter_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (MarkdownFormatter{}).Format(ctx, "README.md", []byte("# x")); err == nil {
		t.Error("Format() should fail on a canceled context")
	}
}
