package format

import (
	"strings"
)

type tokenKind int

const (
	tokenPlain tokenKind = iota
	tokenOpener
	tokenCloser
	tokenComment
	tokenVerbatim
)

// spacing overrides the default spacing on one side of a token.
type spacing uint8

const (
	spaceDefault spacing = iota
	spaceNone
	spaceOne
)

// layoutMode selects the spacing rules of the printer.
type layoutMode int

const (
	modeScript layoutMode = iota
	modeStylesheet
)

// token is a leaf of the syntax tree, located by byte offsets into the
// source it was parsed from. Synthetic tokens have start == end.
type token struct {
	text  string
	start int
	end   int
	kind  tokenKind

	before spacing
	after  spacing
	// stmt marks the first token of a statement or member; it always
	// starts a new line.
	stmt bool
}

const indentUnit = "  "

// Script spacing defaults, used when neither token carries an override.
var (
	noSpaceBefore = map[string]bool{",": true, ";": true, ")": true, "]": true, ".": true, "?.": true, ":": true}
	noSpaceAfter  = map[string]bool{"(": true, "[": true, ".": true, "?.": true, "...": true}
)

// fillGaps returns tokens plus plain tokens for any non-whitespace source
// text that no token covers, such as input skipped by error recovery.
// Overlapping tokens are dropped.
func fillGaps(src []byte, tokens []token) []token {
	out := make([]token, 0, len(tokens))
	pos := 0
	for _, tok := range tokens {
		if tok.start < pos {
			continue
		}
		out = appendRaw(out, src, pos, tok.start)
		out = append(out, tok)
		pos = tok.end
	}
	return appendRaw(out, src, pos, len(src))
}

func appendRaw(out []token, src []byte, from, to int) []token {
	for from < to {
		for from < to && isSpace(src[from]) {
			from++
		}
		end := from
		for end < to && !isSpace(src[end]) {
			end++
		}
		if end > from {
			out = append(out, token{text: string(src[from:end]), start: from, end: end, kind: tokenPlain})
		}
		from = end
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

// printLayout re-emits tokens with a canonical layout. Source line breaks
// and indentation are ignored:
//   - a line break follows every non-empty "{" and precedes its "}"
//   - statements, members and comments start on their own line
//   - in stylesheets a line break also follows ";" and "}"
//   - indentation is two spaces per enclosing "{"
//
// Spacing within a line comes from the token overrides, then from the
// script tables or, in stylesheets, from whether the source had any
// whitespace between the two tokens.
func printLayout(src []byte, tokens []token, mode layoutMode) []byte {
	if len(tokens) == 0 {
		return nil
	}

	var lines []string
	var cur strings.Builder
	// One entry per unclosed opener, innermost last: whether it broke
	// the line.
	var open []bool
	depth := 0
	var prev *token

	for i := range tokens {
		tok := &tokens[i]
		if isTrailingComma(tokens, i) {
			continue
		}

		brk := false
		if prev != nil {
			brk = breakBetween(prev, tok, open, mode)
		}
		if tok.kind == tokenCloser && len(open) > 0 {
			if open[len(open)-1] {
				depth--
			}
			open = open[:len(open)-1]
		}

		indent := strings.Repeat(indentUnit, depth)
		switch {
		case prev == nil:
			cur.WriteString(indent)
		case brk:
			lines = appendLine(lines, cur.String())
			cur.Reset()
			cur.WriteString(indent)
		case spaceBetween(src, prev, tok, mode):
			cur.WriteByte(' ')
		}

		if tok.kind == tokenComment {
			cur.WriteString(reindentComment(tok.text, indent))
		} else {
			cur.WriteString(tok.text)
		}

		if tok.kind == tokenOpener {
			broke := tok.text == "{" && !(i+1 < len(tokens) && tokens[i+1].kind == tokenCloser)
			open = append(open, broke)
			if broke {
				depth++
			}
		}
		prev = tok
	}
	lines = appendLine(lines, cur.String())
	if len(lines) == 0 {
		return nil
	}

	return []byte(strings.Join(lines, "\n") + "\n")
}

// appendLine adds line without trailing whitespace. Blank lines are dropped.
func appendLine(lines []string, line string) []string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return lines
	}
	return append(lines, line)
}

// isTrailingComma reports whether tokens[i] is a comma directly before a
// ")" or "}". Commas before "]" are kept since they can be array holes.
func isTrailingComma(tokens []token, i int) bool {
	if tokens[i].text != "," || i+1 >= len(tokens) {
		return false
	}
	next := tokens[i+1]
	return next.kind == tokenCloser && next.text != "]"
}

func breakBetween(prev, tok *token, open []bool, mode layoutMode) bool {
	innermostBroke := len(open) > 0 && open[len(open)-1]
	switch {
	case prev.kind == tokenComment, tok.kind == tokenComment:
		return true
	case tok.stmt:
		return true
	case prev.kind == tokenOpener && innermostBroke:
		return true
	case tok.kind == tokenCloser && innermostBroke:
		return true
	}

	if mode == modeStylesheet {
		switch {
		case prev.kind == tokenCloser && prev.text == "}":
			return true
		case prev.text == ";":
			return len(open) == 0 || innermostBroke
		}
	}
	return false
}

func spaceBetween(src []byte, prev, tok *token, mode layoutMode) bool {
	if mode == modeScript && joinsOperator(prev.text, tok.text) {
		return true
	}
	switch {
	case prev.after == spaceNone, tok.before == spaceNone:
		return false
	case prev.after == spaceOne, tok.before == spaceOne:
		return true
	case prev.kind == tokenOpener && tok.kind == tokenCloser:
		return false
	}

	if mode == modeStylesheet {
		// Tokens cover all non-whitespace source, so any gap is whitespace.
		return tok.start > prev.end && tok.start <= len(src)
	}
	return !noSpaceBefore[tok.text] && !noSpaceAfter[prev.text]
}

// shapeStylesheet sets the spacing of stylesheet punctuation. parent is
// the type of the syntax node holding the token.
func shapeStylesheet(tok *token, parent string) {
	switch tok.text {
	case ":", "::":
		if parent == "pseudo_class_selector" || parent == "pseudo_element_selector" {
			tok.before, tok.after = spaceNone, spaceNone
		} else {
			tok.before, tok.after = spaceNone, spaceOne
		}
	case ",":
		tok.before, tok.after = spaceNone, spaceOne
	case ";":
		tok.before = spaceNone
	case "{":
		tok.before = spaceOne
	case "(":
		tok.after = spaceNone
	case ")":
		tok.before = spaceNone
	case ">", "+", "~":
		switch parent {
		case "child_selector", "adjacent_sibling_selector", "sibling_selector":
			tok.before, tok.after = spaceOne, spaceOne
		}
	}
}

// joinsOperator reports whether printing a and b without a space would
// merge them into a different operator, as in "- -x".
func joinsOperator(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	last := a[len(a)-1]
	return (last == '+' || last == '-') && b[0] == last
}

// normalizeQuotes rewrites a single-quoted literal with double quotes when
// that does not require any escaping.
func normalizeQuotes(text string) string {
	if len(text) < 2 || text[0] != '\'' || text[len(text)-1] != '\'' {
		return text
	}
	inner := text[1 : len(text)-1]
	if strings.ContainsAny(inner, "\"\\") {
		return text
	}
	return "\"" + inner + "\""
}

// reindentComment aligns the continuation lines of a block comment with
// the line the comment starts on.
func reindentComment(text, indent string) string {
	if !strings.Contains(text, "\n") {
		return strings.TrimRight(text, " \t\r")
	}
	parts := strings.Split(text, "\n")
	for i := range parts {
		part := strings.TrimRight(parts[i], " \t\r")
		if i == 0 {
			parts[i] = part
			continue
		}
		trimmed := strings.TrimLeft(part, " \t")
		switch {
		case trimmed == "":
			parts[i] = ""
		case strings.HasPrefix(trimmed, "*"):
			parts[i] = indent + " " + trimmed
		default:
			parts[i] = indent + trimmed
		}
	}
	return strings.Join(parts, "\n")
}
