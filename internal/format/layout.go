//go:build cgo

package format

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// LayoutFormatter parses script and stylesheet sources with tree-sitter
// and reprints their tokens with a canonical layout (see printLayout).
// Comments and literals are printed as written.
type LayoutFormatter struct{}

// NewLayoutFormatter creates a tree-sitter backed layout formatter.
func NewLayoutFormatter() *LayoutFormatter {
	return &LayoutFormatter{}
}

// IsLayoutAvailable reports whether tree-sitter formatting is compiled in.
func IsLayoutAvailable() bool {
	return true
}

// grammar selects the tree-sitter language for path. Strict grammars
// reject sources whose tree contains errors; SCSS and Less are read with
// the CSS grammar, which does not cover their extensions, so they are
// parsed leniently.
func grammar(path string) (lang *sitter.Language, strict bool, mode layoutMode) {
	switch Extension(path) {
	case ".ts":
		return typescript.GetLanguage(), true, modeScript
	case ".tsx":
		return tsx.GetLanguage(), true, modeScript
	case ".css":
		return css.GetLanguage(), true, modeStylesheet
	case ".scss", ".less":
		return css.GetLanguage(), false, modeStylesheet
	default:
		return javascript.GetLanguage(), true, modeScript
	}
}

// Leaves of these types are kept intact even when the grammar gives them
// children, because whitespace inside them is content.
var verbatimNodes = map[string]bool{
	"string":                true,
	"template_string":       true,
	"template_literal_type": true,
	"regex":                 true,
	"string_value":          true,
}

// Format implements Formatter.
func (f *LayoutFormatter) Format(ctx context.Context, path string, src []byte) ([]byte, error) {
	lang, strict, mode := grammar(path)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if strict && root.HasError() {
		return nil, syntaxError(root)
	}

	c := &collector{src: src, mode: mode}
	c.visit(root, "", "")
	return printLayout(src, fillGaps(src, c.out), mode), nil
}

// Children of these nodes are statements or members, one per line.
var statementLists = map[string]bool{
	"program":         true,
	"statement_block": true,
	"class_body":      true,
	"switch_body":     true,
	"object_type":     true,
	"interface_body":  true,
	"enum_body":       true,
}

// Statements that end with a semicolon, inserted when the source relies
// on automatic insertion.
var semicolonStatements = map[string]bool{
	"expression_statement":   true,
	"lexical_declaration":    true,
	"variable_declaration":   true,
	"return_statement":       true,
	"throw_statement":        true,
	"break_statement":        true,
	"continue_statement":     true,
	"import_statement":       true,
	"debugger_statement":     true,
	"do_statement":           true,
	"type_alias_declaration": true,
	"function_signature":     true,
	"import_alias":           true,
	"export_statement":       true,
}

// Class members that end with a semicolon.
var classFields = map[string]bool{
	"public_field_definition":   true,
	"field_definition":          true,
	"method_signature":          true,
	"abstract_method_signature": true,
	"index_signature":           true,
}

// Function nodes whose parameter list hugs the name: f(a) rather than f (a).
var namedParamOwners = map[string]bool{
	"function_declaration":           true,
	"function_expression":            true,
	"function":                       true,
	"generator_function":             true,
	"generator_function_declaration": true,
	"method_definition":              true,
	"method_signature":               true,
	"abstract_method_signature":      true,
	"function_signature":             true,
}

// collector flattens a syntax tree into printer tokens, attaching the
// spacing and line-break hints that depend on the node a leaf belongs to.
type collector struct {
	src  []byte
	mode layoutMode
	out  []token
}

func (c *collector) visit(n *sitter.Node, parent, grand string) {
	if n == nil || n.IsMissing() {
		return
	}

	typ := n.Type()
	if n.ChildCount() == 0 || verbatimNodes[typ] {
		c.leaf(n, typ, parent, grand)
		return
	}
	begin := len(c.out)
	list := statementLists[typ]
	caseBody := false
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		ctyp := child.Type()
		if c.dropped(typ, child) || list && ctyp == "empty_statement" {
			continue
		}

		first := len(c.out)
		c.visit(child, typ, parent)
		if len(c.out) == first {
			continue
		}

		member := child.IsNamed() && !child.IsExtra()
		if member && (list || caseBody && (typ == "switch_case" || typ == "switch_default")) {
			c.out[first].stmt = true
		}
		if member && c.mode == modeScript && needsSemicolon(typ, child) {
			c.ensureSemicolon(first)
		}
		if member && typ == "jsx_element" && i > 0 {
			c.out[first].before = spaceNone
		}
		if ctyp == ":" {
			caseBody = true
		}
	}

	if c.mode == modeScript && semicolonStatements[typ] && !exportsDeclaration(n) {
		c.ensureSemicolon(begin)
	}
	if c.mode == modeStylesheet && typ == "declaration" {
		c.ensureSemicolon(begin)
	}
}

// dropped reports separators that the printer regenerates itself.
func (c *collector) dropped(parent string, child *sitter.Node) bool {
	if child.IsNamed() {
		return false
	}
	switch parent {
	case "class_body", "object_type", "interface_body":
		return child.Type() == ";" || child.Type() == ","
	}
	return false
}

// needsSemicolon reports whether a member of a class or type body is
// terminated with a semicolon.
func needsSemicolon(parent string, child *sitter.Node) bool {
	switch parent {
	case "class_body":
		return classFields[child.Type()]
	case "object_type", "interface_body":
		return true
	}
	return false
}

// exportsDeclaration reports export statements that wrap a declaration,
// such as export function f() {}. The declaration ends itself.
func exportsDeclaration(n *sitter.Node) bool {
	if n.Type() != "export_statement" {
		return false
	}
	return n.ChildByFieldName("declaration") != nil
}

// ensureSemicolon appends a synthetic ";" to the tokens collected since
// index from, unless they already end with one. Trailing comments stay
// after it.
func (c *collector) ensureSemicolon(from int) {
	at := len(c.out)
	for at > from && c.out[at-1].kind == tokenComment {
		at--
	}
	if at == from || c.out[at-1].text == ";" {
		return
	}
	pos := c.out[at-1].end
	semi := token{text: ";", start: pos, end: pos, kind: tokenPlain, before: spaceNone}
	c.out = append(c.out, token{})
	copy(c.out[at+1:], c.out[at:])
	c.out[at] = semi
}

func (c *collector) leaf(n *sitter.Node, typ, parent, grand string) {
	start, end := int(n.StartByte()), int(n.EndByte())
	if end <= start {
		return
	}
	tok := token{text: string(c.src[start:end]), start: start, end: end, kind: tokenKindOf(typ)}

	if typ == "jsx_text" {
		tok.text = collapseJSXText(tok.text)
		if tok.text == "" {
			return
		}
		tok.before, tok.after = spaceNone, spaceNone
	}
	if typ == "string" || typ == "string_value" {
		tok.text = normalizeQuotes(tok.text)
	}

	if c.mode == modeStylesheet {
		shapeStylesheet(&tok, parent)
	} else {
		shapeScript(&tok, n, parent, grand)
	}
	c.out = append(c.out, tok)
}

func shapeScript(tok *token, n *sitter.Node, parent, grand string) {
	text := tok.text
	switch parent {
	case "arguments":
		if text == "(" {
			tok.before = spaceNone
		}
	case "formal_parameters":
		if text == "(" && namedParamOwners[grand] {
			tok.before = spaceNone
		}
	case "subscript_expression":
		if text == "[" {
			tok.before = spaceNone
		}
	case "type_arguments", "type_parameters":
		switch text {
		case "<":
			tok.before, tok.after = spaceNone, spaceNone
		case ">":
			tok.before = spaceNone
		}
	case "unary_expression":
		if !n.IsNamed() && strings.Trim(text, "!~+-") == "" {
			tok.after = spaceNone
		}
	case "update_expression":
		if text == "++" || text == "--" {
			if n.PrevSibling() == nil {
				tok.after = spaceNone
			} else {
				tok.before = spaceNone
			}
		}
	case "non_null_expression":
		if text == "!" {
			tok.before = spaceNone
		}
	case "decorator":
		if text == "@" {
			tok.after = spaceNone
		}
	case "optional_parameter", "property_signature", "public_field_definition", "method_signature", "method_definition":
		if text == "?" {
			tok.before = spaceNone
		}
	case "ternary_expression", "conditional_type":
		if text == ":" {
			tok.before = spaceOne
		}
	case "jsx_opening_element", "jsx_closing_element", "jsx_self_closing_element":
		switch text {
		case "<":
			tok.after = spaceNone
		case "/":
			tok.before, tok.after = spaceNone, spaceNone
		case ">":
			tok.before = spaceNone
		}
	case "jsx_attribute":
		if text == "=" {
			tok.before, tok.after = spaceNone, spaceNone
		}
	case "jsx_expression":
		switch text {
		case "{":
			tok.kind = tokenPlain
			tok.after = spaceNone
		case "}":
			tok.kind = tokenPlain
			tok.before = spaceNone
		}
	}
}

// collapseJSXText collapses whitespace runs in JSX text. Whitespace at
// either end survives as a single space unless it contains a line break,
// which JSX discards.
func collapseJSXText(text string) string {
	body := strings.Join(strings.Fields(text), " ")
	lead := text[:len(text)-len(strings.TrimLeft(text, " \t\r\n"))]
	trail := text[len(strings.TrimRight(text, " \t\r\n")):]
	if body == "" {
		if lead != "" && !strings.Contains(lead, "\n") {
			return " "
		}
		return ""
	}
	if lead != "" && !strings.Contains(lead, "\n") {
		body = " " + body
	}
	if trail != "" && !strings.Contains(trail, "\n") {
		body += " "
	}
	return body
}

func tokenKindOf(typ string) tokenKind {
	switch {
	case typ == "{" || typ == "[" || typ == "(":
		return tokenOpener
	case typ == "}" || typ == "]" || typ == ")":
		return tokenCloser
	case strings.HasSuffix(typ, "comment"):
		return tokenComment
	case verbatimNodes[typ]:
		return tokenVerbatim
	default:
		return tokenPlain
	}
}

// syntaxError describes the first error or missing node in the tree.
func syntaxError(root *sitter.Node) error {
	n := firstErrorNode(root)
	if n == nil {
		return fmt.Errorf("syntax error")
	}
	pos := n.StartPoint()
	if n.IsMissing() {
		return fmt.Errorf("syntax error at line %d, column %d: missing %s", pos.Row+1, pos.Column+1, n.Type())
	}
	return fmt.Errorf("syntax error at line %d, column %d", pos.Row+1, pos.Column+1)
}

func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found := firstErrorNode(n.Child(i)); found != nil {
			return found
		}
	}
	return n
}
