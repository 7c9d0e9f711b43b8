//go:build cgo

package format

import (
	"context"
	"strings"
	"testing"
)

func formatLayout(t *testing.T, path, src string) string {
	t.Helper()
	out, err := NewLayoutFormatter().Format(context.Background(), path, []byte(src))
	if err != nil {
		t.Fatalf("Format(%s) error = %v", path, err)
	}
	return string(out)
}

func TestLayoutFormatter_CanonicalOutput(t *testing.T) {
	tests := []struct {
		name string
		path string
		src  string
		want string
	}{
		{
			name: "object literal",
			path: "app.js",
			src:  "const x = {a:1,\n        b: 2}",
			want: "const x = {\n  a: 1, b: 2\n};\n",
		},
		{
			name: "typescript interface",
			path: "types.ts",
			src:  "interface P { name: string, age?: number }",
			want: "interface P {\n  name: string;\n  age?: number;\n}\n",
		},
		{
			name: "stylesheet rule",
			path: "site.scss",
			src:  "a:hover,b{color:red}",
			want: "a:hover, b {\n  color: red;\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatLayout(t, tt.path, tt.src); got != tt.want {
				t.Errorf("Format() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestLayoutFormatter_FormattingOnlyDifferences(t *testing.T) {
	tests := []struct {
		name string
		path string
		a    string
		b    string
	}{
		{
			name: "javascript indentation",
			path: "server.js",
			a:    "function start(port) {\n    if (port) {\n        listen(port);\n    }\n}\n",
			b:    "function start(port) {\n\tif (port) {\n\t\tlisten(port);\n\t}\n}",
		},
		{
			name: "javascript blank lines and trailing spaces",
			path: "server.js",
			a:    "const a = 1;   \n\n\n\nconst b = 2;\n",
			b:    "\nconst a = 1;\n\nconst b = 2;\n\n",
		},
		{"argument spacing", "app.js", "foo(a,b);", "foo(a, b);"},
		{"object literal spacing", "app.js", "const o = {a:1};", "const o = { a: 1 };"},
		{"quote style", "app.js", "const s = 'x';", `const s = "x";`},
		{"block layout", "app.js", "if(x){y();}", "if (x) {\n  y();\n}"},
		{"missing semicolon", "app.js", "const x = 1", "const x = 1;"},
		{"arrow body on its own line", "app.js", "const f = (a, b) =>\n  a + b;", "const f = (a, b) => a + b;"},
		{"trailing comma", "app.js", "call(a, b,);", "call(a, b);"},
		{"unary and update operators", "app.js", "i ++; x = - y;", "i++;\nx = -y;"},
		{"statements split across lines", "app.js", "a(); b()", "a();\nb();"},
		{
			name: "typescript spacing",
			path: "index.ts",
			a:    "let n: number   =  1 ;",
			b:    "let n: number = 1;",
		},
		{
			name: "typescript generics and optional members",
			path: "index.ts",
			a:    "type Box<T>={value?:T,label:string}",
			b:    "type Box<T> = {\n  value?: T;\n  label: string;\n};",
		},
		{
			name: "typescript class fields",
			path: "index.ts",
			a:    "class A { x = 1\n  run(): void {} ; }",
			b:    "class A {\n  x = 1;\n  run(): void {}\n}",
		},
		{
			name: "typescript switch",
			path: "index.ts",
			a:    "switch(k){case 1: go(); break; default: stop()}",
			b:    "switch (k) {\n  case 1:\n    go();\n    break;\n  default:\n    stop();\n}",
		},
		{
			name: "tsx component",
			path: "View.tsx",
			a:    "const V = () => <div>\n      hello\n</div>;",
			b:    "const V = () => <div>\n  hello\n</div>;",
		},
		{
			name: "tsx attributes",
			path: "View.tsx",
			a:    "const V = <a href = 'x' id={ y }>go</a>",
			b:    `const V = <a href="x" id={y}>go</a>;`,
		},
		{
			name: "css indentation",
			path: "site.css",
			a:    "a {\n      color: red;\n}\n",
			b:    "a {\n  color: red;\n}",
		},
		{"css rule layout", "site.css", "a{color:red}", "a {\n  color: red;\n}"},
		{"css child combinator", "site.css", "ul>li{margin:0 auto}", "ul > li {\n  margin: 0 auto;\n}"},
		{
			name: "scss nesting",
			path: "site.scss",
			a:    ".nav {\n    a { color: $link; }\n}\n",
			b:    ".nav {\n  a { color: $link; }\n}\n",
		},
		{"less quotes", "site.less", "@import 'base';", `@import "base";`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fa := formatLayout(t, tt.path, tt.a)
			fb := formatLayout(t, tt.path, tt.b)
			if fa != fb {
				t.Errorf("formatted sources differ:\n%q\n%q", fa, fb)
			}
		})
	}
}

func TestLayoutFormatter_RealDifferencesSurvive(t *testing.T) {
	tests := []struct {
		name string
		path string
		a    string
		b    string
	}{
		{"changed literal", "app.js", "const port = 3000;", "const port = 8080;"},
		{"whitespace inside string", "app.js", "const s = 'a  b';", "const s = 'a b';"},
		{"whitespace inside template", "app.js", "const s = `a  ${x}  b`;", "const s = `a ${x} b`;"},
		{"css value", "site.css", "a { color: red; }", "a { color: blue; }"},
		{"descendant selector", "site.css", "a b { color: red; }", "ab { color: red; }"},
		{"comment text", "app.ts", "// retry twice\nrun();", "// retry once\nrun();"},
		{"unary minus pair", "app.js", "x = - -y;", "x = --y;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if formatLayout(t, tt.path, tt.a) == formatLayout(t, tt.path, tt.b) {
				t.Errorf("difference between %q and %q was normalized away", tt.a, tt.b)
			}
		})
	}
}

func TestLayoutFormatter_SyntaxErrors(t *testing.T) {
	tests := []struct {
		path string
		src  string
	}{
		{"broken.js", "const = ;"},
		{"broken.ts", "function (: {"},
		{"broken.css", "a { color: red; "},
		{"notes.txt", "this is just prose, not a program: (see below"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := NewLayoutFormatter().Format(context.Background(), tt.path, []byte(tt.src))
			if err == nil {
				t.Fatal("Format() should reject invalid syntax")
			}
			if !strings.Contains(err.Error(), "syntax error") {
				t.Errorf("error = %v, want a syntax error", err)
			}
		})
	}
}

func TestLayoutFormatter_EmptySource(t *testing.T) {
	if got := formatLayout(t, "empty.js", "\n\n"); got != "" {
		t.Errorf("Format(empty) = %q, want empty", got)
	}
}

func TestIsLayoutAvailable(t *testing.T) {
	if !IsLayoutAvailable() {
		t.Error("IsLayoutAvailable() should be true in cgo builds")
	}
}
