// Package format normalizes file content before comparison so that
// formatting-only differences do not show up as changed lines.
package format

import (
	"path/filepath"
	"sort"
	"strings"
)

// Dialect identifies the formatting rules applied to a file.
type Dialect string

const (
	DialectScript     Dialect = "script"
	DialectTypeScript Dialect = "typescript"
	DialectJSON       Dialect = "json"
	DialectHTML       Dialect = "html"
	DialectCSS        Dialect = "css"
	DialectSCSS       Dialect = "scss"
	DialectLess       Dialect = "less"
	DialectMarkdown   Dialect = "markdown"
	DialectYAML       Dialect = "yaml"
	DialectTOML       Dialect = "toml"
)

// DefaultDialect is used for extensions missing from the table.
const DefaultDialect = DialectScript

var extensionDialects = map[string]Dialect{
	".js":   DialectScript,
	".jsx":  DialectScript,
	".ts":   DialectTypeScript,
	".tsx":  DialectTypeScript,
	".json": DialectJSON,
	".html": DialectHTML,
	".ejs":  DialectHTML,
	".css":  DialectCSS,
	".scss": DialectSCSS,
	".less": DialectLess,
	".md":   DialectMarkdown,
	".yaml": DialectYAML,
	".yml":  DialectYAML,
	".toml": DialectTOML,
}

// Markup and templated markup are compared verbatim: templating syntax
// cannot be parsed safely as markup.
var exemptExtensions = map[string]bool{
	".html": true,
	".ejs":  true,
}

// Mapping is one row of the extension table.
type Mapping struct {
	Extension string  `json:"extension"`
	Dialect   Dialect `json:"dialect"`
	Exempt    bool    `json:"exempt"`
}

// Extension returns the lower-cased extension of path.
func Extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// DialectFor returns the dialect for path's extension.
func DialectFor(path string) Dialect {
	if d, ok := extensionDialects[Extension(path)]; ok {
		return d
	}
	return DefaultDialect
}

// IsExempt reports whether path is compared without normalization.
func IsExempt(path string) bool {
	return exemptExtensions[Extension(path)]
}

// Table returns the extension table sorted by extension.
func Table() []Mapping {
	rows := make([]Mapping, 0, len(extensionDialects))
	for ext, d := range extensionDialects {
		rows = append(rows, Mapping{Extension: ext, Dialect: d, Exempt: exemptExtensions[ext]})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Extension < rows[j].Extension
	})
	return rows
}
