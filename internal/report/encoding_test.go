package report

import (
	"strings"
	"testing"
)

func TestEncode_JSON(t *testing.T) {
	r := New()
	r.Set("src/app.js", []Record{Mismatch(2, "b", "x")})
	r.Set("extra.js", []Record{LineNote(3, NoteAdditionalLines)})
	r.Set("foo", []Record{Note(NoteDirectoryOnlyInOriginal)})

	got, err := Encode(r, FormatJSON)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := `{
  "src/app.js": [
    {
      "line": 2,
      "original": "b",
      "deployed": "x"
    }
  ],
  "extra.js": [
    {
      "line": 3,
      "note": "Additional lines in deployed file start here"
    }
  ],
  "foo": [
    {
      "note": "Directory exists in original but not in deployed"
    }
  ]
}`
	if string(got) != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", got, want)
	}
}

func TestEncode_JSONEmpty(t *testing.T) {
	got, err := Encode(New(), FormatJSON)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if string(got) != "{}" {
		t.Errorf("Encode(empty) = %q, want {}", got)
	}
}

func TestEncode_JSONKeepsEmptyDeployedLine(t *testing.T) {
	r := New()
	r.Set("a.md", []Record{Mismatch(4, "last line", "")})

	got, err := Encode(r, FormatJSON)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(string(got), `"deployed": ""`) {
		t.Errorf("empty deployed line missing from output:\n%s", got)
	}
}

func TestEncode_JSONDoesNotEscapeHTML(t *testing.T) {
	r := New()
	r.Set("index.ejs", []Record{Mismatch(1, "<div>&nbsp;</div>", "<div></div>")})

	got, err := Encode(r, FormatJSON)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(string(got), `"original": "<div>&nbsp;</div>"`) {
		t.Errorf("markup should be written verbatim:\n%s", got)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	build := func() *Report {
		r := New()
		r.Set("b", []Record{Note(NoteFileOnlyInDeployed)})
		r.Set("a", []Record{Mismatch(1, "x", "y"), LineNote(2, NoteMissingLines)})
		return r
	}

	first, err := Encode(build(), FormatJSON)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	second, err := Encode(build(), FormatJSON)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("encodings differ:\n%s\n---\n%s", first, second)
	}
}

func TestEncode_YAML(t *testing.T) {
	r := New()
	r.Set("src/app.js", []Record{Mismatch(2, "b", "")})
	r.Set("foo", []Record{Note(NoteDirectoryOnlyInOriginal)})

	got, err := Encode(r, FormatYAML)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	out := string(got)

	for _, part := range []string{
		"src/app.js:",
		"line: 2",
		"original: b",
		`deployed: ""`,
		"note: Directory exists in original but not in deployed",
	} {
		if !strings.Contains(out, part) {
			t.Errorf("YAML output missing %q:\n%s", part, out)
		}
	}
	if strings.Index(out, "src/app.js:") > strings.Index(out, "foo:") {
		t.Errorf("YAML keys out of insertion order:\n%s", out)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
