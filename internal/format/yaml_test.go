package format

import (
	"context"
	"strings"
	"testing"
)

func TestYAMLFormatter_Indentation(t *testing.T) {
	wide := "server:\n    port: 8080\n    hosts:\n        - a\n        - b\n"
	narrow := "server:\n  port: 8080\n  hosts:\n  - a\n  - b\n"

	fw, err := YAMLFormatter{}.Format(context.Background(), "c.yaml", []byte(wide))
	if err != nil {
		t.Fatalf("Format(wide) error = %v", err)
	}
	fn, err := YAMLFormatter{}.Format(context.Background(), "c.yaml", []byte(narrow))
	if err != nil {
		t.Fatalf("Format(narrow) error = %v", err)
	}
	if string(fw) != string(fn) {
		t.Errorf("formatted documents differ:\n%s\n---\n%s", fw, fn)
	}
	if !strings.HasPrefix(string(fw), "server:\n  port: 8080\n") {
		t.Errorf("unexpected layout:\n%s", fw)
	}
}

func TestYAMLFormatter_KeepsKeyOrder(t *testing.T) {
	got, err := YAMLFormatter{}.Format(context.Background(), "c.yml", []byte("z: 1\na: 2\n"))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if string(got) != "z: 1\na: 2\n" {
		t.Errorf("Format() = %q", got)
	}
}

func TestYAMLFormatter_MultipleDocuments(t *testing.T) {
	got, err := YAMLFormatter{}.Format(context.Background(), "c.yaml", []byte("a: 1\n---\nb:   2\n"))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	out := string(got)
	if !strings.Contains(out, "a: 1") || !strings.Contains(out, "b: 2") || !strings.Contains(out, "---") {
		t.Errorf("Format() = %q", out)
	}
}

func TestYAMLFormatter_Rejects(t *testing.T) {
	if _, err := (YAMLFormatter{}).Format(context.Background(), "c.yaml", []byte("a: [1, 2\n")); err == nil {
		t.Error("unterminated flow sequence should fail")
	}
}

func TestYAMLFormatter_Empty(t *testing.T) {
	got, err := YAMLFormatter{}.Format(context.Background(), "c.yaml", []byte("\n\n"))
	if err != nil || len(got) != 0 {
		t.Errorf("Format(empty) = %q, %v", got, err)
	}
}
