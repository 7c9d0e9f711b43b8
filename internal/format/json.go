package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// JSONFormatter re-encodes a JSON document with two-space indentation.
// Object keys are written in sorted order and numbers keep their literal
// form.
type JSONFormatter struct{}

// Format implements Formatter.
func (JSONFormatter) Format(_ context.Context, _ string, src []byte) ([]byte, error) {
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(src))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	var extra interface{}
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, fmt.Errorf("invalid JSON: unexpected data after top-level value")
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
