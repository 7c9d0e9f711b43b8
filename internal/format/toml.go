package format

import (
	"bytes"
	"context"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
)

// TOMLFormatter decodes a TOML document and encodes it again with
// indented sub-tables.
type TOMLFormatter struct{}

// Format implements Formatter.
func (TOMLFormatter) Format(_ context.Context, _ string, src []byte) ([]byte, error) {
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, nil
	}

	var doc map[string]interface{}
	if err := toml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).SetIndentTables(true).Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
