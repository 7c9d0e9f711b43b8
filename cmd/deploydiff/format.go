package main

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"deploydiff/internal/format"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, outFormat OutputFormat) (string, error) {
	switch outFormat {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", outFormat)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *DialectsResponseCLI:
		return formatDialectsHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatDialectsHuman(resp *DialectsResponseCLI) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%-10s %-12s %s\n", "EXTENSION", "DIALECT", "HANDLING")
	for _, m := range resp.Extensions {
		fmt.Fprintf(&b, "%-10s %-12s %s\n", m.Extension, m.Dialect, handling(m))
	}
	fmt.Fprintf(&b, "%-10s %-12s %s\n", "(other)", resp.Default, "formatted")

	if !resp.LayoutAvailable {
		b.WriteString("\nThis build has no cgo support: javascript and css use esbuild; typescript, scss and less cannot be normalized.\n")
	}
	return b.String(), nil
}

func handling(m format.Mapping) string {
	if m.Exempt {
		return "compared verbatim"
	}
	return "formatted"
}
