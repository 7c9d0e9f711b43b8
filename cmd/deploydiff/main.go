package main

import (
	"fmt"
	"io"
	"os"

	"deploydiff/internal/errors"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes err and any suggested fixes for its code.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	for _, fix := range errors.GetSuggestedFixes(errors.CodeOf(err)) {
		if fix.Command != "" {
			fmt.Fprintf(w, "  hint: %s (%s)\n", fix.Description, fix.Command)
			continue
		}
		fmt.Fprintf(w, "  hint: %s\n", fix.Description)
	}
}
