package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"deploydiff/internal/format"
)

var dialectsFormat string

var dialectsCmd = &cobra.Command{
	Use:   "dialects",
	Short: "Show how each file extension is normalized",
	Long: `Show the extension table used to pick a formatter for each file.

Extensions missing from the table are normalized as script.

Examples:
  deploydiff dialects
  deploydiff dialects --format json`,
	Args: cobra.NoArgs,
	RunE: runDialects,
}

func init() {
	dialectsCmd.Flags().StringVar(&dialectsFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(dialectsCmd)
}

// DialectsResponseCLI is the output of the dialects command.
type DialectsResponseCLI struct {
	Extensions      []format.Mapping `json:"extensions"`
	Default         format.Dialect   `json:"default"`
	LayoutAvailable bool             `json:"layoutAvailable"`
}

func runDialects(cmd *cobra.Command, args []string) error {
	resp := &DialectsResponseCLI{
		Extensions:      format.Table(),
		Default:         format.DefaultDialect,
		LayoutAvailable: format.IsLayoutAvailable(),
	}

	out, err := FormatResponse(resp, OutputFormat(dialectsFormat))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
