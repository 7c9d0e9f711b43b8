package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"deploydiff/internal/config"
	"deploydiff/internal/errors"
	"deploydiff/internal/paths"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a deploydiff.json with the default settings",
	Long: `Write deploydiff.json to the working directory with every setting at its
default, as a starting point for a project-specific configuration.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing deploydiff.json")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return errors.New(errors.InternalError, "failed to determine working directory", err)
	}

	target := filepath.Join(workDir, config.ConfigName+".json")
	if paths.Exists(target) && !initForce {
		return errors.New(errors.WriteFailed, "config file already exists, use --force to overwrite", nil).WithPath(target)
	}

	written, err := config.DefaultConfig().Save(workDir)
	if err != nil {
		return errors.New(errors.WriteFailed, "failed to write config file", err).WithPath(target)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", written)
	return nil
}
