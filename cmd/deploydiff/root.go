package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"deploydiff/internal/config"
	"deploydiff/internal/errors"
	"deploydiff/internal/paths"
	"deploydiff/internal/report"
	"deploydiff/internal/version"
)

var (
	configFlag       string
	originalFlag     string
	deployedFlag     string
	outputFlag       string
	reportFormatFlag string
	jobsFlag         int
	ignoreFlag       []string
	verboseFlag      int
	quietFlag        bool
)

var rootCmd = &cobra.Command{
	Use:   "deploydiff",
	Short: "Compare an original source tree with its deployed copy",
	Long: `deploydiff walks an original and a deployed directory tree side by side and
reports every file that differs after formatting normalization, plus files and
directories that exist on only one side.

Without flags the trees personalJiraMiner and deployedJiraMiner next to the
executable are compared and differences.json is written to the current directory.

Examples:
  deploydiff
  deploydiff --original ./src --deployed /srv/app --output diff.json
  deploydiff --ignore node_modules --ignore '**/*.log' -j 4 -v`,
	Version:       version.Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.SetVersionTemplate("deploydiff version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"Config file (default: deploydiff.{json,yaml,toml} in the working directory)")
	rootCmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress all log output")

	addCompareFlags(rootCmd)
}

func addCompareFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&originalFlag, "original", "", "Original tree (default: personalJiraMiner next to the executable)")
	flags.StringVar(&deployedFlag, "deployed", "", "Deployed tree (default: deployedJiraMiner next to the executable)")
	flags.StringVarP(&outputFlag, "output", "o", config.DefaultOutput, "Report file")
	flags.StringVar(&reportFormatFlag, "report-format", "json", "Report format: json or yaml")
	flags.IntVarP(&jobsFlag, "jobs", "j", 1, "Files compared in parallel within a directory")
	flags.StringArrayVar(&ignoreFlag, "ignore", nil, "Glob of root-relative paths to skip (repeatable)")
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, verboseFlag, quietFlag, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	toolDir, err := paths.ToolDir()
	if err != nil {
		return errors.New(errors.InternalError, "failed to locate executable", err)
	}
	workDir, err := os.Getwd()
	if err != nil {
		return errors.New(errors.InternalError, "failed to determine working directory", err)
	}

	reportFormat, err := report.ParseFormat(cfg.ReportFormat)
	if err != nil {
		return errors.New(errors.ConfigInvalid, "invalid report format", err)
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := compareRun{
		Paths:  cfg.ResolvePaths(toolDir, workDir),
		Format: reportFormat,
		Jobs:   cfg.Jobs,
		Ignore: cfg.Ignore,
	}
	if _, err := runCompare(ctx, run, logger); err != nil {
		logger.Error("Comparison failed", "error", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Comparison complete! Check the %s file for results.\n", cfg.Output)
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig reads the config file and environment, then applies the
// flags the user set. Precedence: flag > DEPLOYDIFF_* env > config file > default.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, errors.New(errors.InternalError, "failed to determine working directory", err)
	}

	cfg, err := config.LoadConfig(workDir, configFlag)
	if err != nil {
		return nil, errors.New(errors.ConfigInvalid, "failed to load configuration", err).WithPath(configFlag)
	}

	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, errors.New(errors.ConfigInvalid, "invalid configuration", err)
	}
	return cfg, nil
}

// applyFlags copies explicitly set flags over cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("original") {
		cfg.OriginalDir = originalFlag
	}
	if flags.Changed("deployed") {
		cfg.DeployedDir = deployedFlag
	}
	if flags.Changed("output") {
		cfg.Output = outputFlag
	}
	if flags.Changed("report-format") {
		cfg.ReportFormat = reportFormatFlag
	}
	if flags.Changed("jobs") {
		cfg.Jobs = jobsFlag
	}
	if flags.Changed("ignore") {
		cfg.Ignore = append(append([]string{}, cfg.Ignore...), ignoreFlag...)
	}
}
