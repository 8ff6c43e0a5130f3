package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/covercheck-dev/covercheck/internal/buildinfo"
	"github.com/covercheck-dev/covercheck/internal/config"
	"github.com/covercheck-dev/covercheck/internal/logging"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:     "covercheck",
		Short:   "Deposit-insurance coverage advisor",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(newAnalyzeCommand(&logLevel))
	rootCmd.AddCommand(newPlanCommand(&logLevel))
	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newServeCommand(&logLevel))
	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}

// commandLogger builds the CLI logger. The --log-level flag wins over the
// config file level.
func commandLogger(flagLevel string, cfg *config.Config) zerolog.Logger {
	level := cfg.Log.Level
	if flagLevel != "" {
		level = flagLevel
	}
	return logging.New(logging.Config{Level: level, Pretty: true})
}
