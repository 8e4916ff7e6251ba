// Command hrctl runs schema migrations, background jobs and assistant
// queries outside the API process.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/config"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hrctl",
		Short: "Operational CLI for the HR Streamline backend",
		Long: `Operational CLI for the HR Streamline backend.

Configuration is read from the environment (and .env) exactly as the API does.`,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
	}

	cmd.AddCommand(
		newMigrateCommand(),
		newJobsCommand(),
		newAssistantCommand(),
	)
	return cmd
}

// loadConfig loads configuration and installs the process logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(logger.New(os.Stderr, cfg.App.Env, cfg.App.LogLevel))
	return cfg, nil
}
