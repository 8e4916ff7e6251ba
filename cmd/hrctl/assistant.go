package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/app"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/config"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/database"
	"github.com/spf13/cobra"
)

func newAssistantCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assistant",
		Short: "Query HR data in natural language",
	}

	var asJSON bool
	ask := &cobra.Command{
		Use:   "ask \"question\"",
		Short: "Answer a single question and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.Assistant.Enabled {
				return errors.New("assistant is disabled, set ASSISTANT_ENABLED=true")
			}
			ctx := cmd.Context()

			var db database.Pool
			if cfg.Assistant.Driver == config.AssistantDriverPostgres {
				pg, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
				if err != nil {
					return fmt.Errorf("connect database: %w", err)
				}
				defer pg.Close()
				db = pg
			}

			svc, cleanup, err := app.NewAssistant(ctx, cfg.Assistant, db, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := svc.Answer(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			if resp.SQL != "" {
				fmt.Fprintf(out, "SQL: %s\n", resp.SQL)
			}
			fmt.Fprintln(out, resp.Answer)
			return nil
		},
	}
	ask.Flags().BoolVar(&asJSON, "json", false, "print the full response as JSON")

	cmd.AddCommand(ask)
	return cmd
}
