package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/app"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/cron"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/database"
	"github.com/spf13/cobra"
)

// jobAliases maps the short CLI names to registered job names.
var jobAliases = map[string]string{
	"accrual":      cron.JobMonthlyAccrual,
	"leave-status": cron.JobEndLeaveStatusCheck,
}

func newJobsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Run background jobs on demand",
	}

	run := &cobra.Command{
		Use:       "run [accrual|leave-status|all]",
		Short:     "Run a leave job once and exit",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"accrual", "leave-status", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			loc, err := cfg.Scheduler.Location()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			scheduler := cron.NewScheduler(loc, nil)
			jobs := app.NewLeaveJobs(db, nil, loc)
			if err := jobs.RegisterJobs(scheduler, cfg.Scheduler.AccrualSpec, cfg.Scheduler.LeaveStatusSpec); err != nil {
				return err
			}
			return runJobs(ctx, scheduler, args[0])
		},
	}

	cmd.AddCommand(run)
	return cmd
}

func runJobs(ctx context.Context, scheduler *cron.Scheduler, name string) error {
	if name == "all" {
		return scheduler.RunOnce(ctx)
	}
	job, ok := jobAliases[name]
	if !ok {
		return fmt.Errorf("unknown job %q", name)
	}
	return scheduler.RunByName(ctx, job)
}
