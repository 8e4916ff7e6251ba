// Package app wires repositories, jobs and the assistant for the binaries.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/config"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/assistant"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/cron"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/database"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/llm"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/metrics"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/repository/postgresql"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/repository/sqlite"
	assistantService "github.com/hrstreamline/hrstreamline-backend-go/internal/service/assistant"
)

// NewLeaveJobs wires the monthly accrual and leave-end reconciliation to
// Postgres.
func NewLeaveJobs(db database.Pool, m *metrics.Collection, loc *time.Location) *cron.LeaveJobs {
	return cron.NewLeaveJobs(
		postgresql.NewEmployeeRepository(db),
		postgresql.NewLeaveRequestRepository(db),
		postgresql.NewTxManager(db),
		m,
		loc,
	)
}

// NewAssistant builds the SQL assistant. db may be nil when the sqlite
// driver is configured. The returned func releases the SQLite handle.
func NewAssistant(ctx context.Context, cfg config.AssistantConfig, db database.Pool, m *metrics.Collection) (*assistantService.AssistantServiceImpl, func(), error) {
	noop := func() {}

	examples, err := assistantService.LoadExamples(cfg.ExamplesFile)
	if err != nil {
		return nil, noop, err
	}
	if !cfg.Enabled {
		return assistantService.NewAssistantService(nil, nil, examples, cfg.ExampleCount, m), noop, nil
	}

	var (
		runner  assistant.QueryRunner
		cleanup = noop
	)
	switch cfg.Driver {
	case config.AssistantDriverSQLite:
		sqlDB, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		runner = sqlite.NewAssistantQueryRunner(sqlDB)
		cleanup = func() { sqlDB.Close() }
	default:
		if db == nil {
			return nil, noop, fmt.Errorf("assistant driver %q needs a database connection", cfg.Driver)
		}
		runner = postgresql.NewAssistantQueryRunner(db)
	}

	client, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
		BaseURL:     cfg.LLMBaseURL,
		Model:       cfg.Model,
		APIKey:      cfg.APIKey,
		AccessToken: cfg.AccessToken,
		Temperature: cfg.Temperature,
	})
	if err != nil {
		cleanup()
		return nil, noop, err
	}

	return assistantService.NewAssistantService(client, runner, examples, cfg.ExampleCount, m), cleanup, nil
}
