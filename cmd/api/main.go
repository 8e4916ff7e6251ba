package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/app"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/config"
	appHTTP "github.com/hrstreamline/hrstreamline-backend-go/internal/handler/http"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/cron"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/database"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/jwt"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/logger"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/metrics"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hrstreamline/hrstreamline-backend-go/internal/service/attendance"
	serviceAuth "github.com/hrstreamline/hrstreamline-backend-go/internal/service/auth"
	employeeService "github.com/hrstreamline/hrstreamline-backend-go/internal/service/employee"
	leaveService "github.com/hrstreamline/hrstreamline-backend-go/internal/service/leave"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(os.Stdout, cfg.App.Env, cfg.App.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	var m *metrics.Collection
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}
	loc, err := cfg.Scheduler.Location()
	if err != nil {
		return err
	}

	txManager := postgresql.NewTxManager(db)
	credentialRepo := postgresql.NewCredentialRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(txManager, credentialRepo, employeeRepo, JWTService, loc)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, loc)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, loc)
	leaveSvc := leaveService.NewLeaveService(txManager, leaveRequestRepo, employeeRepo)
	assistantSvc, closeAssistant, err := app.NewAssistant(ctx, cfg.Assistant, db, m)
	if err != nil {
		return fmt.Errorf("init assistant: %w", err)
	}
	defer closeAssistant()

	scheduler := cron.NewScheduler(loc, m)
	if cfg.Scheduler.Enabled {
		leaveJobs := app.NewLeaveJobs(db, m, loc)
		if err := leaveJobs.RegisterJobs(scheduler, cfg.Scheduler.AccrualSpec, cfg.Scheduler.LeaveStatusSpec); err != nil {
			return err
		}
		if err := cron.NewTokenJobs(JWTService).RegisterJobs(scheduler, cfg.Scheduler.TokenPruneSpec); err != nil {
			return err
		}
		scheduler.Start()
	}

	opts := appHTTP.RouterOptions{
		AllowedOrigins: strings.Split(cfg.App.FrontendURL, ","),
	}
	if m != nil {
		opts.Metrics = m.Handler()
		opts.MetricsPath = cfg.Metrics.Path
	}
	router := appHTTP.NewRouter(log, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authService),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Assistant:  appHTTP.NewAssistantHandler(assistantSvc),
	}, opts)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		scheduler.Stop()
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}
