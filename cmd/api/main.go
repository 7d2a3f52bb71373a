package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/config"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/presence"
	"github.com/cmlabs-hris/presence-backend-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/presence-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/presence-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/presence-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/presence-backend-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/presence-backend-go/internal/service/dashboard"
	leaveService "github.com/cmlabs-hris/presence-backend-go/internal/service/leave"
	presenceService "github.com/cmlabs-hris/presence-backend-go/internal/service/presence"
	"golang.org/x/sync/errgroup"
)

const (
	version         = "v1.0.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	})).With(
		slog.String("app", "presence-cmlabs"),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
	))

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("error loading timezone: %w", err)
	}
	clock := presence.LocalClock(loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.close()
	attendanceRepo := store.attendance

	hub := sse.NewHub()
	controller := presenceService.NewPresenceController(attendanceRepo, clock, appHTTP.BroadcastPresence(hub))
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo)
	dashboardSvc := dashboardService.NewDashboardService(attendanceRepo, clock)
	leaveSvc := leaveService.NewLeaveService(store.leave, attendanceRepo, clock)

	presenceHandler := appHTTP.NewPresenceHandler(controller, hub, clock)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Env:         cfg.App.Env,
			Version:     version,
			FrontendURL: cfg.App.FrontendURL,
			LogLevel:    cfg.LogLevel(),
		},
		presenceHandler,
		dashboardHandler,
		attendanceHandler,
		leaveHandler,
	)

	scheduler := cron.NewScheduler(ctx, "jobs")
	cron.NewAttendanceJobs(attendanceRepo, clock, cfg.Jobs.AbsenceInterval).RegisterJobs(scheduler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Open presence streams end with the process context
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server running", "addr", "http://localhost"+server.Addr, "storage", cfg.Storage.Type)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		scheduler.Start()
		<-gctx.Done()
		scheduler.Stop()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

type stores struct {
	attendance attendance.AttendanceRepository
	leave      leave.LeaveRequestRepository
	close      func()
}

// openStore builds the stores selected by STORAGE_TYPE
func openStore(ctx context.Context, cfg *config.Config) (stores, error) {
	var (
		seed      []attendance.Record
		leaveSeed []leave.LeaveRequest
	)
	if cfg.App.SeedDemo {
		seed = fixtures.DemoAttendance()
		leaveSeed = fixtures.DemoLeaveRequests()
	}

	switch cfg.Storage.Type {
	case config.StorageMemory:
		return stores{
			attendance: memory.NewAttendanceRepository(seed),
			leave:      memory.NewLeaveRequestRepository(leaveSeed),
			close:      func() {},
		}, nil

	case config.StoragePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return stores{}, fmt.Errorf("error connecting to database: %w", err)
		}

		if err := postgresql.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return stores{}, err
		}

		if cfg.App.SeedDemo {
			if err := seedPostgres(ctx, db, seed, leaveSeed); err != nil {
				db.Close()
				return stores{}, err
			}
		}

		return stores{
			attendance: postgresql.NewAttendanceRepository(db),
			leave:      postgresql.NewLeaveRequestRepository(db),
			close:      db.Close,
		}, nil

	default:
		return stores{}, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}

func seedPostgres(ctx context.Context, db *database.DB, records []attendance.Record, requests []leave.LeaveRequest) error {
	n, err := postgresql.SeedAttendances(ctx, db, records)
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Info("Seeded demo attendance", "count", n)
	}

	n, err = postgresql.SeedLeaveRequests(ctx, db, requests)
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Info("Seeded demo leave requests", "count", n)
	}
	return nil
}
