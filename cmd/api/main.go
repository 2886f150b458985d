package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/roster-viewer-go/internal/config"
	appHTTP "github.com/cmlabs-hris/roster-viewer-go/internal/handler/http"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/database"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/logger"
	"github.com/cmlabs-hris/roster-viewer-go/internal/repository/postgresql"
	rosterService "github.com/cmlabs-hris/roster-viewer-go/internal/service/roster"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	log := logger.New(cfg.App.Env, cfg.App.LogLevel, "app", "roster-viewer", "version", version)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Error("Error connecting to database", "error", err)
		return
	}
	defer db.Close()

	if err := postgresql.EnsureSchema(ctx, db); err != nil {
		log.Error("Error applying schema", "error", err)
		return
	}

	loc := cfg.Roster.Location()
	repos := rosterService.Repositories{
		Employees:     postgresql.NewEmployeeRepository(db),
		Leaves:        postgresql.NewLeaveRepository(db, loc),
		Compensations: postgresql.NewCompensationRepository(db),
		CourtFrees:    postgresql.NewCourtFreeRepository(db, loc),
		Schedules:     postgresql.NewWeeklyScheduleRepository(db, loc),
		Indicators:    postgresql.NewDayIndicatorRepository(db),
	}

	svc := rosterService.NewRosterService(repos, rosterService.Config{
		Location:      loc,
		DefaultDomain: cfg.Roster.DefaultDomain,
		ShowWeekends:  cfg.Roster.ShowWeekends,
		DefaultView:   cfg.Roster.DefaultView,
		Workers:       cfg.Roster.Workers,
	}, time.Now, log)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Env:            cfg.App.Env,
		Version:        version,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, appHTTP.NewRosterHandler(svc))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown error", "error", err)
		}
	}()

	log.Info("Server running", "addr", "http://localhost"+server.Addr, "timezone", loc.String())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("Server error", "error", err)
	}
}
