package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dpp0007/HackHerth/internal/cli"
	"github.com/dpp0007/HackHerth/internal/config"
	"github.com/dpp0007/HackHerth/internal/db"
	"github.com/dpp0007/HackHerth/internal/metrics"
	"github.com/dpp0007/HackHerth/internal/repository"
	"github.com/dpp0007/HackHerth/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	userRepo := repository.NewSQLiteUserRepo(database)
	logRepo := repository.NewSQLiteLogRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	m := metrics.New()
	observers := []service.UseCaseObserver{m}
	if cfg.LogCalls {
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	app := &cli.App{
		Journal:      service.NewJournalService(userRepo, logRepo, uow, observers...),
		Intelligence: service.NewIntelligenceService(logRepo, uow, observers...),
		Import:       service.NewImportService(uow, observers...),
		Metrics:      m,
		Config:       cfg,
		Logger:       logger,
	}

	// Pretty output only when stdout is a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
