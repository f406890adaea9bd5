package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/itinera/internal/app"
	"github.com/alexanderramin/itinera/internal/cli"
	"github.com/alexanderramin/itinera/internal/config"
	"github.com/alexanderramin/itinera/internal/db"
	"github.com/alexanderramin/itinera/internal/logging"
	"github.com/alexanderramin/itinera/internal/repository"
	"github.com/alexanderramin/itinera/internal/server"
	"github.com/alexanderramin/itinera/internal/service"
	"github.com/alexanderramin/itinera/internal/tripapi"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger, err := logging.Open(cfg.DataDir, level)
	if err != nil {
		return err
	}
	defer logger.Close()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	destRepo := repository.NewSQLiteDestinationRepo(database)
	planRepo := repository.NewSQLiteTravelPlanRepo(database)
	tripRepo := repository.NewSQLiteTripRepo(database)
	completionRepo := repository.NewSQLiteCompletionRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	observer := service.NewSlogUseCaseObserver(logger.Logger)
	catalog := service.NewCatalogService(destRepo, planRepo, uow, observer)
	catalogPlans := service.NewCatalogPlanProvider(catalog)

	a := &cli.App{
		Catalog:     catalog,
		Completions: completionRepo,
		Logger:      logger.Logger,
		Observer:    observer,
		NewServer: func(addr string) cli.Server {
			if addr == "" {
				addr = cfg.ServerAddr
			}
			trips := service.NewTripService(tripRepo, catalogPlans, observer)
			return server.New(addr, catalog, trips, server.WithLogger(logger.Logger))
		},
	}

	// Detect interactive terminal for the TUI entrypoint.
	a.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// With the trip API disabled, content comes from the local catalog and
	// progress stays local.
	var provider app.PlanProvider = catalogPlans
	if cfg.API.Enabled {
		var apiObserver tripapi.Observer = tripapi.NoopObserver{}
		if cfg.API.LogCalls {
			apiObserver = tripapi.NewSlogObserver(logger.Logger)
		}
		client := tripapi.NewClient(cfg.API, apiObserver)
		provider = client
		a.Registrar = client
		a.Remote = client
		a.Reports = client
		a.Shared = client
		a.RegisterTimeout = opTimeout(cfg.API, tripapi.OpRegisterTrip)
		a.ProgressTimeout = opTimeout(cfg.API, tripapi.OpWriteProgress)
	}
	a.Itineraries = service.NewItineraryService(provider, logger.Logger, observer)

	rootCmd := cli.NewRootCmd(a)
	return rootCmd.Execute()
}

func opTimeout(cfg tripapi.Config, op tripapi.Op) time.Duration {
	return time.Duration(cfg.OpTimeout(op)) * time.Millisecond
}
