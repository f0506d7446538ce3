package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/plantmap/internal/cli"
	"github.com/alexanderramin/plantmap/internal/config"
	"github.com/alexanderramin/plantmap/internal/db"
	plog "github.com/alexanderramin/plantmap/internal/log"
	"github.com/alexanderramin/plantmap/internal/notify"
	"github.com/alexanderramin/plantmap/internal/repository"
	"github.com/alexanderramin/plantmap/internal/service"
	"github.com/alexanderramin/plantmap/internal/zone"
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

	interactive := isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())

	// A terminal session may become the TUI, which owns the screen, so its
	// logs only go to the file.
	logger, closer := plog.New(plog.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
		Quiet:  interactive,
	})
	defer closer.Close()

	database, err := db.OpenDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)
	overlayRepo := repository.NewSQLiteOverlayRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	feed := notify.NewFeed()
	clock := cfg.Clock()
	observer := service.NewLogUseCaseObserver(plog.WithComponent(logger, "service"))

	a := &cli.App{
		Zones:    service.NewZoneService(zone.BaseCatalog(), overlayRepo, uow, feed, clock, observer),
		Projects: service.NewProjectService(projectRepo, uow, feed, clock, observer),
		Board:    service.NewBoardService(projectRepo, assignmentRepo, clock),
		Feed:     feed,
		Role:     cfg.ActorRole(),
		Now:      clock,
		Logger:   plog.WithComponent(logger, "controller"),
		IsInteractive: func() bool {
			return interactive
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Debug("starting", "db", cfg.DB, "role", cfg.ActorRole())
	return cli.NewRootCmd(a).ExecuteContext(ctx)
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
