package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/telos/internal/cli"
	"github.com/alexanderramin/telos/internal/db"
	"github.com/alexanderramin/telos/internal/repository"
	"github.com/alexanderramin/telos/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.telos/telos.db
	dbPath := os.Getenv("TELOS_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".telos", "telos.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	planRepo := repository.NewSQLitePlanRepo(database)
	itemRepo := repository.NewSQLitePlanItemRepo(database)
	edgeRepo := repository.NewSQLiteEdgeRepo(database)

	// Wire unit of work for transactional imports
	uow := db.NewSQLiteUnitOfWork(database)

	// Optional use-case telemetry on stderr
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("TELOS_LOG") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Plans:    service.NewPlanService(planRepo),
		Items:    service.NewItemService(itemRepo),
		Link:     service.NewLinkService(planRepo, itemRepo, edgeRepo, observer),
		Schedule: service.NewScheduleService(planRepo, itemRepo, edgeRepo, observer),
		Import:   service.NewImportService(planRepo, itemRepo, edgeRepo, uow),
	}

	// Detect interactive terminal for the form and board entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
