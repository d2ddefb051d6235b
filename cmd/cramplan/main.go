package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/danielmeier/cramplan/internal/cli"
	"github.com/danielmeier/cramplan/internal/db"
	"github.com/danielmeier/cramplan/internal/repository"
	"github.com/danielmeier/cramplan/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local overrides; absence is fine.
	_ = godotenv.Load()

	// Determine DB path: env var or default ~/.cramplan/cramplan.db
	dbPath := os.Getenv("CRAMPLAN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".cramplan", "cramplan.db")
	}

	userID := os.Getenv("CRAMPLAN_USER")
	if userID == "" {
		userID = "default"
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	planRepo := repository.NewSQLitePlanRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	profileRepo := repository.NewSQLiteProfileRepo(database)
	badgeRepo := repository.NewSQLiteBadgeRepo(database)
	overrideRepo := repository.NewSQLiteOverrideRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if os.Getenv("CRAMPLAN_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Plans:    service.NewPlanService(planRepo, sessionRepo, uow, observers...),
		Sessions: service.NewSessionService(sessionRepo, planRepo, uow, observers...),
		Replan:   service.NewReplanService(planRepo, sessionRepo, overrideRepo, uow, observers...),
		Status:   service.NewStatusService(planRepo, sessionRepo, profileRepo, badgeRepo, overrideRepo, observers...),
		UserID:   userID,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
