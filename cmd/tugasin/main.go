package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/kampus/tugasin/internal/auth"
	"github.com/kampus/tugasin/internal/cli"
	"github.com/kampus/tugasin/internal/db"
	"github.com/kampus/tugasin/internal/notify"
	"github.com/kampus/tugasin/internal/remote"
	"github.com/kampus/tugasin/internal/repository"
	"github.com/kampus/tugasin/internal/store"
	"github.com/kampus/tugasin/internal/todoapi"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		if !cli.Reported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Determine DB path: env var or default ~/.tugasin/tugasin.db
	dbPath := os.Getenv("TUGASIN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".tugasin", "tugasin.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	records := repository.NewSQLiteRecordRepo(database)
	snapshots := repository.NewSnapshotRepo(records)
	sessions := repository.NewSessionRepo(records)
	uow := db.NewSQLiteUnitOfWork(database)

	var opts []store.Option
	if verbose, _ := strconv.ParseBool(os.Getenv("TUGASIN_LOG")); verbose {
		opts = append(opts, store.WithObserver(store.NewLogObserver(os.Stderr)))
	}
	st, err := store.Open(ctx, snapshots, opts...)
	if err != nil {
		return err
	}

	// Wire the todo API client
	apiCfg := todoapi.LoadConfig()
	var observer todoapi.Observer = todoapi.NoopObserver{}
	if apiCfg.LogCalls {
		observer = todoapi.NewLogObserver(os.Stderr)
	}
	api := todoapi.NewClient(apiCfg, observer)

	authSvc := auth.NewService(api, sessions)
	if _, err := authSvc.Restore(ctx); err != nil {
		return err
	}

	notifier := notify.NewWriterNotifier(os.Stderr)
	app := &cli.App{
		Store:    st,
		Auth:     authSvc,
		Todos:    remote.NewTodoList(api, notifier),
		Notifier: notifier,
		Reset: func(ctx context.Context) error {
			return repository.ResetAll(ctx, uow)
		},
	}

	// Forms and spinners only run on an interactive terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
