// Package server initializes and runs the todo API service. It wires the
// configured document store, the todo service and the HTTP endpoint, and
// handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/config"
	"github.com/dmitrijs2005/todokeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/todokeeper/internal/server/migrations"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	todoService *services.TodoService
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	var repo todos.Repository
	var db *sql.DB

	if c.DatabaseDSN == "" {
		logger.Warn(context.Background(), "no database DSN configured, todos are kept in memory")
		repo = todos.NewMemoryRepository()
	} else {
		var err error
		db, err = openDB(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		if err := migrations.Up(context.Background(), db); err != nil {
			return nil, fmt.Errorf("migration error: %w", err)
		}
		repo = todos.NewPostgresRepository(db)
	}

	ts := services.NewTodoService(repo)

	return &App{config: c, logger: logger, db: db, todoService: ts}, nil
}

// openDB opens a pgx connection pool and fails fast when the database is
// unreachable at startup.
func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	srv := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.todoService)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if app.db != nil {
		_ = app.db.Close()
	}
}
