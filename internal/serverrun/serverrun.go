package serverrun

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"tidytodo/server/internal/api"
	"tidytodo/server/internal/api/rhealth"
	"tidytodo/server/internal/api/ritem"
	"tidytodo/server/internal/api/rlist"
	"tidytodo/server/internal/api/rview"
	"tidytodo/server/internal/migrate"
	_ "tidytodo/server/internal/migrations"
	"tidytodo/server/pkg/dbq"
	"tidytodo/server/pkg/service/sitem"
	"tidytodo/server/pkg/service/slist"
)

const defaultPort = "8080"

// Run wires the database, migrations, services and HTTP surface, then
// serves until interrupted.
func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "todo.db"
	}

	db, err := dbq.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	runner, err := migrate.NewRunner(db, slog.Default())
	if err != nil {
		return err
	}
	if err := runner.ApplyAll(ctx); err != nil {
		return err
	}

	queries := dbq.New(db)
	listService := slist.New(queries)
	itemService := sitem.New(db)

	var services []api.Service
	services = append(services, rhealth.CreateServices(rhealth.New())...)
	services = append(services, rlist.CreateServices(rlist.New(listService))...)
	services = append(services, ritem.CreateServices(ritem.New(itemService))...)
	services = append(services, rview.CreateServices(rview.New(listService, itemService))...)

	return api.ListenServices(ctx, services, defaultPort)
}
