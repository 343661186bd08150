package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/linemk/farmconnect/internal/config"
	"github.com/linemk/farmconnect/internal/lib/logger"
	"github.com/linemk/farmconnect/internal/storage"
)

// migrator накатывает миграции и печатает список таблиц в схеме public.
// Без -migrations-path используются миграции, встроенные в бинарник.
func main() {
	var configPath, migrationsPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&migrationsPath, "migrations-path", "", "path to migration files")
	flag.Parse()

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	if configPath == "" {
		fmt.Fprintln(os.Stderr, "config path is required: use -config or CONFIG_PATH")
		os.Exit(1)
	}

	cfg := config.MustLoadByPath(configPath)
	log := logger.SetupLogger(cfg.Env)

	if migrationsPath == "" {
		migrationsPath = cfg.Migrations.Path
	}

	log.Info("running migrations",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
		slog.String("table", cfg.Migrations.Table),
		slog.String("source", sourceName(migrationsPath)),
	)

	if err := storage.Migrate(log, cfg.Database.MigrateDSN(cfg.Migrations.Table), migrationsPath); err != nil {
		log.Error("migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	tables, err := listTables(cfg.Database.DSN())
	if err != nil {
		log.Error("failed to list tables", slog.Any("error", errors.Wrap(err, "list tables")))
		os.Exit(1)
	}

	fmt.Println("Current tables in the database:")
	for _, name := range tables {
		fmt.Println(" -", name)
	}
}

func sourceName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

func listTables(dsn string) ([]string, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query tables")
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "failed to scan row")
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}
