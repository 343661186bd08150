package storage

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/linemk/farmconnect/internal/storage/migrations"
)

// NewMigrator создаёт мигратор для базы по dsn.
// Если path пустой, используются миграции, встроенные в бинарник, иначе - файлы из каталога path.
func NewMigrator(dsn, path string) (*migrate.Migrate, error) {
	if path != "" {
		return migrate.New("file://"+path, dsn)
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	return migrate.NewWithSourceInstance("iofs", src, dsn)
}

// Migrate применяет все недостающие миграции. Повторный запуск ничего не меняет.
func Migrate(log *slog.Logger, dsn, path string) error {
	const op = "storage.Migrate"
	logger := log.With(slog.String("op", op))

	m, err := NewMigrator(dsn, path)
	if err != nil {
		return fmt.Errorf("%s: failed to create migrate instance: %w", op, err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.Warn("failed to close migrator", slog.Any("source_error", srcErr), slog.Any("db_error", dbErr))
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("no migrations to apply")
			return nil
		}
		return fmt.Errorf("%s: migration failed: %w", op, err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("%s: failed to read schema version: %w", op, err)
	}
	logger.Info("migrations applied", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	return nil
}
