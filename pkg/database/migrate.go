package database

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"furniture-store/pkg/utils"

	"github.com/golang-migrate/migrate/v4"
	// registers the pgx5:// database driver
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies the embedded SQL migrations. ErrNoChange is not an error.
func Migrate(config utils.DatabaseConfig) error {
	return MigrateURL(ConnString(config))
}

// MigrateURL is Migrate for a postgres:// connection URL.
func MigrateURL(connURL string) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	dsn := connURL
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, scheme) {
			dsn = "pgx5://" + strings.TrimPrefix(dsn, scheme)
			break
		}
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
