package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFS embed.FS

// MigratePostgres applies the pending Postgres migrations through db and
// returns the resulting schema version. The migration holds a dedicated
// connection of db until it is done; db is closed on return, so pass a
// handle used only for migrating.
func MigratePostgres(db *sql.DB) (uint, error) {
	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		_ = db.Close()
		return 0, fmt.Errorf("creating postgres migration driver: %w", err)
	}
	return migrateUp(driver, "pgx5", "migrations/postgres", true)
}

// MigrateSQLite applies the pending SQLite migrations through db and returns
// the resulting schema version. db stays open for the caller.
func MigrateSQLite(db *sql.DB) (uint, error) {
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return 0, fmt.Errorf("creating sqlite migration driver: %w", err)
	}
	return migrateUp(driver, "sqlite", "migrations/sqlite", false)
}

// migrateUp runs every pending migration of dir. With release set, the
// migrate instance is closed afterwards, which closes the driver and the
// database it was built on.
func migrateUp(driver migratedb.Driver, name, dir string, release bool) (version uint, err error) {
	source, err := iofs.New(migrationFS, dir)
	if err != nil {
		if release {
			_ = driver.Close()
		}
		return 0, fmt.Errorf("creating iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, name, driver)
	if err != nil {
		_ = source.Close()
		if release {
			_ = driver.Close()
		}
		return 0, fmt.Errorf("creating migrate instance: %w", err)
	}
	if release {
		defer func() {
			srcErr, dbErr := m.Close()
			if err == nil {
				if closeErr := errors.Join(srcErr, dbErr); closeErr != nil {
					err = fmt.Errorf("closing migrate instance: %w", closeErr)
				}
			}
		}()
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("running migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("reading migration version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("migration version %d is dirty", version)
	}

	return version, nil
}
