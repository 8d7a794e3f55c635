// Package setup is responsible for setting up components.
package setup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/matt-dz/cookbox/internal/bucket"
	"github.com/matt-dz/cookbox/internal/config"
	"github.com/matt-dz/cookbox/internal/database"
	"github.com/matt-dz/cookbox/internal/fileserver"
	"github.com/matt-dz/cookbox/internal/filestore"
)

const directoryPerms = 0o755

var ErrUnknownDriver = errors.New("unknown database driver")

// Database opens the configured recipe store and applies the embedded
// migrations when enabled.
func Database(ctx context.Context, logger *slog.Logger, conf config.Database) (*database.Database, error) {
	switch conf.Driver {
	case config.DriverPostgres:
		return postgres(ctx, logger, conf)
	case config.DriverSQLite:
		return sqlite(logger, conf)
	default:
		return nil, fmt.Errorf("%q: %w", conf.Driver, ErrUnknownDriver)
	}
}

func postgresURL(conf config.Database) string {
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(conf.User, conf.Password),
		Host:   net.JoinHostPort(conf.Host, strconv.Itoa(int(conf.Port))),
		Path:   "/" + conf.Database,
	}
	return u.String()
}

func postgres(ctx context.Context, logger *slog.Logger, conf config.Database) (*database.Database, error) {
	pool, err := pgxpool.New(ctx, postgresURL(conf))
	if err != nil {
		return nil, fmt.Errorf("creating database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if conf.ShouldMigrate() {
		version, err := database.MigratePostgres(stdlib.OpenDBFromPool(pool))
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrating database: %w", err)
		}
		logger.Info("database schema is up to date", slog.Uint64("version", uint64(version)))
	}

	return &database.Database{
		Querier: database.NewPostgres(pool),
		Close:   pool.Close,
	}, nil
}

func sqlite(logger *slog.Logger, conf config.Database) (*database.Database, error) {
	path, err := filepath.Abs(conf.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving database path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), directoryPerms); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := database.OpenSQLite(path)
	if err != nil {
		return nil, err
	}

	if conf.ShouldMigrate() {
		version, err := database.MigrateSQLite(db)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrating database: %w", err)
		}
		logger.Info("database schema is up to date", slog.Uint64("version", uint64(version)))
	}

	return &database.Database{
		Querier: database.NewSQLite(db),
		Close:   func() { _ = db.Close() },
	}, nil
}

// FileStore builds the media store on top of the configured blob backend.
func FileStore(ctx context.Context, conf config.Fileserver) (*filestore.FileStore, error) {
	var backend filestore.Backend

	switch conf.Backend {
	case config.BackendS3:
		b, err := bucket.New(ctx, bucket.Options{
			Endpoint:  conf.S3.Endpoint,
			AccessKey: conf.S3.AccessKey,
			SecretKey: conf.S3.SecretKey,
			Bucket:    conf.S3.Bucket,
			UseSSL:    conf.S3.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("creating bucket backend: %w", err)
		}
		backend = b
	default:
		volume, err := filepath.Abs(conf.Volume)
		if err != nil {
			return nil, fmt.Errorf("creating fileserver path: %w", err)
		}
		if err := os.MkdirAll(volume, directoryPerms); err != nil {
			return nil, fmt.Errorf("creating fileserver volume: %w", err)
		}
		backend = fileserver.New(volume)
	}

	return filestore.New(backend, conf.URLPrefix), nil
}
