// Package env provides a structure for managing application-wide dependencies.
package env

import (
	"log/slog"

	"github.com/matt-dz/cookbox/internal/config"
	"github.com/matt-dz/cookbox/internal/database"
	"github.com/matt-dz/cookbox/internal/filestore"
	"github.com/matt-dz/cookbox/internal/log"
)

type Env struct {
	Logger    *slog.Logger
	Database  *database.Database
	FileStore *filestore.FileStore
	Config    config.Config
}

func New(lg *slog.Logger, db *database.Database, fs *filestore.FileStore, conf config.Config) *Env {
	if lg == nil {
		lg = log.NullLogger()
	}

	return &Env{
		Logger:    lg,
		Database:  db,
		FileStore: fs,
		Config:    conf,
	}
}

// Close releases the resources held by the environment.
func (e *Env) Close() {
	if e.Database != nil && e.Database.Close != nil {
		e.Database.Close()
	}
}

