package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/matt-dz/cookbox/internal/api"
	"github.com/matt-dz/cookbox/internal/config"
	"github.com/matt-dz/cookbox/internal/env"
	"github.com/matt-dz/cookbox/internal/log"
	"github.com/matt-dz/cookbox/internal/setup"
)

type options struct {
	Config  string `short:"c" long:"config" env:"COOKBOX_CONFIG" description:"path to the YAML configuration file (default: /data/cookbox.yaml)"`
	EnvFile string `long:"env-file" env:"COOKBOX_ENV_FILE" default:".env" description:"dotenv file loaded before reading the environment"`
}

// configPath returns the configuration file to load, falling back to the
// default location when none was given.
func (o options) configPath() string {
	if o.Config == "" {
		return config.DefaultConfigFilePath
	}
	return o.Config
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		slog.Error("cookbox failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(opts options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	const setupTime = 30 * time.Second
	setupCtx, cancel := context.WithTimeout(ctx, setupTime)
	defer cancel()

	if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	conf, err := config.LoadConfig(opts.configPath())
	if err != nil {
		return err
	}

	level, err := log.ParseLevel(conf.LogLevel)
	if err != nil {
		return err
	}
	logger := log.New(level)
	slog.SetDefault(logger)

	store, err := setup.FileStore(setupCtx, conf.Fileserver)
	if err != nil {
		logger.Error("failed to setup file store", slog.Any("error", err))
		return err
	}

	db, err := setup.Database(setupCtx, logger, conf.Database)
	if err != nil {
		logger.Error("failed to setup database", slog.Any("error", err))
		return err
	}

	env := env.New(logger, db, store, conf)
	defer env.Close()

	if err := api.Start(ctx, env); err != nil {
		env.Logger.Error("API Failed", slog.Any("error", err))
		return err
	}
	return nil
}
