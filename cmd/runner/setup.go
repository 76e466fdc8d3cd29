package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/account"
	"github.com/vovakirdan/tui-runner/internal/app"
	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/notify"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// environment is everything a command needs, resolved from flags,
// environment variables and config files.
type environment struct {
	cfg      config.AppConfig
	runner   config.RunnerConfig
	store    account.Store
	variants []assets.Variant
}

// appConfig merges the global flags over the defaults and reads SMTP
// settings from the environment after loading the .env file.
func appConfig() (config.AppConfig, error) {
	if err := config.LoadDotEnv(flagEnvFile); err != nil {
		return config.AppConfig{}, err
	}
	cfg := config.DefaultAppConfig()
	cfg.StoreBackend = flagStore
	cfg.DBPath = flagDBPath
	cfg.JSONPath = flagJSONPath
	cfg.RedisURL = flagRedisURL
	cfg.AssetsDir = flagAssets
	cfg.RunnerPath = flagConfig
	cfg.SMTP = config.SMTPFromEnv()
	return cfg, nil
}

// setup opens the account store and loads tuning and sprites.
// The caller closes the store.
func setup(logger *log.Logger) (*environment, error) {
	cfg, err := appConfig()
	if err != nil {
		return nil, err
	}

	rc, err := config.LoadRunner(cfg.RunnerPath)
	if err != nil {
		return nil, err
	}

	store, err := storage.OpenStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s account store: %w", cfg.StoreBackend, err)
	}

	variants, err := assets.Load(config.ExpandHome(cfg.AssetsDir))
	if err != nil {
		logger.Warn("cannot load obstacle sprites, using plain cacti", "dir", cfg.AssetsDir, "error", err)
	}
	if !cfg.SMTP.Configured() {
		logger.Info("SMTP not configured, password recovery mail is disabled")
	}

	logger.Info("ready", "store", cfg.StoreBackend, "sprites", len(variants))
	return &environment{cfg: cfg, runner: rc, store: store, variants: variants}, nil
}

// appOptions builds the per-session App options.
func (e *environment) appOptions(logger *log.Logger) app.Options {
	return app.Options{
		Runner:       e.runner,
		Store:        e.store,
		Notifier:     notify.NewSMTP(e.cfg.SMTP, e.cfg.SendTimeout),
		SendTimeout:  e.cfg.SendTimeout,
		Variants:     e.variants,
		Seed:         flagSeed,
		PasswordCost: e.cfg.PasswordCost,
		Logger:       logger,
	}
}

// openLogFile returns a logger writing to ~/.runner/runner.log, since the
// terminal belongs to the TUI during local play. The returned closer is
// never nil.
func openLogFile() (*log.Logger, io.Closer) {
	dir := config.UserDir()
	if dir == "" {
		return log.New(io.Discard), io.NopCloser(nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), io.NopCloser(nil)
	}
	f, err := os.OpenFile(filepath.Join(dir, "runner.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return log.New(io.Discard), io.NopCloser(nil)
	}
	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "runner",
	}), f
}
