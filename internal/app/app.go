// Package app wires configuration, clients, storage, and services into
// a runnable application.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/kessan/internal/clients/wordpress"
	"github.com/bobmcallan/kessan/internal/clients/yfin"
	"github.com/bobmcallan/kessan/internal/common"
	"github.com/bobmcallan/kessan/internal/interfaces"
	"github.com/bobmcallan/kessan/internal/services/collector"
	"github.com/bobmcallan/kessan/internal/storage/recordfs"
)

// App holds all initialized services and clients. It is the shared core
// used by every cmd/kessan subcommand.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Store       interfaces.RecordStore
	Market      interfaces.MarketDataClient
	Roster      interfaces.RosterClient
	Collector   interfaces.CollectorService
	StartupTime time.Time

	scheduler *scheduler
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, clients, storage, and services.
// configPath may be empty, in which case the default resolution logic
// is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Config resolution: explicit path, KESSAN_CONFIG, binary dir, then
	// the development fallback.
	if configPath == "" {
		configPath = os.Getenv("KESSAN_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "kessan.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/kessan.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Storage.Data.Path != "" && !filepath.IsAbs(config.Storage.Data.Path) {
		config.Storage.Data.Path = filepath.Join(binDir, config.Storage.Data.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	store, err := recordfs.NewStore(logger, config.Storage.Data.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	market := yfin.NewClient(
		yfin.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yfin.WithLogger(logger),
		yfin.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yfin.WithTimeout(config.Clients.Yahoo.GetTimeout()),
	)

	var roster interfaces.RosterClient
	if config.Clients.WordPress.BaseURL != "" {
		roster = wordpress.NewClient(
			config.Clients.WordPress.BaseURL,
			config.Clients.WordPress.Username,
			config.Clients.WordPress.AppPassword,
			wordpress.WithLogger(logger),
			wordpress.WithTimeout(config.Clients.WordPress.GetTimeout()),
			wordpress.WithPaging(config.Clients.WordPress.PerPage, config.Clients.WordPress.MaxPages),
		)
	} else {
		logger.Warn().Msg("CMS not configured - roster comes from CSV only")
	}

	collectorService := collector.NewService(config, market, roster, store, logger)

	a := &App{
		Config:      config,
		Logger:      logger,
		Store:       store,
		Market:      market,
		Roster:      roster,
		Collector:   collectorService,
		StartupTime: startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("app initialized")
	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.scheduler != nil {
		a.scheduler.stop()
		a.scheduler = nil
	}
	if a.Store != nil {
		a.Store.Close()
		a.Store = nil
	}
}
