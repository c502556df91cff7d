package main

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/arxiv-cache/pkg/arxiv"
	"github.com/doodlesbykumbi/arxiv-cache/pkg/config"
	"github.com/doodlesbykumbi/arxiv-cache/pkg/db"
	"github.com/doodlesbykumbi/arxiv-cache/pkg/logging"
	"github.com/doodlesbykumbi/arxiv-cache/pkg/resolver"
	"github.com/doodlesbykumbi/arxiv-cache/pkg/server/store"
	gormstore "github.com/doodlesbykumbi/arxiv-cache/pkg/server/store/gorm"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// app is everything a command needs to resolve and query papers.
type app struct {
	Config   *config.ArxivCacheConfig
	Logger   *zap.Logger
	DB       *gorm.DB
	Papers   store.PapersStore
	Resolver *resolver.Resolver
}

// newApp loads and validates configuration, then connects to the database.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	database, err := db.Connect(db.Config{Debug: cfg.IsDebug()})
	if err != nil {
		return nil, err
	}

	client := arxiv.NewClient(
		arxiv.WithBaseURL(cfg.LookupURL),
		arxiv.WithTimeout(cfg.LookupTimeoutDuration()),
		arxiv.WithUserAgent("arxiv-cache/"+version),
	)
	papers := gormstore.NewPapersStore(database)

	return &app{
		Config: cfg,
		Logger: logger,
		DB:     database,
		Papers: papers,
		Resolver: resolver.New(papers, client,
			resolver.WithLogger(logger.Named("resolver")),
			resolver.WithFetchTimeout(2*cfg.LookupTimeoutDuration()),
		),
	}, nil
}

func (a *app) Close() {
	_ = a.Logger.Sync()
	_ = db.Close(a.DB)
}
