package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/linkdeck/linkdeck/internal/classify"
	"github.com/linkdeck/linkdeck/internal/clicks"
	"github.com/linkdeck/linkdeck/internal/config"
	"github.com/linkdeck/linkdeck/internal/dedup"
	"github.com/linkdeck/linkdeck/internal/favicon"
	"github.com/linkdeck/linkdeck/internal/httpserver"
	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/scheduler"
	"github.com/linkdeck/linkdeck/internal/sites"
	"github.com/linkdeck/linkdeck/internal/store"
	"github.com/linkdeck/linkdeck/internal/version"
)

type App struct {
	cfg    *config.Config
	logger logger.Logger
	server *httpserver.Server
	kv     store.KV
	sites  *sites.Service
	pruner *scheduler.CachePruner
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Open storage early - fail fast if the database is unusable
	loggerClient.Infof("Opening data store at %s", cfg.DataPath)
	kv, err := store.OpenSQLite(cfg.DataPath)
	if err != nil {
		loggerClient.Errorf("Failed to open data store: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("data store initialized successfully")

	// Duplicate detector configuration
	dupCfg := dedup.DefaultConfig()
	dupCfg.SimilarityThreshold = cfg.DuplicateThreshold

	// Click tracker (loads the persisted table)
	tracker := clicks.NewTracker(kv, loggerClient)

	// Favicon cache (loads and expires the persisted table)
	favCache := favicon.New(kv, cfg.FaviconCacheSize, cfg.FaviconCacheExpiry, loggerClient)

	// Classifier: built-in rule table plus optional custom rules file
	var classifier *classify.Classifier
	if cfg.RulesFile != "" {
		customRules, err := classify.LoadRules(cfg.RulesFile)
		if err != nil {
			loggerClient.Errorf("Failed to load classification rules from %s: %v", cfg.RulesFile, err)
			os.Exit(1)
		}
		loggerClient.Info("custom classification rules loaded",
			logger.String("file", cfg.RulesFile),
			logger.Int("rules", len(customRules)))
		classifier = classify.New(customRules...)
	} else {
		classifier = classify.New()
	}

	// Corpus service over the store
	siteService := sites.NewService(kv, tracker, dupCfg, cfg.SearchHistoryLimit, loggerClient)
	if err := siteService.Load(); err != nil {
		loggerClient.Errorf("Failed to load site corpus: %v", err)
		os.Exit(1)
	}

	// Favicon cache pruner
	pruner := scheduler.NewCachePruner(favCache, loggerClient, cfg.CachePruneInterval)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:     loggerClient,
		StartTime:  time.Now(),
		Version:    version.Version,
		Commit:     version.Commit,
		BuildDate:  version.BuildDate,
		GoVersion:  version.GoVersion,
		TimeNow:    time.Now,
		Sites:      siteService,
		Clicks:     tracker,
		Favicons:   favCache,
		Classifier: classifier,
		DupConfig:  dupCfg,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:    cfg,
		logger: loggerClient,
		server: server,
		kv:     kv,
		sites:  siteService,
		pruner: pruner,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting LinkDeck v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("LinkDeck %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start favicon cache pruner
	a.pruner.Start(ctx)
	a.logger.Info("favicon cache pruner started",
		logger.Duration("interval", a.cfg.CachePruneInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	// Stop pruner
	a.pruner.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.kv != nil {
		if err := a.kv.Close(); err != nil {
			a.logger.Warnf("failed to close data store: %v", err)
		} else {
			a.logger.Info("✅ data store closed cleanly")
		}
	}

	a.logger.Info("✅ LinkDeck stopped cleanly")
	return nil
}
