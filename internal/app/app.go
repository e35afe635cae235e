// Package app wires configuration, storage, clients and services together.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/intellinez-com/GoldTrack-sub000/internal/clients/gemini"
	"github.com/intellinez-com/GoldTrack-sub000/internal/clients/goldapi"
	"github.com/intellinez-com/GoldTrack-sub000/internal/common"
	"github.com/intellinez-com/GoldTrack-sub000/internal/interfaces"
	"github.com/intellinez-com/GoldTrack-sub000/internal/services/advisor"
	"github.com/intellinez-com/GoldTrack-sub000/internal/services/returns"
	"github.com/intellinez-com/GoldTrack-sub000/internal/services/series"
	"github.com/intellinez-com/GoldTrack-sub000/internal/storage/badger"
)

// App holds all initialized services, clients and storage. It is the shared
// core used by cmd/goldtrack-server.
type App struct {
	Config         *common.Config
	Logger         *common.Logger
	Storage        interfaces.StorageManager
	PriceClient    interfaces.PriceClient
	GeminiClient   interfaces.NarrativeClient
	SeriesService  interfaces.SeriesService
	AdvisorService interfaces.AdvisorService
	ReturnsService interfaces.ReturnsService
	StartupTime    time.Time

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

// NewApp initializes storage, clients and services. configPath may be empty,
// in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Load configuration: provided path, GOLDTRACK_CONFIG, then binary dir.
	if configPath == "" {
		configPath = os.Getenv("GOLDTRACK_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "goldtrack.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/goldtrack.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := badger.NewManager(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	ctx := context.Background()
	kv := storageManager.KeyValueStore()

	goldapiKey, err := common.ResolveAPIKey(ctx, kv, "goldapi_api_key", config.Clients.GoldAPI.APIKey)
	if err != nil {
		logger.Warn().Msg("Price API key not configured - serving cached data only")
	}

	geminiKey, err := common.ResolveAPIKey(ctx, kv, "gemini_api_key", config.Clients.Gemini.APIKey)
	if err != nil {
		logger.Warn().Msg("Gemini API key not configured - narrative scoring will stay neutral")
	}

	var priceClient interfaces.PriceClient
	if goldapiKey != "" {
		opts := []goldapi.ClientOption{
			goldapi.WithLogger(logger),
			goldapi.WithTimeout(config.Clients.GoldAPI.GetTimeout()),
		}
		if config.Clients.GoldAPI.BaseURL != "" {
			opts = append(opts, goldapi.WithBaseURL(config.Clients.GoldAPI.BaseURL))
		}
		if config.Clients.GoldAPI.RateLimit > 0 {
			opts = append(opts, goldapi.WithRateLimit(config.Clients.GoldAPI.RateLimit))
		}
		priceClient = goldapi.NewClient(goldapiKey, opts...)
	}

	var narrativeClient interfaces.NarrativeClient
	if geminiKey != "" {
		client, err := gemini.NewClient(ctx, geminiKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			narrativeClient = client
		}
	}

	seriesService := series.NewService(priceClient, storageManager.SeriesRepository(), logger, config.HistoryDays)
	advisorService := advisor.NewService(narrativeClient, kv, logger)
	returnsService := returns.NewService(storageManager.LotStore(), seriesService, logger)

	a := &App{
		Config:         config,
		Logger:         logger,
		Storage:        storageManager,
		PriceClient:    priceClient,
		GeminiClient:   narrativeClient,
		SeriesService:  seriesService,
		AdvisorService: advisorService,
		ReturnsService: returnsService,
		StartupTime:    startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App. Shutdown order: stop the
// scheduler, then close storage.
func (a *App) Close() {
	if a.scheduler != nil {
		a.scheduler.Stop()
		a.scheduler = nil
	}
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}

// StartScheduler launches the daily series refresh job.
func (a *App) StartScheduler() error {
	sched, err := newScheduler(a.Config, a.SeriesService, a.Logger)
	if err != nil {
		return err
	}
	a.scheduler = sched
	sched.Start()
	return nil
}
