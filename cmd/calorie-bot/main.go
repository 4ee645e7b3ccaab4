package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"calorie-bot/internal/bot"
	"calorie-bot/internal/config"
	"calorie-bot/internal/handler"
	"calorie-bot/internal/ledger"
	"calorie-bot/internal/logger"
	"calorie-bot/internal/resolver"
	"calorie-bot/internal/server"
	"calorie-bot/internal/storage"
)

const version = "1.0.0"

var (
	flagHost      string
	flagPort      int
	flagCacheFile string
	flagDataFile  string
	flagDBPath    string
)

func main() {
	root := &cobra.Command{
		Use:          "calorie-bot",
		Short:        "Telegram calorie-counting bot with an HTTP tool API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
	root.Flags().StringVar(&flagHost, "host", "", "Host address for the tool API")
	root.Flags().IntVar(&flagPort, "port", 0, "Port for the tool API")
	root.Flags().StringVar(&flagCacheFile, "cache-file", "", "Path to the calorie cache file")
	root.Flags().StringVar(&flagDataFile, "data-file", "", "Path to the daily totals file")
	root.Flags().StringVar(&flagDBPath, "db-path", "", "SQLite database path (sqlite backend)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("calorie-bot version %s\n", version)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cfg)

	log, err := logger.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	var cacheStore storage.Store[int]
	var ledgerStore storage.Store[map[string]int]
	switch cfg.StorageBackend {
	case "sqlite":
		db, err := storage.Open(cfg.SQLitePath)
		if err != nil {
			return fmt.Errorf("failed to open sqlite backend: %w", err)
		}
		defer db.Close()
		if cacheStore, err = storage.NewSQLiteStore[int](db, "calorie_cache"); err != nil {
			return fmt.Errorf("failed to initialize cache store: %w", err)
		}
		if ledgerStore, err = storage.NewSQLiteStore[map[string]int](db, "daily_totals"); err != nil {
			return fmt.Errorf("failed to initialize ledger store: %w", err)
		}
	default:
		cacheStore = storage.NewFileStore[int](cfg.CacheFile)
		ledgerStore = storage.NewFileStore[map[string]int](cfg.DataFile)
	}

	cache := resolver.NewEnergyCache(cacheStore)
	remote := resolver.NewOpenFoodFacts(cfg.OFFBaseURL)
	pipeline := resolver.NewPipeline(resolver.DefaultFoodTable(), cache, remote, log)
	dayLedger := ledger.New(ledgerStore, nil)
	h := handler.New(pipeline, dayLedger, log)

	tgBot, err := bot.New(cfg.BotToken, h, dayLedger, log)
	if err != nil {
		return err
	}

	srv := server.New(&server.Config{Host: cfg.HTTPHost, Port: cfg.HTTPPort}, h, dayLedger, pipeline, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting telegram bot")
		tgBot.Start()
	}()
	go func() {
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-sigCh:
		log.Info("received shutdown signal")
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	log.Info("shutting down")
	cancel()
	tgBot.Stop()
	if err := srv.Stop(); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	return nil
}

func applyFlags(cfg *config.Config) {
	if flagHost != "" {
		cfg.HTTPHost = flagHost
	}
	if flagPort != 0 {
		cfg.HTTPPort = flagPort
	}
	if flagCacheFile != "" {
		cfg.CacheFile = flagCacheFile
	}
	if flagDataFile != "" {
		cfg.DataFile = flagDataFile
	}
	if flagDBPath != "" {
		cfg.SQLitePath = flagDBPath
	}
}
