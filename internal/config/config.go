package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken       string
	CacheFile      string
	DataFile       string
	StorageBackend string
	SQLitePath     string
	OFFBaseURL     string
	HTTPHost       string
	HTTPPort       int
	Env            string
}

// Load reads configuration from the environment, with an optional .env file.
// BOT_TOKEN is the only required value; everything else has a default.
func Load() (*Config, error) {
	godotenv.Load()

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set (add it to .env)")
	}

	cfg := &Config{
		BotToken:       token,
		CacheFile:      envOr("CACHE_FILE", "calorie_cache.json"),
		DataFile:       envOr("DATA_FILE", "calories.json"),
		StorageBackend: envOr("STORAGE_BACKEND", "file"),
		SQLitePath:     envOr("SQLITE_PATH", "calorie-bot.db"),
		OFFBaseURL:     envOr("OFF_BASE_URL", "https://world.openfoodfacts.org"),
		HTTPHost:       envOr("HTTP_HOST", "0.0.0.0"),
		HTTPPort:       8011,
		Env:            os.Getenv("ENV"),
	}

	if p := os.Getenv("HTTP_PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_PORT %q: %w", p, err)
		}
		cfg.HTTPPort = port
	}

	switch cfg.StorageBackend {
	case "file", "sqlite":
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q (use file or sqlite)", cfg.StorageBackend)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
