package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

var conf = mustLoad()

type Config struct {
	Configuration struct {
		Port                string `envconfig:"PORT" default:"8080"`
		RateLimitPerSecond  int    `envconfig:"RATE_LIMIT_PER_SECOND" default:"2"`
		RateLimitBurstLimit int    `envconfig:"RATE_LIMIT_BURST_LIMIT" default:"5"`
		CacheAccessToken    string `envconfig:"CACHE_ACCESS_TOKEN" default:""`
		CachePath           string `envconfig:"CACHE_PATH" default:"./data/lyrics-cache.db"`
		CacheBackupPath     string `envconfig:"CACHE_BACKUP_PATH" default:"./data/backups"`

		// Provider configuration
		LRCLibBaseURL   string `envconfig:"LRCLIB_BASE_URL" default:"https://lrclib.net"`
		AZLyricsBaseURL string `envconfig:"AZLYRICS_BASE_URL" default:"https://www.azlyrics.com"`
		GeniusBaseURL   string `envconfig:"GENIUS_BASE_URL" default:"https://api.genius.com"`
		GeniusAPIToken  string `envconfig:"GENIUS_API_TOKEN" default:""`

		// Per-provider fetch timeout so one slow upstream cannot stall the
		// whole fallback chain.
		ProviderTimeoutSeconds int `envconfig:"PROVIDER_TIMEOUT_SECONDS" default:"10"`

		CircuitBreakerThreshold    int `envconfig:"CIRCUIT_BREAKER_THRESHOLD" default:"5"`    // Consecutive failures before circuit opens
		CircuitBreakerCooldownSecs int `envconfig:"CIRCUIT_BREAKER_COOLDOWN_SECS" default:"300"` // Seconds to wait before retrying
	}

	FeatureFlags struct {
		CacheCompression bool `envconfig:"FF_CACHE_COMPRESSION" default:"true"`
	}
}

// load loads the configuration from the environment.
func load() (Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Warnf("Error loading env config: %v", err)
	}

	cfg := Config{}
	err = envconfig.Process("", &cfg)
	return cfg, err
}

func mustLoad() Config {
	c, err := load()
	if err != nil {
		log.WithError(err).Warnf("Unable to load configuration")
	}

	return c
}

func Get() Config {
	return conf
}
