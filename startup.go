package main

import (
	"net/http"
	"time"

	"lyricsync/cache"
	"lyricsync/logcolors"
	"lyricsync/middleware"
	"lyricsync/services/providers"
	"lyricsync/services/providers/azlyrics"
	"lyricsync/services/providers/genius"
	"lyricsync/services/providers/lrclib"
	"lyricsync/services/resolver"
	"lyricsync/stats"

	log "github.com/sirupsen/logrus"
)

// setupCache opens the persistent lyrics cache
func setupCache() (*cache.PersistentCache, error) {
	pc, err := cache.NewPersistentCache(
		conf.Configuration.CachePath,
		conf.Configuration.CacheBackupPath,
		conf.FeatureFlags.CacheCompression,
	)
	if err != nil {
		return nil, err
	}

	numKeys, sizeInKB := pc.Stats()
	log.Infof("%s Persistent cache loaded: %d keys (%d KB)", logcolors.LogCacheInit, numKeys, sizeInKB)
	return pc, nil
}

// setupResolver builds the provider chain in priority order and wires it to
// the cache. LRCLib goes first since it is the only source of synced lyrics.
func setupResolver(store resolver.Store) *resolver.Resolver {
	chain := []providers.Provider{
		lrclib.New(conf.Configuration.LRCLibBaseURL),
		azlyrics.New(conf.Configuration.AZLyricsBaseURL),
		genius.New(conf.Configuration.GeniusBaseURL, conf.Configuration.GeniusAPIToken),
	}

	if conf.Configuration.GeniusAPIToken == "" {
		log.Warnf("%s GENIUS_API_TOKEN not set, genius provider will be skipped", logcolors.LogResolve)
	}

	return resolver.New(resolver.Config{
		Providers:        chain,
		Store:            store,
		Timeout:          time.Duration(conf.Configuration.ProviderTimeoutSeconds) * time.Second,
		BreakerThreshold: conf.Configuration.CircuitBreakerThreshold,
		BreakerCooldown:  time.Duration(conf.Configuration.CircuitBreakerCooldownSecs) * time.Second,
	})
}

func limitMiddleware(next http.Handler, limiter *middleware.IPRateLimiter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ipLimiter := limiter.GetLimiter(r.RemoteAddr)
		if !ipLimiter.Allow() {
			stats.Get().RecordRateLimitExceeded()
			log.Warnf("%s Rejected %s %s from %s", logcolors.LogRateLimit, r.Method, r.URL.Path, r.RemoteAddr)
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
