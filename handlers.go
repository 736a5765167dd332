package main

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"lyricsync/cache"
	"lyricsync/logcolors"
	"lyricsync/lrc"
	"lyricsync/services/providers"
	"lyricsync/stats"

	log "github.com/sirupsen/logrus"
)

func getLyrics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s := stats.Get()
	s.RecordRequest("/lyrics")

	artist := r.URL.Query().Get("artist")
	title := r.URL.Query().Get("title")

	if artist == "" || title == "" {
		s.RecordStatusCode(http.StatusBadRequest)
		Respond(w, r).Error(http.StatusBadRequest, map[string]interface{}{
			"error": "Artist and title are required.",
		})
		return
	}

	result, fromCache := lyricsResolver.Resolve(r.Context(), artist, title)

	cacheStatus := "MISS"
	if fromCache {
		s.RecordCacheHit()
		cacheStatus = "HIT"
	} else {
		s.RecordCacheMiss()
	}
	s.RecordSource(result.Source)

	resp := Respond(w, r).SetCacheStatus(cacheStatus).SetSource(result.Source)

	if result.Source == providers.SourceNone {
		log.Warnf("%s No lyrics found for: %s - %s", logcolors.LogLyrics, artist, title)
		s.RecordStatusCode(http.StatusNotFound)
		resp.Error(http.StatusNotFound, result)
	} else {
		s.RecordStatusCode(http.StatusOK)
		resp.JSON(result)
	}
	s.RecordResponseTime(time.Since(start))
}

func parseLyrics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s := stats.Get()
	s.RecordRequest("/lyrics/parse")

	if r.Method != http.MethodPost {
		s.RecordStatusCode(http.StatusMethodNotAllowed)
		Respond(w, r).Error(http.StatusMethodNotAllowed, map[string]interface{}{
			"error": "Use POST with a raw LRC body.",
		})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		s.RecordStatusCode(http.StatusBadRequest)
		Respond(w, r).Error(http.StatusBadRequest, map[string]interface{}{
			"error":   "Unable to read request body.",
			"details": err.Error(),
		})
		return
	}

	text := string(body)
	response := ParseResponse{
		Synced: lrc.Synced(text),
		Lines:  lrc.Parse(text),
	}

	s.RecordStatusCode(http.StatusOK)
	Respond(w, r).JSON(response)
	s.RecordResponseTime(time.Since(start))
}

func getHealthStatus(w http.ResponseWriter, r *http.Request) {
	stats.Get().RecordRequest("/health")

	breakers := lyricsResolver.BreakerStats()

	health := map[string]interface{}{
		"status":           "ok",
		"providers":        lyricsResolver.ProviderNames(),
		"circuit_breakers": breakers,
	}

	// Any open breaker degrades the chain but does not take it down.
	for _, state := range breakers {
		if state == "OPEN" {
			health["status"] = "degraded"
			break
		}
	}

	stats.Get().RecordStatusCode(http.StatusOK)
	Respond(w, r).JSON(health)
}

func getStats(w http.ResponseWriter, r *http.Request) {
	stats.Get().RecordRequest("/stats")

	if r.Header.Get("Authorization") != conf.Configuration.CacheAccessToken {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	s := stats.Get()
	snapshot := s.Snapshot()

	numKeys, sizeInKB := persistentCache.Stats()
	snapshot["cache_storage"] = map[string]interface{}{
		"keys":    numKeys,
		"size_kb": sizeInKB,
		"size_mb": float64(sizeInKB) / 1024,
	}

	snapshot["circuit_breakers"] = lyricsResolver.BreakerStats()

	Respond(w, r).JSON(snapshot)
}

func getCacheDump(w http.ResponseWriter, r *http.Request) {
	stats.Get().RecordRequest("/cache")

	if r.Header.Get("Authorization") != conf.Configuration.CacheAccessToken {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cacheDump := CacheDump{}
	persistentCache.Range(func(key string, entry cache.CacheEntry) bool {
		cacheDump[key] = entry
		return true
	})

	numKeys, sizeInKB := persistentCache.Stats()
	s := stats.Get()

	cacheDumpResponse := CacheDumpResponse{
		NumberOfKeys: numKeys,
		SizeInKB:     sizeInKB,
		SizeInMB:     float64(sizeInKB) / 1024,
		Performance: CachePerformance{
			Hits:    s.CacheHits.Load(),
			Misses:  s.CacheMisses.Load(),
			HitRate: s.CacheHitRate(),
		},
		Cache: cacheDump,
	}

	Respond(w, r).JSON(cacheDumpResponse)
}

func backupCache(w http.ResponseWriter, r *http.Request) {
	stats.Get().RecordRequest("/cache")

	if r.Header.Get("Authorization") != conf.Configuration.CacheAccessToken {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	backupPath, err := persistentCache.Backup()
	if err != nil {
		log.Errorf("%s Failed to create backup: %v", logcolors.LogCacheBackup, err)
		Respond(w, r).Error(http.StatusInternalServerError, map[string]interface{}{
			"error":   "Failed to create backup",
			"details": err.Error(),
		})
		return
	}

	log.Infof("%s Backup created successfully at: %s", logcolors.LogCacheBackup, backupPath)
	Respond(w, r).JSON(map[string]interface{}{
		"message":     "Backup created successfully",
		"backup_path": backupPath,
	})
}

func clearCache(w http.ResponseWriter, r *http.Request) {
	stats.Get().RecordRequest("/cache")

	if r.Header.Get("Authorization") != conf.Configuration.CacheAccessToken {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	backupPath, err := persistentCache.BackupAndClear()
	if err != nil {
		log.Errorf("%s Failed to backup and clear cache: %v", logcolors.LogCacheClear, err)
		Respond(w, r).Error(http.StatusInternalServerError, map[string]interface{}{
			"error":   "Failed to backup and clear cache",
			"details": err.Error(),
		})
		return
	}

	log.Infof("%s Cache cleared successfully, backup at: %s", logcolors.LogCacheClear, backupPath)
	Respond(w, r).JSON(map[string]interface{}{
		"message":     "Cache cleared successfully",
		"backup_path": backupPath,
	})
}

func helpHandler(w http.ResponseWriter, r *http.Request) {
	stats.Get().RecordRequest("/")

	Respond(w, r).JSON(map[string]interface{}{
		"help": fmt.Sprintf(
			"Use /lyrics to get the lyrics of a song. Provide the artist and title as query parameters. Example: /lyrics?artist=%s&title=%s",
			"Ed%20Sheeran", "Shape%20of%20You",
		),
	})
}
