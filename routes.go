package main

import (
	"github.com/gorilla/mux"
)

// setupRoutes configures all HTTP routes for the API
func setupRoutes(router *mux.Router) {
	// Lyrics resolution endpoint
	router.HandleFunc("/lyrics", getLyrics)

	// Timed-text parsing endpoint for locally supplied LRC bodies
	router.HandleFunc("/lyrics/parse", parseLyrics)

	// Cache management endpoints
	router.HandleFunc("/cache", getCacheDump)
	router.HandleFunc("/cache/backup", backupCache)
	router.HandleFunc("/cache/clear", clearCache)

	// Health and stats endpoints
	router.HandleFunc("/health", getHealthStatus)
	router.HandleFunc("/stats", getStats)

	// Help endpoint
	router.HandleFunc("/", helpHandler)
}
