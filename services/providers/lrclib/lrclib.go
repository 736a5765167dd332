// Package lrclib implements the synced-lyrics API provider.
//
// The upstream serves a structured JSON record per (artist, title) pair; when
// its syncedLyrics field carries parseable timed text, that is the best
// possible outcome for the chain. Every failure mode of this provider is
// expected and silent: the chain simply falls through to the scrapers.
package lrclib

import (
	"context"

	log "github.com/sirupsen/logrus"

	"lyricsync/logcolors"
	"lyricsync/lrc"
	"lyricsync/services/providers"
)

// ProviderName is the identifier for the lrclib provider
const ProviderName = "lrclib"

// Provider implements providers.Provider against an LRCLIB-compatible API.
type Provider struct {
	baseURL string
}

// New creates an lrclib provider pointed at the given base URL.
func New(baseURL string) *Provider {
	return &Provider{baseURL: baseURL}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return ProviderName
}

// Fetch issues a single lookup with artist/title as query parameters.
//
// A non-empty timed-text field that parses to at least one line is a synced
// success. Absence of that field, any transport failure, or a response the
// parser can't get a single line out of all map to NotFound: this provider's
// failure is routine and must not be surfaced as an error.
func (p *Provider) Fetch(ctx context.Context, artist, title string) providers.Outcome {
	record, status, err := getLyrics(ctx, p.baseURL, artist, title)
	if err != nil {
		log.Debugf("%s Lookup failed (status %d): %v", logcolors.ProviderPrefix(ProviderName), status, err)
		return providers.NotFound()
	}

	if record.SyncedLyrics == "" || !lrc.Synced(record.SyncedLyrics) {
		log.Debugf("%s No synced lyrics for: %s - %s", logcolors.ProviderPrefix(ProviderName), artist, title)
		return providers.NotFound()
	}

	log.Infof("%s Found synced lyrics for: %s - %s", logcolors.LogLyrics, artist, title)

	return providers.Success(&providers.Result{
		Source: ProviderName,
		Synced: true,
		Lyrics: record.SyncedLyrics,
	})
}
