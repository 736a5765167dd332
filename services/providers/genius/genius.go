// Package genius implements the search-based scrape provider.
//
// Resolution is two-step: an authenticated search call turns the free-text
// phrase into a canonical song page URL, then the page itself is scraped.
// The search API needs a bearer token; without one the provider declines
// immediately so the chain keeps moving without burning a network call.
package genius

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"lyricsync/logcolors"
	"lyricsync/query"
	"lyricsync/scrape"
	"lyricsync/services/providers"
)

// ProviderName is the identifier for the genius provider
const ProviderName = "genius"

// strategy locates the lyrics container. Current pages use hashed
// Lyrics__Container class names; .lyrics covers the legacy layout.
var strategy = scrape.Strategy{
	scrape.Selector(`div[class^="Lyrics__Container"]`),
	scrape.Selector(".lyrics"),
}

// Provider implements providers.Provider against the search API plus page scraping.
type Provider struct {
	baseURL string
	token   string
}

// New creates a genius provider. An empty token is allowed at construction;
// it is checked per-fetch so a token supplied later via environment reload
// does not require rebuilding the chain.
func New(baseURL, token string) *Provider {
	return &Provider{baseURL: baseURL, token: token}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return ProviderName
}

// Fetch searches for the song, fetches the top hit's page, and extracts the
// lyrics. Zero search hits map to NotFound; a missing credential maps to
// AuthMissing with no network call.
func (p *Provider) Fetch(ctx context.Context, artist, title string) providers.Outcome {
	if p.token == "" {
		return providers.AuthMissing(providers.NewProviderError(ProviderName, "GENIUS_API_TOKEN is not configured", nil))
	}

	phrase := query.Phrase(title, artist)
	log.Debugf("%s Searching: %s", logcolors.LogSearch, phrase)

	hits, err := search(ctx, p.baseURL, p.token, phrase)
	if err != nil {
		return providers.NetworkError(providers.NewProviderError(ProviderName, "search failed", err))
	}

	if len(hits) == 0 {
		return providers.NotFound()
	}

	songURL := hits[0].Result.URL
	log.Debugf("%s Top hit: %s (%s)", logcolors.LogSearch, hits[0].Result.FullTitle, songURL)

	pageHTML, err := fetchPage(ctx, songURL)
	if err != nil {
		return providers.NetworkError(providers.NewProviderError(ProviderName, "song page fetch failed", err))
	}

	lyrics, err := scrape.Extract(pageHTML, strategy)
	if err != nil {
		if errors.Is(err, scrape.ErrNoMatch) {
			return providers.ParseError(providers.NewProviderError(ProviderName, "page structure did not match any known pattern", err))
		}
		return providers.ParseError(providers.NewProviderError(ProviderName, "extraction failed", err))
	}

	if lyrics == "" {
		return providers.NotFound()
	}

	log.Infof("%s Scraped lyrics for: %s - %s", logcolors.LogLyrics, artist, title)

	return providers.Success(&providers.Result{
		Source: ProviderName,
		Synced: false,
		Lyrics: lyrics,
	})
}
