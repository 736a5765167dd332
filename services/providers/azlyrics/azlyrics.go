// Package azlyrics implements the path-based scrape provider.
//
// The site has no API: the song page URL is derived directly from slug-
// normalized artist and title, and the lyrics live in an unclassed div whose
// only stable property is its position after known marker elements.
package azlyrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"lyricsync/logcolors"
	"lyricsync/query"
	"lyricsync/scrape"
	"lyricsync/services/providers"
)

// ProviderName is the identifier for the azlyrics provider
const ProviderName = "azlyrics"

const (
	defaultTimeout = 10 * time.Second

	// The upstream rejects unidentified clients, so requests carry a
	// realistic browser User-Agent.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/96.0.4664.110 Safari/537.36"
)

var httpClient = &http.Client{
	Timeout: defaultTimeout,
}

// strategy locates the lyrics block: primarily the first div following the
// ringtone marker, with the heading marker as a fallback for older layouts.
var strategy = scrape.Strategy{
	scrape.AfterMarker("div.ringtone", "div"),
	scrape.AfterMarker("div.lyricsh", "div"),
}

// Provider implements providers.Provider by scraping song pages.
type Provider struct {
	baseURL string
}

// New creates an azlyrics provider pointed at the given base URL.
func New(baseURL string) *Provider {
	return &Provider{baseURL: baseURL}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return ProviderName
}

// Fetch builds the song page URL from slug-normalized artist/title, fetches
// it, and extracts the lyrics block.
//
// An upstream 404 means the song page does not exist (bad slug or missing
// song) and maps to NotFound. A page that fetched fine but matched no
// locator maps to ParseError, since that means the site layout changed.
func (p *Provider) Fetch(ctx context.Context, artist, title string) providers.Outcome {
	pageURL := fmt.Sprintf("%s/lyrics/%s/%s.html", p.baseURL, query.Slug(artist), query.Slug(title))

	log.Debugf("%s Fetching %s", logcolors.LogScrape, pageURL)

	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return providers.NetworkError(providers.NewProviderError(ProviderName, "failed to create request", err))
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return providers.NetworkError(providers.NewProviderError(ProviderName, "page fetch failed", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return providers.NotFound()
	}
	if resp.StatusCode != http.StatusOK {
		return providers.NetworkError(providers.NewProviderError(ProviderName,
			fmt.Sprintf("upstream returned status %d", resp.StatusCode), nil))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return providers.NetworkError(providers.NewProviderError(ProviderName, "failed to read page", err))
	}

	lyrics, err := scrape.Extract(string(body), strategy)
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
