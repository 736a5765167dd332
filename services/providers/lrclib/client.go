package lrclib

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "lyricsync/1.0 (https://lrclib.net/docs)"
)

var httpClient = &http.Client{
	Timeout: defaultTimeout,
}

// getLyrics calls the /api/get endpoint with exact artist/title parameters.
func getLyrics(ctx context.Context, baseURL, artist, title string) (*getResponse, int, error) {
	params := url.Values{}
	params.Set("artist_name", artist)
	params.Set("track_name", title)

	requestURL := baseURL + "/api/get?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	var getResp getResponse
	if err := json.Unmarshal(body, &getResp); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to parse response: %w", err)
	}

	return &getResp, resp.StatusCode, nil
}
