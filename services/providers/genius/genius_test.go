package genius

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"lyricsync/services/providers"
)

// newUpstream serves both the search API and the song page from one server,
// pointing the search hit's URL back at itself.
func newUpstream(t *testing.T, page string, hitCount int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)

	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if auth := r.Header.Get("Authorization"); !strings.HasPrefix(auth, "Bearer ") {
			t.Errorf("Expected bearer auth header, got %q", auth)
		}
		resp := map[string]interface{}{
			"meta": map[string]int{"status": 200},
			"response": map[string]interface{}{
				"hits": []map[string]interface{}{},
			},
		}
		if hitCount > 0 {
			hits := make([]map[string]interface{}, hitCount)
			for i := range hits {
				hits[i] = map[string]interface{}{
					"type": "song",
					"result": map[string]interface{}{
						"id":         i + 1,
						"full_title": fmt.Sprintf("Song %d", i+1),
						"url":        server.URL + "/songs/top-hit",
					},
				}
			}
			resp["response"] = map[string]interface{}{"hits": hits}
		}
		json.NewEncoder(w).Encode(resp)
	})

	mux.HandleFunc("/songs/top-hit", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	})

	return server, &calls
}

func TestFetch_MissingTokenIsAuthMissingWithoutNetworkCall(t *testing.T) {
	server, calls := newUpstream(t, "", 1)
	defer server.Close()

	outcome := New(server.URL, "").Fetch(context.Background(), "a", "t")

	if outcome.Kind != providers.OutcomeAuthMissing {
		t.Fatalf("Expected auth_missing, got %s", outcome.Kind)
	}
	if calls.Load() != 0 {
		t.Errorf("Expected zero network calls, got %d", calls.Load())
	}
}

func TestFetch_TwoStepSearchAndScrape(t *testing.T) {
	page := `<html><body>
<div class="Lyrics__Container-sc-1ynbvzw-1 kUgSbL">Scraped verse one<br>Scraped verse two</div>
</body></html>`
	server, calls := newUpstream(t, page, 2)
	defer server.Close()

	outcome := New(server.URL, "test-token").Fetch(context.Background(), "Ed Sheeran", "Shape of You")

	if outcome.Kind != providers.OutcomeSuccess {
		t.Fatalf("Expected success, got %s (err: %v)", outcome.Kind, outcome.Err)
	}
	if calls.Load() != 1 {
		t.Errorf("Expected exactly one search call, got %d", calls.Load())
	}
	if outcome.Result.Synced {
		t.Error("Scraped lyrics must be unsynced")
	}
	if outcome.Result.Lyrics != "Scraped verse one\nScraped verse two" {
		t.Errorf("Unexpected lyrics: %q", outcome.Result.Lyrics)
	}
}

func TestFetch_LegacyLyricsClassFallback(t *testing.T) {
	page := `<html><body><div class="lyrics">Legacy layout text</div></body></html>`
	server, _ := newUpstream(t, page, 1)
	defer server.Close()

	outcome := New(server.URL, "tok").Fetch(context.Background(), "a", "t")
	if outcome.Kind != providers.OutcomeSuccess {
		t.Fatalf("Expected success, got %s", outcome.Kind)
	}
	if outcome.Result.Lyrics != "Legacy layout text" {
		t.Errorf("Unexpected lyrics: %q", outcome.Result.Lyrics)
	}
}

func TestFetch_ZeroHitsIsNotFound(t *testing.T) {
	server, _ := newUpstream(t, "", 0)
	defer server.Close()

	outcome := New(server.URL, "tok").Fetch(context.Background(), "nobody", "nothing")
	if outcome.Kind != providers.OutcomeNotFound {
		t.Fatalf("Expected not_found, got %s", outcome.Kind)
	}
}

func TestFetch_UnrecognizedPageIsParseError(t *testing.T) {
	page := `<html><body><main>totally redesigned</main></body></html>`
	server, _ := newUpstream(t, page, 1)
	defer server.Close()

	outcome := New(server.URL, "tok").Fetch(context.Background(), "a", "t")
	if outcome.Kind != providers.OutcomeParseError {
		t.Fatalf("Expected parse_error, got %s", outcome.Kind)
	}
}

func TestFetch_SearchTransportFailureIsNetworkError(t *testing.T) {
	outcome := New("http://127.0.0.1:1", "tok").Fetch(context.Background(), "a", "t")
	if outcome.Kind != providers.OutcomeNetworkError {
		t.Fatalf("Expected network_error, got %s", outcome.Kind)
	}
}
