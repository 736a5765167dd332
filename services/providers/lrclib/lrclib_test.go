package lrclib

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"lyricsync/services/providers"
)

func TestFetch_SyncedLyricsSuccess(t *testing.T) {
	var gotArtist, gotTitle string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/get" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		gotArtist = r.URL.Query().Get("artist_name")
		gotTitle = r.URL.Query().Get("track_name")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"trackName":"Shape of You","artistName":"Ed Sheeran","syncedLyrics":"[00:12.34]Hello\n[00:15.67]World","plainLyrics":"Hello\nWorld"}`))
	}))
	defer server.Close()

	outcome := New(server.URL).Fetch(context.Background(), "Ed Sheeran", "Shape of You")

	if outcome.Kind != providers.OutcomeSuccess {
		t.Fatalf("Expected success, got %s (err: %v)", outcome.Kind, outcome.Err)
	}
	if gotArtist != "Ed Sheeran" || gotTitle != "Shape of You" {
		t.Errorf("Unexpected query params: artist=%q title=%q", gotArtist, gotTitle)
	}
	if outcome.Result.Source != ProviderName {
		t.Errorf("Expected source %q, got %q", ProviderName, outcome.Result.Source)
	}
	if !outcome.Result.Synced {
		t.Error("Expected synced result")
	}
	if outcome.Result.Lyrics != "[00:12.34]Hello\n[00:15.67]World" {
		t.Errorf("Expected raw timed-text blob, got %q", outcome.Result.Lyrics)
	}
}

func TestFetch_PlainLyricsOnlyIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":2,"plainLyrics":"Just plain text","syncedLyrics":""}`))
	}))
	defer server.Close()

	outcome := New(server.URL).Fetch(context.Background(), "a", "t")

	if outcome.Kind != providers.OutcomeNotFound {
		t.Fatalf("Expected not_found, got %s", outcome.Kind)
	}
}

func TestFetch_SyncedFieldWithNoParseableLinesIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":3,"syncedLyrics":"no timestamps in here\nat all"}`))
	}))
	defer server.Close()

	outcome := New(server.URL).Fetch(context.Background(), "a", "t")

	if outcome.Kind != providers.OutcomeNotFound {
		t.Fatalf("Expected not_found, got %s", outcome.Kind)
	}
}

func TestFetch_UpstreamErrorsAreSilentNotFound(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "404 from API",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"statusCode":404,"name":"TrackNotFound"}`))
			},
		},
		{
			name: "500 from API",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "Malformed JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			outcome := New(server.URL).Fetch(context.Background(), "a", "t")
			if outcome.Kind != providers.OutcomeNotFound {
				t.Errorf("Expected not_found, got %s", outcome.Kind)
			}
		})
	}
}

func TestFetch_UnreachableServerIsNotFound(t *testing.T) {
	// Transport failure on this provider is expected and silent.
	outcome := New("http://127.0.0.1:1").Fetch(context.Background(), "a", "t")
	if outcome.Kind != providers.OutcomeNotFound {
		t.Fatalf("Expected not_found, got %s", outcome.Kind)
	}
}
