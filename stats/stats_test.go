package stats

import (
	"testing"
	"time"
)

func TestRecordRequest(t *testing.T) {
	s := newStats()

	s.RecordRequest("/lyrics")
	s.RecordRequest("/lyrics")
	s.RecordRequest("/lyrics/parse")
	s.RecordRequest("/health")
	s.RecordRequest("/nope")

	if got := s.TotalRequests.Load(); got != 5 {
		t.Errorf("Expected 5 total requests, got %d", got)
	}
	if got := s.LyricsRequests.Load(); got != 2 {
		t.Errorf("Expected 2 lyrics requests, got %d", got)
	}
	if got := s.ParseRequests.Load(); got != 1 {
		t.Errorf("Expected 1 parse request, got %d", got)
	}
	if got := s.HealthRequests.Load(); got != 1 {
		t.Errorf("Expected 1 health request, got %d", got)
	}
	if got := s.OtherRequests.Load(); got != 1 {
		t.Errorf("Expected 1 other request, got %d", got)
	}
}

func TestCacheHitRate(t *testing.T) {
	s := newStats()

	if rate := s.CacheHitRate(); rate != 0 {
		t.Errorf("Expected 0%% hit rate with no traffic, got %v", rate)
	}

	s.RecordCacheHit()
	s.RecordCacheHit()
	s.RecordCacheHit()
	s.RecordCacheMiss()

	if rate := s.CacheHitRate(); rate != 75 {
		t.Errorf("Expected 75%% hit rate, got %v", rate)
	}
}

func TestRecordStatusCode(t *testing.T) {
	s := newStats()

	s.RecordStatusCode(200)
	s.RecordStatusCode(204)
	s.RecordStatusCode(404)
	s.RecordStatusCode(500)

	if got := s.Status2xx.Load(); got != 2 {
		t.Errorf("Expected 2 2xx responses, got %d", got)
	}
	if got := s.Status4xx.Load(); got != 1 {
		t.Errorf("Expected 1 4xx response, got %d", got)
	}
	if got := s.Status5xx.Load(); got != 1 {
		t.Errorf("Expected 1 5xx response, got %d", got)
	}
}

func TestResponseTimes(t *testing.T) {
	s := newStats()

	if got := s.MinResponseTime(); got != 0 {
		t.Errorf("Expected zero min response time before any record, got %v", got)
	}

	s.RecordResponseTime(10 * time.Millisecond)
	s.RecordResponseTime(30 * time.Millisecond)

	if got := s.AvgResponseTime(); got != 20*time.Millisecond {
		t.Errorf("Expected 20ms average, got %v", got)
	}
	if got := s.MinResponseTime(); got != 10*time.Millisecond {
		t.Errorf("Expected 10ms min, got %v", got)
	}
	if got := s.MaxResponseTime(); got != 30*time.Millisecond {
		t.Errorf("Expected 30ms max, got %v", got)
	}
}

func TestRecordSource(t *testing.T) {
	s := newStats()

	s.RecordSource("lrclib")
	s.RecordSource("lrclib")
	s.RecordSource("none")

	snap := s.SourceSnapshot()
	if snap["lrclib"] != 2 {
		t.Errorf("Expected 2 lrclib resolutions, got %d", snap["lrclib"])
	}
	if snap["none"] != 1 {
		t.Errorf("Expected 1 unresolved, got %d", snap["none"])
	}
}

func TestSnapshotShape(t *testing.T) {
	s := newStats()
	s.RecordRequest("/lyrics")
	s.RecordCacheHit()
	s.RecordStatusCode(200)

	snap := s.Snapshot()
	for _, section := range []string{"server", "requests", "cache", "rate_limiting", "responses", "response_times", "sources"} {
		if _, ok := snap[section]; !ok {
			t.Errorf("Expected snapshot section %q to be present", section)
		}
	}
}
