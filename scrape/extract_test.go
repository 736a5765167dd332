package scrape

import (
	"errors"
	"strings"
	"testing"
)

func TestExtract_Selector(t *testing.T) {
	html := `<html><body>
		<div class="lyrics">First line<br>Second line<br/>Third line</div>
	</body></html>`

	text, err := Extract(html, Strategy{Selector("div.lyrics")})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := "First line\nSecond line\nThird line"
	if text != expected {
		t.Errorf("Expected %q, got %q", expected, text)
	}
}

func TestExtract_ClassPrefixSelector(t *testing.T) {
	html := `<html><body>
		<div class="Lyrics__Container-sc-1ynbvzw-1 kUgSbL">Verse one<br>Verse two</div>
	</body></html>`

	text, err := Extract(html, Strategy{Selector(`div[class^="Lyrics__Container"]`)})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "Verse one\nVerse two" {
		t.Errorf("Unexpected extraction: %q", text)
	}
}

func TestExtract_AfterMarker(t *testing.T) {
	html := `<html><body>
		<div class="lyricsh"><h2>Artist Lyrics</h2></div>
		<div class="ringtone"><span>Ringtone ad</span></div>
		<div>
Actual lyric line one<br>
Actual lyric line two
		</div>
	</body></html>`

	text, err := Extract(html, Strategy{AfterMarker("div.ringtone", "div")})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(text, "Actual lyric line one") || !strings.Contains(text, "Actual lyric line two") {
		t.Errorf("Expected lyrics block, got %q", text)
	}
	if strings.Contains(text, "Ringtone ad") {
		t.Errorf("Marker content leaked into extraction: %q", text)
	}
}

func TestExtract_FallbackToSecondaryLocator(t *testing.T) {
	html := `<html><body>
		<div class="secondary">Found via fallback<br>locator</div>
	</body></html>`

	strategy := Strategy{
		Selector("div.primary-that-matches-nothing"),
		Selector("div.secondary"),
	}

	text, err := Extract(html, strategy)
	if err != nil {
		t.Fatalf("Expected secondary locator to match, got error: %v", err)
	}
	if text != "Found via fallback\nlocator" {
		t.Errorf("Unexpected extraction: %q", text)
	}
}

func TestExtract_NoMatchIsDistinctSignal(t *testing.T) {
	html := `<html><body><p>completely different page</p></body></html>`

	_, err := Extract(html, Strategy{Selector("div.lyrics"), AfterMarker("div.ringtone", "div")})
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("Expected ErrNoMatch, got %v", err)
	}
}

func TestExtract_StripsNestedMarkup(t *testing.T) {
	html := `<html><body>
		<div class="lyrics"><i>Styled</i> and <b>bold</b> words<br><a href="#">linked text</a></div>
	</body></html>`

	text, err := Extract(html, Strategy{Selector("div.lyrics")})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "Styled and bold words\nlinked text" {
		t.Errorf("Unexpected extraction: %q", text)
	}
}

func TestExtract_EmptyMatchedElementSkipped(t *testing.T) {
	// An element that matches but has no content should not win over a
	// later locator with real content.
	html := `<html><body>
		<div class="lyrics"></div>
		<div class="alt">Real content</div>
	</body></html>`

	text, err := Extract(html, Strategy{Selector("div.lyrics"), Selector("div.alt")})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "Real content" {
		t.Errorf("Expected fallback content, got %q", text)
	}
}
