package query

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Lowercase passthrough",
			input:    "coldplay",
			expected: "coldplay",
		},
		{
			name:     "Mixed case with spaces",
			input:    "Ed Sheeran",
			expected: "edsheeran",
		},
		{
			name:     "Punctuation stripped",
			input:    "Don't Stop Me Now!",
			expected: "dontstopmenow",
		},
		{
			name:     "Digits kept",
			input:    "blink-182",
			expected: "blink182",
		},
		{
			name:     "Only punctuation yields empty slug",
			input:    "!!!",
			expected: "",
		},
		{
			name:     "Empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "Non-ASCII stripped",
			input:    "Beyoncé",
			expected: "beyonc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.input); got != tt.expected {
				t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPhrase(t *testing.T) {
	if got := Phrase("Shape of You", "Ed Sheeran"); got != "Shape of You Ed Sheeran" {
		t.Errorf("Phrase() = %q", got)
	}
}

func TestKey_NormalizesCasingAndWhitespace(t *testing.T) {
	a := Key("Ed Sheeran", "Shape of You")
	b := Key("  ed   SHEERAN ", "shape OF you")
	if a != b {
		t.Errorf("Expected equal keys, got %q and %q", a, b)
	}
}

func TestKey_DistinctPairsDistinctKeys(t *testing.T) {
	if Key("a b", "c") == Key("a", "b c") {
		t.Error("Expected artist/title boundary to be preserved in key")
	}
}
