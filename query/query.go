// Package query canonicalizes artist/title strings into the forms the
// individual lyrics providers expect.
package query

import "strings"

// Slug lowercases the input and strips every character outside [a-z0-9].
// Used by providers that embed artist/title directly into a URL path.
// An empty result is valid; the provider discovers unusable slugs via the
// upstream 404, not by pre-validation.
func Slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Phrase builds the "{title} {artist}" search phrase used by search-based
// providers. Percent-encoding is left to the transport (url.Values).
func Phrase(title, artist string) string {
	return title + " " + artist
}

// Key returns the normalized cache key for an (artist, title) pair so that
// casing and stray whitespace in the request don't fragment the cache.
func Key(artist, title string) string {
	norm := func(s string) string {
		return strings.Join(strings.Fields(strings.ToLower(s)), " ")
	}
	return norm(artist) + "|" + norm(title)
}
