// Package lrc parses and renders line-timestamped lyrics text.
//
// The format is line oriented: each renderable line carries a bracketed
// [mm:ss.ff] timestamp followed by the lyric text. Lines without a timestamp
// and timestamps without text (musical-interval markers) contribute nothing.
package lrc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// timeRegex matches [mm:ss.ff] with a 2- or 3-digit fractional part.
var timeRegex = regexp.MustCompile(`\[(\d{2}):(\d{2})\.(\d{2,3})\]`)

// Line is a single timed lyric line. Time is in seconds.
type Line struct {
	Time float64 `json:"time"`
	Text string  `json:"text"`
}

// Parse converts timed-text content into an ordered slice of Lines.
//
// Output order equals input line order; no sorting is applied. Well-formed
// provider output is already time-sorted, and callers (notably the active-line
// lookup) rely on that precondition.
//
// Empty input, or input with no valid timestamp lines, yields an empty slice,
// never an error. Callers must treat an empty result as "no synced lyrics".
func Parse(text string) []Line {
	lines := []Line{}

	for _, raw := range strings.Split(text, "\n") {
		match := timeRegex.FindStringSubmatch(raw)
		if match == nil {
			continue
		}

		minutes, _ := strconv.Atoi(match[1])
		seconds, _ := strconv.Atoi(match[2])

		// A 2-digit fraction is hundredths; right-pad to milliseconds so
		// [00:12.34] and [00:12.340] mean the same instant.
		frac := match[3]
		for len(frac) < 3 {
			frac += "0"
		}
		millis, _ := strconv.Atoi(frac)

		content := strings.TrimSpace(timeRegex.ReplaceAllString(raw, ""))
		if content == "" {
			continue
		}

		lines = append(lines, Line{
			Time: float64(minutes)*60 + float64(seconds) + float64(millis)/1000,
			Text: content,
		})
	}

	return lines
}

// Render is the inverse of Parse: it formats lines back into bracketed
// timed text, one line per entry, with millisecond precision.
func Render(lines []Line) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(FormatTimestamp(line.Time))
		b.WriteString(line.Text)
	}
	return b.String()
}

// FormatTimestamp renders a time in seconds as a [mm:ss.fff] tag.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMs := int(seconds*1000 + 0.5)
	m := totalMs / 60000
	s := (totalMs % 60000) / 1000
	ms := totalMs % 1000
	return fmt.Sprintf("[%02d:%02d.%03d]", m, s, ms)
}

// Synced reports whether the given text contains at least one parseable
// timed line.
func Synced(text string) bool {
	return len(Parse(text)) > 0
}
