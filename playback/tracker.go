// Package playback maps a moving playback clock onto a timed lyric sequence.
package playback

import (
	"sort"
	"sync/atomic"

	"lyricsync/lrc"
)

// PreRollSeconds is subtracted from a line's timestamp when seeking to it,
// so playback lands slightly before the lyric and the listener catches the
// start of the line.
const PreRollSeconds = 0.3

// ActiveIndex returns the index of the line active at time t: the last index i
// with lines[i].Time <= t. Returns -1 when t precedes the first line or lines
// is empty.
//
// Precondition: lines are in non-decreasing time order (as produced by
// lrc.Parse on well-formed input). Lookup is a binary search, so it stays
// cheap at any update cadence, including out-of-order seeks.
func ActiveIndex(lines []lrc.Line, t float64) int {
	// First index whose start time is strictly after t.
	next := sort.Search(len(lines), func(i int) bool {
		return lines[i].Time > t
	})
	return next - 1
}

// SeekTarget translates a clicked line into a playback position, applying the
// pre-roll offset and clamping at zero.
func SeekTarget(line lrc.Line) float64 {
	target := line.Time - PreRollSeconds
	if target < 0 {
		return 0
	}
	return target
}

// Tracker holds a resolved timed-line sequence and the most recently computed
// active index, for callers that want change notifications rather than raw
// lookups.
type Tracker struct {
	lines  []lrc.Line
	active int
}

// NewTracker creates a tracker over the given lines. The active index starts
// at -1 (before the first line).
func NewTracker(lines []lrc.Line) *Tracker {
	return &Tracker{lines: lines, active: -1}
}

// Update recomputes the active index for the given playback time and reports
// whether it changed since the previous update.
func (tr *Tracker) Update(t float64) (index int, changed bool) {
	index = ActiveIndex(tr.lines, t)
	changed = index != tr.active
	tr.active = index
	return index, changed
}

// Active returns the index computed by the last Update, or -1 if Update has
// not been called.
func (tr *Tracker) Active() int {
	return tr.active
}

// Lines returns the tracked sequence.
func (tr *Tracker) Lines() []lrc.Line {
	return tr.lines
}

// Guard issues monotonically increasing request tokens and accepts only the
// latest. Resolutions are not cancelled when the user re-selects a track, so
// a slow earlier request can complete after a newer one; tagging each request
// and checking Accept before applying its result keeps stale lyrics from
// overwriting current ones.
type Guard struct {
	latest atomic.Uint64
}

// Next issues a token for a new request and makes it the latest.
func (g *Guard) Next() uint64 {
	return g.latest.Add(1)
}

// Accept reports whether the given token is still the latest issued.
func (g *Guard) Accept(token uint64) bool {
	return g.latest.Load() == token
}
