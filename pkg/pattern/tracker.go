package pattern

import (
	"sync"
	"time"
)

// FamilyTracker counts family-hash occurrences inside a sliding window.
// A family seen repeatedly in a short window is a strong campaign signal
// even when each individual address scores modestly.
type FamilyTracker struct {
	mu       sync.Mutex
	families map[string]*familyStats

	window     time.Duration
	burstCount int
	maxEntries int
}

type familyStats struct {
	recent    []time.Time
	firstSeen time.Time
	total     int
}

// Velocity is the cross-request aggregation signal for one family
type Velocity struct {
	CountInWindow int  `json:"countInWindow"`
	TotalSeen     int  `json:"totalSeen"`
	Burst         bool `json:"burst"`
}

// NewFamilyTracker creates a tracker. burstCount is the in-window count
// at which a family is considered bursting.
func NewFamilyTracker(window time.Duration, burstCount, maxEntries int) *FamilyTracker {
	if window <= 0 {
		window = time.Hour
	}
	if burstCount <= 0 {
		burstCount = 5
	}
	if maxEntries <= 0 {
		maxEntries = 10000
	}
	return &FamilyTracker{
		families:   make(map[string]*familyStats),
		window:     window,
		burstCount: burstCount,
		maxEntries: maxEntries,
	}
}

// Observe records one occurrence of a family hash and returns its
// current velocity.
func (t *FamilyTracker) Observe(hash string, now time.Time) Velocity {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats, ok := t.families[hash]
	if !ok {
		stats = &familyStats{firstSeen: now}
		t.families[hash] = stats
	}
	stats.total++
	stats.recent = append(stats.recent, now)

	// drop observations older than the window
	cutoff := now.Add(-t.window)
	kept := stats.recent[:0]
	for _, ts := range stats.recent {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	stats.recent = kept

	if len(t.families) > t.maxEntries {
		t.evictStale(cutoff)
	}

	return Velocity{
		CountInWindow: len(stats.recent),
		TotalSeen:     stats.total,
		Burst:         len(stats.recent) >= t.burstCount,
	}
}

// evictStale removes families with no in-window observations
func (t *FamilyTracker) evictStale(cutoff time.Time) {
	for hash, stats := range t.families {
		if len(stats.recent) == 0 || !stats.recent[len(stats.recent)-1].After(cutoff) {
			delete(t.families, hash)
		}
	}
}
