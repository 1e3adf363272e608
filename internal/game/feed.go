package game

import "fmt"

const feedMaxEntries = 60

// FeedKind tags a feed line so the HUD can colour it.
type FeedKind int

const (
	FeedRun FeedKind = iota
	FeedCombo
	FeedPickup
	FeedShop
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick    int
	Kind    FeedKind
	Message string
}

// EventFeed is a ring buffer of recent human-readable events shown on the HUD.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends a formatted entry, overwriting the oldest when full.
func (f *EventFeed) Add(tick int, kind FeedKind, format string, args ...any) {
	f.entries[f.head] = FeedEntry{
		Tick:    tick,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Last returns up to n of the newest entries, oldest first.
func (f *EventFeed) Last(n int) []FeedEntry {
	all := f.Recent()
	if n >= len(all) {
		return all
	}
	return all[len(all)-n:]
}

func (f *EventFeed) Len() int { return f.count }
