package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded simulation event.
type SimLogEntry struct {
	Tick     int
	Actor    string  // "player" or "--" for world events
	Category string  // run, spawn, combat, powerup, shop, combo
	Key      string  // event name within the category
	Value    string  // detail
	NumVal   float64 // score award, health left, interval...
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] --      combat    kill             trail
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-7s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// matches reports whether e has the category and key; empty strings match
// anything.
func (e SimLogEntry) matches(category, key string) bool {
	return (category == "" || e.Category == category) && (key == "" || e.Key == key)
}

// SimLog is the unbounded, machine-readable event record of a session.
// EventFeed is its bounded, human-facing sibling.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. Verbose logs also keep per-spawn and
// combo-expiry detail.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

func (sl *SimLog) Add(tick int, actor, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{tick, actor, category, key, value, numVal})
}

// AddVerbose is Add gated on verbose mode.
func (sl *SimLog) AddVerbose(tick int, actor, category, key, value string, numVal float64) {
	if sl.verbose {
		sl.Add(tick, actor, category, key, value, numVal)
	}
}

func (sl *SimLog) Entries() []SimLogEntry { return sl.entries }

func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.matches(category, key) {
			out = append(out, e)
		}
	}
	return out
}

// Since returns the entries recorded at or after tick.
func (sl *SimLog) Since(tick int) []SimLogEntry {
	for i, e := range sl.entries {
		if e.Tick >= tick {
			return sl.entries[i:]
		}
	}
	return nil
}

func (sl *SimLog) Count(category, key string) int {
	n := 0
	for _, e := range sl.entries {
		if e.matches(category, key) {
			n++
		}
	}
	return n
}

// LastOf returns the newest entry with category and key.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if sl.entries[i].matches(category, key) {
			return sl.entries[i], true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry also requires valueSubstr in the entry's value.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if e.matches(category, key) && strings.Contains(e.Value, valueSubstr) {
			return true
		}
	}
	return false
}

// Format renders every entry, one per line.
func (sl *SimLog) Format() string { return formatEntries(sl.entries) }

func formatEntries(entries []SimLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary is a short block describing the session state and log totals.
func (sl *SimLog) Summary(s *Sim) string {
	snap := s.Snapshot()
	bought := 0
	for _, e := range sl.Filter("shop", "purchase") {
		if strings.HasSuffix(e.Value, ":"+PurchaseOK.String()) {
			bought++
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", snap.Tick)
	fmt.Fprintf(&sb, "Run: active=%v paused=%v  score=%d best=%d\n",
		snap.Active, snap.Paused, snap.Score, snap.BestScore)
	fmt.Fprintf(&sb, "Player: hp=%d/%d  weapon=%s  accuracy=%d  shield=%.1fs\n",
		snap.Player.Health.Current, snap.Player.Health.Max, snap.Player.Weapon,
		snap.Player.AccuracyStacks, snap.ShieldRemaining)
	fmt.Fprintf(&sb, "Entities: hostiles=%d trail=%d projectiles=%d powerups=%d particles=%d\n",
		len(snap.Hostiles), len(snap.Trail), len(snap.Projectiles), len(snap.PowerUps), len(snap.Particles))
	fmt.Fprintf(&sb, "Kills: %d  pickups: %d  purchases: %d\n",
		sl.Count("combat", "kill"), sl.Count("powerup", "pickup"), bought)
	return sb.String()
}
