package game

import (
	"fmt"
	"math"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour reports (~10s at 60TPS).
const reportWindowTicks = 600

// --- Snapshot types ---

// SimReport is a compact sample of the session at one tick.
type SimReport struct {
	Tick int

	Active        bool
	Score         uint32
	Currency      uint32
	Health        Health
	Weapon        WeaponMode
	ShieldActive  bool
	Hostiles      int
	TrailSegments int
	Projectiles   int
	PowerUps      int
	ComboStreak   uint32
	SpawnInterval float64
	Kills         int

	// Nearest hostile distance; +Inf when none are alive.
	NearestHostile float64
}

// --- Reporter ---

// SimReporter collects periodic reports from the simulation and can produce
// summaries over sliding time windows.
type SimReporter struct {
	history     []SimReport
	windowTicks int
}

// NewSimReporter creates a reporter with the given window size.
func NewSimReporter(windowTicks int) *SimReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SimReporter{windowTicks: windowTicks}
}

// Collect samples the current simulation state.
// Call this periodically (e.g. every 60 ticks / 1s).
func (r *SimReporter) Collect(s *Sim) {
	snap := s.Snapshot()
	report := SimReport{
		Tick:           snap.Tick,
		Active:         snap.Active,
		Score:          snap.Score,
		Currency:       snap.Currency,
		Health:         snap.Player.Health,
		Weapon:         snap.Player.Weapon,
		ShieldActive:   snap.ShieldActive,
		Hostiles:       len(snap.Hostiles),
		TrailSegments:  len(snap.Trail),
		Projectiles:    len(snap.Projectiles),
		PowerUps:       len(snap.PowerUps),
		ComboStreak:    snap.ComboStreak,
		SpawnInterval:  snap.SpawnInterval,
		Kills:          snap.Stats.Kills,
		NearestHostile: math.Inf(1),
	}
	for _, h := range snap.Hostiles {
		d := h.Pos.Sub(snap.Player.Pos).Len()
		if d < report.NearestHostile {
			report.NearestHostile = d
		}
	}

	r.history = append(r.history, report)

	// Prune old history beyond 2x window to prevent unbounded growth.
	maxKeep := r.windowTicks / 60 * 2
	if maxKeep < 100 {
		maxKeep = 100
	}
	if len(r.history) > maxKeep {
		r.history = r.history[len(r.history)-maxKeep:]
	}
}

// Latest returns the most recent report, or nil if none collected yet.
func (r *SimReporter) Latest() *SimReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all retained reports.
func (r *SimReporter) History() []SimReport {
	return r.history
}

// WindowSummary aggregates the reports inside the recent time window.
func (r *SimReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	var window []SimReport
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}
	if len(window) == 0 {
		return nil
	}

	n := float64(len(window))
	newest, oldest := window[0], window[len(window)-1]
	wr := &WindowReport{
		FromTick:         oldest.Tick,
		ToTick:           newest.Tick,
		SampleCount:      len(window),
		ScoreGain:        int64(newest.Score) - int64(oldest.Score),
		Kills:            newest.Kills - oldest.Kills,
		MinSpawnInterval: math.Inf(1),
		ClosestCall:      math.Inf(1),
	}

	for _, rpt := range window {
		wr.AvgHostiles += float64(rpt.Hostiles)
		if rpt.Hostiles > wr.PeakHostiles {
			wr.PeakHostiles = rpt.Hostiles
		}
		wr.AvgHealthPct += rpt.Health.Fraction() * 100
		wr.AvgComboStreak += float64(rpt.ComboStreak)
		if rpt.Weapon == WeaponWave {
			wr.WaveTimePct++
		}
		if rpt.ShieldActive {
			wr.ShieldTimePct++
		}
		wr.MinSpawnInterval = math.Min(wr.MinSpawnInterval, rpt.SpawnInterval)
		wr.ClosestCall = math.Min(wr.ClosestCall, rpt.NearestHostile)
	}

	wr.AvgHostiles /= n
	wr.AvgHealthPct /= n
	wr.AvgComboStreak /= n
	wr.WaveTimePct = wr.WaveTimePct / n * 100
	wr.ShieldTimePct = wr.ShieldTimePct / n * 100
	return wr
}

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	AvgHostiles    float64
	PeakHostiles   int
	AvgHealthPct   float64
	AvgComboStreak float64
	WaveTimePct    float64
	ShieldTimePct  float64

	MinSpawnInterval float64
	ClosestCall      float64 // +Inf when no hostile was alive at any sample

	ScoreGain int64
	Kills     int
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Run Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)

	sb.WriteString("\n--- Pressure ---\n")
	fmt.Fprintf(&sb, "  hostiles avg=%.1f peak=%d  spawn interval=%.2fs (%s)\n",
		wr.AvgHostiles, wr.PeakHostiles, wr.MinSpawnInterval, pressureLabel(wr.AvgHostiles))
	if math.IsInf(wr.ClosestCall, 1) {
		sb.WriteString("  closest call: none\n")
	} else {
		fmt.Fprintf(&sb, "  closest call: %.0f units\n", wr.ClosestCall)
	}

	sb.WriteString("\n--- Player ---\n")
	fmt.Fprintf(&sb, "  health avg=%.0f%%  shield uptime=%.0f%%  wave uptime=%.0f%%\n",
		wr.AvgHealthPct, wr.ShieldTimePct, wr.WaveTimePct)

	sb.WriteString("\n--- Scoring ---\n")
	fmt.Fprintf(&sb, "  kills=%d  score gain=%+d  avg streak=%.1f\n",
		wr.Kills, wr.ScoreGain, wr.AvgComboStreak)

	return sb.String()
}

func pressureLabel(avgHostiles float64) string {
	switch {
	case avgHostiles >= 30:
		return "overwhelming"
	case avgHostiles >= 15:
		return "heavy"
	case avgHostiles >= 5:
		return "steady"
	case avgHostiles >= 1:
		return "light"
	default:
		return "quiet"
	}
}

// FormatLatest returns a concise line for the most recent report.
func (r *SimReporter) FormatLatest() string {
	rpt := r.Latest()
	if rpt == nil {
		return "No data.\n"
	}
	return fmt.Sprintf("T=%d active=%v score=%d hp=%d/%d hostiles=%d trail=%d weapon=%s streak=%d interval=%.2fs\n",
		rpt.Tick, rpt.Active, rpt.Score, rpt.Health.Current, rpt.Health.Max,
		rpt.Hostiles, rpt.TrailSegments, rpt.Weapon, rpt.ComboStreak, rpt.SpawnInterval)
}
