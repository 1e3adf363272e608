package game

import (
	"fmt"
	"math"
	"strings"
)

// RunResult is the coarse outcome of a run.
type RunResult int

const (
	ResultInProgress RunResult = iota
	ResultOverrunEarly
	ResultOverrun
	ResultSurvived
)

func (r RunResult) String() string {
	switch r {
	case ResultInProgress:
		return "in_progress"
	case ResultOverrunEarly:
		return "overrun_early"
	case ResultOverrun:
		return "overrun"
	case ResultSurvived:
		return "survived"
	default:
		return "unknown"
	}
}

// Grading thresholds.
const (
	outcomeEarlyDeathSeconds = 30
	outcomeSurvivalTarget    = 180
	outcomeKillTarget        = 150
	outcomeStreakTarget      = 20
)

// RunOutcome summarises one run for reports and the end-of-run screen.
type RunOutcome struct {
	Result         RunResult
	Score          uint32
	Best           uint32
	Survived       float64 // seconds of unpaused play
	Kills          int
	BestStreak     uint32
	DamageTaken    uint32
	ShieldBlocks   int
	Pickups        int
	CurrencyEarned uint32
	Balance        uint32
	Rating         float64 // 0-100
	Grade          string
}

// DetermineRunOutcome grades the sim's current run.
func DetermineRunOutcome(s *Sim) RunOutcome {
	st := s.Stats()
	snap := s.Snapshot()
	o := RunOutcome{
		Score:          snap.Score,
		Best:           snap.BestScore,
		Survived:       st.Duration,
		Kills:          st.Kills,
		BestStreak:     st.BestStreak,
		DamageTaken:    st.DamageTaken,
		ShieldBlocks:   st.ShieldBlocks,
		Pickups:        st.Pickups,
		CurrencyEarned: st.CurrencyEarned,
		Balance:        snap.Currency,
	}

	switch {
	case snap.Active && st.Duration >= outcomeSurvivalTarget:
		o.Result = ResultSurvived
	case snap.Active:
		o.Result = ResultInProgress
	case st.Duration < outcomeEarlyDeathSeconds:
		o.Result = ResultOverrunEarly
	default:
		o.Result = ResultOverrun
	}

	maxHP := float64(snap.Player.Health.Max)
	resilience := 1.0
	if maxHP > 0 {
		resilience = 1 - math.Min(float64(st.DamageTaken)/maxHP, 1)
	}
	o.Rating = perfClamp(
		40*math.Min(st.Duration/outcomeSurvivalTarget, 1) +
			30*math.Min(float64(st.Kills)/outcomeKillTarget, 1) +
			15*math.Min(float64(st.BestStreak)/outcomeStreakTarget, 1) +
			15*resilience)
	o.Grade = PerfLetterGrade(o.Rating)
	return o
}

// Summary is the multi-line end-of-run text.
func (o RunOutcome) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Threadweaver run: %s  grade %s (%.0f)\n", o.Result, o.Grade, o.Rating)
	fmt.Fprintf(&sb, "Score %d (best %d)  survived %s\n", o.Score, o.Best, formatDuration(o.Survived))
	fmt.Fprintf(&sb, "Kills %d  best streak %d  pickups %d\n", o.Kills, o.BestStreak, o.Pickups)
	fmt.Fprintf(&sb, "Damage taken %d  shield blocks %d\n", o.DamageTaken, o.ShieldBlocks)
	fmt.Fprintf(&sb, "Threads earned %d  balance %d\n", o.CurrencyEarned, o.Balance)
	return sb.String()
}

func formatDuration(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func perfClamp(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// PerfLetterGrade maps a 0-100 score to a letter grade.
func PerfLetterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}
