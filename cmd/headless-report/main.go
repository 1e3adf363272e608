package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/threadweaver/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	firstKillTick   int
	firstHitTick    int
	firstPickupTick int
	firstWaveTick   int
	endTick         int

	kills        int
	hits         int
	spawned      int
	volleys      int
	pickups      int
	shieldBlocks int
	damageTaken  uint32
	bestStreak   uint32
	earned       uint32
	score        uint32
	best         uint32
	minInterval  float64

	pickupKinds map[string]int

	outcome       game.RunOutcome
	windowSummary *game.WindowReport
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var autopilot bool
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run (60 per second)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.BoolVar(&autopilot, "autopilot", true, "steer the player in an orbit; false leaves it standing still")
	flag.BoolVar(&verbose, "verbose", false, "print the full event log of every run")
	flag.Parse()

	if runs <= 0 {
		fmt.Fprintln(os.Stderr, "error: -runs must be > 0")
		os.Exit(2)
	}
	if ticks <= 0 {
		fmt.Fprintln(os.Stderr, "error: -ticks must be > 0")
		os.Exit(2)
	}

	fmt.Printf("=== Headless Arena Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d autopilot=%v\n\n", runs, ticks, seedBase, seedStep, autopilot)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs, ts := runSession(i+1, seed, ticks, autopilot, verbose)
		all = append(all, rs)
		printRun(rs)
		if verbose {
			fmt.Print(ts.SimLog.Format())
			fmt.Println()
		}
	}

	printAggregate(all)
}

func runSession(runIndex int, seed int64, ticks int, autopilot, verbose bool) (runStats, *game.TestSim) {
	opts := []game.SimOption{game.WithSeed(seed), game.WithVerbose(verbose)}
	if autopilot {
		opts = append(opts, game.WithAutopilot())
	}
	ts := game.NewTestSim(opts...)
	rep := game.NewSimReporter(0)

	minInterval := ts.Sim.SpawnInterval()
	for i := 0; i < ticks; i++ {
		ts.RunTicks(1)
		minInterval = min(minInterval, ts.Sim.SpawnInterval())
		if ts.CurrentTick()%60 == 0 {
			rep.Collect(ts.Sim)
		}
		if !ts.Sim.Run().Active() {
			rep.Collect(ts.Sim)
			break
		}
	}

	entries := ts.SimLog.Entries()
	pickupKinds := map[string]int{}
	for _, e := range entries {
		if e.Category == "powerup" && e.Key == "pickup" {
			pickupKinds[e.Value]++
		}
	}

	st := ts.Sim.Stats()
	score := ts.Sim.Score()
	return runStats{
		runIndex:        runIndex,
		seed:            seed,
		firstKillTick:   firstTick(entries, "combat", "kill", ""),
		firstHitTick:    firstTick(entries, "combat", "hit", ""),
		firstPickupTick: firstTick(entries, "powerup", "pickup", ""),
		firstWaveTick:   firstTick(entries, "powerup", "pickup", "wave"),
		endTick:         firstTick(entries, "run", "end", ""),
		kills:           st.Kills,
		hits:            st.Hits,
		spawned:         st.HostilesSpawned,
		volleys:         st.VolleysFired,
		pickups:         st.Pickups,
		shieldBlocks:    st.ShieldBlocks,
		damageTaken:     st.DamageTaken,
		bestStreak:      st.BestStreak,
		earned:          st.CurrencyEarned,
		score:           score.Current,
		best:            score.Best,
		minInterval:     minInterval,
		pickupKinds:     pickupKinds,
		outcome:         game.DetermineRunOutcome(ts.Sim),
		windowSummary:   rep.WindowSummary(),
	}, ts
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("result=%s grade=%s rating=%.1f survived=%.1fs\n",
		rs.outcome.Result, rs.outcome.Grade, rs.outcome.Rating, rs.outcome.Survived)
	fmt.Printf("phase_markers: first_kill=%d first_hit=%d first_pickup=%d first_wave=%d end=%d\n",
		rs.firstKillTick, rs.firstHitTick, rs.firstPickupTick, rs.firstWaveTick, rs.endTick)
	fmt.Printf("combat: spawned=%d kills=%d hits=%d volleys=%d best_streak=%d\n",
		rs.spawned, rs.kills, rs.hits, rs.volleys, rs.bestStreak)
	fmt.Printf("player: damage=%d shield_blocks=%d pickups=%d [%s]\n",
		rs.damageTaken, rs.shieldBlocks, rs.pickups, joinCounts(rs.pickupKinds))
	fmt.Printf("economy: score=%d best=%d threads_earned=%d min_spawn_interval=%.2fs\n",
		rs.score, rs.best, rs.earned, rs.minInterval)
	if rs.windowSummary != nil {
		fmt.Printf("window_samples=%d window_tick_range=%d..%d\n",
			rs.windowSummary.SampleCount, rs.windowSummary.FromTick, rs.windowSummary.ToTick)
		fmt.Printf("window_avg: hostiles=%.1f peak=%d health=%.0f%% streak=%.1f shield=%.0f%% wave=%.0f%%\n",
			rs.windowSummary.AvgHostiles,
			rs.windowSummary.PeakHostiles,
			rs.windowSummary.AvgHealthPct,
			rs.windowSummary.AvgComboStreak,
			rs.windowSummary.ShieldTimePct,
			rs.windowSummary.WaveTimePct,
		)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalKills := 0
	totalSpawned := 0
	totalPickups := 0
	totalVolleys := 0
	totalDamage := 0
	totalEarned := 0
	ratingSum := 0.0

	killTicks := make([]int, 0, len(all))
	hitTicks := make([]int, 0, len(all))
	endTicks := make([]int, 0, len(all))
	pickupKinds := map[string]int{}

	for _, rs := range all {
		totalKills += rs.kills
		totalSpawned += rs.spawned
		totalPickups += rs.pickups
		totalVolleys += rs.volleys
		totalDamage += int(rs.damageTaken)
		totalEarned += int(rs.earned)
		ratingSum += rs.outcome.Rating
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		if rs.firstHitTick >= 0 {
			hitTicks = append(hitTicks, rs.firstHitTick)
		}
		if rs.endTick >= 0 {
			endTicks = append(endTicks, rs.endTick)
		}
		for k, v := range rs.pickupKinds {
			pickupKinds[k] += v
		}
	}

	n := len(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d results: %s\n", n, joinCounts(resultCounts(all)))
	fmt.Printf("avg_per_run: kills=%.1f spawned=%.1f pickups=%.1f volleys=%.1f damage=%.1f threads=%.1f\n",
		avg(totalKills, n), avg(totalSpawned, n), avg(totalPickups, n),
		avg(totalVolleys, n), avg(totalDamage, n), avg(totalEarned, n))
	fmt.Printf("phase_marker_avg_ticks: first_kill=%s first_hit=%s end=%s\n",
		avgTickString(killTicks), avgTickString(hitTicks), avgTickString(endTicks))
	fmt.Printf("pickups_by_kind: [%s]\n", joinCounts(pickupKinds))
	if n > 0 {
		avgRating := ratingSum / float64(n)
		fmt.Printf("avg_rating=%.1f grade=%s\n", avgRating, game.PerfLetterGrade(avgRating))
	}
}

// resultCounts tallies run outcomes by result name.
func resultCounts(all []runStats) map[string]int {
	out := map[string]int{}
	for _, rs := range all {
		out[rs.outcome.Result.String()]++
	}
	return out
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return strings.Join(parts, ",")
}
