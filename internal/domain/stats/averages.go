package stats

import "github.com/okian/pxpstats/internal/domain/types"

// Averages computes the per-player mean of goals, shots and both
// percentages. Each player weighs the same regardless of volume.
func Averages(lines []types.PlayerLine) types.TeamAverages {
	n := len(lines)
	if n == 0 {
		return types.TeamAverages{}
	}

	var goals, shots, shooting, completion float64
	for _, l := range lines {
		goals += float64(l.Goals)
		shots += float64(l.Shots)
		shooting += ShootingPct(l.Goals, l.Shots)
		completion += PassCompletionPct(l.Passes, l.IncompletePasses)
	}

	f := float64(n)
	return types.TeamAverages{
		TotalPlayers:         n,
		AvgGoals:             goals / f,
		AvgShots:             shots / f,
		AvgShootingPct:       shooting / f,
		AvgPassCompletionPct: completion / f,
	}
}
