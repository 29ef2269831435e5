package match

import "sort"

// Record is the win/draw/loss fold of a team's finished matches.
type Record struct {
	Total            int
	Wins             int
	Draws            int
	Losses           int
	GoalsFor         int
	GoalsAgainst     int
	LongestWinStreak int
}

func (r Record) WinPercentage() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Total) * 100
}

func (r Record) AverageGoalsFor() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.GoalsFor) / float64(r.Total)
}

func (r Record) AverageGoalsAgainst() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.GoalsAgainst) / float64(r.Total)
}

// Summarize folds matches in date order from teamID's point of view.
// Missing scores count as zero goals and never as a win.
func Summarize(teamID int64, matches []Match) Record {
	sorted := append([]Match(nil), matches...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var out Record
	out.Total = len(sorted)
	streak := 0
	for _, m := range sorted {
		home := m.HomeTeam.ID == teamID
		ours, theirs := scoreOf(m.HomeScore), scoreOf(m.AwayScore)
		if !home {
			ours, theirs = theirs, ours
		}

		out.GoalsFor += ours
		out.GoalsAgainst += theirs

		if ours > theirs {
			streak++
		} else {
			out.LongestWinStreak = max(out.LongestWinStreak, streak)
			streak = 0
		}

		if !m.Finished() {
			continue
		}
		switch {
		case ours > theirs:
			out.Wins++
		case ours < theirs:
			out.Losses++
		default:
			out.Draws++
		}
	}
	out.LongestWinStreak = max(out.LongestWinStreak, streak)

	return out
}

func scoreOf(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
