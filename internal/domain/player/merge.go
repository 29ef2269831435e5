package player

import "strings"

const joinSeparator = ", "

// MergeRoster collapses stat lines sharing an ID into a single aggregate.
// Groups keep the order in which their ID first appears. Single-line groups
// are returned untouched, which makes the merge idempotent.
func MergeRoster(players []Player) []Player {
	if len(players) == 0 {
		return []Player{}
	}

	order := make([]int64, 0, len(players))
	groups := make(map[int64][]Player, len(players))
	for _, p := range players {
		if _, seen := groups[p.ID]; !seen {
			order = append(order, p.ID)
		}
		groups[p.ID] = append(groups[p.ID], p)
	}

	out := make([]Player, 0, len(order))
	for _, id := range order {
		group := groups[id]
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}
		out = append(out, mergeGroup(group))
	}

	return out
}

func mergeGroup(group []Player) Player {
	first := group[0]
	merged := Player{
		ID:       first.ID,
		TeamID:   first.TeamID,
		Name:     first.Name,
		Position: first.Position,
		Age:      first.Age,
	}

	tournaments := make([]string, 0, len(group))
	seasons := make([]string, 0, len(group))
	ratingSum := 0.0
	rated := 0
	for _, p := range group {
		merged.Apps += p.Apps
		merged.Goals += p.Goals
		merged.Assists += p.Assists
		merged.Minutes += p.Minutes
		merged.YellowCards += p.YellowCards
		merged.RedCards += p.RedCards
		tournaments = append(tournaments, valueOrEmpty(p.Tournament))
		seasons = append(seasons, valueOrEmpty(p.Season))
		if p.Rating > 0 {
			ratingSum += p.Rating
			rated++
		}
	}

	tournament := strings.Join(tournaments, joinSeparator)
	season := strings.Join(seasons, joinSeparator)
	merged.Tournament = &tournament
	merged.Season = &season
	if rated > 0 {
		merged.Rating = ratingSum / float64(rated)
	}

	return merged
}

func valueOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// JoinDistinct joins the non-duplicate values in first-seen order.
func JoinDistinct(values []string) string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return strings.Join(out, joinSeparator)
}
