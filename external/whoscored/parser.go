package whoscored

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
	sonic "github.com/bytedance/sonic"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/player"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/team"
	"github.com/lucasAG-UNQ/FutbolApi/internal/usecase"
)

type feedEnvelope struct {
	PlayerTableStats []feedRow `json:"playerTableStats"`
}

// feedRow is one player line of the statistics feed. Every field may be absent.
type feedRow struct {
	PlayerID       *float64 `json:"playerId"`
	Name           *string  `json:"name"`
	PositionText   *string  `json:"positionText"`
	TeamID         *float64 `json:"teamId"`
	TeamName       *string  `json:"teamName"`
	TeamRegionName *string  `json:"teamRegionName"`
	TournamentName *string  `json:"tournamentName"`
	SeasonName     *string  `json:"seasonName"`
	Apps           *float64 `json:"apps"`
	Goal           *float64 `json:"goal"`
	AssistTotal    *float64 `json:"assistTotal"`
	Rating         *float64 `json:"rating"`
	MinsPlayed     *float64 `json:"minsPlayed"`
	YellowCard     *float64 `json:"yellowCard"`
	RedCard        *float64 `json:"redCard"`
	Age            *float64 `json:"age"`
}

func (r feedRow) toPlayer(teamID int64) (player.Player, bool) {
	if r.PlayerID == nil || *r.PlayerID <= 0 {
		return player.Player{}, false
	}
	return player.Player{
		ID:          int64(*r.PlayerID),
		TeamID:      teamID,
		Name:        r.Name,
		Position:    r.PositionText,
		Tournament:  r.TournamentName,
		Season:      r.SeasonName,
		Apps:        intOf(r.Apps),
		Goals:       intOf(r.Goal),
		Assists:     intOf(r.AssistTotal),
		Minutes:     intOf(r.MinsPlayed),
		YellowCards: intOf(r.YellowCard),
		RedCards:    intOf(r.RedCard),
		Age:         intOf(r.Age),
		Rating:      floatOf(r.Rating),
	}, true
}

func decodeFeed(body []byte) (feedEnvelope, error) {
	var env feedEnvelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		return feedEnvelope{}, err
	}
	return env, nil
}

// ParseTeamStats maps the statistics feed to a team with its raw roster.
// rosterPresent is false when the feed carried no player rows; callers then
// fall back to the team page.
func ParseTeamStats(body []byte, teamID int64) (_ team.Team, rosterPresent bool, _ error) {
	env, err := decodeFeed(body)
	if err != nil {
		return team.Team{}, false, fmt.Errorf("%w: team=%d: decode statistics feed: %v", usecase.ErrTeamNotFound, teamID, err)
	}
	if len(env.PlayerTableStats) == 0 {
		return team.Team{}, false, nil
	}

	first := env.PlayerTableStats[0]
	if first.TeamName == nil || strings.TrimSpace(*first.TeamName) == "" {
		return team.Team{}, false, fmt.Errorf("%w: team=%d: first feed row has no team name", usecase.ErrTeamNotFound, teamID)
	}

	out := team.Team{
		ID:      teamID,
		Name:    strings.TrimSpace(*first.TeamName),
		Country: valueOrEmpty(first.TeamRegionName),
	}
	if first.TeamID != nil && *first.TeamID > 0 {
		out.ID = int64(*first.TeamID)
	}

	out.Players = make([]player.Player, 0, len(env.PlayerTableStats))
	for _, row := range env.PlayerTableStats {
		if p, ok := row.toPlayer(out.ID); ok {
			out.Players = append(out.Players, p)
		}
	}

	return out, true, nil
}

// ParseTeamPageName reads the club name from the team page header.
func ParseTeamPageName(body []byte) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", false
	}
	sel := doc.Find("span.team-header-name").First()
	if sel.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(sel.Text()), true
}

// ParsePlayerStats folds every tournament line of one player into a single aggregate.
// The rating is weighted by minutes played.
func ParsePlayerStats(body []byte, playerID int64) (player.Player, error) {
	env, err := decodeFeed(body)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: player=%d: decode statistics feed: %v", usecase.ErrPlayerNotFound, playerID, err)
	}
	if len(env.PlayerTableStats) == 0 {
		return player.Player{}, fmt.Errorf("%w: player=%d", usecase.ErrPlayerNotFound, playerID)
	}

	first := env.PlayerTableStats[0]
	out := player.Player{
		ID:       playerID,
		Name:     first.Name,
		Position: first.PositionText,
		Age:      intOf(first.Age),
	}
	if first.TeamID != nil {
		out.TeamID = int64(*first.TeamID)
	}

	weighted := 0.0
	tournaments := make([]string, 0, len(env.PlayerTableStats))
	seasons := make([]string, 0, len(env.PlayerTableStats))
	for _, row := range env.PlayerTableStats {
		minutes := intOf(row.MinsPlayed)
		out.Apps += intOf(row.Apps)
		out.Minutes += minutes
		out.Goals += intOf(row.Goal)
		out.Assists += intOf(row.AssistTotal)
		out.YellowCards += intOf(row.YellowCard)
		out.RedCards += intOf(row.RedCard)
		weighted += floatOf(row.Rating) * float64(minutes)
		tournaments = append(tournaments, valueOrEmpty(row.TournamentName))
		seasons = append(seasons, valueOrEmpty(row.SeasonName))
	}
	if out.Minutes > 0 {
		out.Rating = weighted / float64(out.Minutes)
	}

	tournament := player.JoinDistinct(tournaments)
	season := player.JoinDistinct(seasons)
	out.Tournament = &tournament
	out.Season = &season

	return out, nil
}

func intOf(v *float64) int {
	if v == nil || math.IsNaN(*v) {
		return 0
	}
	return int(*v)
}

func floatOf(v *float64) float64 {
	if v == nil || math.IsNaN(*v) {
		return 0
	}
	return *v
}

func valueOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
