package httpapi

import (
	"time"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/match"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/player"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/team"
	"github.com/lucasAG-UNQ/FutbolApi/internal/usecase"
)

const matchDateLayout = "2006-01-02"

type teamRefDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type simpleTeamDTO struct {
	TeamID   int64  `json:"teamID"`
	TeamName string `json:"teamName"`
}

type teamDTO struct {
	ID      int64       `json:"id"`
	Name    string      `json:"name"`
	Country string      `json:"country"`
	Players []playerDTO `json:"players"`
}

type playerDTO struct {
	ID   int64         `json:"id"`
	Team simpleTeamDTO `json:"team"`
	playerPerformanceDTO
}

type playerPerformanceDTO struct {
	Name        *string `json:"name"`
	Position    *string `json:"position"`
	Tournament  *string `json:"tournament"`
	Season      *string `json:"season"`
	Apps        int     `json:"apps"`
	Goals       int     `json:"goals"`
	Assists     int     `json:"assists"`
	Rating      float64 `json:"rating"`
	Minutes     int     `json:"minutes"`
	YellowCards int     `json:"yellowCards"`
	RedCards    int     `json:"redCards"`
	Age         int     `json:"age"`
}

type matchDTO struct {
	HomeTeam   simpleTeamDTO `json:"homeTeam"`
	AwayTeam   simpleTeamDTO `json:"awayTeam"`
	Date       string        `json:"date"`
	Tournament *string       `json:"tournament,omitempty"`
	HomeScore  *int          `json:"homeScore,omitempty"`
	AwayScore  *int          `json:"awayScore,omitempty"`
}

type teamStatsDTO struct {
	TeamID              int64      `json:"teamId"`
	TeamName            string     `json:"teamName"`
	TotalMatches        int        `json:"totalMatches"`
	Wins                int        `json:"wins"`
	Draws               int        `json:"draws"`
	Losses              int        `json:"losses"`
	WinPercentage       float64    `json:"winPercentage"`
	GoalsFor            int        `json:"goalsFor"`
	GoalsAgainst        int        `json:"goalsAgainst"`
	AverageGoalsFor     float64    `json:"averageGoalsFor"`
	AverageGoalsAgainst float64    `json:"averageGoalsAgainst"`
	LongestWinStreak    int        `json:"longestWinStreak"`
	Founded             *int       `json:"founded"`
	Venue               *string    `json:"venue"`
	ClubColors          *string    `json:"clubColors"`
	MVP                 *playerDTO `json:"mvp"`
}

type predictionDTO struct {
	HomeTeam               simpleTeamDTO  `json:"homeTeam"`
	AwayTeam               simpleTeamDTO  `json:"awayTeam"`
	WinProbabilityHomeTeam float64        `json:"winProbabilityHomeTeam"`
	WinProbabilityAwayTeam float64        `json:"winProbabilityAwayTeam"`
	DrawProbability        float64        `json:"drawProbability"`
	PredictedWinner        *simpleTeamDTO `json:"predictedWinner"`
}

type messageDTO struct {
	Message string `json:"message"`
}

type loginDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type requestDTO struct {
	Endpoint  string    `json:"endpoint"`
	Timestamp time.Time `json:"timestamp"`
}

func simpleTeam(ref team.Ref) simpleTeamDTO {
	return simpleTeamDTO{TeamID: ref.ID, TeamName: ref.Name}
}

func teamToDTO(t team.Team) teamDTO {
	players := make([]playerDTO, 0, len(t.Players))
	for _, p := range t.Players {
		players = append(players, playerToDTO(p, t.Ref()))
	}
	return teamDTO{
		ID:      t.ID,
		Name:    t.Name,
		Country: t.Country,
		Players: players,
	}
}

func playerToDTO(p player.Player, owner team.Ref) playerDTO {
	return playerDTO{
		ID:                   p.ID,
		Team:                 simpleTeam(owner),
		playerPerformanceDTO: performanceToDTO(p),
	}
}

func performanceToDTO(p player.Player) playerPerformanceDTO {
	return playerPerformanceDTO{
		Name:        p.Name,
		Position:    p.Position,
		Tournament:  p.Tournament,
		Season:      p.Season,
		Apps:        p.Apps,
		Goals:       p.Goals,
		Assists:     p.Assists,
		Rating:      p.Rating,
		Minutes:     p.Minutes,
		YellowCards: p.YellowCards,
		RedCards:    p.RedCards,
		Age:         p.Age,
	}
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, m := range items {
		out = append(out, matchDTO{
			HomeTeam:   simpleTeam(m.HomeTeam),
			AwayTeam:   simpleTeam(m.AwayTeam),
			Date:       m.Date.UTC().Format(matchDateLayout),
			Tournament: m.Tournament,
			HomeScore:  m.HomeScore,
			AwayScore:  m.AwayScore,
		})
	}
	return out
}

func teamStatsToDTO(s usecase.TeamStats) teamStatsDTO {
	out := teamStatsDTO{
		TeamID:              s.Team.ID,
		TeamName:            s.Team.Name,
		TotalMatches:        s.Record.Total,
		Wins:                s.Record.Wins,
		Draws:               s.Record.Draws,
		Losses:              s.Record.Losses,
		WinPercentage:       s.Record.WinPercentage(),
		GoalsFor:            s.Record.GoalsFor,
		GoalsAgainst:        s.Record.GoalsAgainst,
		AverageGoalsFor:     s.Record.AverageGoalsFor(),
		AverageGoalsAgainst: s.Record.AverageGoalsAgainst(),
		LongestWinStreak:    s.Record.LongestWinStreak,
		Founded:             s.Metadata.Founded,
		Venue:               s.Metadata.Venue,
		ClubColors:          s.Metadata.ClubColors,
	}
	if s.MVP != nil {
		mvp := playerToDTO(*s.MVP, s.Team)
		out.MVP = &mvp
	}
	return out
}

func predictionToDTO(p team.Prediction) predictionDTO {
	out := predictionDTO{
		HomeTeam:               simpleTeam(p.Home),
		AwayTeam:               simpleTeam(p.Away),
		WinProbabilityHomeTeam: p.HomeWin,
		WinProbabilityAwayTeam: p.AwayWin,
		DrawProbability:        p.Draw,
	}
	if p.PredictedWinner != nil {
		winner := simpleTeam(*p.PredictedWinner)
		out.PredictedWinner = &winner
	}
	return out
}
