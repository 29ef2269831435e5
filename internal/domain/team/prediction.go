package team

import (
	"math"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/player"
)

const (
	maxDrawProbability = 0.34
	drawSensitivity    = 0.2
)

// Prediction is the outcome estimate for a home/away pairing.
type Prediction struct {
	Home            Ref
	Away            Ref
	HomeWin         float64
	AwayWin         float64
	Draw            float64
	PredictedWinner *Ref
}

// Strength is the minutes-weighted mean rating of a roster. When no minutes
// were recorded it falls back to the plain mean of positive ratings.
func Strength(players []player.Player) float64 {
	if len(players) == 0 {
		return 0
	}

	totalMinutes := 0
	weighted := 0.0
	for _, p := range players {
		totalMinutes += p.Minutes
		weighted += p.Rating * float64(p.Minutes)
	}
	if totalMinutes > 0 {
		return weighted / float64(totalMinutes)
	}

	sum := 0.0
	count := 0
	for _, p := range players {
		if p.Rating > 0 {
			sum += p.Rating
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Predict estimates win/draw probabilities from roster strength.
func Predict(home, away Team) Prediction {
	strengthHome := Strength(home.Players)
	strengthAway := Strength(away.Players)

	ratio := 1.0
	if strengthAway > 0 {
		ratio = strengthHome / strengthAway
	}
	draw := maxDrawProbability * math.Exp(-math.Pow(ratio-1, 2)/drawSensitivity)

	remaining := 1 - draw
	total := strengthHome + strengthAway
	homeWin, awayWin := 0.0, 0.0
	if total > 0 {
		homeWin = remaining * (strengthHome / total)
		awayWin = remaining * (strengthAway / total)
	}

	out := Prediction{
		Home:    home.Ref(),
		Away:    away.Ref(),
		HomeWin: homeWin,
		AwayWin: awayWin,
		Draw:    draw,
	}
	switch {
	case homeWin > awayWin:
		winner := out.Home
		out.PredictedWinner = &winner
	case awayWin > homeWin:
		winner := out.Away
		out.PredictedWinner = &winner
	}

	return out
}
