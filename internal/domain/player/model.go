package player

import "fmt"

// Player is one stat line for an athlete. Before reconciliation a roster may
// carry several lines per ID, one per tournament and season.
type Player struct {
	ID          int64
	TeamID      int64
	Name        *string
	Position    *string
	Tournament  *string
	Season      *string
	Apps        int
	Goals       int
	Assists     int
	Minutes     int
	YellowCards int
	RedCards    int
	Age         int
	Rating      float64
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be greater than zero")
	}
	if p.Apps < 0 || p.Goals < 0 || p.Assists < 0 || p.Minutes < 0 || p.YellowCards < 0 || p.RedCards < 0 {
		return fmt.Errorf("player %d has negative counters", p.ID)
	}

	return nil
}

// DisplayName returns the name or an empty string when the source omitted it.
func (p Player) DisplayName() string {
	if p.Name == nil {
		return ""
	}
	return *p.Name
}
