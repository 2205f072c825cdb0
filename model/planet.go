package model

import "strings"

// PlayerState is the owning player's activity as shown by the galaxy view
// and spy reports.
type PlayerState int

const (
	Unknown  PlayerState = iota // marker missing or not recognised
	Active                      // regular, active player
	Inactive                    // inactive (i) or long inactive (I)
	Vacation                    // vacation mode, cannot be attacked
)

func (s PlayerState) String() string {
	switch s {
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	case Vacation:
		return "vacation"
	default:
		return "unknown"
	}
}

// ParsePlayerState maps an activity marker to a PlayerState. Markers are the
// status class suffixes ("inactive", "longinactive", "vacation", "active")
// or the inline abbreviations ("i", "I", "v"). Anything else is Unknown.
func ParsePlayerState(marker string) PlayerState {
	m := strings.TrimSpace(marker)
	m = strings.TrimPrefix(m, "status_abbr_")
	m = strings.Trim(m, "()")
	switch m {
	case "i", "I":
		return Inactive
	case "v":
		return Vacation
	}
	switch strings.ToLower(m) {
	case "inactive", "longinactive":
		return Inactive
	case "vacation":
		return Vacation
	case "active":
		return Active
	}
	return Unknown
}

// Planet is a player-owned location. Values are created fresh for every page
// fetch and never mutated afterwards.
type Planet struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
	PlayerName  string      `json:"playerName,omitempty"`
	PlayerState PlayerState `json:"playerState"`
}

func (p Planet) String() string {
	return p.Name + " " + p.Coordinates.String()
}

// Account identifies the logged-in player.
type Account struct {
	PlayerName string
	Language   string
	Version    string
}
