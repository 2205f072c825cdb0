package model

import "time"

// SpyReport is a time-stamped intelligence snapshot of a target planet.
// Timestamp is game time as rendered by the server, not wall time.
type SpyReport struct {
	ID          string         `json:"id,omitempty"`
	Origin      Coordinates    `json:"origin"`
	Target      Planet         `json:"target"`
	Resources   ResourceBundle `json:"resources"`
	Defenses    int            `json:"defenses"`
	PlayerState PlayerState    `json:"playerState"`
	Loot        float64        `json:"loot"` // fraction 0..1
	Timestamp   time.Time      `json:"timestamp"`
}

// Value is the expected plunder: lootable resources times loot fraction.
func (r SpyReport) Value() float64 {
	return float64(r.Resources.Total()) * r.Loot
}
