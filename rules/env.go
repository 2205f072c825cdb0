package rules

import (
	"time"

	"github.com/nstehr/ogbot/model"
)

// TargetEnv is what a rule condition sees about one candidate target.
type TargetEnv struct {
	Defenses   int
	Value      float64 // expected plunder
	Loot       float64 // fraction 0..1
	Metal      int64
	Crystal    int64
	Deuterium  int64
	State      string // player state name: active, inactive, vacation, unknown
	Galaxy     int
	System     int
	Position   int
	Distance   int     // systems away from home, -1 in another galaxy
	AgeSeconds float64 // report age at evaluation time
}

// NewTargetEnv builds the environment for a spy report seen from home at now.
func NewTargetEnv(r model.SpyReport, home model.Coordinates, now time.Time) TargetEnv {
	c := r.Target.Coordinates
	return TargetEnv{
		Defenses:   r.Defenses,
		Value:      r.Value(),
		Loot:       r.Loot,
		Metal:      r.Resources.Metal,
		Crystal:    r.Resources.Crystal,
		Deuterium:  r.Resources.Deuterium,
		State:      r.PlayerState.String(),
		Galaxy:     c.Galaxy,
		System:     c.System,
		Position:   c.Position,
		Distance:   home.SystemDistance(c),
		AgeSeconds: now.Sub(r.Timestamp).Seconds(),
	}
}

func (e TargetEnv) Total() int64 {
	return e.Metal + e.Crystal + e.Deuterium
}

func (e TargetEnv) Inactive() bool {
	return e.State == model.Inactive.String()
}

// SameGalaxy reports whether the target is reachable without crossing galaxies.
func (e TargetEnv) SameGalaxy() bool {
	return e.Distance >= 0
}
