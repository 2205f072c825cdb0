package agent

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Mode is one of the bot's top-level operations.
type Mode int

const (
	Overview Mode = iota
	Explore
	AttackInactivePlanets
	AutoBuildDefenses
	AutoBuildDefensesToPlanet
	TransportResourcesToPlanet
)

var modeNames = map[Mode]string{
	Overview:                   "overview",
	Explore:                    "explore",
	AttackInactivePlanets:      "attack_inactive_planets",
	AutoBuildDefenses:          "auto_build_defenses",
	AutoBuildDefensesToPlanet:  "auto_build_defenses_to_planet",
	TransportResourcesToPlanet: "transport_resources_to_planet",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ErrUnknownMode is returned for mode names outside the closed set.
var ErrUnknownMode = errors.New("unknown mode")

// ParseMode maps a mode name to its Mode.
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w %q (valid: %v)", ErrUnknownMode, name, ModeNames())
}

// ModeNames lists the valid mode names in sorted order.
func ModeNames() []string {
	names := make([]string, 0, len(modeNames))
	for _, n := range modeNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Operation runs one mode.
type Operation func(ctx context.Context) error

func (a *Agent) operations() map[Mode]Operation {
	return map[Mode]Operation{
		Overview: func(ctx context.Context) error {
			ov, err := a.Overview(ctx)
			if err != nil {
				return err
			}
			a.logOverview(ov)
			return nil
		},
		Explore: func(ctx context.Context) error {
			_, _, err := a.Explore(ctx)
			return err
		},
		AttackInactivePlanets: func(ctx context.Context) error {
			_, err := a.AttackInactivePlanets(ctx)
			return err
		},
		AutoBuildDefenses:          a.AutoBuildDefenses,
		AutoBuildDefensesToPlanet:  a.AutoBuildDefensesToPlanet,
		TransportResourcesToPlanet: a.TransportResourcesToPlanet,
	}
}

// Run executes the operation registered for mode.
func (a *Agent) Run(ctx context.Context, mode Mode) error {
	op, ok := a.operations()[mode]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
	a.logger.Info("bot running", "mode", mode.String())
	if err := op(ctx); err != nil {
		return fmt.Errorf("run %s: %w", mode, err)
	}
	return nil
}
