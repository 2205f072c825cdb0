// Package agent is the bot's orchestrator: it owns the planet list of one run
// and maps each mode to an operation over the scraping, action and targeting
// layers.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nstehr/ogbot/action"
	"github.com/nstehr/ogbot/model"
	"github.com/nstehr/ogbot/targeting"
)

// ErrTargetPlanetNotFound is matched by TargetPlanetNotFoundError.
var ErrTargetPlanetNotFound = errors.New("target planet not found")

// TargetPlanetNotFoundError reports a configured planet name with no match.
type TargetPlanetNotFoundError struct {
	Name string
}

func (e *TargetPlanetNotFoundError) Error() string {
	if e.Name == "" {
		return "target planet not found: account has no planets"
	}
	return fmt.Sprintf("target planet %q not found", e.Name)
}

func (e *TargetPlanetNotFoundError) Is(target error) bool {
	return target == ErrTargetPlanetNotFound
}

// Scraper reads the account's pages.
type Scraper interface {
	Planets(ctx context.Context) ([]model.Planet, error)
	Resources(ctx context.Context, planetID string) (model.ResourceBundle, error)
	Ships(ctx context.Context, planetID string) ([]model.ItemLevel, error)
	Defenses(ctx context.Context, planetID string) ([]model.ItemLevel, error)
	Research(ctx context.Context, planetID string) ([]model.ItemLevel, error)
}

// Actions changes game state.
type Actions interface {
	AutoBuildDefenses(ctx context.Context, planetID string, orders []action.DefenseOrder) error
	Transport(ctx context.Context, origin model.Planet, dest model.Coordinates, cargo model.ResourceBundle) error
}

// Targeting finds and attacks targets.
type Targeting interface {
	RingSearch(ctx context.Context, home model.Coordinates, radius int) ([]model.Planet, error)
	AttackInactive(ctx context.Context, home model.Planet) (targeting.Outcome, error)
	Radius() int
}

// Deps are the agent's collaborators.
type Deps struct {
	Scraper   Scraper
	Actions   Actions
	Targeting Targeting
	Logger    *slog.Logger
}

// Options configures the operations.
type Options struct {
	TargetPlanet  string // case-insensitive planet name, empty selects the first planet
	DefenseOrders []action.DefenseOrder
	Cargo         model.ResourceBundle
}

// Agent runs operations for one logged-in account.
type Agent struct {
	scraper   Scraper
	actions   Actions
	targeting Targeting
	opts      Options
	planets   []model.Planet
	logger    *slog.Logger
}

// New builds an agent and fetches the planet list once. The list is not
// refreshed for the lifetime of the agent.
func New(ctx context.Context, d Deps, opts Options) (*Agent, error) {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if opts.DefenseOrders == nil {
		opts.DefenseOrders = action.DefaultDefenseOrders()
	}
	planets, err := d.Scraper.Planets(ctx)
	if err != nil {
		return nil, fmt.Errorf("get planets: %w", err)
	}
	d.Logger.Info("planets loaded", "count", len(planets))
	return &Agent{
		scraper:   d.Scraper,
		actions:   d.Actions,
		targeting: d.Targeting,
		opts:      opts,
		planets:   planets,
		logger:    d.Logger,
	}, nil
}

// Planets returns a copy of the account's planets.
func (a *Agent) Planets() []model.Planet {
	out := make([]model.Planet, len(a.planets))
	copy(out, a.planets)
	return out
}

// TargetPlanet returns the configured target planet: the first planet whose
// name matches case-insensitively, or the first planet when no name is set.
func (a *Agent) TargetPlanet() (model.Planet, error) {
	if len(a.planets) == 0 {
		return model.Planet{}, &TargetPlanetNotFoundError{Name: a.opts.TargetPlanet}
	}
	if a.opts.TargetPlanet == "" {
		return a.planets[0], nil
	}
	for _, p := range a.planets {
		if strings.EqualFold(p.Name, a.opts.TargetPlanet) {
			return p, nil
		}
	}
	return model.Planet{}, &TargetPlanetNotFoundError{Name: a.opts.TargetPlanet}
}

// Explore lists the planets around the target planet and the inactive ones
// among them.
func (a *Agent) Explore(ctx context.Context) (all, inactive []model.Planet, err error) {
	home, err := a.TargetPlanet()
	if err != nil {
		return nil, nil, err
	}
	all, err = a.targeting.RingSearch(ctx, home.Coordinates, a.targeting.Radius())
	if err != nil {
		return nil, nil, err
	}
	inactive = targeting.FilterInactive(all)
	for _, p := range all {
		a.logger.Info("nearby planet", "planet", p.String(), "player", p.PlayerName, "state", p.PlayerState.String())
	}
	a.logger.Info("explored", "home", home.String(), "planets", len(all), "inactive", len(inactive))
	return all, inactive, nil
}

// AttackInactivePlanets runs the targeting workflow from the target planet.
func (a *Agent) AttackInactivePlanets(ctx context.Context) (targeting.Outcome, error) {
	home, err := a.TargetPlanet()
	if err != nil {
		return targeting.Outcome{}, err
	}
	out, err := a.targeting.AttackInactive(ctx, home)
	if err != nil {
		return out, err
	}
	a.logger.Info("attack run finished", "path", out.PathString(), "attacked", len(out.Attacked), "skipped", len(out.Skipped))
	return out, nil
}

// AutoBuildDefenses builds the defense order on every planet.
func (a *Agent) AutoBuildDefenses(ctx context.Context) error {
	for _, p := range a.planets {
		if err := a.actions.AutoBuildDefenses(ctx, p.ID, a.opts.DefenseOrders); err != nil {
			return fmt.Errorf("auto build defenses on %s: %w", p.Name, err)
		}
	}
	return nil
}

// AutoBuildDefensesToPlanet builds the defense order on the target planet.
func (a *Agent) AutoBuildDefensesToPlanet(ctx context.Context) error {
	p, err := a.TargetPlanet()
	if err != nil {
		return err
	}
	if err := a.actions.AutoBuildDefenses(ctx, p.ID, a.opts.DefenseOrders); err != nil {
		return fmt.Errorf("auto build defenses on %s: %w", p.Name, err)
	}
	return nil
}

// TransportResourcesToPlanet ships the configured cargo from every other
// planet to the target planet.
func (a *Agent) TransportResourcesToPlanet(ctx context.Context) error {
	dest, err := a.TargetPlanet()
	if err != nil {
		return err
	}
	a.logger.Info("main planet found", "planet", dest.String())
	for _, p := range a.planets {
		if p.ID == dest.ID {
			continue
		}
		if err := a.actions.Transport(ctx, p, dest.Coordinates, a.opts.Cargo); err != nil {
			return fmt.Errorf("transport from %s: %w", p.Name, err)
		}
	}
	return nil
}
