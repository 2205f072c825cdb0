package targeting

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nstehr/ogbot/model"
	"github.com/nstehr/ogbot/rules"
)

const (
	DefaultRadius    = 10
	DefaultFreshness = 2 * time.Minute
	DefaultProbeWait = 60 * time.Second
)

// Intel reads spy reports and the game clock they are dated against.
type Intel interface {
	SpyReports(ctx context.Context) ([]model.SpyReport, error)
	GameTime(ctx context.Context) (time.Time, error)
}

// Fleet dispatches missions from one of our planets.
type Fleet interface {
	Spy(ctx context.Context, origin model.Planet, target model.Coordinates) error
	Attack(ctx context.Context, origin model.Planet, target model.Coordinates) error
}

// State is a step of the attack workflow.
type State int

const (
	NoRecentIntel State = iota
	RecentIntelFound
	ProbesSent
	Waiting
	Resolved
)

func (s State) String() string {
	switch s {
	case NoRecentIntel:
		return "no_recent_intel"
	case RecentIntelFound:
		return "recent_intel_found"
	case ProbesSent:
		return "probes_sent"
	case Waiting:
		return "waiting"
	case Resolved:
		return "resolved"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome summarises one workflow run.
type Outcome struct {
	Path     []State
	Scouted  []model.Planet
	Attacked []Target
	Skipped  []Target // failed the eligibility policy
}

func (o Outcome) PathString() string {
	parts := make([]string, len(o.Path))
	for i, s := range o.Path {
		parts[i] = s.String()
	}
	return strings.Join(parts, " -> ")
}

// Options tunes the engine. Zero durations select the defaults. A negative
// Radius selects DefaultRadius; zero scouts the home system only.
type Options struct {
	Radius    int
	Freshness time.Duration
	ProbeWait time.Duration
}

// Deps are the engine's collaborators. Sleep defaults to time.Sleep.
type Deps struct {
	Galaxy GalaxyViewer
	Intel  Intel
	Fleet  Fleet
	Policy *rules.Policy
	Sleep  func(time.Duration)
	Logger *slog.Logger
}

// Engine is the targeting decision engine.
type Engine struct {
	galaxy GalaxyViewer
	intel  Intel
	fleet  Fleet
	policy *rules.Policy
	sleep  func(time.Duration)
	opts   Options
	logger *slog.Logger
}

func New(d Deps, opts Options) (*Engine, error) {
	if opts.Radius < 0 {
		opts.Radius = DefaultRadius
	}
	if opts.Freshness <= 0 {
		opts.Freshness = DefaultFreshness
	}
	if opts.ProbeWait <= 0 {
		opts.ProbeWait = DefaultProbeWait
	}
	if d.Sleep == nil {
		d.Sleep = time.Sleep
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Policy == nil {
		p, err := rules.NewPolicy(d.Logger)
		if err != nil {
			return nil, fmt.Errorf("build default policy: %w", err)
		}
		d.Policy = p
	}
	return &Engine{
		galaxy: d.Galaxy,
		intel:  d.Intel,
		fleet:  d.Fleet,
		policy: d.Policy,
		sleep:  d.Sleep,
		opts:   opts,
		logger: d.Logger,
	}, nil
}

// Radius is the configured scouting radius.
func (e *Engine) Radius() int { return e.opts.Radius }

// AttackInactive attacks inactive players near home. Fresh reports are used
// directly; without them the inactive planets in range are scouted, the
// engine waits for the probes and then attacks from the new reports.
func (e *Engine) AttackInactive(ctx context.Context, home model.Planet) (Outcome, error) {
	var out Outcome

	reports, err := e.recentIntel(ctx)
	if err != nil {
		return out, err
	}

	if len(reports) > 0 {
		e.logger.Info("found recent spy reports of inactive players", "count", len(reports))
		out.Path = append(out.Path, RecentIntelFound)
	} else {
		e.logger.Info("no recent spy reports of inactive players")
		out.Path = append(out.Path, NoRecentIntel)

		scouted, err := e.scout(ctx, home)
		out.Scouted = scouted
		if err != nil {
			return out, err
		}
		out.Path = append(out.Path, ProbesSent)

		out.Path = append(out.Path, Waiting)
		e.logger.Info("waiting for probes", "duration", e.opts.ProbeWait)
		e.sleep(e.opts.ProbeWait)

		if reports, err = e.recentIntel(ctx); err != nil {
			return out, err
		}
	}

	now, err := e.intel.GameTime(ctx)
	if err != nil {
		return out, fmt.Errorf("read game time: %w", err)
	}
	for _, t := range Rank(reports) {
		ok, rule, err := e.policy.Eligible(rules.NewTargetEnv(t.Report, home.Coordinates, now))
		if err != nil {
			return out, err
		}
		if !ok {
			e.logger.Info("skipping target", "target", t.Report.Target.Coordinates.String(), "rule", rule)
			out.Skipped = append(out.Skipped, t)
			continue
		}
		e.logger.Info("attacking inactive planet", "from", home.Name, "target", t.Report.Target.Coordinates.String(), "value", t.Value)
		if err := e.fleet.Attack(ctx, home, t.Report.Target.Coordinates); err != nil {
			return out, fmt.Errorf("attack %s: %w", t.Report.Target.Coordinates, err)
		}
		out.Attacked = append(out.Attacked, t)
	}
	out.Path = append(out.Path, Resolved)
	return out, nil
}

// recentIntel returns the fresh reports on inactive players.
func (e *Engine) recentIntel(ctx context.Context) ([]model.SpyReport, error) {
	reports, err := e.intel.SpyReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("read spy reports: %w", err)
	}
	now, err := e.intel.GameTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("read game time: %w", err)
	}
	e.logger.Debug("got spy reports", "count", len(reports), "gameTime", now)
	return FilterFresh(now, FilterInactiveReports(reports), e.opts.Freshness), nil
}

// scout sends probes to every inactive planet in range of home.
func (e *Engine) scout(ctx context.Context, home model.Planet) ([]model.Planet, error) {
	planets, err := e.RingSearch(ctx, home.Coordinates, e.opts.Radius)
	if err != nil {
		return nil, err
	}
	targets := UniquePlanets(FilterInactive(planets))
	e.logger.Info("scouting inactive planets", "count", len(targets), "radius", e.opts.Radius)
	var sent []model.Planet
	for _, p := range targets {
		if err := e.fleet.Spy(ctx, home, p.Coordinates); err != nil {
			return sent, fmt.Errorf("spy %s: %w", p.Coordinates, err)
		}
		sent = append(sent, p)
	}
	return sent, nil
}
