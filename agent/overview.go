package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/nstehr/ogbot/action"
	"github.com/nstehr/ogbot/model"
	"github.com/nstehr/ogbot/scrape"
)

// PlanetOverview is the state of one planet.
type PlanetOverview struct {
	Planet    model.Planet
	Resources model.ResourceBundle
	Ships     []model.ItemLevel
	Defenses  []model.ItemLevel
}

// AccountOverview is the state of every planet plus the account research.
type AccountOverview struct {
	Planets  []PlanetOverview
	Research []model.ItemLevel
}

// Overview reads resources, ships and defenses of every planet and the
// research levels once.
func (a *Agent) Overview(ctx context.Context) (AccountOverview, error) {
	var ov AccountOverview
	for _, p := range a.planets {
		res, err := a.scraper.Resources(ctx, p.ID)
		if err != nil {
			return ov, fmt.Errorf("resources of %s: %w", p.Name, err)
		}
		ships, err := a.scraper.Ships(ctx, p.ID)
		if err != nil {
			return ov, fmt.Errorf("ships of %s: %w", p.Name, err)
		}
		defs, err := a.scraper.Defenses(ctx, p.ID)
		if err != nil {
			return ov, fmt.Errorf("defenses of %s: %w", p.Name, err)
		}
		ov.Planets = append(ov.Planets, PlanetOverview{Planet: p, Resources: res, Ships: ships, Defenses: defs})
	}
	if len(a.planets) > 0 {
		research, err := a.scraper.Research(ctx, a.planets[0].ID)
		if err != nil {
			return ov, fmt.Errorf("research: %w", err)
		}
		ov.Research = research
	}
	return ov, nil
}

// Summary renders the overview as human-readable lines.
func (ov AccountOverview) Summary() string {
	var b strings.Builder
	for _, p := range ov.Planets {
		fmt.Fprintf(&b, "Planet %s (id %s)\n", p.Planet.String(), p.Planet.ID)
		fmt.Fprintf(&b, "  Resources: metal %d | crystal %d | deuterium %d | energy %d\n",
			p.Resources.Metal, p.Resources.Crystal, p.Resources.Deuterium, p.Resources.Energy)
		writeItems(&b, "Ships", p.Ships)
		if lc, ok := model.FindItem(p.Ships, scrape.LargeCargo); ok && lc.Level > 0 {
			fmt.Fprintf(&b, "  Cargo capacity: %d\n", lc.Level*action.LargeCargoCapacity)
		}
		writeItems(&b, "Defenses", p.Defenses)
	}
	if len(ov.Research) > 0 {
		parts := make([]string, 0, len(ov.Research))
		for _, r := range ov.Research {
			part := fmt.Sprintf("%s %d", r.Name, r.Level)
			if r.InConstruction {
				part += " (upgrading)"
			}
			parts = append(parts, part)
		}
		fmt.Fprintf(&b, "Research: %s\n", strings.Join(parts, ", "))
	}
	return b.String()
}

func writeItems(b *strings.Builder, label string, items []model.ItemLevel) {
	var parts []string
	for _, it := range items {
		if it.Level > 0 {
			parts = append(parts, fmt.Sprintf("%dx %s", it.Level, it.Name))
		}
	}
	if len(parts) == 0 {
		fmt.Fprintf(b, "  %s: none\n", label)
		return
	}
	fmt.Fprintf(b, "  %s: %s\n", label, strings.Join(parts, ", "))
}

func (a *Agent) logOverview(ov AccountOverview) {
	for _, line := range strings.Split(strings.TrimRight(ov.Summary(), "\n"), "\n") {
		a.logger.Info(line)
	}
}
