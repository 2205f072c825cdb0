// Package targeting finds plunder targets around a home planet and drives
// the scout-then-attack workflow.
package targeting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/nstehr/ogbot/model"
)

// GalaxyViewer reads one solar system.
type GalaxyViewer interface {
	Galaxy(ctx context.Context, galaxy, system int) ([]model.Planet, error)
}

// RingOffsets returns the system offsets of a ring search of radius r, nearest
// first and the lower side before the higher one: 0, -1, +1, ..., -r, +r.
func RingOffsets(r int) []int {
	if r < 0 {
		r = 0
	}
	offsets := make([]int, 0, 2*r+1)
	offsets = append(offsets, 0)
	for i := 1; i <= r; i++ {
		offsets = append(offsets, -i, i)
	}
	return offsets
}

// RingSearch lists the planets of every system within radius of home, in
// RingOffsets order, inside home's galaxy. Systems outside the universe's
// range are queried as is; duplicates are kept.
func (e *Engine) RingSearch(ctx context.Context, home model.Coordinates, radius int) ([]model.Planet, error) {
	var planets []model.Planet
	for _, off := range RingOffsets(radius) {
		system := home.System + off
		found, err := e.galaxy.Galaxy(ctx, home.Galaxy, system)
		if err != nil {
			return nil, fmt.Errorf("view system %d:%d: %w", home.Galaxy, system, err)
		}
		planets = append(planets, found...)
	}
	e.logger.Debug("ring search done", "home", home.String(), "radius", radius, "planets", len(planets))
	return planets, nil
}

// FilterInactive keeps planets owned by inactive players.
func FilterInactive(planets []model.Planet) []model.Planet {
	var out []model.Planet
	for _, p := range planets {
		if p.PlayerState == model.Inactive {
			out = append(out, p)
		}
	}
	return out
}

// FilterInactiveReports keeps reports on inactive players.
func FilterInactiveReports(reports []model.SpyReport) []model.SpyReport {
	var out []model.SpyReport
	for _, r := range reports {
		if r.PlayerState == model.Inactive {
			out = append(out, r)
		}
	}
	return out
}

// FilterFresh keeps reports taken no earlier than now-window. The boundary
// itself counts as fresh.
func FilterFresh(now time.Time, reports []model.SpyReport, window time.Duration) []model.SpyReport {
	cutoff := now.Add(-window)
	var out []model.SpyReport
	for _, r := range reports {
		if !r.Timestamp.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// UniquePlanets drops repeated planet ids, keeping the first occurrence.
func UniquePlanets(planets []model.Planet) []model.Planet {
	seen := make(map[string]bool, len(planets))
	var out []model.Planet
	for _, p := range planets {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

// Target is a ranked attack candidate.
type Target struct {
	Report model.SpyReport
	Value  float64
}

// Rank orders reports by expected plunder, highest first. Equal values keep
// their input order.
func Rank(reports []model.SpyReport) []Target {
	targets := make([]Target, len(reports))
	for i, r := range reports {
		targets[i] = Target{Report: r, Value: r.Value()}
	}
	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].Value > targets[j].Value
	})
	return targets
}
