package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinates locate a planet as galaxy:system:position. Only galaxy and
// system take part in distance and ring search; position is informational.
type Coordinates struct {
	Galaxy   int `json:"galaxy"`
	System   int `json:"system"`
	Position int `json:"position"`
}

// String renders the in-game notation, e.g. "[1:100:5]".
func (c Coordinates) String() string {
	return fmt.Sprintf("[%d:%d:%d]", c.Galaxy, c.System, c.Position)
}

// SameSystem reports whether both coordinates share galaxy and system.
func (c Coordinates) SameSystem(o Coordinates) bool {
	return c.Galaxy == o.Galaxy && c.System == o.System
}

// SystemDistance returns the number of systems between c and o.
// Returns -1 when they are in different galaxies.
func (c Coordinates) SystemDistance(o Coordinates) int {
	if c.Galaxy != o.Galaxy {
		return -1
	}
	d := c.System - o.System
	if d < 0 {
		d = -d
	}
	return d
}

// ParseCoordinates accepts "[g:s:p]" or "g:s:p".
func ParseCoordinates(s string) (Coordinates, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "[")
	trimmed = strings.TrimSuffix(trimmed, "]")
	parts := strings.Split(trimmed, ":")
	if len(parts) != 3 {
		return Coordinates{}, fmt.Errorf("parse coordinates %q: want galaxy:system:position", s)
	}
	var vals [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Coordinates{}, fmt.Errorf("parse coordinates %q: %w", s, err)
		}
		if n < 0 {
			return Coordinates{}, fmt.Errorf("parse coordinates %q: negative component", s)
		}
		vals[i] = n
	}
	return Coordinates{Galaxy: vals[0], System: vals[1], Position: vals[2]}, nil
}
