// Package page builds game page addresses.
package page

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Kind identifies a game page. The set is closed; values outside it are
// rejected by Resolve.
type Kind int

const (
	Main Kind = iota
	Resources
	Station
	Research
	Shipyard
	Defense
	Fleet
	Galaxy
	GalaxyContent
	Events
	Messages
)

// DefaultBase is the universe index address; %d is the universe id.
const DefaultBase = "https://s%d-br.ogame.gameforge.com/game/index.php"

// PlanetParam is the query parameter that selects the active planet.
const PlanetParam = "cp"

// ErrUnknownPageKind is returned for kinds outside the closed set.
var ErrUnknownPageKind = errors.New("unknown page kind")

// UnknownPageKindError carries the rejected kind.
type UnknownPageKindError struct {
	Kind string
}

func (e *UnknownPageKindError) Error() string {
	return fmt.Sprintf("unknown page kind %q", e.Kind)
}

func (e *UnknownPageKindError) Is(target error) bool {
	return target == ErrUnknownPageKind
}

type kindInfo struct {
	name  string // config/CLI name
	query string // value of the page= parameter
}

// kinds is the translation table between Kind, its name and the page parameter.
var kinds = map[Kind]kindInfo{
	Main:          {name: "main", query: "overview"},
	Resources:     {name: "resources", query: "resources"},
	Station:       {name: "station", query: "station"},
	Research:      {name: "research", query: "research"},
	Shipyard:      {name: "shipyard", query: "shipyard"},
	Defense:       {name: "defense", query: "defense"},
	Fleet:         {name: "fleet", query: "fleet1"},
	Galaxy:        {name: "galaxy", query: "galaxy"},
	GalaxyContent: {name: "galaxyContent", query: "galaxyContent"},
	Events:        {name: "events", query: "eventList"},
	Messages:      {name: "messages", query: "messages"},
}

func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a page name ("main", "galaxyContent", ...) to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, info := range kinds {
		if info.name == name {
			return k, nil
		}
	}
	return 0, &UnknownPageKindError{Kind: name}
}

// Resolver builds addresses for one universe.
type Resolver struct {
	Base     string // address template, a %d is replaced by Universe
	Universe int
}

// NewResolver returns a resolver for universe using base (DefaultBase if empty).
func NewResolver(base string, universe int) Resolver {
	if base == "" {
		base = DefaultBase
	}
	return Resolver{Base: base, Universe: universe}
}

// Resolve returns the address of a page. An empty planetID addresses the
// currently active planet; otherwise exactly one planet selector is added.
func (r Resolver) Resolve(kind Kind, planetID string) (string, error) {
	return r.ResolveQuery(kind, planetID, nil)
}

// ResolveQuery is Resolve with extra query parameters appended after the
// page and planet selector (e.g. galaxy and system for galaxyContent).
func (r Resolver) ResolveQuery(kind Kind, planetID string, extra url.Values) (string, error) {
	info, ok := kinds[kind]
	if !ok {
		return "", &UnknownPageKindError{Kind: kind.String()}
	}
	base := r.Base
	if base == "" {
		base = DefaultBase
	}
	if strings.Contains(base, "%d") {
		base = fmt.Sprintf(base, r.Universe)
	}
	addr := base + "?page=" + info.query
	if planetID != "" {
		addr += "&" + PlanetParam + "=" + url.QueryEscape(planetID)
	}
	if len(extra) > 0 {
		addr += "&" + extra.Encode()
	}
	return addr, nil
}

// Resolve builds a page address against DefaultBase.
func Resolve(kind Kind, universe int, planetID string) (string, error) {
	return NewResolver(DefaultBase, universe).Resolve(kind, planetID)
}
