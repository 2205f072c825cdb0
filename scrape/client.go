// Package scrape translates game pages into domain values. The ParseX
// functions are pure translators over a markup tree; Client fetches the page
// through a session first.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/nstehr/ogbot/markup"
	"github.com/nstehr/ogbot/model"
	"github.com/nstehr/ogbot/page"
	"github.com/nstehr/ogbot/session"
)

// Client reads game pages. Reads are not retried.
type Client struct {
	session  session.Session
	resolver page.Resolver
	parser   markup.Parser
	location *time.Location // game server time zone
	logger   *slog.Logger
}

// NewClient builds a client. A nil parser selects markup.HTMLParser, a nil
// location UTC.
func NewClient(s session.Session, r page.Resolver, p markup.Parser, loc *time.Location, logger *slog.Logger) *Client {
	if p == nil {
		p = markup.HTMLParser{}
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{session: s, resolver: r, parser: p, location: loc, logger: logger}
}

func (c *Client) fetch(ctx context.Context, kind page.Kind, planetID string, extra url.Values) ([]byte, error) {
	addr, err := c.resolver.ResolveQuery(kind, planetID, extra)
	if err != nil {
		return nil, err
	}
	doc, err := c.session.Fetch(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("fetch %s page: %w", kind, err)
	}
	return doc.Body, nil
}

func (c *Client) load(ctx context.Context, kind page.Kind, planetID string) (markup.Node, error) {
	body, err := c.fetch(ctx, kind, planetID, nil)
	if err != nil {
		return nil, err
	}
	return markup.ParseBytes(c.parser, body)
}

// Resources returns the resources of a planet ("" for the active planet).
func (c *Client) Resources(ctx context.Context, planetID string) (model.ResourceBundle, error) {
	c.logger.Debug("getting resources", "planet", planetID)
	root, err := c.load(ctx, page.Resources, planetID)
	if err != nil {
		return model.ResourceBundle{}, err
	}
	return ParseResources(root)
}

// Planets returns the account's planets in side bar order.
func (c *Client) Planets(ctx context.Context) ([]model.Planet, error) {
	c.logger.Debug("getting planets")
	root, err := c.load(ctx, page.Resources, "")
	if err != nil {
		return nil, err
	}
	return ParsePlanets(root)
}

// Ships returns the ships stationed on a planet.
func (c *Client) Ships(ctx context.Context, planetID string) ([]model.ItemLevel, error) {
	c.logger.Debug("getting ships", "planet", planetID)
	root, err := c.load(ctx, page.Shipyard, planetID)
	if err != nil {
		return nil, err
	}
	return ParseShips(root)
}

// Defenses returns the defenses built on a planet.
func (c *Client) Defenses(ctx context.Context, planetID string) ([]model.ItemLevel, error) {
	c.logger.Debug("getting defenses", "planet", planetID)
	root, err := c.load(ctx, page.Defense, planetID)
	if err != nil {
		return nil, err
	}
	return ParseDefenses(root)
}

// Research returns the account's research levels as seen from a planet.
func (c *Client) Research(ctx context.Context, planetID string) ([]model.ItemLevel, error) {
	c.logger.Debug("getting research", "planet", planetID)
	root, err := c.load(ctx, page.Research, planetID)
	if err != nil {
		return nil, err
	}
	return ParseResearch(root)
}

// Galaxy returns the occupied slots of one solar system.
func (c *Client) Galaxy(ctx context.Context, galaxy, system int) ([]model.Planet, error) {
	c.logger.Debug("getting galaxy", "galaxy", galaxy, "system", system)
	extra := url.Values{
		"galaxy": {strconv.Itoa(galaxy)},
		"system": {strconv.Itoa(system)},
	}
	body, err := c.fetch(ctx, page.GalaxyContent, "", extra)
	if err != nil {
		return nil, err
	}
	body, err = unwrapGalaxy(body)
	if err != nil {
		return nil, err
	}
	root, err := markup.ParseBytes(c.parser, body)
	if err != nil {
		return nil, err
	}
	return ParseGalaxy(root, galaxy, system)
}

// SpyReports returns the espionage reports in the message box.
func (c *Client) SpyReports(ctx context.Context) ([]model.SpyReport, error) {
	c.logger.Debug("getting spy reports")
	root, err := c.load(ctx, page.Messages, "")
	if err != nil {
		return nil, err
	}
	return ParseSpyReports(root, c.location)
}

// GameTime returns the server clock.
func (c *Client) GameTime(ctx context.Context) (time.Time, error) {
	root, err := c.load(ctx, page.Main, "")
	if err != nil {
		return time.Time{}, err
	}
	t, err := ParseGameTime(root)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(c.location), nil
}

// Account reads the player identity from an already fetched page.
func (c *Client) Account(doc session.Document) (model.Account, error) {
	root, err := markup.ParseBytes(c.parser, doc.Body)
	if err != nil {
		return model.Account{}, err
	}
	return ParseAccount(root)
}
