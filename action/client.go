// Package action performs the game actions that change state: building
// defenses and dispatching fleets. Every submission goes through a
// session.Submitter.
package action

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nstehr/ogbot/model"
	"github.com/nstehr/ogbot/page"
	"github.com/nstehr/ogbot/scrape"
	"github.com/nstehr/ogbot/session"
)

// ErrInvalidOrder is returned before anything is sent.
var ErrInvalidOrder = errors.New("invalid order")

// Options tunes the fleets sent by the convenience wrappers.
type Options struct {
	Probes      int            // espionage probes per spy mission, default 1
	AttackFleet map[string]int // ships per attack, default 5 large cargo
}

// Client sends game actions.
type Client struct {
	session   session.Session
	submitter *session.Submitter
	resolver  page.Resolver
	opts      Options
	logger    *slog.Logger
}

func NewClient(s session.Session, sub *session.Submitter, r page.Resolver, opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if sub == nil {
		sub = session.NewSubmitter(s, session.DefaultAttempts, logger)
	}
	if opts.Probes <= 0 {
		opts.Probes = 1
	}
	if len(opts.AttackFleet) == 0 {
		opts.AttackFleet = map[string]int{scrape.LargeCargo: 5}
	}
	return &Client{session: s, submitter: sub, resolver: r, opts: opts, logger: logger}
}

// open loads a page so the following submission comes from it.
func (c *Client) open(ctx context.Context, kind page.Kind, planetID string) (string, error) {
	addr, err := c.resolver.Resolve(kind, planetID)
	if err != nil {
		return "", err
	}
	c.logger.Debug("redirecting to page", "url", addr)
	if _, err := c.session.Fetch(ctx, addr); err != nil {
		return "", fmt.Errorf("open %s page: %w", kind, err)
	}
	return addr, nil
}

// BuildDefense queues one defense order on a planet.
func (c *Client) BuildDefense(ctx context.Context, planetID string, order DefenseOrder) error {
	if err := order.validate(); err != nil {
		return err
	}
	addr, err := c.open(ctx, page.Defense, planetID)
	if err != nil {
		return err
	}
	return c.buildDefense(ctx, addr, planetID, order)
}

// AutoBuildDefenses queues orders in the given order. The first failure aborts
// the remaining orders.
func (c *Client) AutoBuildDefenses(ctx context.Context, planetID string, orders []DefenseOrder) error {
	for _, o := range orders {
		if err := o.validate(); err != nil {
			return err
		}
	}
	c.logger.Info("auto building defenses", "planet", planetID, "orders", len(orders))
	addr, err := c.open(ctx, page.Defense, planetID)
	if err != nil {
		return err
	}
	for _, o := range orders {
		if err := c.buildDefense(ctx, addr, planetID, o); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) buildDefense(ctx context.Context, addr, planetID string, order DefenseOrder) error {
	c.logger.Info("building defense", "planet", planetID, "type", order.Code, "count", order.Count)
	if _, err := c.submitter.Submit(ctx, session.Form{Address: addr, Fields: order.fields()}); err != nil {
		return fmt.Errorf("build defense %s on planet %s: %w", order.Code, planetID, err)
	}
	return nil
}

// SendFleet dispatches a fleet from the origin planet.
func (c *Client) SendFleet(ctx context.Context, order FleetOrder) error {
	if err := order.validate(); err != nil {
		return err
	}
	addr, err := c.open(ctx, page.Fleet, order.Origin.ID)
	if err != nil {
		return err
	}
	c.logger.Info("sending fleet",
		"mission", order.Mission.String(),
		"from", order.Origin.Coordinates.String(),
		"to", order.Destination.String(),
		"ships", order.Ships,
	)
	if _, err := c.submitter.Submit(ctx, session.Form{Address: addr, Fields: order.fields()}); err != nil {
		return fmt.Errorf("send %s fleet to %s: %w", order.Mission, order.Destination, err)
	}
	return nil
}

// Spy sends espionage probes.
func (c *Client) Spy(ctx context.Context, origin model.Planet, target model.Coordinates) error {
	return c.SendFleet(ctx, FleetOrder{
		Origin:      origin,
		Destination: target,
		Mission:     MissionEspionage,
		Ships:       map[string]int{scrape.EspionageProbe: c.opts.Probes},
	})
}

// Attack sends the configured attack fleet.
func (c *Client) Attack(ctx context.Context, origin model.Planet, target model.Coordinates) error {
	ships := make(map[string]int, len(c.opts.AttackFleet))
	for code, n := range c.opts.AttackFleet {
		ships[code] = n
	}
	return c.SendFleet(ctx, FleetOrder{
		Origin:      origin,
		Destination: target,
		Mission:     MissionAttack,
		Ships:       ships,
	})
}

// Transport carries cargo with enough large cargo ships to hold it.
func (c *Client) Transport(ctx context.Context, origin model.Planet, dest model.Coordinates, cargo model.ResourceBundle) error {
	return c.SendFleet(ctx, FleetOrder{
		Origin:      origin,
		Destination: dest,
		Mission:     MissionTransport,
		Ships:       map[string]int{scrape.LargeCargo: cargoShips(cargo)},
		Cargo:       cargo,
	})
}
