package action_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/mock/gomock"

	"github.com/nstehr/ogbot/action"
	"github.com/nstehr/ogbot/model"
	"github.com/nstehr/ogbot/page"
	"github.com/nstehr/ogbot/session"
	"github.com/nstehr/ogbot/session/mocks"
)

var (
	quiet    = slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver = page.NewResolver("", 114)
	home     = model.Planet{ID: "33620010", Name: "Homeworld", Coordinates: model.Coordinates{Galaxy: 1, System: 100, Position: 5}}
)

func newClient(m session.Session, opts action.Options) *action.Client {
	return action.NewClient(m, session.NewSubmitter(m, 0, quiet), resolver, opts, quiet)
}

func TestBuildDefense(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	addr, _ := resolver.Resolve(page.Defense, home.ID)
	m := mocks.NewMockSession(ctrl)
	gomock.InOrder(
		m.EXPECT().Fetch(gomock.Any(), addr).Return(session.Document{}, nil),
		m.EXPECT().Submit(gomock.Any(), addr, url.Values{"menge": {"20"}, "type": {"406"}, "modus": {"1"}}).Return(session.Document{}, nil),
	)

	err := newClient(m, action.Options{}).BuildDefense(context.Background(), home.ID, action.DefenseOrder{Code: "406", Count: 20})
	if err != nil {
		t.Fatalf("BuildDefense: %v", err)
	}
}

func TestBuildDefenseRejectsEmptyOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockSession(ctrl)
	err := newClient(m, action.Options{}).BuildDefense(context.Background(), home.ID, action.DefenseOrder{Code: "401"})
	if !errors.Is(err, action.ErrInvalidOrder) {
		t.Errorf("BuildDefense error = %v, want ErrInvalidOrder", err)
	}
}

func TestAutoBuildDefensesAbortsOnFirstFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	addr, _ := resolver.Resolve(page.Defense, home.ID)
	denied := errors.New("HTTP 403")
	var built []string
	m := mocks.NewMockSession(ctrl)
	m.EXPECT().Fetch(gomock.Any(), addr).Return(session.Document{}, nil).Times(1)
	m.EXPECT().Submit(gomock.Any(), addr, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, fields url.Values) (session.Document, error) {
			built = append(built, fields.Get("type"))
			if fields.Get("type") == "404" {
				return session.Document{}, denied
			}
			return session.Document{}, nil
		}).Times(2)

	err := newClient(m, action.Options{}).AutoBuildDefenses(context.Background(), home.ID, action.DefaultDefenseOrders())
	if !errors.Is(err, denied) {
		t.Fatalf("AutoBuildDefenses error = %v, want %v", err, denied)
	}
	if diff := cmp.Diff([]string{"406", "404"}, built); diff != "" {
		t.Errorf("build order mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultDefenseOrders(t *testing.T) {
	want := []action.DefenseOrder{
		{Code: "406", Count: 20},
		{Code: "404", Count: 100},
		{Code: "402", Count: 6000},
		{Code: "401", Count: 3000},
	}
	if diff := cmp.Diff(want, action.DefaultDefenseOrders()); diff != "" {
		t.Errorf("DefaultDefenseOrders mismatch (-want +got):\n%s", diff)
	}
}

func expectFleet(t *testing.T, m *mocks.MockSession, want url.Values) {
	t.Helper()
	addr, _ := resolver.Resolve(page.Fleet, home.ID)
	gomock.InOrder(
		m.EXPECT().Fetch(gomock.Any(), addr).Return(session.Document{}, nil),
		m.EXPECT().Submit(gomock.Any(), addr, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, got url.Values) (session.Document, error) {
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("fleet form mismatch (-want +got):\n%s", diff)
				}
				return session.Document{}, nil
			}),
	)
}

func fleetFields(mission, ships map[string]string, cargo [3]string) url.Values {
	v := url.Values{
		"galaxy": {"1"}, "system": {"101"}, "position": {"8"},
		"type": {"1"}, "speed": {"10"},
		"metal": {cargo[0]}, "crystal": {cargo[1]}, "deuterium": {cargo[2]},
	}
	for k, s := range mission {
		v.Set(k, s)
	}
	for k, s := range ships {
		v.Set(k, s)
	}
	return v
}

var target = model.Coordinates{Galaxy: 1, System: 101, Position: 8}

func TestSpy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockSession(ctrl)
	expectFleet(t, m, fleetFields(map[string]string{"mission": "6"}, map[string]string{"am210": "2"}, [3]string{"0", "0", "0"}))

	if err := newClient(m, action.Options{Probes: 2}).Spy(context.Background(), home, target); err != nil {
		t.Fatalf("Spy: %v", err)
	}
}

func TestAttackUsesConfiguredFleet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockSession(ctrl)
	expectFleet(t, m, fleetFields(map[string]string{"mission": "1"}, map[string]string{"am203": "5"}, [3]string{"0", "0", "0"}))

	if err := newClient(m, action.Options{}).Attack(context.Background(), home, target); err != nil {
		t.Fatalf("Attack: %v", err)
	}
}

func TestTransportSizesCargoFleet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cargo := model.ResourceBundle{Metal: 1000000, Crystal: 1000000}
	m := mocks.NewMockSession(ctrl)
	expectFleet(t, m, fleetFields(map[string]string{"mission": "3"}, map[string]string{"am203": "80"}, [3]string{"1000000", "1000000", "0"}))

	if err := newClient(m, action.Options{}).Transport(context.Background(), home, target, cargo); err != nil {
		t.Fatalf("Transport: %v", err)
	}
}

func TestSendFleetWithoutShips(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockSession(ctrl)
	err := newClient(m, action.Options{}).SendFleet(context.Background(), action.FleetOrder{Origin: home, Destination: target, Mission: action.MissionAttack})
	if !errors.Is(err, action.ErrInvalidOrder) {
		t.Errorf("SendFleet error = %v, want ErrInvalidOrder", err)
	}
}
