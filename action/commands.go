package action

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/nstehr/ogbot/model"
)

// Mission is the fleet mission code the fleet form expects.
type Mission int

const (
	MissionAttack    Mission = 1
	MissionTransport Mission = 3
	MissionEspionage Mission = 6
)

func (m Mission) String() string {
	switch m {
	case MissionAttack:
		return "attack"
	case MissionTransport:
		return "transport"
	case MissionEspionage:
		return "espionage"
	default:
		return fmt.Sprintf("Mission(%d)", int(m))
	}
}

// LargeCargoCapacity is how much a large cargo ship carries.
const LargeCargoCapacity = 25000

// DefenseOrder asks for Count units of the defense with type Code.
type DefenseOrder struct {
	Code  string `yaml:"code"`
	Count int    `yaml:"count"`
}

// DefaultDefenseOrders is the build order used by the auto build modes.
func DefaultDefenseOrders() []DefenseOrder {
	return []DefenseOrder{
		{Code: "406", Count: 20},
		{Code: "404", Count: 100},
		{Code: "402", Count: 6000},
		{Code: "401", Count: 3000},
	}
}

func (o DefenseOrder) validate() error {
	if o.Code == "" || o.Count <= 0 {
		return fmt.Errorf("%w: defense %q x%d", ErrInvalidOrder, o.Code, o.Count)
	}
	return nil
}

func (o DefenseOrder) fields() url.Values {
	return url.Values{
		"menge": {strconv.Itoa(o.Count)},
		"type":  {o.Code},
		"modus": {"1"},
	}
}

// FleetOrder is one fleet dispatch.
type FleetOrder struct {
	Origin      model.Planet
	Destination model.Coordinates
	Mission     Mission
	Ships       map[string]int // ship code -> count
	Cargo       model.ResourceBundle
}

func (o FleetOrder) validate() error {
	total := 0
	for code, n := range o.Ships {
		if n < 0 {
			return fmt.Errorf("%w: negative count for ship %s", ErrInvalidOrder, code)
		}
		total += n
	}
	if total == 0 {
		return fmt.Errorf("%w: no ships for %s mission", ErrInvalidOrder, o.Mission)
	}
	if o.Cargo.Metal < 0 || o.Cargo.Crystal < 0 || o.Cargo.Deuterium < 0 {
		return fmt.Errorf("%w: negative cargo", ErrInvalidOrder)
	}
	return nil
}

func (o FleetOrder) fields() url.Values {
	v := url.Values{
		"galaxy":    {strconv.Itoa(o.Destination.Galaxy)},
		"system":    {strconv.Itoa(o.Destination.System)},
		"position":  {strconv.Itoa(o.Destination.Position)},
		"type":      {"1"}, // planet, not moon or debris field
		"mission":   {strconv.Itoa(int(o.Mission))},
		"speed":     {"10"},
		"metal":     {strconv.FormatInt(o.Cargo.Metal, 10)},
		"crystal":   {strconv.FormatInt(o.Cargo.Crystal, 10)},
		"deuterium": {strconv.FormatInt(o.Cargo.Deuterium, 10)},
	}
	codes := make([]string, 0, len(o.Ships))
	for code := range o.Ships {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if n := o.Ships[code]; n > 0 {
			v.Set("am"+code, strconv.Itoa(n))
		}
	}
	return v
}

// cargoShips is how many large cargo ships carry cargo, at least one.
func cargoShips(cargo model.ResourceBundle) int {
	n := int((cargo.Total() + LargeCargoCapacity - 1) / LargeCargoCapacity)
	if n < 1 {
		n = 1
	}
	return n
}
