package scrape

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nstehr/ogbot/markup"
	"github.com/nstehr/ogbot/model"
)

func parse(t *testing.T, src string) markup.Node {
	t.Helper()
	root, err := markup.HTMLParser{}.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return root
}

func resourceBar(metal, crystal, deut, energy string) string {
	return `<div id="resources_metal">` + metal + `</div>` +
		`<div id="resources_crystal">` + crystal + `</div>` +
		`<div id="resources_deuterium">` + deut + `</div>` +
		`<div id="resources_energy">` + energy + `</div>`
}

func TestParseResources(t *testing.T) {
	root := parse(t, resourceBar("1.234.567", " 89.000 ", "0", "120"))
	got, err := ParseResources(root)
	if err != nil {
		t.Fatalf("ParseResources: %v", err)
	}
	want := model.ResourceBundle{Metal: 1234567, Crystal: 89000, Deuterium: 0, Energy: 120}
	if got != want {
		t.Errorf("ParseResources = %+v, want %+v", got, want)
	}
}

func TestParseResourcesErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"missing energy", `<div id="resources_metal">1</div><div id="resources_crystal">1</div><div id="resources_deuterium">1</div>`, ErrElementNotFound},
		{"not numeric", resourceBar("1", "lots", "1", "1"), ErrNotNumeric},
		{"negative energy", resourceBar("1", "1", "1", "-1.500"), ErrNegativeQuantity},
	}
	for _, tt := range tests {
		_, err := ParseResources(parse(t, tt.src))
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: ParseResources error = %v, want %v", tt.name, err, tt.want)
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%s: error %T is not *ParseError", tt.name, err)
		}
	}
}

const shipyardPage = `<ul>
<li><a class="detail_button" ref="204"><span class="ecke"><span class="level">
		<span class="textlabel">Light Fighter</span>
		12	</span></span></a></li>
<li><a class="detail_button" ref="210"><span class="ecke"><span class="level"><span class="textlabel">Espionage Probe</span>
1.500</span></span></a></li>
<li><a class="detail_button" ref="299"><span class="level"><span class="textlabel">Future Ship</span>
3</span></a></li>
<li><a class="detail_button" ref="202"><span class="level active"><span class="textlabel">Small Cargo</span>
4</span></a></li>
</ul>`

func TestParseShips(t *testing.T) {
	_, err := ParseShips(parse(t, shipyardPage))
	// 202's only label sits in a span whose classes are not exactly "level".
	if !errors.Is(err, ErrElementNotFound) {
		t.Fatalf("ParseShips error = %v, want ErrElementNotFound", err)
	}

	src := strings.Replace(shipyardPage, `class="level active"`, `class="level"`, 1)
	got, err := ParseShips(parse(t, src))
	if err != nil {
		t.Fatalf("ParseShips: %v", err)
	}
	want := []model.ItemLevel{
		{Code: "204", Name: "Light Fighter", Level: 12},
		{Code: "210", Name: "Espionage Probe", Level: 1500},
		{Code: "202", Name: "Small Cargo", Level: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseShips mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDefensesNonNumericCount(t *testing.T) {
	src := `<a class="detail_button" ref="401"><span class="level"><span class="textlabel">Rocket Launcher</span>
many</span></a>`
	_, err := ParseDefenses(parse(t, src))
	if !errors.Is(err, ErrNotNumeric) {
		t.Errorf("ParseDefenses error = %v, want ErrNotNumeric", err)
	}
}

func TestResearchLevel(t *testing.T) {
	tests := []struct {
		texts    []string
		level    int
		building bool
		err      error
	}{
		{[]string{"", "5"}, 5, false, nil},
		{[]string{"3"}, 3, true, nil},
		{[]string{"\n  ", " 12 \n"}, 12, false, nil},
		{[]string{"Level", "(7)"}, 7, false, nil},
		{[]string{"abc"}, 0, false, ErrNotNumeric},
		{nil, 0, false, ErrElementNotFound},
	}
	for _, tt := range tests {
		level, building, err := ResearchLevel(tt.texts)
		if !errors.Is(err, tt.err) || level != tt.level || building != tt.building {
			t.Errorf("ResearchLevel(%q) = %d, %v, %v; want %d, %v, %v", tt.texts, level, building, err, tt.level, tt.building, tt.err)
		}
	}
}

func TestParseResearch(t *testing.T) {
	src := `<a class="detail_button" ref="106"><span class="level">
<span class="textlabel">Espionage</span> 5</span></a>
<a class="detail_button" ref="113"><span class="level">3<span class="countdown">1h</span></span></a>
<a class="detail_button" ref="999"><span class="level"><span class="textlabel">?</span> 1</span></a>`
	got, err := ParseResearch(parse(t, src))
	if err != nil {
		t.Fatalf("ParseResearch: %v", err)
	}
	want := []model.ItemLevel{
		{Code: "106", Name: "Espionage Technology", Level: 5},
		{Code: "113", Name: "Energy Technology", Level: 3, InConstruction: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseResearch mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePlanets(t *testing.T) {
	src := `<div id="planetList">
<a class="planetlink tooltipRight js_hideTipOnMobile" href="index.php?page=overview&amp;cp=33620010">
  <span class="planet-name">Homeworld</span><span class="planet-koords">[1:100:5]</span></a>
<a class="planetlink tooltipRight" href="index.php?page=overview&amp;cp=33620011">
  <span class="planet-name"> Colony </span><span class="planet-koords">[2:7:12]</span></a>
</div>`
	got, err := ParsePlanets(parse(t, src))
	if err != nil {
		t.Fatalf("ParsePlanets: %v", err)
	}
	want := []model.Planet{
		{ID: "33620010", Name: "Homeworld", Coordinates: model.Coordinates{Galaxy: 1, System: 100, Position: 5}},
		{ID: "33620011", Name: "Colony", Coordinates: model.Coordinates{Galaxy: 2, System: 7, Position: 12}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParsePlanets mismatch (-want +got):\n%s", diff)
	}

	if _, err := ParsePlanets(parse(t, `<div></div>`)); !errors.Is(err, ErrElementNotFound) {
		t.Errorf("ParsePlanets(empty) error = %v, want ErrElementNotFound", err)
	}
}

const galaxyPage = `<table><tbody>
<tr class="row"><td class="position">1</td><td class="microplanet"></td><td class="planetname"></td><td class="playername"></td></tr>
<tr class="row"><td class="position">4</td><td class="microplanet" data-planet-id="501"></td>
  <td class="planetname">Rock</td><td class="playername"><span class="status_abbr_longinactive">sleepy</span> <span class="status_abbr_longinactive">(I)</span></td></tr>
<tr class="row"><td class="position">8</td><td class="microplanet" data-planet-id="502"></td>
  <td class="planetname">Beach</td><td class="playername"><span class="status_abbr_vacation">surfer (v)</span></td></tr>
<tr class="row"><td class="position">9</td><td class="microplanet" data-planet-id="503"></td>
  <td class="planetname">Base</td><td class="playername">grinder (i)</td></tr>
<tr class="row"><td class="position">10</td><td class="microplanet" data-planet-id="504"></td>
  <td class="planetname">Fort</td><td class="playername"><span class="status_abbr_active">warrior</span></td></tr>
</tbody></table>`

func TestParseGalaxy(t *testing.T) {
	got, err := ParseGalaxy(parse(t, galaxyPage), 1, 100)
	if err != nil {
		t.Fatalf("ParseGalaxy: %v", err)
	}
	at := func(pos int) model.Coordinates { return model.Coordinates{Galaxy: 1, System: 100, Position: pos} }
	want := []model.Planet{
		{ID: "501", Name: "Rock", Coordinates: at(4), PlayerName: "sleepy", PlayerState: model.Inactive},
		{ID: "502", Name: "Beach", Coordinates: at(8), PlayerName: "surfer", PlayerState: model.Vacation},
		{ID: "503", Name: "Base", Coordinates: at(9), PlayerName: "grinder", PlayerState: model.Inactive},
		{ID: "504", Name: "Fort", Coordinates: at(10), PlayerName: "warrior", PlayerState: model.Active},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseGalaxy mismatch (-want +got):\n%s", diff)
	}
}

func TestUnwrapGalaxy(t *testing.T) {
	body, err := unwrapGalaxy([]byte(`{"galaxy":"<tr class=\"row\"></tr>"}`))
	if err != nil {
		t.Fatalf("unwrapGalaxy: %v", err)
	}
	if got := string(body); got != `<tr class="row"></tr>` {
		t.Errorf("unwrapGalaxy = %q", got)
	}
	raw := []byte("<table></table>")
	if body, _ := unwrapGalaxy(raw); string(body) != string(raw) {
		t.Errorf("unwrapGalaxy changed plain markup to %q", body)
	}
}

const messagesPage = `<ul>
<li class="msg" data-msg-id="9001">
  <span class="msg_title"><a class="txt_link">Rock [1:101:4]</a></span>
  <span class="msg_date">18.10.2026 12:00:30</span>
  <span class="msg_origin">from Homeworld [1:100:5]</span>
  <span class="status_abbr_longinactive">sleepy</span>
  <span class="resspan">Metal: 120.000</span>
  <span class="resspan">Crystal: 60.000</span>
  <span class="resspan">Deuterium: 20.000</span>
  <span class="ctn ctn4">Loot: 50%</span>
  <span class="ctn ctn4">Defense: 0</span>
</li>
<li class="msg" data-msg-id="9002"><span class="msg_title"><a class="txt_link">Fleet returned</a></span></li>
</ul>`

func TestParseSpyReports(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	got, err := ParseSpyReports(parse(t, messagesPage), loc)
	if err != nil {
		t.Fatalf("ParseSpyReports: %v", err)
	}
	want := []model.SpyReport{{
		ID:     "9001",
		Origin: model.Coordinates{Galaxy: 1, System: 100, Position: 5},
		Target: model.Planet{
			Name:        "Rock",
			Coordinates: model.Coordinates{Galaxy: 1, System: 101, Position: 4},
			PlayerName:  "sleepy",
			PlayerState: model.Inactive,
		},
		Resources:   model.ResourceBundle{Metal: 120000, Crystal: 60000, Deuterium: 20000},
		Defenses:    0,
		PlayerState: model.Inactive,
		Loot:        0.5,
		Timestamp:   time.Date(2026, 10, 18, 12, 0, 30, 0, loc),
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseSpyReports mismatch (-want +got):\n%s", diff)
	}
	if v := got[0].Value(); v != 100000 {
		t.Errorf("Value() = %v, want 100000", v)
	}
}

func TestParseSpyReportsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		old     string
		new     string
		element string
		want    error
	}{
		{"bad date", "18.10.2026 12:00:30", "yesterday", "span.msg_date", nil},
		{"no origin", `<span class="msg_origin">from Homeworld [1:100:5]</span>`, "", "span.msg_origin", ErrElementNotFound},
		{"no loot", `<span class="ctn ctn4">Loot: 50%</span>`, "", "span.ctn loot", ErrElementNotFound},
		{"loot above 100%", "Loot: 50%", "Loot: 150%", "span.ctn loot", ErrLootOutOfRange},
		{"loot overflows", "Loot: 50%", "Loot: 99999999999999999999%", "span.ctn loot", strconv.ErrRange},
		{"no defense", `<span class="ctn ctn4">Defense: 0</span>`, "", "span.ctn defense", ErrElementNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := strings.Replace(messagesPage, tt.old, tt.new, 1)
			got, err := ParseSpyReports(parse(t, src), nil)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("ParseSpyReports error = %v, want *ParseError", err)
			}
			if got != nil {
				t.Errorf("ParseSpyReports returned %d reports alongside the error", len(got))
			}
			if pe.Element != tt.element {
				t.Errorf("ParseError.Element = %q, want %q", pe.Element, tt.element)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("ParseSpyReports error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseMeta(t *testing.T) {
	root := parse(t, `<html><head>
<meta name="ogame-timestamp" content="1792324800">
<meta name="ogame-player-name" content="commander">
<meta name="ogame-language" content="br">
<meta name="ogame-version" content="7.1.0">
</head><body></body></html>`)

	ts, err := ParseGameTime(root)
	if err != nil {
		t.Fatalf("ParseGameTime: %v", err)
	}
	if ts.Unix() != 1792324800 {
		t.Errorf("ParseGameTime = %d, want 1792324800", ts.Unix())
	}

	acct, err := ParseAccount(root)
	if err != nil {
		t.Fatalf("ParseAccount: %v", err)
	}
	want := model.Account{PlayerName: "commander", Language: "br", Version: "7.1.0"}
	if acct != want {
		t.Errorf("ParseAccount = %+v, want %+v", acct, want)
	}

	if _, err := ParseGameTime(parse(t, "<html></html>")); !errors.Is(err, ErrElementNotFound) {
		t.Errorf("ParseGameTime(no meta) error = %v, want ErrElementNotFound", err)
	}
}
