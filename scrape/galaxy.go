package scrape

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nstehr/ogbot/markup"
	"github.com/nstehr/ogbot/model"
)

var inlineMarker = regexp.MustCompile(`\((i|I|v)\)`)

// ParseGalaxy reads the occupied slots of one system view. Empty slots are
// skipped.
func ParseGalaxy(root markup.Node, galaxy, system int) ([]model.Planet, error) {
	var planets []model.Planet
	for _, row := range root.Find("tr", "row") {
		micro, ok := markup.First(row, "td", "microplanet")
		if !ok {
			continue
		}
		id, _ := micro.Attr("data-planet-id")
		if id == "" {
			continue
		}

		posNode, ok := markup.First(row, "td", "position")
		if !ok {
			return nil, missing("galaxy", "td.position")
		}
		posText := strings.TrimSpace(posNode.Text())
		pos, err := strconv.Atoi(posText)
		if err != nil {
			return nil, &ParseError{Page: "galaxy", Element: "td.position", Value: posText, Err: ErrNotNumeric}
		}

		p := model.Planet{
			ID:          id,
			Coordinates: model.Coordinates{Galaxy: galaxy, System: system, Position: pos},
		}
		if n, ok := markup.First(row, "td", "planetname"); ok {
			p.Name = strings.TrimSpace(n.Text())
		}
		if n, ok := markup.First(row, "td", "playername"); ok {
			p.PlayerName, p.PlayerState = playerCell(n)
		}
		planets = append(planets, p)
	}
	return planets, nil
}

// playerCell reads the player name and activity marker of a galaxy row.
func playerCell(cell markup.Node) (string, model.PlayerState) {
	state := activityMarker(cell)
	text := cell.Text()
	if state == model.Unknown {
		if m := inlineMarker.FindString(text); m != "" {
			state = model.ParsePlayerState(m)
		}
	}
	name := strings.Join(strings.Fields(inlineMarker.ReplaceAllString(text, "")), " ")
	return name, state
}

// activityMarker returns the state of the first status_abbr_* span under n.
func activityMarker(n markup.Node) model.PlayerState {
	for _, span := range n.Find("span", "") {
		for _, c := range span.Classes() {
			if !strings.HasPrefix(c, "status_abbr_") {
				continue
			}
			if s := model.ParsePlayerState(c); s != model.Unknown {
				return s
			}
		}
	}
	return model.Unknown
}

// unwrapGalaxy returns the HTML of a galaxy content response. The server
// answers either with markup or with {"galaxy": "<markup>"}.
func unwrapGalaxy(body []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return body, nil
	}
	var wrapped struct {
		Galaxy string `json:"galaxy"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("unmarshal galaxy content: %w", err)
	}
	return []byte(wrapped.Galaxy), nil
}
