package scrape

import (
	"net/url"
	"strings"

	"github.com/nstehr/ogbot/markup"
	"github.com/nstehr/ogbot/model"
	"github.com/nstehr/ogbot/page"
)

// ParsePlanets reads the account's planet list from the side bar.
func ParsePlanets(root markup.Node) ([]model.Planet, error) {
	links := root.Find("a", "planetlink")
	if len(links) == 0 {
		return nil, missing("planets", "a.planetlink")
	}
	planets := make([]model.Planet, 0, len(links))
	for _, link := range links {
		href, _ := link.Attr("href")
		id := planetIDFromHref(href)
		if id == "" {
			return nil, &ParseError{Page: "planets", Element: "a.planetlink href", Value: href, Err: ErrElementNotFound}
		}
		nameNode, ok := markup.First(link, "span", "planet-name")
		if !ok {
			return nil, missing("planets", "span.planet-name")
		}
		coordsNode, ok := markup.First(link, "span", "planet-koords")
		if !ok {
			return nil, missing("planets", "span.planet-koords")
		}
		coords, err := model.ParseCoordinates(strings.TrimSpace(coordsNode.Text()))
		if err != nil {
			return nil, &ParseError{Page: "planets", Element: "span.planet-koords", Value: coordsNode.Text(), Err: err}
		}
		planets = append(planets, model.Planet{
			ID:          id,
			Name:        strings.TrimSpace(nameNode.Text()),
			Coordinates: coords,
		})
	}
	return planets, nil
}

func planetIDFromHref(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Query().Get(page.PlanetParam)
}
