package scrape

import (
	"strings"

	"github.com/nstehr/ogbot/markup"
	"github.com/nstehr/ogbot/model"
	"github.com/nstehr/ogbot/page"
)

// ParseResources reads the resource bar present on every game page.
func ParseResources(root markup.Node) (model.ResourceBundle, error) {
	var r model.ResourceBundle
	fields := []struct {
		id  string
		dst *int64
	}{
		{"resources_metal", &r.Metal},
		{"resources_crystal", &r.Crystal},
		{"resources_deuterium", &r.Deuterium},
		{"resources_energy", &r.Energy},
	}
	for _, f := range fields {
		n, ok := root.FindID(f.id)
		if !ok {
			return model.ResourceBundle{}, missing(page.Resources.String(), "#"+f.id)
		}
		text := strings.TrimSpace(n.Text())
		v, err := quantity(text)
		if err != nil {
			return model.ResourceBundle{}, &ParseError{Page: page.Resources.String(), Element: "#" + f.id, Value: text, Err: err}
		}
		*f.dst = v
	}
	return r, nil
}
