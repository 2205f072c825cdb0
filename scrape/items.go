package scrape

import (
	"github.com/nstehr/ogbot/markup"
	"github.com/nstehr/ogbot/model"
)

// ParseShips reads the ship counts of the shipyard page.
func ParseShips(root markup.Node) ([]model.ItemLevel, error) {
	return parseLevelGroups(root, "shipyard", Ships)
}

// ParseDefenses reads the defense counts of the defense page.
func ParseDefenses(root markup.Node) ([]model.ItemLevel, error) {
	return parseLevelGroups(root, "defense", Defenses)
}

// parseLevelGroups walks the item buttons. Each item's count lives in the
// span that holds its text label; the span's class list must be exactly
// "level" and its last fragment is the count.
func parseLevelGroups(root markup.Node, pageName string, catalog map[string]string) ([]model.ItemLevel, error) {
	var items []model.ItemLevel
	for _, button := range root.Find("", "detail_button") {
		code, _ := button.Attr("ref")
		name, known := catalog[code]
		if !known {
			continue
		}
		group, ok := levelGroup(button)
		if !ok {
			return nil, missing(pageName, "detail_button["+code+"] span.level")
		}
		toks := Tokens(group.Text())
		if len(toks) == 0 {
			return nil, missing(pageName, "detail_button["+code+"] level text")
		}
		last := toks[len(toks)-1]
		count, ok := tokenQuantity(last)
		if !ok {
			return nil, &ParseError{Page: pageName, Element: "detail_button[" + code + "] count", Value: last.String(), Err: ErrNotNumeric}
		}
		items = append(items, model.ItemLevel{Code: code, Name: name, Level: int(count)})
	}
	return items, nil
}

func levelGroup(button markup.Node) (markup.Node, bool) {
	for _, label := range button.Find("span", "textlabel") {
		parent, ok := label.Parent()
		if !ok {
			continue
		}
		if classes := parent.Classes(); len(classes) == 1 && classes[0] == "level" {
			return parent, true
		}
	}
	return nil, false
}
