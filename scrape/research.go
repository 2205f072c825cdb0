package scrape

import (
	"strconv"

	"github.com/nstehr/ogbot/markup"
	"github.com/nstehr/ogbot/model"
)

// ParseResearch reads research levels from the research page.
func ParseResearch(root markup.Node) ([]model.ItemLevel, error) {
	var items []model.ItemLevel
	for _, button := range root.Find("", "detail_button") {
		code, _ := button.Attr("ref")
		name, known := Research[code]
		if !known {
			continue
		}
		span, ok := markup.First(button, "span", "level")
		if !ok {
			return nil, missing("research", "detail_button["+code+"] span.level")
		}
		level, building, err := ResearchLevel(span.OwnText())
		if err != nil {
			return nil, &ParseError{Page: "research", Element: "detail_button[" + code + "] span.level", Err: err}
		}
		items = append(items, model.ItemLevel{Code: code, Name: name, Level: level, InConstruction: building})
	}
	return items, nil
}

// ResearchLevel reads the level from the direct text nodes of a level span.
// The level is normally the second node; while an upgrade is running the
// layout collapses and only the first node is present. Non-digits are
// stripped before parsing.
func ResearchLevel(texts []string) (level int, inConstruction bool, err error) {
	var raw string
	switch {
	case len(texts) > 1:
		raw = texts[1]
	case len(texts) == 1:
		raw, inConstruction = texts[0], true
	default:
		return 0, false, ErrElementNotFound
	}
	digits := nonDigits.ReplaceAllString(raw, "")
	if digits == "" {
		return 0, false, ErrNotNumeric
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false, ErrNotNumeric
	}
	return v, inConstruction, nil
}
