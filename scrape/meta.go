package scrape

import (
	"strconv"
	"strings"
	"time"

	"github.com/nstehr/ogbot/markup"
	"github.com/nstehr/ogbot/model"
)

// Meta returns the content of the named meta tag.
func Meta(root markup.Node, name string) (string, bool) {
	for _, m := range root.Find("meta", "") {
		if n, _ := m.Attr("name"); n == name {
			return m.Attr("content")
		}
	}
	return "", false
}

// ParseGameTime reads the server clock from the ogame-timestamp meta tag.
func ParseGameTime(root markup.Node) (time.Time, error) {
	raw, ok := Meta(root, "ogame-timestamp")
	if !ok {
		return time.Time{}, missing("main", "meta[ogame-timestamp]")
	}
	secs, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return time.Time{}, &ParseError{Page: "main", Element: "meta[ogame-timestamp]", Value: raw, Err: ErrNotNumeric}
	}
	return time.Unix(secs, 0), nil
}

// ParseAccount reads the player identity meta tags.
func ParseAccount(root markup.Node) (model.Account, error) {
	name, ok := Meta(root, "ogame-player-name")
	if !ok {
		return model.Account{}, missing("main", "meta[ogame-player-name]")
	}
	lang, _ := Meta(root, "ogame-language")
	version, _ := Meta(root, "ogame-version")
	return model.Account{PlayerName: name, Language: lang, Version: version}, nil
}
