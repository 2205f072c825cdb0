package scrape

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nstehr/ogbot/markup"
	"github.com/nstehr/ogbot/model"
)

// ReportTimeLayout is how message dates render.
const ReportTimeLayout = "02.01.2006 15:04:05"

var (
	titleTarget = regexp.MustCompile(`^(.*?)\s*\[(\d+:\d+:\d+)\]`)
	lootValue   = regexp.MustCompile(`(?i)loot:\s*(\d+)\s*%`)
	defenseVal  = regexp.MustCompile(`(?i)defen[cs]e:\s*([\d.]+)`)
)

// ParseSpyReports reads the espionage reports of the messages page. Messages
// without resource entries are not spy reports and are skipped; a spy report
// that cannot be read fails the whole page. Dates are interpreted in loc.
func ParseSpyReports(root markup.Node, loc *time.Location) ([]model.SpyReport, error) {
	if loc == nil {
		loc = time.UTC
	}
	var reports []model.SpyReport
	for _, msg := range root.Find("li", "msg") {
		res := msg.Find("span", "resspan")
		if len(res) == 0 {
			continue
		}
		r, err := parseSpyReport(msg, res, loc)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func parseSpyReport(msg markup.Node, res []markup.Node, loc *time.Location) (model.SpyReport, error) {
	var r model.SpyReport
	r.ID, _ = msg.Attr("data-msg-id")

	title, ok := firstIn(msg, "span", "msg_title", "a", "txt_link")
	if !ok {
		return r, missing("messages", "span.msg_title a.txt_link")
	}
	m := titleTarget.FindStringSubmatch(strings.TrimSpace(title.Text()))
	if m == nil {
		return r, &ParseError{Page: "messages", Element: "msg_title", Value: title.Text(), Err: ErrNotNumeric}
	}
	target, err := model.ParseCoordinates(m[2])
	if err != nil {
		return r, &ParseError{Page: "messages", Element: "msg_title", Value: m[2], Err: err}
	}
	r.Target = model.Planet{Name: m[1], Coordinates: target}

	originNode, ok := markup.First(msg, "span", "msg_origin")
	if !ok {
		return r, missing("messages", "span.msg_origin")
	}
	originText := strings.TrimSpace(originNode.Text())
	origin, err := model.ParseCoordinates(extractCoords(originText))
	if err != nil {
		return r, &ParseError{Page: "messages", Element: "span.msg_origin", Value: originText, Err: err}
	}
	r.Origin = origin

	dateNode, ok := markup.First(msg, "span", "msg_date")
	if !ok {
		return r, missing("messages", "span.msg_date")
	}
	dateText := strings.TrimSpace(dateNode.Text())
	ts, err := time.ParseInLocation(ReportTimeLayout, dateText, loc)
	if err != nil {
		return r, &ParseError{Page: "messages", Element: "span.msg_date", Value: dateText, Err: err}
	}
	r.Timestamp = ts

	if len(res) < 3 {
		return r, missing("messages", "span.resspan")
	}
	for i, dst := range []*int64{&r.Resources.Metal, &r.Resources.Crystal, &r.Resources.Deuterium} {
		text := res[i].Text()
		if j := strings.LastIndex(text, ":"); j >= 0 {
			text = text[j+1:]
		}
		v, err := quantity(text)
		if err != nil {
			return r, &ParseError{Page: "messages", Element: "span.resspan", Value: strings.TrimSpace(text), Err: err}
		}
		*dst = v
	}

	lootSeen, defensesSeen := false, false
	for _, ctn := range msg.Find("span", "ctn") {
		text := ctn.Text()
		if m := lootValue.FindStringSubmatch(text); m != nil {
			pct, err := strconv.Atoi(m[1])
			if err != nil {
				return r, &ParseError{Page: "messages", Element: "span.ctn loot", Value: m[1], Err: err}
			}
			if pct > 100 {
				return r, &ParseError{Page: "messages", Element: "span.ctn loot", Value: m[1], Err: ErrLootOutOfRange}
			}
			r.Loot = float64(pct) / 100
			lootSeen = true
			continue
		}
		if m := defenseVal.FindStringSubmatch(text); m != nil {
			v, err := quantity(m[1])
			if err != nil {
				return r, &ParseError{Page: "messages", Element: "span.ctn defense", Value: m[1], Err: err}
			}
			r.Defenses = int(v)
			defensesSeen = true
		}
	}
	if !lootSeen {
		return r, missing("messages", "span.ctn loot")
	}
	if !defensesSeen {
		return r, missing("messages", "span.ctn defense")
	}

	r.PlayerState = activityMarker(msg)
	r.Target.PlayerState = r.PlayerState
	for _, span := range msg.Find("span", "") {
		for _, c := range span.Classes() {
			if strings.HasPrefix(c, "status_abbr_") {
				r.Target.PlayerName = strings.TrimSpace(span.Text())
			}
		}
		if r.Target.PlayerName != "" {
			break
		}
	}
	return r, nil
}

func firstIn(n markup.Node, outerTag, outerClass, tag, class string) (markup.Node, bool) {
	outer, ok := markup.First(n, outerTag, outerClass)
	if !ok {
		return nil, false
	}
	return markup.First(outer, tag, class)
}

func extractCoords(s string) string {
	if i := strings.Index(s, "["); i >= 0 {
		if j := strings.Index(s[i:], "]"); j >= 0 {
			return s[i : i+j+1]
		}
	}
	return s
}
