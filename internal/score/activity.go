// Package score – Activity dimension.
package score

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Activity scores external engagement signals (max 25). Criteria: GitHub
// contribution volume parsed from the opaque calendar snapshot (20) and a
// link-diversity bonus over projects (5). A disabled contribution graph
// contributes 0 from that sub-score with an explanatory message; malformed
// or missing calendar JSON counts as zero contributions, never as an error.
func Activity(s Snapshot) DimensionScore {
	d := DimensionScore{MaxScore: 25, Details: []string{}}

	if !s.GithubDisplay {
		d.Details = append(d.Details, "Enable your GitHub contribution graph so activity can be scored.")
	} else {
		switch total := contributionTotal(s.ContribGraph); {
		case total >= 100:
			d.Score += 20
		case total >= 50:
			d.Score += 15
		case total >= 30:
			d.Score += 10
		case total >= 10:
			d.Score += 5
		case total > 0:
			d.Score += 2
		default:
			d.Score += 1
		}
		if contributionTotal(s.ContribGraph) < 100 {
			d.Details = append(d.Details, "Commit more regularly; 100+ recent contributions score full marks.")
		}
	}

	withLink := 0
	for _, p := range s.Projects {
		if strings.TrimSpace(p.GithubURL) != "" ||
			strings.TrimSpace(p.DemoURL) != "" ||
			strings.TrimSpace(p.Link) != "" {
			withLink++
		}
	}
	switch {
	case withLink >= 2:
		d.Score += 5
	case withLink >= 1:
		d.Score += 3
	}
	if withLink < 2 {
		d.Details = append(d.Details, "Attach links to at least two projects.")
	}

	return d
}

// contributionTotal sums the daily contribution counts nested in the
// calendar snapshot. The blob is untrusted external JSON: both the GitHub
// GraphQL key names and the simplified forms are accepted, and anything
// unparseable simply contributes nothing.
func contributionTotal(raw []byte) int {
	if len(raw) == 0 {
		return 0
	}
	root := gjson.ParseBytes(raw)
	weeks := root.Get("weeks")
	if !weeks.Exists() {
		weeks = root.Get("data.user.contributionsCollection.contributionCalendar.weeks")
	}
	if !weeks.Exists() {
		weeks = root.Get("contributionCalendar.weeks")
	}

	total := 0
	weeks.ForEach(func(_, week gjson.Result) bool {
		days := week.Get("contributionDays")
		if !days.Exists() {
			days = week.Get("days")
		}
		days.ForEach(func(_, day gjson.Result) bool {
			count := day.Get("contributionCount")
			if !count.Exists() {
				count = day.Get("count")
			}
			if n := int(count.Int()); n > 0 {
				total += n
			}
			return true
		})
		return true
	})
	return total
}
