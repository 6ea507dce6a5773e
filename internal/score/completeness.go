// Package score – Completeness dimension.
package score

import (
	"strings"
	"unicode/utf8"
)

// Completeness scores how fully the portfolio's basic sections are filled in
// (max 30). Criteria, in order: basic profile (name 3 + contact 2),
// introduction length (5), skill count (5), project count (10), and
// education/certificate presence (5). Every criterion below full marks
// appends one improvement message; the two profile checks share a single
// message, so an all-empty snapshot yields score 0 with exactly five messages.
func Completeness(s Snapshot) DimensionScore {
	d := DimensionScore{MaxScore: 30, Details: []string{}}

	nameOK := strings.TrimSpace(s.Name) != ""
	contactOK := strings.TrimSpace(s.Email) != "" || strings.TrimSpace(s.Phone) != ""
	if nameOK {
		d.Score += 3
	}
	if contactOK {
		d.Score += 2
	}
	if !nameOK || !contactOK {
		d.Details = append(d.Details, "Fill in your basic profile: name and an email address or phone number.")
	}

	introLen := utf8.RuneCountInString(strings.TrimSpace(s.Introduction))
	switch {
	case introLen >= 200:
		d.Score += 5
	case introLen >= 100:
		d.Score += 3
	case introLen > 0:
		d.Score += 1
	}
	if introLen < 200 {
		d.Details = append(d.Details, "Write a self introduction of at least 200 characters.")
	}

	switch n := len(s.Skills); {
	case n >= 7:
		d.Score += 5
	case n >= 4:
		d.Score += 3
	case n > 0:
		d.Score += 1
	}
	if len(s.Skills) < 7 {
		d.Details = append(d.Details, "List at least 7 skills to show the breadth of your stack.")
	}

	switch n := len(s.Projects); {
	case n >= 3:
		d.Score += 10
	case n >= 2:
		d.Score += 7
	case n >= 1:
		d.Score += 4
	}
	if len(s.Projects) < 3 {
		d.Details = append(d.Details, "Add up to 3 projects; projects carry the most weight in this section.")
	}

	hasEdu := len(s.Educations) > 0
	hasCert := len(s.Certificates) > 0
	switch {
	case hasEdu && hasCert:
		d.Score += 5
	case hasEdu || hasCert:
		d.Score += 3
	}
	if !hasEdu || !hasCert {
		d.Details = append(d.Details, "Add your education history and certificates.")
	}

	return d
}
