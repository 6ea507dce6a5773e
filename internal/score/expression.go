// Package score – Expression dimension.
package score

import (
	"strings"
	"unicode/utf8"
)

// Expression scores how well the author communicates (max 20). Criteria:
// introduction quality by length and specificity (8), project description
// completeness (7), and role-field presence across projects (5, only scored
// when projects exist).
func Expression(s Snapshot) DimensionScore {
	d := DimensionScore{MaxScore: 20, Details: []string{}}

	intro := strings.TrimSpace(s.Introduction)
	introLen := utf8.RuneCountInString(intro)
	specific := countDistinctTerms(intro, specificityWords) >= 3
	switch {
	case introLen >= 300 && specific:
		d.Score += 8
	case introLen >= 200:
		d.Score += 6
	case introLen >= 100:
		d.Score += 4
	case introLen > 0:
		d.Score += 2
	}
	if introLen < 300 || !specific {
		d.Details = append(d.Details, "Expand your introduction to 300+ characters with concrete technical and reflective detail.")
	}

	if len(s.Projects) > 0 {
		complete := 0
		for _, p := range s.Projects {
			if utf8.RuneCountInString(strings.TrimSpace(p.Description)) >= 100 {
				complete++
			}
		}
		switch {
		case complete == len(s.Projects):
			d.Score += 7
		case complete > 0:
			d.Score += 4
		default:
			d.Score += 1
		}
		if complete < len(s.Projects) {
			d.Details = append(d.Details, "Describe every project in at least 100 characters.")
		}

		withRole := 0
		for _, p := range s.Projects {
			if strings.TrimSpace(p.Role) != "" {
				withRole++
			}
		}
		switch {
		case withRole == len(s.Projects):
			d.Score += 5
		case withRole > 0:
			d.Score += 3
		}
		if withRole < len(s.Projects) {
			d.Details = append(d.Details, "State your role on every project.")
		}
	} else {
		d.Details = append(d.Details, "Add projects so reviewers can see how you describe your work.")
	}

	return d
}
