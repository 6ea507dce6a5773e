// Package score – Technical dimension.
package score

import (
	"strings"
	"unicode/utf8"
)

// Technical scores the depth and diversity of the technology signal in the
// portfolio (max 30). Criteria: stack category diversity (10), average
// project description length (8), fraction of projects with an explicit tech
// stack (5), link diversity across projects (4), and the presence of any
// skill with a stated proficiency level (3).
func Technical(s Snapshot) DimensionScore {
	d := DimensionScore{MaxScore: 30, Details: []string{}}

	// Category diversity over all technology names the author lists,
	// from both project stacks and the skill list.
	var techs []string
	for _, sk := range s.Skills {
		techs = append(techs, sk.Name)
	}
	for _, p := range s.Projects {
		techs = append(techs, p.TechStack...)
	}
	switch n := len(matchCategories(techs)); {
	case n >= 4:
		d.Score += 10
	case n >= 3:
		d.Score += 7
	case n >= 2:
		d.Score += 4
	case n >= 1:
		d.Score += 2
	}
	if len(matchCategories(techs)) < 4 {
		d.Details = append(d.Details, "Cover more of the stack: frontend, backend, database, and DevOps technologies each count.")
	}

	// Average project description length.
	if len(s.Projects) > 0 {
		total := 0
		for _, p := range s.Projects {
			total += utf8.RuneCountInString(strings.TrimSpace(p.Description))
		}
		switch avg := total / len(s.Projects); {
		case avg >= 200:
			d.Score += 8
		case avg >= 100:
			d.Score += 5
		case avg > 0:
			d.Score += 2
		}
		if total/len(s.Projects) < 200 {
			d.Details = append(d.Details, "Describe each project in at least 200 characters on average.")
		}
	} else {
		d.Details = append(d.Details, "Add projects with substantial descriptions.")
	}

	// Fraction of projects carrying an explicit tech stack.
	if len(s.Projects) > 0 {
		withStack := 0
		for _, p := range s.Projects {
			if len(p.TechStack) > 0 {
				withStack++
			}
		}
		switch {
		case withStack == len(s.Projects):
			d.Score += 5
		case withStack > 0:
			d.Score += 3
		}
		if withStack < len(s.Projects) {
			d.Details = append(d.Details, "List the tech stack on every project.")
		}
	}

	// Link diversity: a code-repository link and a demo/external link.
	var hasRepo, hasDemo bool
	for _, p := range s.Projects {
		if strings.TrimSpace(p.GithubURL) != "" {
			hasRepo = true
		}
		if strings.TrimSpace(p.DemoURL) != "" || strings.TrimSpace(p.Link) != "" {
			hasDemo = true
		}
	}
	switch {
	case hasRepo && hasDemo:
		d.Score += 4
	case hasRepo:
		d.Score += 3
	case hasDemo:
		d.Score += 2
	}
	if !hasRepo || !hasDemo {
		d.Details = append(d.Details, "Link both a code repository and a demo or article for at least one project.")
	}

	// Any skill with an explicit proficiency level.
	hasLevel := false
	for _, sk := range s.Skills {
		if sk.Level > 0 {
			hasLevel = true
			break
		}
	}
	if hasLevel {
		d.Score += 3
	} else {
		d.Details = append(d.Details, "Mark proficiency levels on your skills.")
	}

	return d
}
