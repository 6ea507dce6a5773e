// Package score – Troubleshooting dimension.
package score

import (
	"strings"
	"unicode/utf8"
)

// Minimum field lengths for a troubleshooting field to count as substantive.
const (
	tsMinFieldLen  = 50 // problem, cause, solution
	tsMinLessonLen = 30
)

// Troubleshooting scores the portfolio's problem-solving write-ups (max 25).
// Criteria: entry count (15), field completeness (5), and technical keyword
// presence (5). With zero entries the dimension short-circuits to score 0
// with a single improvement message.
func Troubleshooting(entries []Troubleshoot) DimensionScore {
	d := DimensionScore{MaxScore: 25, Details: []string{}}

	if len(entries) == 0 {
		d.Details = append(d.Details, "Document at least one troubleshooting experience: problem, cause, solution, and lesson.")
		return d
	}

	switch n := len(entries); {
	case n >= 3:
		d.Score += 15
	case n >= 2:
		d.Score += 10
	default:
		d.Score += 5
	}
	if len(entries) < 3 {
		d.Details = append(d.Details, "Add up to 3 troubleshooting entries.")
	}

	wellWritten := 0
	withKeywords := 0
	for _, e := range entries {
		if isWellWritten(e) {
			wellWritten++
		}
		text := strings.Join([]string{e.Problem, e.Cause, e.Solution, e.Lesson}, " ")
		if containsAnyTerm(text, errorTerms) || containsAnyTerm(text, techTerms) {
			withKeywords++
		}
	}

	switch {
	case wellWritten == len(entries):
		d.Score += 5
	case wellWritten > 0:
		d.Score += 3
	default:
		d.Score += 1
	}
	if wellWritten < len(entries) {
		d.Details = append(d.Details, "Flesh out each entry: problem, cause, and solution need 50+ characters, the lesson 30+.")
	}

	switch {
	case withKeywords == len(entries):
		d.Score += 5
	case withKeywords > 0:
		d.Score += 3
	}
	if withKeywords < len(entries) {
		d.Details = append(d.Details, "Name the concrete errors and technologies involved in each entry.")
	}

	return d
}

// isWellWritten reports whether at least three of an entry's four fields meet
// their minimum length.
func isWellWritten(e Troubleshoot) bool {
	n := 0
	if utf8.RuneCountInString(strings.TrimSpace(e.Problem)) >= tsMinFieldLen {
		n++
	}
	if utf8.RuneCountInString(strings.TrimSpace(e.Cause)) >= tsMinFieldLen {
		n++
	}
	if utf8.RuneCountInString(strings.TrimSpace(e.Solution)) >= tsMinFieldLen {
		n++
	}
	if utf8.RuneCountInString(strings.TrimSpace(e.Lesson)) >= tsMinLessonLen {
		n++
	}
	return n >= 3
}
