// Package ai builds the feedback prompt, invokes the external text-generation
// capability, and degrades to deterministic canned feedback on any failure.
//
// The prompt builder is the anchor of the caching layer: its output is
// byte-identical for identical inputs, and the cache fingerprint is the
// SHA-256 of the prompt, so "all text shown to the AI" is exactly what gets
// hashed.
package ai

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/devfolio/go-portfolio-backend/internal/score"
)

// Truncation bounds for prompt content. Everything the model sees is capped
// so prompt size (and generation cost) stays bounded regardless of input.
const (
	maxPromptIntroRunes   = 500
	maxPromptProjects     = 2
	maxPromptProjectRunes = 200
	maxPromptExcerptRunes = 100
	maxPromptSkills       = 5
)

// Summary is the portfolio text handed to the prompt builder. Callers pass
// everything they have; the builder applies the truncation bounds itself.
type Summary struct {
	Introduction string
	Projects     []ProjectSummary
	Troubleshoot *TroubleshootExcerpt
	Skills       []string
}

// ProjectSummary is the name and description of one project.
type ProjectSummary struct {
	Name        string
	Description string
}

// TroubleshootExcerpt is the problem/solution pair of one troubleshooting
// entry.
type TroubleshootExcerpt struct {
	Problem  string
	Solution string
}

// BuildPrompt renders the deterministic evaluation prompt from the rule
// scores and the portfolio summary. Output is byte-identical for identical
// inputs.
func BuildPrompt(s score.Scores, sum Summary) string {
	var b strings.Builder

	b.WriteString("You are a senior engineer reviewing a developer portfolio.\n")
	b.WriteString("A rule-based screening already produced these dimension scores:\n")
	fmt.Fprintf(&b, "- Completeness: %d/%d\n", s.Completeness.Score, s.Completeness.MaxScore)
	fmt.Fprintf(&b, "- Technical: %d/%d\n", s.Technical.Score, s.Technical.MaxScore)
	fmt.Fprintf(&b, "- Troubleshooting: %d/%d\n", s.Troubleshooting.Score, s.Troubleshooting.MaxScore)
	fmt.Fprintf(&b, "- Expression: %d/%d\n", s.Expression.Score, s.Expression.MaxScore)
	fmt.Fprintf(&b, "- Activity: %d/%d\n", s.Activity.Score, s.Activity.MaxScore)
	fmt.Fprintf(&b, "- Total: %d/%d\n\n", s.Total(), score.MaxTotal)

	fmt.Fprintf(&b, "Introduction:\n%s\n\n", truncateRunes(sum.Introduction, maxPromptIntroRunes))

	projects := sum.Projects
	if len(projects) > maxPromptProjects {
		projects = projects[:maxPromptProjects]
	}
	for i, p := range projects {
		fmt.Fprintf(&b, "Project %d (%s):\n%s\n\n", i+1, p.Name, truncateRunes(p.Description, maxPromptProjectRunes))
	}

	if ts := sum.Troubleshoot; ts != nil {
		fmt.Fprintf(&b, "Troubleshooting excerpt:\nProblem: %s\nSolution: %s\n\n",
			truncateRunes(ts.Problem, maxPromptExcerptRunes),
			truncateRunes(ts.Solution, maxPromptExcerptRunes))
	}

	skills := sum.Skills
	if len(skills) > maxPromptSkills {
		skills = skills[:maxPromptSkills]
	}
	if len(skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n\n", strings.Join(skills, ", "))
	}

	b.WriteString("Return your answer STRICTLY in JSON format with this schema:\n")
	b.WriteString(`{
	"score": <integer 0-20, your overall quality bonus>,
	"feedback": "<3-5 sentences of overall feedback, encouraging but concrete>",
	"tips": ["<actionable tip>", "<actionable tip>", "<actionable tip>"]
}`)
	b.WriteString("\n")

	return b.String()
}

// Fingerprint returns the stable cache key for a built prompt.
func Fingerprint(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

// truncateRunes clips s to at most n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
