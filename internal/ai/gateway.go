// Package ai – feedback gateway.
//
// The gateway owns the fallback contract: a failed external call, a timeout,
// or an unparseable response degrades exactly once to one of four canned
// tiered messages selected by the rule-based total. No retries are attempted;
// bounded latency is preferred over resilience-via-retry.
package ai

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/devfolio/go-portfolio-backend/internal/score"
)

// Generator is the external text-generation capability: given a prompt it
// returns raw model output or fails. Implementations must honor the context
// deadline.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Feedback is the parsed (or canned) AI feedback for one evaluation.
type Feedback struct {
	// Score is the model's quality bonus, clamped to [0,20]; 0 when absent
	// or when the fallback was used.
	Score int `json:"score"`
	// Overall is the natural-language feedback paragraph.
	Overall string `json:"overall"`
	// Tips are short actionable suggestions.
	Tips []string `json:"tips"`
}

// Gateway invokes a Generator with a fixed per-call timeout and supplies the
// deterministic fallback on any failure. A nil Gen is valid and always falls
// back, which is how deployments without an AI provider run.
type Gateway struct {
	Gen     Generator
	Timeout time.Duration
}

// Generate produces feedback for the given scores and summary. It never
// returns an error: every failure path yields the tiered fallback.
func (g *Gateway) Generate(ctx context.Context, s score.Scores, sum Summary) Feedback {
	if g.Gen == nil {
		return Fallback(s.Total())
	}

	timeout := g.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := g.Gen.Generate(ctx, BuildPrompt(s, sum))
	if err != nil {
		log.Warn().Err(err).Msg("ai generation failed, using fallback feedback")
		return Fallback(s.Total())
	}

	fb, ok := parseFeedback(raw)
	if !ok {
		log.Warn().Str("raw", truncateRunes(raw, 200)).Msg("unparseable ai response, using fallback feedback")
		return Fallback(s.Total())
	}
	return fb
}

// parseFeedback extracts a Feedback from raw model output. It tolerates
// code-fenced wrapping and a missing score or tips field; a missing or empty
// feedback string makes the response unusable.
func parseFeedback(raw string) (Feedback, bool) {
	body := stripCodeFence(raw)
	parsed := gjson.Parse(body)

	overall := strings.TrimSpace(parsed.Get("feedback").String())
	if overall == "" {
		return Feedback{}, false
	}

	fb := Feedback{Overall: overall}
	if v := parsed.Get("score"); v.Exists() {
		fb.Score = clamp(int(v.Int()), 0, 20)
	}
	for _, tip := range parsed.Get("tips").Array() {
		if t := strings.TrimSpace(tip.String()); t != "" {
			fb.Tips = append(fb.Tips, t)
		}
	}
	if len(fb.Tips) == 0 {
		fb.Tips = genericTips()
	}
	return fb, true
}

// stripCodeFence unwraps ```json ... ``` (or plain ```) fencing around a
// model response, returning the inner body.
func stripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if i := strings.IndexByte(t, '\n'); i >= 0 {
		// Drop the language tag line ("json", "JSON", or empty).
		t = t[i+1:]
	}
	if i := strings.LastIndex(t, "```"); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

// Fallback tier boundaries over the rule-based total.
const (
	fallbackTierExcellent = 80
	fallbackTierGood      = 60
	fallbackTierFair      = 40
)

// Fallback returns the canned tiered feedback for a rule-based total. The
// four messages are fixed; tests assert on them verbatim.
func Fallback(total int) Feedback {
	var overall string
	switch {
	case total >= fallbackTierExcellent:
		overall = "Your portfolio is in excellent shape. The structure is complete, the technical signal is strong, and a reviewer can quickly see what you have built. Keep it current as your work evolves."
	case total >= fallbackTierGood:
		overall = "Your portfolio is solid. The essentials are in place; deepening your project descriptions and troubleshooting write-ups would lift it to the next tier."
	case total >= fallbackTierFair:
		overall = "Your portfolio covers the basics but leaves reviewers guessing in places. Filling in the thinner sections would make a clear difference."
	default:
		overall = "Your portfolio is just getting started. Focus on the fundamentals first: an introduction, a few described projects, and your skill list."
	}
	return Feedback{Overall: overall, Tips: genericTips()}
}

// genericTips returns the fixed tips attached to fallback feedback (and to
// parsed responses that omitted tips). A fresh slice is returned so callers
// can safely append.
func genericTips() []string {
	return []string{
		"Write project descriptions that explain the problem, your approach, and the measurable result.",
		"Document at least one real troubleshooting experience end to end.",
		"Keep your contribution activity visible and recent.",
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
