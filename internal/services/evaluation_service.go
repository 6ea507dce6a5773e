// Package services – EvaluationService
//
// This file implements EvaluationService, the application-level component
// that owns one evaluation request/response cycle: authorize, load data,
// run the rule scorer, gate the AI call through the quota limiter and the
// feedback cache, merge, persist the derived total, respond.
//
// The whole operation is synchronous within one caller-initiated request;
// there are no retries and no background jobs. The only user-visible
// failures are a missing portfolio and an ownership mismatch — everything
// else degrades to a deterministic default so the rule-based score is always
// deliverable.
//
// Observability: the public method is OpenTelemetry-instrumented; spans
// include portfolio/user identifiers and the AI path taken.

package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/devfolio/go-portfolio-backend/internal/ai"
	"github.com/devfolio/go-portfolio-backend/internal/cache"
	"github.com/devfolio/go-portfolio-backend/internal/domain"
	"github.com/devfolio/go-portfolio-backend/internal/quota"
	"github.com/devfolio/go-portfolio-backend/internal/repo"
	"github.com/devfolio/go-portfolio-backend/internal/score"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// EvaluationResponse is the full outcome of one evaluation request.
type EvaluationResponse struct {
	TotalScore      int          `json:"total_score"`
	MaxScore        int          `json:"max_score"`
	Breakdown       score.Scores `json:"breakdown"`
	OverallFeedback string       `json:"overall_feedback"`
	Tips            []string     `json:"tips"`
	EvaluatedAt     time.Time    `json:"evaluated_at"`
}

// EvaluationService composes the rule scorer, the quota limiter, the
// feedback cache, and the AI gateway into one evaluation flow.
type EvaluationService struct {
	DB      *gorm.DB
	Cache   *cache.Store
	Quota   *quota.Limiter
	Gateway *ai.Gateway

	// Now is the clock; tests override it. Nil means time.Now.
	Now func() time.Time
}

func (s *EvaluationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Evaluate scores the portfolio, attaches AI (or fallback) feedback, writes
// the derived total back onto the portfolio row, and returns the full
// breakdown.
func (s *EvaluationService) Evaluate(ctx context.Context, portfolioID, requesterID string) (*EvaluationResponse, error) {
	tr := otel.Tracer("services/EvaluationService")
	ctx, span := tr.Start(ctx, "Evaluate",
		trace.WithAttributes(
			attribute.String("portfolio.id", portfolioID),
			attribute.String("user.id", requesterID),
		),
	)
	defer span.End()

	p, err := repo.GetPortfolio(ctx, s.DB, portfolioID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPortfolioNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.UserID != requesterID {
		return nil, ErrNotOwner
	}

	entries, err := repo.ListTroubleshoots(ctx, s.DB, portfolioID)
	if err != nil {
		return nil, err
	}

	snap := snapshotFrom(p)
	tsInput := troubleshootInput(entries)
	scores := score.All(snap, tsInput)
	total := scores.Total()

	feedback := s.feedbackFor(ctx, requesterID, scores, summaryFrom(snap, tsInput))

	// Persist the derived total. Failure here must not void the evaluation
	// the caller already paid for.
	if err := repo.UpdatePortfolioScore(ctx, s.DB, portfolioID, total); err != nil {
		log.Warn().Err(err).Str("portfolio_id", portfolioID).Msg("total score write-back failed")
	}

	return &EvaluationResponse{
		TotalScore:      total,
		MaxScore:        score.MaxTotal,
		Breakdown:       scores,
		OverallFeedback: feedback.Overall,
		Tips:            feedback.Tips,
		EvaluatedAt:     s.now(),
	}, nil
}

// feedbackFor runs the quota-gated, cache-backed AI path. Quota exhaustion
// and every backend failure degrade to the tiered fallback; they never fail
// the evaluation.
func (s *EvaluationService) feedbackFor(ctx context.Context, requesterID string, scores score.Scores, sum ai.Summary) ai.Feedback {
	tr := otel.Tracer("services/EvaluationService")
	ctx, span := tr.Start(ctx, "feedbackFor")
	defer span.End()

	decision := s.Quota.Allow(ctx, requesterID)
	if !decision.Allowed() {
		span.SetAttributes(attribute.String("ai.path", "quota_denied"))
		return ai.Fallback(scores.Total())
	}

	fingerprint := ai.Fingerprint(ai.BuildPrompt(scores, sum))
	if lookup := s.Cache.Get(ctx, fingerprint); lookup.Hit() {
		span.SetAttributes(attribute.String("ai.path", "cache_hit"))
		return ai.Feedback{
			Score:   lookup.Entry.Score,
			Overall: lookup.Entry.Feedback,
			Tips:    lookup.Entry.Tips,
		}
	}

	span.SetAttributes(attribute.String("ai.path", "generate"))
	feedback := s.Gateway.Generate(ctx, scores, sum)
	s.Cache.Put(ctx, fingerprint, cache.Entry{
		Score:    feedback.Score,
		Feedback: feedback.Overall,
		Tips:     feedback.Tips,
	})
	return feedback
}

// snapshotFrom maps a stored portfolio into the scorer's input type. Stored
// JSON that fails to decode is treated as empty rather than failing the
// evaluation.
func snapshotFrom(p *domain.Portfolio) score.Snapshot {
	snap := score.Snapshot{
		Name:          p.Name,
		Email:         p.Email,
		Phone:         p.Phone,
		Introduction:  p.Introduction,
		ContribGraph:  []byte(p.ContribGraph),
		GithubDisplay: p.GithubDisplay,
	}
	for _, sk := range p.Skills {
		snap.Skills = append(snap.Skills, score.Skill{Name: sk.Name, Level: sk.Level})
	}
	for _, pr := range p.Projects {
		var stack []string
		if len(pr.TechStack) > 0 {
			_ = json.Unmarshal(pr.TechStack, &stack)
		}
		snap.Projects = append(snap.Projects, score.Project{
			Name:        pr.Name,
			Description: pr.Description,
			Role:        pr.Role,
			TechStack:   stack,
			GithubURL:   pr.GithubURL,
			DemoURL:     pr.DemoURL,
			Link:        pr.Link,
		})
	}
	for _, e := range p.Educations {
		snap.Educations = append(snap.Educations, e.School)
	}
	for _, c := range p.Certificates {
		snap.Certificates = append(snap.Certificates, c.Name)
	}
	return snap
}

// troubleshootInput maps stored entries into the scorer's input type.
func troubleshootInput(entries []domain.Troubleshoot) []score.Troubleshoot {
	out := make([]score.Troubleshoot, 0, len(entries))
	for _, e := range entries {
		out = append(out, score.Troubleshoot{
			Problem:  e.Problem,
			Cause:    e.Cause,
			Solution: e.Solution,
			Lesson:   e.Lesson,
		})
	}
	return out
}

// summaryFrom assembles the prompt summary; the prompt builder itself
// applies all truncation bounds.
func summaryFrom(snap score.Snapshot, entries []score.Troubleshoot) ai.Summary {
	sum := ai.Summary{Introduction: snap.Introduction}
	for _, p := range snap.Projects {
		sum.Projects = append(sum.Projects, ai.ProjectSummary{Name: p.Name, Description: p.Description})
	}
	if len(entries) > 0 {
		sum.Troubleshoot = &ai.TroubleshootExcerpt{
			Problem:  entries[0].Problem,
			Solution: entries[0].Solution,
		}
	}
	for _, sk := range snap.Skills {
		sum.Skills = append(sum.Skills, sk.Name)
	}
	return sum
}
