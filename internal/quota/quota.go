// Package quota enforces the per-user daily limit on AI feedback calls with
// an explicit fail-open policy.
//
// The limiter protects an expensive external call from abuse, not the
// system from overload: when the counter store is unreachable, availability
// of the evaluation feature outranks strict enforcement, so every operation
// degrades to "allowed" / "full quota remaining". The policy is encoded in
// the Decision outcome type so tests can assert it directly.
package quota

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/devfolio/go-portfolio-backend/internal/repo"
)

// Outcome classifies an Allow decision.
type Outcome int

const (
	// OutcomeAllowed: the call fits within today's quota.
	OutcomeAllowed Outcome = iota
	// OutcomeDenied: today's quota is exhausted.
	OutcomeDenied
	// OutcomeBackendError: the counter store failed; treated as allowed by
	// policy.
	OutcomeBackendError
)

// Decision is the result of an Allow call.
type Decision struct {
	Outcome Outcome
	// Used is the post-increment count for today; 0 on backend error.
	Used int
}

// Allowed reports whether the AI call may proceed. Backend errors fail open.
func (d Decision) Allowed() bool { return d.Outcome != OutcomeDenied }

// DefaultDailyLimit is the default number of AI feedback calls per user per
// UTC calendar day.
const DefaultDailyLimit = 5

// Limiter is the day-scoped counter over the quota_usage table.
type Limiter struct {
	DB    *gorm.DB
	Limit int

	// Now is the clock; tests override it to simulate day rollover. Nil
	// means time.Now.
	Now func() time.Time
}

func (l *Limiter) now() time.Time {
	if l.Now != nil {
		return l.Now().UTC()
	}
	return time.Now().UTC()
}

func (l *Limiter) limit() int {
	if l.Limit > 0 {
		return l.Limit
	}
	return DefaultDailyLimit
}

// DailyLimit returns the effective per-day limit.
func (l *Limiter) DailyLimit() int { return l.limit() }

// day formats the quota window key for t.
func day(t time.Time) string { return t.Format("2006-01-02") }

// endOfDay returns the next UTC midnight after t, when the counter expires.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}

// Allow consumes one unit of today's quota and reports whether the call may
// proceed. The increment is atomic across concurrent requests; the first
// increment of the day creates the counter with an expiry at the next
// day boundary.
func (l *Limiter) Allow(ctx context.Context, userID string) Decision {
	now := l.now()
	count, err := repo.IncrementQuota(ctx, l.DB, userID, day(now), endOfDay(now))
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("quota increment failed, failing open")
		return Decision{Outcome: OutcomeBackendError}
	}
	if count > l.limit() {
		return Decision{Outcome: OutcomeDenied, Used: count}
	}
	return Decision{Outcome: OutcomeAllowed, Used: count}
}

// Used returns how many calls the user has made today, without incrementing.
// Backend errors fail open as zero.
func (l *Limiter) Used(ctx context.Context, userID string) int {
	now := l.now()
	count, err := repo.GetQuotaCount(ctx, l.DB, userID, day(now), now)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("quota read failed, reporting zero usage")
		return 0
	}
	return count
}

// Remaining returns how many calls the user has left today. Backend errors
// fail open as the full limit.
func (l *Limiter) Remaining(ctx context.Context, userID string) int {
	used := l.Used(ctx, userID)
	if used >= l.limit() {
		return 0
	}
	return l.limit() - used
}
