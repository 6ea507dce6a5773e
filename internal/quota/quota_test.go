package quota

import (
	"context"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devfolio/go-portfolio-backend/internal/domain"
)

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:quota_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.QuotaUsage{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func closedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newDB(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return db
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestLimiter_AllowUpToLimit(t *testing.T) {
	l := &Limiter{DB: newDB(t), Limit: 3, Now: fixedClock(time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC))}
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		d := l.Allow(ctx, "u1")
		if d.Outcome != OutcomeAllowed {
			t.Fatalf("call %d: outcome = %v, want allowed", i, d.Outcome)
		}
		if d.Used != i {
			t.Fatalf("call %d: used = %d, want %d", i, d.Used, i)
		}
	}

	d := l.Allow(ctx, "u1")
	if d.Outcome != OutcomeDenied {
		t.Fatalf("over-limit call: outcome = %v, want denied", d.Outcome)
	}
	if d.Allowed() {
		t.Fatal("a denied decision must not report Allowed()")
	}
}

func TestLimiter_UsersAreIndependent(t *testing.T) {
	l := &Limiter{DB: newDB(t), Limit: 1, Now: fixedClock(time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC))}
	ctx := context.Background()

	if d := l.Allow(ctx, "u1"); !d.Allowed() {
		t.Fatal("first call for u1 should be allowed")
	}
	if d := l.Allow(ctx, "u1"); d.Allowed() {
		t.Fatal("second call for u1 should be denied")
	}
	if d := l.Allow(ctx, "u2"); !d.Allowed() {
		t.Fatal("u2 must have an independent counter")
	}
}

func TestLimiter_DayRollover(t *testing.T) {
	clock := time.Date(2026, 8, 10, 23, 0, 0, 0, time.UTC)
	l := &Limiter{DB: newDB(t), Limit: 1, Now: func() time.Time { return clock }}
	ctx := context.Background()

	if d := l.Allow(ctx, "u1"); !d.Allowed() {
		t.Fatal("first call of the day should be allowed")
	}
	if d := l.Allow(ctx, "u1"); d.Allowed() {
		t.Fatal("limit reached, should be denied")
	}

	// Two hours later it is the next UTC day; the window resets.
	clock = clock.Add(2 * time.Hour)
	d := l.Allow(ctx, "u1")
	if !d.Allowed() {
		t.Fatal("new UTC day must reset the counter")
	}
	if d.Used != 1 {
		t.Fatalf("used = %d, want 1 on the new day", d.Used)
	}
}

func TestLimiter_UsedAndRemaining(t *testing.T) {
	l := &Limiter{DB: newDB(t), Limit: 5, Now: fixedClock(time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC))}
	ctx := context.Background()

	if got := l.Used(ctx, "u1"); got != 0 {
		t.Fatalf("fresh user: used = %d, want 0", got)
	}
	if got := l.Remaining(ctx, "u1"); got != 5 {
		t.Fatalf("fresh user: remaining = %d, want 5", got)
	}

	l.Allow(ctx, "u1")
	l.Allow(ctx, "u1")
	if got := l.Used(ctx, "u1"); got != 2 {
		t.Fatalf("used = %d, want 2", got)
	}
	if got := l.Remaining(ctx, "u1"); got != 3 {
		t.Fatalf("remaining = %d, want 3", got)
	}

	// Reading never consumes quota.
	if got := l.Used(ctx, "u1"); got != 2 {
		t.Fatalf("second read: used = %d, want 2", got)
	}
}

func TestLimiter_RemainingFloorsAtZero(t *testing.T) {
	l := &Limiter{DB: newDB(t), Limit: 1, Now: fixedClock(time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC))}
	ctx := context.Background()

	l.Allow(ctx, "u1")
	l.Allow(ctx, "u1") // denied, but still counted
	if got := l.Remaining(ctx, "u1"); got != 0 {
		t.Fatalf("remaining = %d, want 0", got)
	}
}

func TestLimiter_FailsOpenOnBackendError(t *testing.T) {
	l := &Limiter{DB: closedDB(t), Limit: 1}
	ctx := context.Background()

	d := l.Allow(ctx, "u1")
	if d.Outcome != OutcomeBackendError {
		t.Fatalf("outcome = %v, want backend-error", d.Outcome)
	}
	if !d.Allowed() {
		t.Fatal("backend errors must fail open")
	}
	if got := l.Used(ctx, "u1"); got != 0 {
		t.Fatalf("used on broken backend = %d, want 0", got)
	}
	if got := l.Remaining(ctx, "u1"); got != 1 {
		t.Fatalf("remaining on broken backend = %d, want the full limit", got)
	}
}

func TestLimiter_DefaultLimit(t *testing.T) {
	l := &Limiter{}
	if got := l.DailyLimit(); got != DefaultDailyLimit {
		t.Fatalf("DailyLimit() = %d, want %d", got, DefaultDailyLimit)
	}
	if DefaultDailyLimit != 5 {
		t.Fatalf("default daily limit must be 5, got %d", DefaultDailyLimit)
	}
}
