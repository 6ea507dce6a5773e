package services

import (
	"context"
	"errors"
	"testing"

	"github.com/devfolio/go-portfolio-backend/internal/domain"
	"github.com/devfolio/go-portfolio-backend/internal/repo"
)

func validEntry() *domain.Troubleshoot {
	return &domain.Troubleshoot{
		Category: domain.CategoryBug,
		Problem:  "Requests failed intermittently under load.",
		Cause:    "A shared map was written without synchronization.",
		Solution: "Guarded the map with a mutex and added a race-detector CI job.",
		Lesson:   "Run the race detector before every release.",
	}
}

func TestPortfolioService_CreateAndGet(t *testing.T) {
	db := newDB(t)
	svc := NewPortfolioService(db)
	ctx := context.Background()

	p, err := svc.Create(ctx, "u1", &domain.Portfolio{
		Name:   "Ada",
		Skills: []domain.Skill{{Name: "Golang", Level: 5}, {Name: "Redis", Level: 3}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == "" {
		t.Fatal("Create must assign an ID")
	}
	if p.TotalScore != 0 {
		t.Fatalf("a new portfolio must start at score 0, got %d", p.TotalScore)
	}

	got, err := svc.Get(ctx, "u1", p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Ada" || len(got.Skills) != 2 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestPortfolioService_CreateRequiresName(t *testing.T) {
	svc := NewPortfolioService(newDB(t))
	_, err := svc.Create(context.Background(), "u1", &domain.Portfolio{Name: "   "})
	if !errors.Is(err, ErrInvalidPortfolio) {
		t.Fatalf("err = %v, want ErrInvalidPortfolio", err)
	}
}

func TestPortfolioService_GetEnforcesOwnership(t *testing.T) {
	db := newDB(t)
	svc := NewPortfolioService(db)
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner", &domain.Portfolio{Name: "Ada"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(ctx, "intruder", p.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
	if _, err := svc.Get(ctx, "owner", "no-such-id"); !errors.Is(err, ErrPortfolioNotFound) {
		t.Fatalf("err = %v, want ErrPortfolioNotFound", err)
	}
}

func TestPortfolioService_TroubleshootCap(t *testing.T) {
	db := newDB(t)
	svc := NewPortfolioService(db)
	ctx := context.Background()

	p, err := svc.Create(ctx, "u1", &domain.Portfolio{Name: "Ada"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i := 0; i < repo.MaxTroubleshootsPerPortfolio; i++ {
		if _, err := svc.AddTroubleshoot(ctx, "u1", p.ID, validEntry()); err != nil {
			t.Fatalf("entry %d: %v", i+1, err)
		}
	}
	if _, err := svc.AddTroubleshoot(ctx, "u1", p.ID, validEntry()); !errors.Is(err, repo.ErrTroubleshootLimit) {
		t.Fatalf("err = %v, want ErrTroubleshootLimit", err)
	}

	entries, err := svc.ListTroubleshoots(ctx, "u1", p.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != repo.MaxTroubleshootsPerPortfolio {
		t.Fatalf("len = %d, want %d", len(entries), repo.MaxTroubleshootsPerPortfolio)
	}
}

func TestPortfolioService_TroubleshootValidation(t *testing.T) {
	db := newDB(t)
	svc := NewPortfolioService(db)
	ctx := context.Background()

	p, err := svc.Create(ctx, "u1", &domain.Portfolio{Name: "Ada"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	bad := validEntry()
	bad.Category = domain.TroubleshootCategory("NONSENSE")
	if _, err := svc.AddTroubleshoot(ctx, "u1", p.ID, bad); !errors.Is(err, repo.ErrInvalidCategory) {
		t.Fatalf("err = %v, want ErrInvalidCategory", err)
	}

	if _, err := svc.AddTroubleshoot(ctx, "intruder", p.ID, validEntry()); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
}
