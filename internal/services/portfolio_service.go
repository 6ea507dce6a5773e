// Package services – PortfolioService
//
// This file implements PortfolioService, the thin CRUD companion to the
// evaluation flow. It creates and fetches portfolio aggregates and manages
// the per-portfolio troubleshooting entries, enforcing ownership on every
// read and write so handlers can map failures to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/devfolio/go-portfolio-backend/internal/domain"
	"github.com/devfolio/go-portfolio-backend/internal/repo"
)

// ErrInvalidPortfolio is returned when a create payload fails validation.
var ErrInvalidPortfolio = errors.New("portfolio name is required")

// PortfolioService provides portfolio-level operations: create, fetch, and
// troubleshooting entry management. Ownership is enforced here, not in the
// repository layer.
type PortfolioService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewPortfolioService constructs a PortfolioService.
func NewPortfolioService(db *gorm.DB) *PortfolioService {
	return &PortfolioService{DB: db}
}

// Create persists a new portfolio aggregate (including nested skills,
// projects, educations, and certificates) owned by userID.
func (s *PortfolioService) Create(ctx context.Context, userID string, p *domain.Portfolio) (*domain.Portfolio, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, ErrInvalidPortfolio
	}
	p.UserID = userID
	if err := repo.CreatePortfolio(ctx, s.DB, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get fetches a portfolio with all child collections preloaded. Only the
// owner may read it.
func (s *PortfolioService) Get(ctx context.Context, userID, id string) (*domain.Portfolio, error) {
	p, err := repo.GetPortfolio(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPortfolioNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrNotOwner
	}
	return p, nil
}

// AddTroubleshoot appends a troubleshooting entry to the caller's portfolio.
// The per-portfolio cap and category validation live in the repository; this
// method only adds the ownership gate.
func (s *PortfolioService) AddTroubleshoot(ctx context.Context, userID, portfolioID string, ts *domain.Troubleshoot) (*domain.Troubleshoot, error) {
	if _, err := s.Get(ctx, userID, portfolioID); err != nil {
		return nil, err
	}
	ts.PortfolioID = portfolioID
	if err := repo.CreateTroubleshoot(ctx, s.DB, ts); err != nil {
		return nil, err
	}
	return ts, nil
}

// ListTroubleshoots returns the caller's troubleshooting entries in creation
// order.
func (s *PortfolioService) ListTroubleshoots(ctx context.Context, userID, portfolioID string) ([]domain.Troubleshoot, error) {
	if _, err := s.Get(ctx, userID, portfolioID); err != nil {
		return nil, err
	}
	return repo.ListTroubleshoots(ctx, s.DB, portfolioID)
}
