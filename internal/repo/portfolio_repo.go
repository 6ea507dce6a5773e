// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Portfolio
// aggregate.
//
// The repository follows a "thin" approach: it performs persistence and
// simple query composition, leaving business rules (ownership checks,
// scoring) to the services package.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devfolio/go-portfolio-backend/internal/domain"
)

// GetPortfolio fetches a portfolio by ID with all child collections
// preloaded in their sort order. Returns ErrNotFound when absent.
func GetPortfolio(ctx context.Context, db *gorm.DB, id string) (*domain.Portfolio, error) {
	var p domain.Portfolio
	err := db.WithContext(ctx).
		Preload("Skills", func(tx *gorm.DB) *gorm.DB { return tx.Order("sort_order ASC, created_at ASC") }).
		Preload("Projects", func(tx *gorm.DB) *gorm.DB { return tx.Order("sort_order ASC, created_at ASC") }).
		Preload("Educations").
		Preload("Certificates").
		First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePortfolio inserts a portfolio and its child rows. Missing IDs are
// assigned; the total score always starts at zero.
func CreatePortfolio(ctx context.Context, db *gorm.DB, p *domain.Portfolio) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.TotalScore = 0
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	for i := range p.Skills {
		if p.Skills[i].ID == "" {
			p.Skills[i].ID = uuid.NewString()
		}
		p.Skills[i].PortfolioID = p.ID
	}
	for i := range p.Projects {
		if p.Projects[i].ID == "" {
			p.Projects[i].ID = uuid.NewString()
		}
		p.Projects[i].PortfolioID = p.ID
	}
	for i := range p.Educations {
		if p.Educations[i].ID == "" {
			p.Educations[i].ID = uuid.NewString()
		}
		p.Educations[i].PortfolioID = p.ID
	}
	for i := range p.Certificates {
		if p.Certificates[i].ID == "" {
			p.Certificates[i].ID = uuid.NewString()
		}
		p.Certificates[i].PortfolioID = p.ID
	}
	return db.WithContext(ctx).Create(p).Error
}

// UpdatePortfolioScore writes the derived rule-based total back onto the
// portfolio row. It is intentionally a single-column update.
func UpdatePortfolioScore(ctx context.Context, db *gorm.DB, id string, total int) error {
	res := db.WithContext(ctx).
		Model(&domain.Portfolio{}).
		Where("id = ?", id).
		Update("total_score", total)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
