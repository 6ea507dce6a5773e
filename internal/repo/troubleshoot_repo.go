// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Troubleshoot model.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devfolio/go-portfolio-backend/internal/domain"
)

// MaxTroubleshootsPerPortfolio caps how many entries one portfolio carries.
const MaxTroubleshootsPerPortfolio = 3

// ErrTroubleshootLimit indicates the portfolio already has the maximum
// number of troubleshooting entries.
var ErrTroubleshootLimit = errors.New("troubleshoot limit reached")

// ErrInvalidCategory indicates a category outside the closed set.
var ErrInvalidCategory = errors.New("invalid troubleshoot category")

// ListTroubleshoots returns a portfolio's troubleshooting entries in
// creation order.
func ListTroubleshoots(ctx context.Context, db *gorm.DB, portfolioID string) ([]domain.Troubleshoot, error) {
	var out []domain.Troubleshoot
	err := db.WithContext(ctx).
		Where("portfolio_id = ?", portfolioID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

// CreateTroubleshoot inserts an entry after validating the category and the
// per-portfolio limit. The count check and insert run in one transaction so
// concurrent inserts cannot exceed the cap.
func CreateTroubleshoot(ctx context.Context, db *gorm.DB, ts *domain.Troubleshoot) error {
	if !ts.Category.Valid() {
		return ErrInvalidCategory
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Troubleshoot{}).
			Where("portfolio_id = ?", ts.PortfolioID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= MaxTroubleshootsPerPortfolio {
			return ErrTroubleshootLimit
		}
		if ts.ID == "" {
			ts.ID = uuid.NewString()
		}
		now := time.Now().UTC()
		ts.CreatedAt = now
		ts.UpdatedAt = now
		return tx.Create(ts).Error
	})
}
