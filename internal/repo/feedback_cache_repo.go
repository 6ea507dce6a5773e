// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// fingerprint-keyed AI feedback cache.
//
// A fingerprint fully determines its content, so concurrent writers may race
// on the same row; the last write wins, which is harmless. Reads ignore
// expired rows, and a write over an expired row refreshes it in place.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devfolio/go-portfolio-backend/internal/domain"
)

// GetFeedbackCache returns the non-expired cache row for a fingerprint, or
// ErrNotFound.
func GetFeedbackCache(ctx context.Context, db *gorm.DB, fingerprint string, now time.Time) (*domain.FeedbackCache, error) {
	var rec domain.FeedbackCache
	err := db.WithContext(ctx).
		Where("fingerprint = ? AND expires_at > ?", fingerprint, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// PutFeedbackCache upserts a cache row with the given TTL.
func PutFeedbackCache(ctx context.Context, db *gorm.DB, rec *domain.FeedbackCache, ttl time.Duration, now time.Time) error {
	rec.CreatedAt = now
	rec.ExpiresAt = now.Add(ttl)
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fingerprint"}},
			UpdateAll: true,
		}).
		Create(rec).Error
}
