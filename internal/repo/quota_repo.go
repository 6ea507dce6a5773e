// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the day-scoped AI quota counter.
//
// The increment must be a single atomic statement shared by all concurrent
// requests for the same user: a read-modify-write in Go would allow the
// quota to be exceeded under a race, so the upsert and the count read happen
// in one round trip via RETURNING.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/devfolio/go-portfolio-backend/internal/domain"
)

// IncrementQuota atomically increments the (userID, day) counter, creating
// it on first use with the given expiry, and returns the post-increment
// count.
func IncrementQuota(ctx context.Context, db *gorm.DB, userID, day string, expiresAt time.Time) (int, error) {
	var count int
	err := db.WithContext(ctx).Raw(`
		INSERT INTO quota_usage (user_id, day, count, expires_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT (user_id, day) DO UPDATE SET count = count + 1
		RETURNING count`,
		userID, day, expiresAt,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// GetQuotaCount returns the current count for (userID, day) without
// incrementing. A missing or expired row counts as zero.
func GetQuotaCount(ctx context.Context, db *gorm.DB, userID, day string, now time.Time) (int, error) {
	var rec domain.QuotaUsage
	err := db.WithContext(ctx).
		Where("user_id = ? AND day = ? AND expires_at > ?", userID, day, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return rec.Count, nil
}
