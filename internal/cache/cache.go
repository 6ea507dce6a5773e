// Package cache wraps the fingerprint-keyed AI feedback store with an
// explicit fail-soft policy.
//
// The cache is a correctness-irrelevant optimization layer: losing every
// entry must never change the evaluation output, only its latency and cost.
// A backend failure on read is therefore reported as a distinct outcome that
// callers treat like a miss, and a backend failure on write is logged and
// swallowed. The policy is encoded in the Lookup result type so tests can
// assert it directly rather than inferring it from a default.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/devfolio/go-portfolio-backend/internal/domain"
	"github.com/devfolio/go-portfolio-backend/internal/repo"
)

// Status classifies the outcome of a cache read.
type Status int

const (
	// StatusMiss: no live entry for the fingerprint.
	StatusMiss Status = iota
	// StatusHit: a live entry was found.
	StatusHit
	// StatusBackendError: the store failed; treated as a miss by policy.
	StatusBackendError
)

// Entry is the cached AI feedback payload.
type Entry struct {
	Score    int
	Feedback string
	Tips     []string
}

// Lookup is the result of a cache read. Hit() is the only thing most callers
// need; Status is kept for tests asserting the fail-soft policy.
type Lookup struct {
	Status Status
	Entry  Entry
}

// Hit reports whether the lookup produced a usable entry.
func (l Lookup) Hit() bool { return l.Status == StatusHit }

// Store is the fail-soft cache over the feedback_cache table.
type Store struct {
	DB  *gorm.DB
	TTL time.Duration

	// Now is the clock; tests override it to simulate expiry. Nil means
	// time.Now.
	Now func() time.Time
}

// DefaultTTL is the fixed lifetime of a cache entry.
const DefaultTTL = 24 * time.Hour

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Store) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultTTL
}

// Get looks up the entry for a fingerprint. Backend errors never propagate:
// they come back as StatusBackendError, which callers treat as a miss.
func (s *Store) Get(ctx context.Context, fingerprint string) Lookup {
	rec, err := repo.GetFeedbackCache(ctx, s.DB, fingerprint, s.now())
	if errors.Is(err, repo.ErrNotFound) {
		return Lookup{Status: StatusMiss}
	}
	if err != nil {
		log.Warn().Err(err).Str("fingerprint", fingerprint).Msg("feedback cache read failed, treating as miss")
		return Lookup{Status: StatusBackendError}
	}

	entry := Entry{Score: rec.Score, Feedback: rec.Feedback}
	if len(rec.Tips) > 0 {
		// Tips were marshalled by Put; a decode failure only loses tips.
		_ = json.Unmarshal(rec.Tips, &entry.Tips)
	}
	return Lookup{Status: StatusHit, Entry: entry}
}

// Put stores an entry best-effort. Backend errors are logged and swallowed;
// the caller's request must never fail because the cache is down.
func (s *Store) Put(ctx context.Context, fingerprint string, entry Entry) {
	var tips datatypes.JSON
	if len(entry.Tips) > 0 {
		if raw, err := json.Marshal(entry.Tips); err == nil {
			tips = raw
		}
	}
	rec := &domain.FeedbackCache{
		Fingerprint: fingerprint,
		Score:       entry.Score,
		Feedback:    entry.Feedback,
		Tips:        tips,
	}
	if err := repo.PutFeedbackCache(ctx, s.DB, rec, s.ttl(), s.now()); err != nil {
		log.Warn().Err(err).Str("fingerprint", fingerprint).Msg("feedback cache write failed, continuing without caching")
	}
}
