// Package services defines the business logic for portfolio evaluation.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// Only existence and ownership failures surface here: every infrastructure
// failure (AI call, cache, quota counter) is recovered inside the service
// via its fallback or fail-open/fail-soft policy and never reaches a caller.
package services

import "errors"

var (
	// ErrPortfolioNotFound indicates that the requested portfolio does not
	// exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrNotOwner is returned when a user requests an evaluation of a
	// portfolio they do not own.
	ErrNotOwner = errors.New("portfolio belongs to another user")
)
