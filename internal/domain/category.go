// Package domain defines the persistence models for portfolios and their
// evaluation artifacts. This file defines the closed category set for
// troubleshooting entries.
package domain

import "fmt"

// TroubleshootCategory classifies a troubleshooting entry. The set is closed;
// unknown values are rejected at parse time rather than silently treated as
// an extra category.
type TroubleshootCategory string

// Valid troubleshooting categories.
const (
	CategoryCode        TroubleshootCategory = "CODE"
	CategoryBug         TroubleshootCategory = "BUG"
	CategoryPerformance TroubleshootCategory = "PERFORMANCE"
	CategoryDeploy      TroubleshootCategory = "DEPLOY"
	CategorySecurity    TroubleshootCategory = "SECURITY"
)

// TroubleshootCategories lists every valid category in display order.
var TroubleshootCategories = []TroubleshootCategory{
	CategoryCode,
	CategoryBug,
	CategoryPerformance,
	CategoryDeploy,
	CategorySecurity,
}

// Valid reports whether c is one of the defined categories.
func (c TroubleshootCategory) Valid() bool {
	switch c {
	case CategoryCode, CategoryBug, CategoryPerformance, CategoryDeploy, CategorySecurity:
		return true
	}
	return false
}

// String returns the wire representation of the category.
func (c TroubleshootCategory) String() string { return string(c) }

// ParseTroubleshootCategory converts a raw string into a category,
// rejecting anything outside the closed set.
func ParseTroubleshootCategory(s string) (TroubleshootCategory, error) {
	c := TroubleshootCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown troubleshoot category %q", s)
	}
	return c, nil
}
