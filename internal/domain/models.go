// Package domain defines the persistence models for portfolios and their
// evaluation artifacts. These types are mapped with GORM and form the core
// data layer of the portfolio backend.
package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Portfolio represents a user-authored portfolio document. Each portfolio is
// owned by exactly one user and aggregates skills, projects, educations,
// certificates, and troubleshooting entries.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - UserID: identifier of the portfolio owner; indexed for efficient retrieval.
//   - Name / Email / Phone: author profile fields; any of them may be empty.
//   - Introduction: free-form self introduction used by the rule scorer and
//     (truncated) by the AI feedback prompt.
//   - GithubDisplay: whether the GitHub contribution graph is shown; when
//     false the activity scorer skips the contribution sub-score.
//   - ContribGraph: opaque JSON snapshot of the contribution calendar as
//     fetched from GitHub. Parsed leniently; malformed content counts as zero.
//   - TotalScore: derived rule-based total written back after each evaluation.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker.
type Portfolio struct {
	ID            string         `json:"id"             gorm:"type:char(36);primaryKey"`
	UserID        string         `json:"user_id"        gorm:"type:varchar(64);not null;index:idx_user_portfolios"`
	Name          string         `json:"name"           gorm:"type:varchar(100)"`
	Email         string         `json:"email"          gorm:"type:varchar(255)"`
	Phone         string         `json:"phone"          gorm:"type:varchar(32)"`
	Introduction  string         `json:"introduction"   gorm:"type:text"`
	GithubDisplay bool           `json:"github_display" gorm:"not null;default:true"`
	ContribGraph  datatypes.JSON `json:"contrib_graph,omitempty"`
	TotalScore    int            `json:"total_score"    gorm:"not null;default:0"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-"              gorm:"index"`

	Skills       []Skill       `json:"skills,omitempty"       gorm:"foreignKey:PortfolioID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Projects     []Project     `json:"projects,omitempty"     gorm:"foreignKey:PortfolioID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Educations   []Education   `json:"educations,omitempty"   gorm:"foreignKey:PortfolioID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Certificates []Certificate `json:"certificates,omitempty" gorm:"foreignKey:PortfolioID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Portfolio.
func (Portfolio) TableName() string { return "portfolios" }

// Skill is a named technology or competency listed on a portfolio.
// Level is a self-assessed proficiency from 1 to 5; 0 means unset.
type Skill struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	PortfolioID string    `json:"portfolio_id" gorm:"type:char(36);not null;index:idx_portfolio_skills,priority:1"`
	Name        string    `json:"name"         gorm:"type:varchar(100);not null"`
	Level       int       `json:"level"        gorm:"not null;default:0;check:level BETWEEN 0 AND 5"`
	SortOrder   int       `json:"sort_order"   gorm:"not null;default:0;index:idx_portfolio_skills,priority:2"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for Skill.
func (Skill) TableName() string { return "skills" }

// Project is a single portfolio project entry. Link fields are optional;
// TechStack is stored as a JSON array of strings.
type Project struct {
	ID          string         `json:"id"           gorm:"type:char(36);primaryKey"`
	PortfolioID string         `json:"portfolio_id" gorm:"type:char(36);not null;index:idx_portfolio_projects,priority:1"`
	Name        string         `json:"name"         gorm:"type:varchar(255);not null"`
	Description string         `json:"description"  gorm:"type:text"`
	Role        string         `json:"role"         gorm:"type:varchar(255)"`
	TechStack   datatypes.JSON `json:"tech_stack,omitempty"`
	GithubURL   string         `json:"github_url"   gorm:"type:varchar(512)"`
	DemoURL     string         `json:"demo_url"     gorm:"type:varchar(512)"`
	Link        string         `json:"link"         gorm:"type:varchar(512)"`
	SortOrder   int            `json:"sort_order"   gorm:"not null;default:0;index:idx_portfolio_projects,priority:2"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableName returns the database table name for Project.
func (Project) TableName() string { return "projects" }

// Education is a single education history entry.
type Education struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	PortfolioID string    `json:"portfolio_id" gorm:"type:char(36);not null;index"`
	School      string    `json:"school"       gorm:"type:varchar(255);not null"`
	Major       string    `json:"major"        gorm:"type:varchar(255)"`
	Degree      string    `json:"degree"       gorm:"type:varchar(100)"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for Education.
func (Education) TableName() string { return "educations" }

// Certificate is a single certification entry.
type Certificate struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	PortfolioID string    `json:"portfolio_id" gorm:"type:char(36);not null;index"`
	Name        string    `json:"name"         gorm:"type:varchar(255);not null"`
	Issuer      string    `json:"issuer"       gorm:"type:varchar(255)"`
	IssuedAt    time.Time `json:"issued_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for Certificate.
func (Certificate) TableName() string { return "certificates" }

// Troubleshoot documents one problem-solving experience attached to a
// portfolio: what went wrong, why, how it was fixed, and what was learned.
// A portfolio carries at most three entries (enforced at the repository layer).
type Troubleshoot struct {
	ID          string               `json:"id"           gorm:"type:char(36);primaryKey"`
	PortfolioID string               `json:"portfolio_id" gorm:"type:char(36);not null;index:idx_portfolio_ts"`
	Category    TroubleshootCategory `json:"category"     gorm:"type:varchar(16);not null;check:category IN ('CODE','BUG','PERFORMANCE','DEPLOY','SECURITY')"`
	Problem     string               `json:"problem"      gorm:"type:text;not null"`
	Cause       string               `json:"cause"        gorm:"type:text;not null"`
	Solution    string               `json:"solution"     gorm:"type:text;not null"`
	Lesson      string               `json:"lesson"       gorm:"type:text;not null"`
	CodeSnippet string               `json:"code_snippet,omitempty" gorm:"type:text"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	DeletedAt   gorm.DeletedAt       `json:"-"            gorm:"index"`

	// Portfolio is the owning document. Entries are cascade-deleted with it.
	Portfolio Portfolio `json:"-" gorm:"foreignKey:PortfolioID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Troubleshoot.
func (Troubleshoot) TableName() string { return "troubleshoots" }

// FeedbackCache stores one AI feedback result keyed by the content
// fingerprint of the prompt it was generated from. Concurrent writers for
// the same fingerprint resolve last-write-wins; reads treat expired rows as
// absent.
type FeedbackCache struct {
	Fingerprint string         `json:"fingerprint" gorm:"type:char(64);primaryKey"`
	Score       int            `json:"score"       gorm:"not null;default:0"`
	Feedback    string         `json:"feedback"    gorm:"type:text;not null"`
	Tips        datatypes.JSON `json:"tips,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	ExpiresAt   time.Time      `json:"expires_at"  gorm:"index"`
}

// TableName returns the database table name for FeedbackCache.
func (FeedbackCache) TableName() string { return "feedback_cache" }

// QuotaUsage tracks how many AI feedback calls a user has made on a given
// UTC calendar day. The counter is created on first use, incremented with a
// single atomic upsert, and reaped by expiry rather than explicit deletion.
type QuotaUsage struct {
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);primaryKey"`
	Day       string    `json:"day"        gorm:"type:char(10);primaryKey"`
	Count     int       `json:"count"      gorm:"not null;default:0"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
}

// TableName returns the database table name for QuotaUsage.
func (QuotaUsage) TableName() string { return "quota_usage" }
