// Portfolio HTTP handlers.
//
// This file exposes REST endpoints for portfolio resources:
//   - POST   /portfolios                          (create)
//   - GET    /portfolios/{id}                     (fetch with children)
//   - POST   /portfolios/{id}/troubleshoots       (append entry, capped)
//   - GET    /portfolios/{id}/troubleshoots       (list entries)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/devfolio/go-portfolio-backend/internal/domain"
	"github.com/devfolio/go-portfolio-backend/internal/repo"
	"github.com/devfolio/go-portfolio-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// PortfolioService defines portfolio lifecycle operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type PortfolioService interface {
	// Create persists a new portfolio aggregate owned by userID.
	Create(ctx context.Context, userID string, p *domain.Portfolio) (*domain.Portfolio, error)
	// Get fetches a portfolio (children preloaded) if it belongs to userID.
	Get(ctx context.Context, userID, id string) (*domain.Portfolio, error)
	// AddTroubleshoot appends a troubleshooting entry to the caller's portfolio.
	AddTroubleshoot(ctx context.Context, userID, portfolioID string, ts *domain.Troubleshoot) (*domain.Troubleshoot, error)
	// ListTroubleshoots returns the caller's entries in creation order.
	ListTroubleshoots(ctx context.Context, userID, portfolioID string) ([]domain.Troubleshoot, error)
}

// EvaluationService defines the evaluation operation consumed by HTTP
// handlers.
type EvaluationService interface {
	// Evaluate scores the portfolio and attaches AI (or fallback) feedback.
	Evaluate(ctx context.Context, portfolioID, requesterID string) (*services.EvaluationResponse, error)
}

// QuotaReader reports the caller's daily AI feedback allowance without
// consuming it.
type QuotaReader interface {
	DailyLimit() int
	Used(ctx context.Context, userID string) int
	Remaining(ctx context.Context, userID string) int
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for portfolios, evaluations, and quota.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	portfolioSvc PortfolioService
	evalSvc      EvaluationService
	quota        QuotaReader
}

// New constructs and returns a Handlers instance bound to the given services.
func New(portfolioSvc PortfolioService, evalSvc EvaluationService, quota QuotaReader) *Handlers {
	return &Handlers{portfolioSvc: portfolioSvc, evalSvc: evalSvc, quota: quota}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

//
// DTOs
//

// SkillInput is one skill row in a create payload.
type SkillInput struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Level int    `json:"level" binding:"min=0,max=5"`
}

// ProjectInput is one project row in a create payload.
type ProjectInput struct {
	Name        string   `json:"name" binding:"required,min=1,max=255"`
	Description string   `json:"description"`
	Role        string   `json:"role"`
	TechStack   []string `json:"tech_stack"`
	GithubURL   string   `json:"github_url"`
	DemoURL     string   `json:"demo_url"`
	Link        string   `json:"link"`
}

// EducationInput is one education row in a create payload.
type EducationInput struct {
	School string `json:"school" binding:"required,min=1,max=255"`
	Major  string `json:"major"`
	Degree string `json:"degree"`
}

// CertificateInput is one certificate row in a create payload.
type CertificateInput struct {
	Name   string `json:"name" binding:"required,min=1,max=255"`
	Issuer string `json:"issuer"`
}

// CreatePortfolioRequest is the JSON payload for creating a portfolio.
type CreatePortfolioRequest struct {
	Name          string             `json:"name" binding:"required,min=1,max=100"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone"`
	Introduction  string             `json:"introduction"`
	GithubDisplay bool               `json:"github_display"`
	ContribGraph  json.RawMessage    `json:"contrib_graph"`
	Skills        []SkillInput       `json:"skills"`
	Projects      []ProjectInput     `json:"projects"`
	Educations    []EducationInput   `json:"educations"`
	Certificates  []CertificateInput `json:"certificates"`
}

// CreateTroubleshootRequest is the JSON payload for adding a troubleshooting
// entry.
type CreateTroubleshootRequest struct {
	Category    string `json:"category" binding:"required"`
	Problem     string `json:"problem" binding:"required"`
	Cause       string `json:"cause" binding:"required"`
	Solution    string `json:"solution" binding:"required"`
	Lesson      string `json:"lesson" binding:"required"`
	CodeSnippet string `json:"code_snippet"`
}

// toDomain maps the request body onto the persistence aggregate. Tech stacks
// are stored as JSON arrays; list order becomes sort order.
func (r CreatePortfolioRequest) toDomain() *domain.Portfolio {
	p := &domain.Portfolio{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		Introduction:  r.Introduction,
		GithubDisplay: r.GithubDisplay,
		ContribGraph:  datatypes.JSON(r.ContribGraph),
	}
	for i, s := range r.Skills {
		p.Skills = append(p.Skills, domain.Skill{Name: s.Name, Level: s.Level, SortOrder: i})
	}
	for i, pr := range r.Projects {
		var stack datatypes.JSON
		if len(pr.TechStack) > 0 {
			b, _ := json.Marshal(pr.TechStack)
			stack = datatypes.JSON(b)
		}
		p.Projects = append(p.Projects, domain.Project{
			Name:        pr.Name,
			Description: pr.Description,
			Role:        pr.Role,
			TechStack:   stack,
			GithubURL:   pr.GithubURL,
			DemoURL:     pr.DemoURL,
			Link:        pr.Link,
			SortOrder:   i,
		})
	}
	for _, e := range r.Educations {
		p.Educations = append(p.Educations, domain.Education{School: e.School, Major: e.Major, Degree: e.Degree})
	}
	for _, c := range r.Certificates {
		p.Certificates = append(p.Certificates, domain.Certificate{Name: c.Name, Issuer: c.Issuer})
	}
	return p
}

//
// Handlers
//

// CreatePortfolio handles POST /portfolios.
//
// It validates the payload, persists the aggregate for the current user, and
// returns the stored resource with generated identifiers.
func (h *Handlers) CreatePortfolio(c *gin.Context) {
	var req CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	p, err := h.portfolioSvc.Create(c.Request.Context(), userID(c), req.toDomain())
	if err != nil {
		if errors.Is(err, services.ErrInvalidPortfolio) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, p)
}

// GetPortfolio handles GET /portfolios/:id.
func (h *Handlers) GetPortfolio(c *gin.Context) {
	p, err := h.portfolioSvc.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		failPortfolio(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// CreateTroubleshoot handles POST /portfolios/:id/troubleshoots.
//
// A portfolio carries at most three entries; attempts beyond the cap return
// 409 with the troubleshoot_limit code.
func (h *Handlers) CreateTroubleshoot(c *gin.Context) {
	var req CreateTroubleshootRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	category, err := domain.ParseTroubleshootCategory(req.Category)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	ts := &domain.Troubleshoot{
		Category:    category,
		Problem:     req.Problem,
		Cause:       req.Cause,
		Solution:    req.Solution,
		Lesson:      req.Lesson,
		CodeSnippet: req.CodeSnippet,
	}
	created, err := h.portfolioSvc.AddTroubleshoot(c.Request.Context(), userID(c), c.Param("id"), ts)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrTroubleshootLimit):
			fail(c, http.StatusConflict, ErrCodeTroubleshootLimit, err.Error())
		case errors.Is(err, repo.ErrInvalidCategory):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			failPortfolio(c, err)
		}
		return
	}
	ok(c, http.StatusCreated, created)
}

// ListTroubleshoots handles GET /portfolios/:id/troubleshoots.
func (h *Handlers) ListTroubleshoots(c *gin.Context) {
	entries, err := h.portfolioSvc.ListTroubleshoots(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		failPortfolio(c, err)
		return
	}
	ok(c, http.StatusOK, entries)
}

// failPortfolio maps the shared existence/ownership errors, falling back to a
// 500 for anything unexpected.
func failPortfolio(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPortfolioNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "portfolio not found")
	case errors.Is(err, services.ErrNotOwner):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "portfolio belongs to another user")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
