package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devfolio/go-portfolio-backend/internal/config"
	"github.com/devfolio/go-portfolio-backend/internal/repo"
	"github.com/devfolio/go-portfolio-backend/internal/score"
	"github.com/devfolio/go-portfolio-backend/internal/services"
)

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:router_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testConfig() config.Config {
	return config.Config{
		APIBasePath: "/api/v1",
		RateRPS:     1000,
		RateBurst:   1000,
		CORS:        config.CORSConfig{AllowedOrigins: nil}, // triggers AllowAllOrigins branch
		Security:    config.SecurityConfig{EnableHSTS: false},
		OTEL:        config.OTELConfig{ServiceName: "test-svc"},
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newTestDB(t), nil, testConfig())
	return r
}

func TestRegisterRoutes_HealthMetricsAndFallbacks(t *testing.T) {
	r := newTestRouter(t)

	// Health
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("/health status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("ACAO = %q, want *", got)
	}

	// Metrics
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d", w.Code)
	}

	// Unknown route → envelope
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown route status = %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid 404 body: %v", err)
	}
	if body["code"] != "not_found" {
		t.Fatalf("404 code = %v", body["code"])
	}

	// Wrong method on a registered path → 405 envelope
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/health", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("405 status = %d", w.Code)
	}
}

func TestRegisterRoutes_EndToEndEvaluation(t *testing.T) {
	r := newTestRouter(t)

	// Create a portfolio as u1.
	createBody := `{
		"name": "Ada Lovelace",
		"email": "ada@example.com",
		"introduction": "Backend developer who enjoys debugging and performance work.",
		"github_display": true,
		"skills": [{"name": "Golang", "level": 5}, {"name": "PostgreSQL", "level": 4}],
		"projects": [{
			"name": "analyzer",
			"description": "A reporting service with queue-backed workers and a small public API.",
			"role": "Backend developer",
			"tech_stack": ["Golang", "Redis"],
			"github_url": "https://github.com/u/analyzer"
		}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolios", strings.NewReader(createBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "u1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil || created.ID == "" {
		t.Fatalf("create response unusable: %v %s", err, w.Body.String())
	}

	// Another user cannot evaluate it.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/portfolios/"+created.ID+"/evaluate", nil)
	req.Header.Set("X-User-ID", "intruder")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign evaluate status = %d, want 403", w.Code)
	}

	// The owner can; with no AI generator wired the canned feedback serves.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/portfolios/"+created.ID+"/evaluate", nil)
	req.Header.Set("X-User-ID", "u1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("evaluate status = %d, body %s", w.Code, w.Body.String())
	}
	var eval services.EvaluationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &eval); err != nil {
		t.Fatalf("decode evaluation: %v", err)
	}
	if eval.MaxScore != score.MaxTotal || eval.TotalScore <= 0 {
		t.Fatalf("evaluation = %+v", eval)
	}
	if eval.OverallFeedback == "" || len(eval.Tips) != 3 {
		t.Fatalf("feedback missing: %+v", eval)
	}

	// Quota reflects the consumed call.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/quota", nil)
	req.Header.Set("X-User-ID", "u1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("quota status = %d", w.Code)
	}
	var q struct {
		Limit     int `json:"limit"`
		Used      int `json:"used"`
		Remaining int `json:"remaining"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &q); err != nil {
		t.Fatalf("decode quota: %v", err)
	}
	if q.Used != 1 || q.Remaining != q.Limit-1 {
		t.Fatalf("quota = %+v, want one call consumed", q)
	}
}

func TestRegisterRoutes_CORSAllowlist(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := testConfig()
	cfg.CORS.AllowedOrigins = []string{"https://app.example.com"}
	RegisterRoutes(r, newTestDB(t), nil, cfg)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("ACAO = %q, want the allowed origin echoed", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got == "https://evil.example.com" {
		t.Fatal("disallowed origin must not be echoed")
	}
}
