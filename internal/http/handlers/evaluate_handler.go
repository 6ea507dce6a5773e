// Evaluation HTTP handlers.
//
// This file exposes the core endpoint of the service:
//   - POST /portfolios/{id}/evaluate
//
// The handler is deliberately thin: all scoring, quota gating, caching, and
// AI degradation policy live in the evaluation service. The only failures
// surfaced to the client are a missing portfolio (404) and an ownership
// mismatch (403); a successful response always carries the rule-based
// breakdown plus feedback text (AI-generated or canned).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Evaluate handles POST /portfolios/:id/evaluate.
func (h *Handlers) Evaluate(c *gin.Context) {
	resp, err := h.evalSvc.Evaluate(c.Request.Context(), c.Param("id"), userID(c))
	if err != nil {
		failPortfolio(c, err)
		return
	}
	ok(c, http.StatusOK, resp)
}
