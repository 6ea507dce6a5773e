// Quota HTTP handlers.
//
// This file exposes the read-only quota endpoint:
//   - GET /quota
//
// The endpoint never consumes quota; it reports the caller's daily AI
// feedback allowance so clients can disable the evaluate action client-side
// before the server would start serving canned fallbacks.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// QuotaResponse reports the caller's daily AI feedback allowance.
type QuotaResponse struct {
	Limit     int `json:"limit"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}

// GetQuota handles GET /quota.
func (h *Handlers) GetQuota(c *gin.Context) {
	uid := userID(c)
	ctx := c.Request.Context()
	ok(c, http.StatusOK, QuotaResponse{
		Limit:     h.quota.DailyLimit(),
		Used:      h.quota.Used(ctx, uid),
		Remaining: h.quota.Remaining(ctx, uid),
	})
}
