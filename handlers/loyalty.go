package handlers

import (
	"net/http"

	"fayano/middleware"
	"fayano/services/loyalty"

	"github.com/gin-gonic/gin"
)

type LoyaltyHandler struct {
	Tracker *loyalty.Tracker
}

func NewLoyaltyHandler(tracker *loyalty.Tracker) *LoyaltyHandler {
	return &LoyaltyHandler{Tracker: tracker}
}

// GetLoyalty handles GET /api/loyalty.
func (h *LoyaltyHandler) GetLoyalty(c *gin.Context) {
	summary, err := h.Tracker.Summary(c.Request.Context(), middleware.ClientID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
