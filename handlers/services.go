package handlers

import (
	"net/http"

	"fayano/services/booking"

	"github.com/gin-gonic/gin"
)

// GetAvailableServices handles GET /api/services.
func (h *BookingHandler) GetAvailableServices(c *gin.Context) {
	c.JSON(http.StatusOK, booking.GetAvailableServices())
}

// GetServiceByName handles GET /api/services/:name.
func (h *BookingHandler) GetServiceByName(c *gin.Context) {
	entry, err := booking.GetServiceByName(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
