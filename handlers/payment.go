package handlers

import (
	"net/http"

	"fayano/middleware"
	"fayano/models"

	"github.com/gin-gonic/gin"
)

// SetPaymentPhone handles PUT /api/booking/session/:id/payment/phone.
func (h *BookingHandler) SetPaymentPhone(c *gin.Context) {
	var body struct {
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}
	state, err := h.Wizard.SetPaymentPhone(c.Request.Context(), middleware.ClientID(c), c.Param("id"), body.Phone)
	h.respondState(c, http.StatusOK, state, err)
}

// InitiatePrompt handles POST /api/booking/session/:id/payment/prompt.
func (h *BookingHandler) InitiatePrompt(c *gin.Context) {
	state, err := h.Wizard.InitiatePrompt(c.Request.Context(), middleware.ClientID(c), c.Param("id"))
	h.respondState(c, http.StatusAccepted, state, err)
}

// SelectManualPayment handles PUT /api/booking/session/:id/payment/manual.
func (h *BookingHandler) SelectManualPayment(c *gin.Context) {
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}
	state, err := h.Wizard.SelectManual(c.Request.Context(), middleware.ClientID(c), c.Param("id"), body.Enabled)
	h.respondState(c, http.StatusOK, state, err)
}

// SetTransactionCode handles PUT /api/booking/session/:id/payment/code.
func (h *BookingHandler) SetTransactionCode(c *gin.Context) {
	var body struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}
	state, err := h.Wizard.SetTransactionCode(c.Request.Context(), middleware.ClientID(c), c.Param("id"), body.Code)
	h.respondState(c, http.StatusOK, state, err)
}

// ConfirmPayment handles POST /api/booking/session/:id/payment/confirm.
// The booking is submitted in the background; poll the session for the result.
func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	state, err := h.Wizard.Confirm(c.Request.Context(), middleware.ClientID(c), c.Param("id"))
	h.respondState(c, http.StatusAccepted, state, err)
}

// PaymentInstructions handles GET /api/booking/payment/instructions.
func (h *BookingHandler) PaymentInstructions(c *gin.Context) {
	c.JSON(http.StatusOK, models.DefaultManualPaymentInstructions())
}
