package handlers

import (
	"net/http"

	recordsRepo "fayano/database/repository/records"
	"fayano/middleware"
	"fayano/models"
	"fayano/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking wizard over HTTP.
type BookingHandler struct {
	Wizard  *booking.WizardService
	Records booking.RecordRepository
	Logger  *zap.Logger
}

func NewBookingHandler(wizard *booking.WizardService, records booking.RecordRepository, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Wizard: wizard, Records: records, Logger: logger}
}

func (h *BookingHandler) respondState(c *gin.Context, status int, state models.WizardState, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, models.NewWizardView(state))
}

// OpenSession handles POST /api/booking/session.
func (h *BookingHandler) OpenSession(c *gin.Context) {
	var req models.OpenWizardRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
			return
		}
	}
	state, err := h.Wizard.Open(c.Request.Context(), middleware.ClientID(c), req)
	h.respondState(c, http.StatusCreated, state, err)
}

// GetSession handles GET /api/booking/session/:id.
func (h *BookingHandler) GetSession(c *gin.Context) {
	state, err := h.Wizard.Get(c.Request.Context(), middleware.ClientID(c), c.Param("id"))
	h.respondState(c, http.StatusOK, state, err)
}

// EditField handles PATCH /api/booking/session/:id.
func (h *BookingHandler) EditField(c *gin.Context) {
	var req models.FieldEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}
	state, err := h.Wizard.Edit(c.Request.Context(), middleware.ClientID(c), c.Param("id"), req.Field, req.Value)
	h.respondState(c, http.StatusOK, state, err)
}

// NextStep handles POST /api/booking/session/:id/next.
func (h *BookingHandler) NextStep(c *gin.Context) {
	state, err := h.Wizard.Next(c.Request.Context(), middleware.ClientID(c), c.Param("id"))
	h.respondState(c, http.StatusOK, state, err)
}

// PreviousStep handles POST /api/booking/session/:id/back.
func (h *BookingHandler) PreviousStep(c *gin.Context) {
	state, err := h.Wizard.Back(c.Request.Context(), middleware.ClientID(c), c.Param("id"))
	h.respondState(c, http.StatusOK, state, err)
}

// Locate handles POST /api/booking/session/:id/location.
func (h *BookingHandler) Locate(c *gin.Context) {
	var req models.LocationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
			return
		}
	}
	state, err := h.Wizard.Locate(c.Request.Context(), middleware.ClientID(c), c.Param("id"), req, middleware.GetClientIP(c))
	h.respondState(c, http.StatusOK, state, err)
}

// AbandonSession handles DELETE /api/booking/session/:id.
func (h *BookingHandler) AbandonSession(c *gin.Context) {
	if err := h.Wizard.Abandon(c.Request.Context(), middleware.ClientID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListBookings handles GET /api/bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	if h.Records == nil {
		c.JSON(http.StatusOK, []models.BookingRecord{})
		return
	}
	records, err := h.Records.ListByClient(c.Request.Context(), middleware.ClientID(c), 0)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetBooking handles GET /api/bookings/:id. Records of other clients are reported as missing.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	if h.Records == nil {
		respondError(c, recordsRepo.ErrRecordNotFound)
		return
	}
	rec, err := h.Records.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if rec.ClientID != middleware.ClientID(c) {
		respondError(c, recordsRepo.ErrRecordNotFound)
		return
	}
	c.JSON(http.StatusOK, rec)
}
