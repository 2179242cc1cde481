package handlers

import (
	"errors"
	"net/http"

	recordsRepo "fayano/database/repository/records"
	"fayano/services/booking"
	"fayano/services/location"
	"fayano/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		ve *booking.ValidationError
		te *booking.TransitionError
	)
	switch {
	case errors.As(err, &ve):
		utils.JSONValidationError(c, ve.Message, ve.Fields)
	case errors.Is(err, location.ErrLocationUnavailable):
		utils.JSONValidationError(c, location.UnavailableNotice, []string{"address"})
	case errors.Is(err, location.ErrInvalidCoordinates):
		utils.JSONValidationError(c, "Coordinates are out of range.", []string{"latitude", "longitude"})
	case errors.Is(err, booking.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking session not found", err.Error())
	case errors.Is(err, recordsRepo.ErrRecordNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking not found", err.Error())
	case errors.Is(err, booking.ErrServiceNotFound):
		utils.JSONError(c, http.StatusNotFound, "Service not found", err.Error())
	case errors.Is(err, booking.ErrWizardClosed),
		errors.Is(err, booking.ErrPaymentInProgress),
		errors.Is(err, booking.ErrPaymentLocked),
		errors.Is(err, booking.ErrAlreadyPaid),
		errors.As(err, &te):
		utils.JSONError(c, http.StatusConflict, "Action not allowed right now", err.Error())
	default:
		getLogger(c).Error("Unexpected error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred. Please try again later.")
	}
}
