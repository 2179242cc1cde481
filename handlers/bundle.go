package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers for route registration.
type HandlerBundle struct {
	// Catalog endpoints
	GetAvailableServices gin.HandlerFunc
	GetServiceByName     gin.HandlerFunc

	// Assistant endpoints
	ClassifyHandler gin.HandlerFunc

	// Booking wizard endpoints
	OpenSession         gin.HandlerFunc
	GetSession          gin.HandlerFunc
	EditField           gin.HandlerFunc
	NextStep            gin.HandlerFunc
	PreviousStep        gin.HandlerFunc
	Locate              gin.HandlerFunc
	AbandonSession      gin.HandlerFunc
	SetPaymentPhone     gin.HandlerFunc
	InitiatePrompt      gin.HandlerFunc
	SelectManualPayment gin.HandlerFunc
	SetTransactionCode  gin.HandlerFunc
	ConfirmPayment      gin.HandlerFunc
	PaymentInstructions gin.HandlerFunc
	ListBookings        gin.HandlerFunc
	GetBooking          gin.HandlerFunc

	// Loyalty endpoints
	GetLoyalty gin.HandlerFunc

	Health gin.HandlerFunc
}

// NewHandlerBundle wires the handler methods into a bundle.
func NewHandlerBundle(bh *BookingHandler, aih *AIHandler, lh *LoyaltyHandler, health gin.HandlerFunc) *HandlerBundle {
	return &HandlerBundle{
		GetAvailableServices: bh.GetAvailableServices,
		GetServiceByName:     bh.GetServiceByName,

		ClassifyHandler: aih.Classify,

		OpenSession:         bh.OpenSession,
		GetSession:          bh.GetSession,
		EditField:           bh.EditField,
		NextStep:            bh.NextStep,
		PreviousStep:        bh.PreviousStep,
		Locate:              bh.Locate,
		AbandonSession:      bh.AbandonSession,
		SetPaymentPhone:     bh.SetPaymentPhone,
		InitiatePrompt:      bh.InitiatePrompt,
		SelectManualPayment: bh.SelectManualPayment,
		SetTransactionCode:  bh.SetTransactionCode,
		ConfirmPayment:      bh.ConfirmPayment,
		PaymentInstructions: bh.PaymentInstructions,
		ListBookings:        bh.ListBookings,
		GetBooking:          bh.GetBooking,

		GetLoyalty: lh.GetLoyalty,

		Health: health,
	}
}
