package routes

import (
	"time"

	"fayano/handlers"
	"fayano/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// RegisterCatalogRoutes registers the public service catalog.
func RegisterCatalogRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	services := api.Group("/services")
	{
		services.GET("", hb.GetAvailableServices)
		services.GET("/:name", hb.GetServiceByName)
	}
}

// RegisterAIRoutes registers the assistant intake.
func RegisterAIRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	aiGroup := api.Group("/ai")
	{
		aiGroup.POST("/classify", hb.ClassifyHandler)
	}
}

// RegisterBookingRoutes sets up the booking wizard endpoints.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	bookingGroup := api.Group("/booking")
	{
		bookingGroup.GET("/payment/instructions", hb.PaymentInstructions)

		bookingGroup.POST("/session", hb.OpenSession)
		bookingGroup.GET("/session/:id", hb.GetSession)
		bookingGroup.PATCH("/session/:id", hb.EditField)
		bookingGroup.DELETE("/session/:id", hb.AbandonSession)
		bookingGroup.POST("/session/:id/next", hb.NextStep)
		bookingGroup.POST("/session/:id/back", hb.PreviousStep)
		bookingGroup.POST("/session/:id/location", hb.Locate)

		payment := bookingGroup.Group("/session/:id/payment")
		payment.PUT("/phone", hb.SetPaymentPhone)
		payment.POST("/prompt", hb.InitiatePrompt)
		payment.PUT("/manual", hb.SelectManualPayment)
		payment.PUT("/code", hb.SetTransactionCode)
		payment.POST("/confirm", hb.ConfirmPayment)
	}
	api.GET("/bookings", hb.ListBookings)
	api.GET("/bookings/:id", hb.GetBooking)
}

// RegisterLoyaltyRoutes registers the stamp card endpoint.
func RegisterLoyaltyRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/loyalty", hb.GetLoyalty)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, secureCookies bool) {
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.ClientIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.ClientIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)

	api := r.Group("/api")
	api.Use(middleware.ClientIdentityMiddleware(secureCookies))
	RegisterCatalogRoutes(api, hb)
	RegisterAIRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterLoyaltyRoutes(api, hb)
}
