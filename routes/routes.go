package routes

import (
	"github.com/gin-gonic/gin"

	"vehicle-rental/internal/handlers"
	"vehicle-rental/internal/middleware"
	"vehicle-rental/internal/utils"
	"vehicle-rental/pkg/websocket"
)

// Handlers groups everything the router mounts. WebSocket may be nil.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Vehicle   *handlers.VehicleHandler
	Booking   *handlers.BookingHandler
	Wallet    *handlers.WalletHandler
	Review    *handlers.ReviewHandler
	Dashboard *handlers.DashboardHandler
	Health    *handlers.HealthHandler
	WebSocket *websocket.Handler
}

// Setup mounts /health and the /api/v1 routes.
func Setup(router *gin.Engine, h *Handlers, tokens middleware.TokenValidator) {
	router.NoRoute(func(c *gin.Context) {
		utils.NotFoundResponse(c, "Route")
	})
	router.GET("/health", h.Health.Health)

	v1 := router.Group("/api/v1")
	auth := middleware.AuthRequired(tokens)

	// Public routes
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", h.Auth.Register)
		authRoutes.POST("/login", h.Auth.Login)
		authRoutes.POST("/refresh", h.Auth.RefreshToken)
		authRoutes.POST("/logout", auth, h.Auth.Logout)
	}

	user := v1.Group("/user", auth)
	{
		user.GET("", h.Auth.Me)
		user.PATCH("", h.Auth.UpdateProfile)
		user.POST("/password", h.Auth.ChangePassword)
	}

	vehicles := v1.Group("/vehicles", auth)
	{
		vehicles.POST("", middleware.ProviderRequired(), h.Vehicle.Create)
		vehicles.POST("/images", middleware.ProviderRequired(), h.Vehicle.UploadImage)
		vehicles.GET("/provider", middleware.ProviderRequired(), h.Vehicle.ListMine)
		vehicles.GET("/city/:city", h.Vehicle.ListByCity)
		vehicles.GET("/:id", h.Vehicle.GetByID)
		vehicles.PATCH("/:id", middleware.ProviderRequired(), h.Vehicle.Update)
		vehicles.GET("/:id/reviews", h.Review.ListForVehicle)
	}

	bookings := v1.Group("/bookings", auth)
	{
		bookings.POST("", middleware.CustomerRequired(), h.Booking.Create)
		bookings.GET("/user", h.Booking.ListForUser)
		bookings.GET("/:id", h.Booking.GetByID)
		bookings.PATCH("/:id/status", h.Booking.UpdateStatus)
	}

	wallet := v1.Group("/wallet", auth)
	{
		wallet.POST("/create-payment-intent", h.Wallet.CreatePaymentIntent)
		wallet.POST("/topup", h.Wallet.TopUp)
		wallet.GET("/balance", h.Wallet.Balance)
		wallet.GET("/transactions", h.Wallet.Transactions)
	}

	reviews := v1.Group("/reviews", auth)
	{
		reviews.POST("", h.Review.Create)
		reviews.GET("/vehicle/:vehicleId", h.Review.ListForVehicle)
	}

	v1.GET("/dashboard/stats", auth, h.Dashboard.Stats)

	if h.WebSocket != nil {
		v1.GET("/ws", auth, h.WebSocket.HandleWebSocket)
	}
}
