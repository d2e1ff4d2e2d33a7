package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	tenantRepo "detailify/database/repository/tenant"
	"detailify/handlers"
	"detailify/middleware"
	"detailify/utils"
)

// HandlerBundle aggregates the handlers and the dependency the auth
// middleware needs.
type HandlerBundle struct {
	TenantRepo tenantRepo.TenantRepository

	Auth         *handlers.AuthHandler
	Availability *handlers.AvailabilityHandler
	Booking      *handlers.BookingHandler
	Catalog      *handlers.CatalogHandler
	Client       *handlers.ClientHandler
	Assistant    *handlers.AssistantHandler
}

// RegisterPublicRoutes registers the unauthenticated booking-widget surface.
func RegisterPublicRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/public/:tenantID")
	{
		api.GET("/slots", hb.Availability.GetTimeSlotsHandler)
		api.POST("/check", hb.Availability.CheckConflictHandler)
		api.GET("/services", hb.Catalog.PublicListServicesHandler)
		api.POST("/bookings", hb.Booking.PublicCreateHandler)
		api.POST("/assistant/chat", hb.Assistant.ChatHandler)
		api.DELETE("/assistant/session/:sessionID", hb.Assistant.EndSessionHandler)
	}
}

// RegisterTenantRoutes registers tenant registration and login.
func RegisterTenantRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/tenants")
	{
		api.POST("/register", hb.Catalog.RegisterTenantHandler)
		api.POST("/login", hb.Auth.LoginHandler)
	}
}

// RegisterBookingRoutes registers the authenticated booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthTenantMiddleware(hb.TenantRepo))
		api.POST("", hb.Booking.CreateHandler)
		api.GET("", hb.Booking.ListHandler)
		api.GET("/:id", hb.Booking.GetHandler)
		api.PATCH("/:id/reschedule", hb.Booking.RescheduleHandler)
		api.PATCH("/:id/cancel", hb.Booking.CancelHandler)
		api.PATCH("/:id/complete", hb.Booking.CompleteHandler)
		api.POST("/:id/deposit-intent", hb.Booking.DepositIntentHandler)
	}
}

// RegisterCatalogRoutes registers profile, service, and hours management.
func RegisterCatalogRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/catalog")
	{
		api.Use(middleware.JWTAuthTenantMiddleware(hb.TenantRepo))
		api.GET("/tenant", hb.Catalog.GetTenantHandler)
		api.PATCH("/tenant", hb.Catalog.UpdateProfileHandler)
		api.GET("/services", hb.Catalog.ListServicesHandler)
		api.PUT("/services", hb.Catalog.UpsertServiceHandler)
		api.DELETE("/services/:name", hb.Catalog.DeleteServiceHandler)
		api.PUT("/hours", hb.Catalog.SetHoursHandler)
		api.POST("/closed-dates", hb.Catalog.AddClosedDateHandler)
		api.DELETE("/closed-dates/:date", hb.Catalog.RemoveClosedDateHandler)
	}
}

// RegisterClientRoutes registers the client-management endpoints.
func RegisterClientRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/clients")
	{
		api.Use(middleware.JWTAuthTenantMiddleware(hb.TenantRepo))
		api.POST("", hb.Client.CreateHandler)
		api.GET("", hb.Client.ListHandler)
		api.GET("/:id", hb.Client.GetHandler)
		api.PATCH("/:id", hb.Client.UpdateHandler)
		api.DELETE("/:id", hb.Client.DeleteHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterPublicRoutes(r, hb)
	RegisterTenantRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterClientRoutes(r, hb)
}
