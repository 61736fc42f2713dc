package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/chainpass/ticketing/internal/api/middleware"
)

// RouteConfig holds the middleware the routes are guarded with
type RouteConfig struct {
	Auth *middleware.Authenticator
	// PublicLimit bounds attendee facing routes
	PublicLimit gin.HandlerFunc
	// ScanLimit bounds check-in scans
	ScanLimit gin.HandlerFunc
}

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, cfg RouteConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	public := withDefault(cfg.PublicLimit)
	scan := withDefault(cfg.ScanLimit)
	organizer := middleware.Auth(cfg.Auth)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Event directory (public read access)
		v1.GET("/events", handler.ListEvents)
		v1.GET("/events/:eventId", handler.GetEvent)

		// Attendee endpoints (rate limited)
		v1.POST("/events/:eventId/registrations", public, handler.SubmitRegistration)
		v1.GET("/events/:eventId/registrations/latest", public, handler.GetLatestRequest)
		v1.GET("/events/:eventId/ticket", public, handler.GetTicket)

		// Verification keys (public read access)
		v1.GET("/tickets/public-keys", handler.GetPublicKeys)

		// Organizer endpoints (requires authentication)
		v1.GET("/events/:eventId/registrations", organizer, handler.ListRequests)
		v1.POST("/events/:eventId/reconcile", organizer, handler.Reconcile)
		v1.POST("/registrations/approve", organizer, handler.ApproveRequests)
		v1.POST("/registrations/reject", organizer, handler.RejectRequests)
		v1.PATCH("/registrations/:requestId/notes", organizer, handler.UpdateNotes)
		v1.POST("/tickets/sign", organizer, handler.SignTicket)
		v1.POST("/notifications/custom", organizer, handler.SendCustomEmail)

		// Check-in sessions (requires authentication)
		sessions := v1.Group("/events/:eventId/checkin/sessions", organizer)
		{
			sessions.POST("", handler.OpenCheckinSession)
			sessions.GET("/:sessionId", handler.GetCheckinSession)
			sessions.POST("/:sessionId/scan", scan, handler.ScanTicket)
			sessions.POST("/:sessionId/reset", handler.ResetCheckinSession)
			sessions.POST("/:sessionId/refresh", handler.RefreshCheckinSession)
			sessions.DELETE("/:sessionId", handler.CloseCheckinSession)
		}
	}
}

func withDefault(h gin.HandlerFunc) gin.HandlerFunc {
	if h == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return h
}
