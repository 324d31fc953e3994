package router

import (
	"net/http"

	"mepquote/internal/handler"
	"mepquote/internal/middleware"

	"github.com/labstack/echo/v4"
)

func SetupRoutes(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	emailHandler *handler.EmailHandler,
	quotationHandler *handler.QuotationHandler,
) {
	// Public routes
	e.GET("/auth/:provider", authHandler.BeginAuthHandler)
	e.GET("/auth/:provider/callback", authHandler.CallbackHandler)
	e.GET("/auth/logout", authHandler.LogoutHandler)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	// Protected API routes
	protected := e.Group("/api")
	protected.Use(middleware.AuthMiddleware(authHandler))

	// Email discovery routes
	protected.POST("/emails/discover", emailHandler.DiscoverEmails)
	protected.GET("/emails", emailHandler.GetEmailsByUser)
	protected.GET("/emails/:id", emailHandler.GetEmail)
	protected.DELETE("/emails/:id", emailHandler.DeleteEmail)

	// Quotation routes
	protected.POST("/quotations", quotationHandler.CreateQuotation)
	protected.GET("/quotations", quotationHandler.GetQuotations)
	protected.GET("/quotations/:id", quotationHandler.GetQuotation)
	protected.PUT("/quotations/:id", quotationHandler.UpdateQuotationStatus)
	protected.DELETE("/quotations/:id", quotationHandler.DeleteQuotation)

	// Real-time discovery progress via Server-Sent Events
	protected.GET("/sse", emailHandler.SSEUpdates)
}
