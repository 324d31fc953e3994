package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"mepquote/internal/discovery"
	"mepquote/internal/service"
	"mepquote/internal/sse"

	"github.com/labstack/echo/v4"
)

type EmailHandler struct {
	discoveryService service.DiscoveryService
	authHandler      *AuthHandler
	sseManager       *sse.Manager
	logger           echo.Logger

	maxDiscoverResults int
}

func NewEmailHandler(discoveryService service.DiscoveryService, authHandler *AuthHandler, sseManager *sse.Manager, maxDiscoverResults int, logger echo.Logger) *EmailHandler {
	return &EmailHandler{
		discoveryService:   discoveryService,
		authHandler:        authHandler,
		sseManager:         sseManager,
		logger:             logger,
		maxDiscoverResults: maxDiscoverResults,
	}
}

// DiscoverEmails runs the discovery pipeline for the authenticated user and
// stores newly accepted request emails.
func (h *EmailHandler) DiscoverEmails(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	maxResults := h.maxDiscoverResults
	if raw := c.QueryParam("max_results"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			maxResults = parsed
		}
	}

	stored, err := h.discoveryService.DiscoverEmails(c.Request().Context(), user.ID, maxResults)
	if err != nil {
		h.logger.Error("Failed to discover emails:", err)
		return c.JSON(discoveryErrorStatus(err), map[string]string{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Discovered %d new request emails", len(stored)),
		"stored":  len(stored),
		"emails":  stored,
	})
}

// discoveryErrorStatus maps typed pipeline errors back to HTTP statuses.
func discoveryErrorStatus(err error) int {
	switch {
	case errors.Is(err, discovery.ErrAuthExpired):
		return http.StatusUnauthorized
	case errors.Is(err, discovery.ErrQuotaExceeded):
		return http.StatusForbidden
	case errors.Is(err, discovery.ErrRateLimited):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// GetEmailsByUser retrieves all stored emails for the authenticated user
func (h *EmailHandler) GetEmailsByUser(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	emails, err := h.discoveryService.GetEmailsByUser(c.Request().Context(), user.ID)
	if err != nil {
		h.logger.Error("Failed to get emails:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to get emails",
		})
	}

	return c.JSON(http.StatusOK, emails)
}

// GetEmail retrieves one stored email by provider message id
func (h *EmailHandler) GetEmail(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	email, err := h.discoveryService.GetEmail(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Email not found",
		})
	}

	return c.JSON(http.StatusOK, email)
}

// DeleteEmail removes one stored email
func (h *EmailHandler) DeleteEmail(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	if err := h.discoveryService.DeleteEmail(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Email not found",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Email deleted",
	})
}

// SSEUpdates streams discovery progress events to the dashboard
func (h *EmailHandler) SSEUpdates(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	channel := h.sseManager.AddClient(user.ID)
	defer h.sseManager.RemoveClient(user.ID, channel)

	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case data, ok := <-channel:
			if !ok {
				return nil
			}
			fmt.Fprintf(c.Response(), "data: %s\n\n", data)
			c.Response().Flush()
		}
	}
}
