package handler

import (
	"net/http"

	"mepquote/internal/service"

	"github.com/labstack/echo/v4"
)

type QuotationHandler struct {
	quotationService service.QuotationService
	authHandler      *AuthHandler
	logger           echo.Logger
}

func NewQuotationHandler(quotationService service.QuotationService, authHandler *AuthHandler, logger echo.Logger) *QuotationHandler {
	return &QuotationHandler{
		quotationService: quotationService,
		authHandler:      authHandler,
		logger:           logger,
	}
}

// CreateQuotation opens a draft quotation for a stored request email
func (h *QuotationHandler) CreateQuotation(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	var req struct {
		MessageID string `json:"message_id"`
		Notes     string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}
	if req.MessageID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Message ID is required",
		})
	}

	quotation, err := h.quotationService.CreateFromEmail(c.Request().Context(), user.ID, req.MessageID, req.Notes)
	if err != nil {
		h.logger.Error("Failed to create quotation:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create quotation",
		})
	}

	return c.JSON(http.StatusCreated, quotation)
}

// GetQuotations retrieves all quotations for the authenticated user
func (h *QuotationHandler) GetQuotations(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	quotations, err := h.quotationService.GetQuotationsByUser(c.Request().Context(), user.ID)
	if err != nil {
		h.logger.Error("Failed to get quotations:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to get quotations",
		})
	}

	return c.JSON(http.StatusOK, quotations)
}

// GetQuotation retrieves one quotation by id
func (h *QuotationHandler) GetQuotation(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	quotation, err := h.quotationService.GetQuotation(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Quotation not found",
		})
	}

	return c.JSON(http.StatusOK, quotation)
}

// UpdateQuotationStatus moves a quotation through its lifecycle
func (h *QuotationHandler) UpdateQuotationStatus(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}
	if req.Status == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Status is required",
		})
	}

	quotation, err := h.quotationService.UpdateStatus(c.Request().Context(), user.ID, c.Param("id"), req.Status)
	if err != nil {
		h.logger.Error("Failed to update quotation:", err)
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, quotation)
}

// DeleteQuotation removes a quotation
func (h *QuotationHandler) DeleteQuotation(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	if err := h.quotationService.DeleteQuotation(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Quotation not found",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Quotation deleted",
	})
}
