package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velopix/pix_backend/internal/apperrors"
	portssvc "github.com/velopix/pix_backend/internal/core/ports/services"
	"github.com/velopix/pix_backend/internal/dto"
	"github.com/velopix/pix_backend/internal/middleware"
)

// paymentKeyHandler handles HTTP requests related to payment keys.
type paymentKeyHandler struct {
	keyService portssvc.PaymentKeySvcFacade
}

// newPaymentKeyHandler creates a new paymentKeyHandler.
func newPaymentKeyHandler(ks portssvc.PaymentKeySvcFacade) *paymentKeyHandler {
	return &paymentKeyHandler{
		keyService: ks,
	}
}

// registerPaymentKeyRoutes registers routes related to payment keys.
func registerPaymentKeyRoutes(rg *gin.RouterGroup, keyService portssvc.PaymentKeySvcFacade) {
	h := newPaymentKeyHandler(keyService)

	accounts := rg.Group("/accounts/:id/keys")
	{
		accounts.POST("", h.registerKey)
		accounts.GET("", h.listKeys)
	}
	rg.DELETE("/keys/:keyID", h.revokeKey)
}

// registerKey godoc
// @Summary Register a payment key
// @Description Registers a new alias for an account; RANDOM keys get a generated token
// @Tags keys
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   key body dto.RegisterKeyRequest true "Key details"
// @Success 201 {object} dto.PaymentKeyResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Duplicate active key"
// @Failure 500 {object} map[string]string "Failed to register key"
// @Router /accounts/{id}/keys [post]
func (h *paymentKeyHandler) registerKey(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.RegisterKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterKey", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	key, err := h.keyService.RegisterKey(c.Request.Context(), accountID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to register key in service", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register key"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentKeyResponse(key))
}

// listKeys godoc
// @Summary List keys for an account
// @Description Retrieves all payment keys owned by an account, including revoked ones
// @Tags keys
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.ListPaymentKeysResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list keys"
// @Router /accounts/{id}/keys [get]
func (h *paymentKeyHandler) listKeys(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	keys, err := h.keyService.ListKeysForAccount(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to list keys from service", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list keys"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListPaymentKeysResponse(keys))
}

// revokeKey godoc
// @Summary Revoke a payment key
// @Description Soft-deletes a key, freeing its (type, value) pair for re-registration
// @Tags keys
// @Produce  json
// @Param   keyID path string true "Key ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Key not found"
// @Failure 500 {object} map[string]string "Failed to revoke key"
// @Router /keys/{keyID} [delete]
func (h *paymentKeyHandler) revokeKey(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	keyID := c.Param("keyID")

	if err := h.keyService.RevokeKey(c.Request.Context(), keyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Key not found"})
		} else {
			logger.Error("Failed to revoke key in service", slog.String("error", err.Error()), slog.String("key_id", keyID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke key"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
