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

// paymentRequestHandler handles HTTP requests related to payment requests.
type paymentRequestHandler struct {
	requestService portssvc.PaymentRequestSvcFacade
}

// newPaymentRequestHandler creates a new paymentRequestHandler.
func newPaymentRequestHandler(rs portssvc.PaymentRequestSvcFacade) *paymentRequestHandler {
	return &paymentRequestHandler{
		requestService: rs,
	}
}

// registerPaymentRequestRoutes registers routes related to payment requests.
func registerPaymentRequestRoutes(rg *gin.RouterGroup, requestService portssvc.PaymentRequestSvcFacade) {
	h := newPaymentRequestHandler(requestService)

	accountRequests := rg.Group("/accounts/:id/requests")
	{
		accountRequests.POST("/static", h.issueStatic)
		accountRequests.POST("/dynamic", h.issueDynamic)
		accountRequests.GET("", h.listRequests)
	}
	rg.GET("/requests/:id", h.getRequest)
}

// issueStatic godoc
// @Summary Issue a static payment request
// @Description Issues a reusable payment request bound to one of the account's aliases
// @Tags payment-requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   request body dto.CreateStaticRequestRequest true "Static request details"
// @Success 201 {object} dto.PaymentRequestResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Account or alias not found"
// @Failure 500 {object} map[string]string "Failed to issue payment request"
// @Router /accounts/{id}/requests/static [post]
func (h *paymentRequestHandler) issueStatic(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.CreateStaticRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueStatic", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	request, err := h.requestService.IssueStatic(c.Request.Context(), accountID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to issue static payment request", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue payment request"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentRequestResponse(request))
}

// issueDynamic godoc
// @Summary Issue a dynamic payment request
// @Description Issues a time-boxed payment request expiring after the given TTL
// @Tags payment-requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   request body dto.CreateDynamicRequestRequest true "Dynamic request details"
// @Success 201 {object} dto.PaymentRequestResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account has no active payment key"
// @Failure 500 {object} map[string]string "Failed to issue payment request"
// @Router /accounts/{id}/requests/dynamic [post]
func (h *paymentRequestHandler) issueDynamic(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.CreateDynamicRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueDynamic", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	request, err := h.requestService.IssueDynamic(c.Request.Context(), accountID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to issue dynamic payment request", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue payment request"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentRequestResponse(request))
}

// getRequest godoc
// @Summary Get a payment request by ID
// @Tags payment-requests
// @Produce  json
// @Param   id path string true "Payment request ID"
// @Success 200 {object} dto.PaymentRequestResponse
// @Failure 404 {object} map[string]string "Payment request not found"
// @Failure 500 {object} map[string]string "Failed to retrieve payment request"
// @Router /requests/{id} [get]
func (h *paymentRequestHandler) getRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	request, err := h.requestService.GetRequestByID(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment request not found"})
		} else {
			logger.Error("Failed to get payment request from service", slog.String("error", err.Error()), slog.String("request_id", requestID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payment request"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentRequestResponse(request))
}

// listRequests godoc
// @Summary List payment requests for an account
// @Tags payment-requests
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.ListPaymentRequestsResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list payment requests"
// @Router /accounts/{id}/requests [get]
func (h *paymentRequestHandler) listRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	requests, err := h.requestService.ListRequestsForAccount(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to list payment requests from service", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payment requests"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListPaymentRequestsResponse(requests))
}
