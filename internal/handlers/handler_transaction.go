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

// transactionHandler handles HTTP requests related to transfers and transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// registerTransactionRoutes registers routes related to transfers and transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.transfer)
		transfers.POST("/redeem", h.redeem)
	}
	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.POST("/:id/refund", h.refund)
	}
	rg.GET("/accounts/:id/transactions", h.listAccountTransactions)
}

// transferBody wraps the transfer request with the paying account.
type transferBody struct {
	SourceAccountID string `json:"sourceAccountID" binding:"required"`
	dto.TransferRequest
}

// redeemBody wraps the redeem request with the paying account.
type redeemBody struct {
	SourceAccountID string `json:"sourceAccountID" binding:"required"`
	dto.RedeemRequest
}

// transfer godoc
// @Summary Transfer money by alias
// @Description Resolves the alias and moves money atomically. Insufficient balance
// @Description is returned as a FAILED transaction, not as an error.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body transferBody true "Transfer details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Alias not found"
// @Failure 500 {object} map[string]string "Failed to process transfer"
// @Router /transfers [post]
func (h *transactionHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var body transferBody
	if err := c.ShouldBindJSON(&body); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.transactionService.Transfer(c.Request.Context(), body.SourceAccountID, body.TransferRequest)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to process transfer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process transfer"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// redeem godoc
// @Summary Redeem a payment request payload
// @Description Decodes the payload and pays the embedded request
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   redeem body redeemBody true "Redeem details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid or undecodable payload"
// @Failure 404 {object} map[string]string "Alias in payload not found"
// @Failure 410 {object} map[string]string "Payment request expired"
// @Failure 500 {object} map[string]string "Failed to redeem payment request"
// @Router /transfers/redeem [post]
func (h *transactionHandler) redeem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var body redeemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		logger.Warn("Failed to bind JSON for Redeem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.transactionService.RedeemPaymentRequest(c.Request.Context(), body.SourceAccountID, body.Payload)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrExpired):
			c.JSON(http.StatusGone, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to redeem payment request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem payment request"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// refund godoc
// @Summary Refund a completed transaction
// @Description Creates and applies the inverse of a COMPLETED transaction
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Original transaction ID"
// @Param   refund body dto.RefundRequest true "Refund details"
// @Success 201 {object} dto.RefundResponse
// @Failure 404 {object} map[string]string "Original transaction not found"
// @Failure 409 {object} map[string]string "Original transaction not COMPLETED"
// @Failure 500 {object} map[string]string "Failed to process refund"
// @Router /transactions/{id}/refund [post]
func (h *transactionHandler) refund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Refund", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	refund, original, err := h.transactionService.Refund(c.Request.Context(), transactionID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, apperrors.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to process refund", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process refund"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.RefundResponse{
		Refund:   dto.ToTransactionResponse(refund),
		Original: dto.ToTransactionResponse(original),
	})
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			logger.Error("Failed to get transaction from service", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List all transactions
// @Description Retrieves all transactions, newest first
// @Tags transactions
// @Produce  json
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	txns, err := h.transactionService.ListTransactions(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list transactions from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns))
}

// listAccountTransactions godoc
// @Summary List transactions for an account
// @Description Retrieves transactions where the account is source or destination, newest first
// @Tags transactions
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /accounts/{id}/transactions [get]
func (h *transactionHandler) listAccountTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	txns, err := h.transactionService.ListTransactionsForAccount(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to list account transactions from service", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns))
}
