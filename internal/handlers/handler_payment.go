package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fortresspm/bookkeeping_backend/internal/apperrors"
	portssvc "github.com/fortresspm/bookkeeping_backend/internal/core/ports/services"
	"github.com/fortresspm/bookkeeping_backend/internal/dto"
	"github.com/fortresspm/bookkeeping_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests related to installment payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(paymentService portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{
		paymentService: paymentService,
	}
}

// payInstallment settles one installment and re-syncs the parent entry.
func (h *paymentHandler) payInstallment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	installmentID := c.Param("installmentID")

	payReq := dto.PayInstallmentRequest{}
	if err := c.ShouldBindJSON(&payReq); err != nil {
		logger.Error("Failed to bind JSON for PayInstallment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	payerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Payer user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	installment, err := h.paymentService.PayInstallment(c.Request.Context(), installmentID, payReq, payerUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Installment not found", slog.String("installment_id", installmentID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Installment not found"})
		case errors.Is(err, apperrors.ErrAlreadySettled):
			logger.Warn("Installment already settled", slog.String("installment_id", installmentID))
			c.JSON(http.StatusConflict, gin.H{"error": "Installment is already settled"})
		case errors.Is(err, apperrors.ErrEntryCancelled):
			logger.Warn("Parent entry is cancelled", slog.String("installment_id", installmentID))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Journal entry is cancelled"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error paying installment", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to pay installment", slog.String("error", err.Error()), slog.String("installment_id", installmentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to pay installment"})
		}
		return
	}

	logger.Info("Installment paid successfully", slog.String("installment_id", installmentID))
	c.JSON(http.StatusOK, dto.ToInstallmentResponse(*installment))
}

// registerPaymentRoutes registers installment payment routes.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	installments := rg.Group("/installments")
	{
		installments.POST("/:installmentID/pay", h.payInstallment)
	}
}
