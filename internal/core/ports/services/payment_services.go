package services

import (
	"context"

	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	"github.com/fortresspm/bookkeeping_backend/internal/dto"
)

// PaymentSvcFacade is the sole write path for settling installments.
type PaymentSvcFacade interface {
	// PayInstallment marks an installment paid and re-syncs the parent
	// entry's status in one atomic transaction. Fails with
	// apperrors.ErrAlreadySettled, apperrors.ErrEntryCancelled or
	// apperrors.ErrNotFound before any write happens.
	PayInstallment(ctx context.Context, installmentID string, req dto.PayInstallmentRequest, payerUserID string) (*domain.Installment, error)
}
