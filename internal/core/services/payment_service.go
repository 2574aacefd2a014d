package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fortresspm/bookkeeping_backend/internal/apperrors"
	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	portsrepo "github.com/fortresspm/bookkeeping_backend/internal/core/ports/repositories"
	portssvc "github.com/fortresspm/bookkeeping_backend/internal/core/ports/services"
	"github.com/fortresspm/bookkeeping_backend/internal/dto"
	"github.com/fortresspm/bookkeeping_backend/internal/middleware"
)

// PaymentService settles installments. Settlement and the parent entry's
// status transition happen in one transaction; the installment row is locked
// for the duration so concurrent payments of the same installment serialize.
type PaymentService struct {
	entryRepo portsrepo.EntryRepositoryWithTx
	stateSvc  portssvc.EntryStateSvcFacade
	auditSvc  portssvc.AuditSvcFacade
	now       func() time.Time
}

var _ portssvc.PaymentSvcFacade = (*PaymentService)(nil)

// NewPaymentService creates a new PaymentService.
func NewPaymentService(entryRepo portsrepo.EntryRepositoryWithTx, stateSvc portssvc.EntryStateSvcFacade, auditSvc portssvc.AuditSvcFacade) *PaymentService {
	return &PaymentService{
		entryRepo: entryRepo,
		stateSvc:  stateSvc,
		auditSvc:  auditSvc,
		now:       time.Now,
	}
}

// PayInstallment marks the installment paid, applies the settlement charges
// and re-syncs the parent entry's status atomically.
//
// Preconditions run before the transaction opens so nothing is written for a
// doomed request; the paid check is repeated under the row lock because
// another payment may have landed in between.
func (s *PaymentService) PayInstallment(ctx context.Context, installmentID string, req dto.PayInstallmentRequest, payerUserID string) (*domain.Installment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	paymentDate, err := req.ParsedPaymentDate()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid payment date: %v", apperrors.ErrValidation, err)
	}

	installment, err := s.entryRepo.FindInstallmentByID(ctx, installmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find installment: %w", err)
	}
	if installment.Paid() {
		return nil, fmt.Errorf("%w: installment %s", apperrors.ErrAlreadySettled, installmentID)
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, installment.EntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find parent entry: %w", err)
	}
	if entry.Status == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrEntryCancelled, entry.EntryID)
	}

	tx, err := s.entryRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rbErr := s.entryRepo.Rollback(ctx, tx); rbErr != nil {
			logger.Error("failed to rollback payment transaction", "installmentID", installmentID, "error", rbErr)
		}
	}()

	locked, err := s.entryRepo.FindInstallmentForUpdate(ctx, tx, installmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock installment: %w", err)
	}
	if locked.Paid() {
		return nil, fmt.Errorf("%w: installment %s", apperrors.ErrAlreadySettled, installmentID)
	}

	locked.Status = domain.StatusPaid
	locked.PaymentDate = &paymentDate
	if req.Penalty != nil {
		locked.Penalty = domain.RoundAmount(*req.Penalty)
	}
	if req.Interest != nil {
		locked.Interest = domain.RoundAmount(*req.Interest)
	}
	if req.Discount != nil {
		locked.Discount = domain.RoundAmount(*req.Discount)
	}
	locked.LastUpdatedAt = s.now()
	locked.LastUpdatedBy = payerUserID

	if err := s.entryRepo.UpdateInstallmentInTx(ctx, tx, *locked); err != nil {
		return nil, fmt.Errorf("failed to update installment: %w", err)
	}

	// Re-read siblings inside the transaction so the status derivation sees
	// the settlement just written.
	installments, err := s.entryRepo.FindInstallmentsByEntryIDInTx(ctx, tx, entry.EntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload installments: %w", err)
	}
	entry.Installments = installments

	previousStatus := entry.Status
	newStatus, err := s.stateSvc.SyncInTx(ctx, tx, entry, previousStatus, payerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to sync entry status: %w", err)
	}

	if err := s.entryRepo.Commit(ctx, tx); err != nil {
		logger.Error("failed to commit payment transaction", "installmentID", installmentID, "error", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTransactionFailure, err)
	}

	s.auditSvc.InstallmentPaid(ctx, *locked, payerUserID)
	if newStatus != previousStatus {
		s.auditSvc.EntryStatusChanged(ctx, entry.EntryID, previousStatus, newStatus, payerUserID)
	}

	logger.Info("installment paid", "installmentID", installmentID, "entryID", entry.EntryID, "entryStatus", newStatus)
	return locked, nil
}
