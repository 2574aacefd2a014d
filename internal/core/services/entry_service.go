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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryService creates and reads journal entries and their installment
// schedules.
type EntryService struct {
	entryRepo portsrepo.EntryRepositoryFacade
	now       func() time.Time
}

var _ portssvc.EntrySvcFacade = (*EntryService)(nil)

// NewEntryService creates a new EntryService.
func NewEntryService(entryRepo portsrepo.EntryRepositoryFacade) *EntryService {
	return &EntryService{
		entryRepo: entryRepo,
		now:       time.Now,
	}
}

// GetEntryByID retrieves an entry with installments and related records.
func (s *EntryService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry: %w", err)
	}
	return entry, nil
}

// CreateEntry persists a new journal entry with a generated installment
// schedule. The total splits evenly across installments at cent precision;
// the last installment absorbs the remainder so the parts always sum back to
// the entry amount. Due dates advance month by month from the entry due date.
func (s *EntryService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entryType, ok := domain.ParseEntryType(req.Type)
	if !ok {
		return nil, fmt.Errorf("%w: unknown entry type %q", apperrors.ErrValidation, req.Type)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}

	movementDate, err := time.Parse("2006-01-02", req.MovementDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid movement date: %v", apperrors.ErrValidation, err)
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due date: %v", apperrors.ErrValidation, err)
	}
	movementDate = domain.DateOnly(movementDate)
	dueDate = domain.DateOnly(dueDate)

	count := req.InstallmentCount
	if count < 1 {
		count = 1
	}

	now := s.now()
	status := domain.StatusPending
	if movementDate.After(domain.DateOnly(now)) {
		status = domain.StatusPlanned
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	entry := domain.JournalEntry{
		EntryID:          uuid.NewString(),
		Type:             entryType,
		Status:           status,
		Amount:           domain.RoundAmount(req.Amount),
		MovementDate:     movementDate,
		DueDate:          dueDate,
		Description:      req.Description,
		Notes:            req.Notes,
		ReferenceCode:    req.ReferenceCode,
		BankAccountID:    req.BankAccountID,
		CounterAccountID: req.CounterAccountID,
		AuditFields:      audit,
	}
	if req.CostCenterID != nil {
		entry.CostCenter = &domain.CostCenter{CostCenterID: *req.CostCenterID}
	}
	if req.PersonID != nil {
		entry.Person = &domain.Person{PersonID: *req.PersonID}
	}
	if req.PropertyID != nil {
		entry.Property = &domain.Property{PropertyID: *req.PropertyID}
	}

	installments := buildInstallmentSchedule(entry, count, req.PropertyLabel, audit)
	entry.Installments = installments

	if err := s.entryRepo.SaveEntry(ctx, entry, installments); err != nil {
		logger.Error("failed to save entry", "entryID", entry.EntryID, "error", err)
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("journal entry created", "entryID", entry.EntryID, "type", entryType, "installments", len(installments))
	return &entry, nil
}

// AddInstallment appends one open installment to an existing entry.
func (s *EntryService) AddInstallment(ctx context.Context, entryID string, req dto.AddInstallmentRequest, creatorUserID string) (*domain.Installment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry: %w", err)
	}
	if entry.Status == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrEntryCancelled, entryID)
	}

	dueDate, err := req.ParsedDueDate()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due date: %v", apperrors.ErrValidation, err)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}

	now := s.now()
	installment := domain.Installment{
		InstallmentID: uuid.NewString(),
		EntryID:       entryID,
		DueDate:       dueDate,
		Status:        domain.StatusPending,
		Amount:        domain.RoundAmount(req.Amount),
		Penalty:       decimal.Zero,
		Interest:      decimal.Zero,
		Discount:      decimal.Zero,
		Meta:          req.Meta,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.entryRepo.SaveInstallment(ctx, installment); err != nil {
		logger.Error("failed to save installment", "entryID", entryID, "error", err)
		return nil, fmt.Errorf("failed to save installment: %w", err)
	}

	logger.Info("installment added", "entryID", entryID, "installmentID", installment.InstallmentID)
	return &installment, nil
}

// buildInstallmentSchedule splits the entry amount over count monthly
// installments. Each part is the rounded even share except the last, which
// takes whatever keeps the sum exact.
func buildInstallmentSchedule(entry domain.JournalEntry, count int, propertyLabel *string, audit domain.AuditFields) []domain.Installment {
	share := domain.RoundAmount(entry.Amount.Div(decimal.NewFromInt(int64(count))))

	installments := make([]domain.Installment, count)
	allocated := decimal.Zero
	for i := 0; i < count; i++ {
		amount := share
		if i == count-1 {
			amount = entry.Amount.Sub(allocated)
		}
		allocated = allocated.Add(amount)

		installments[i] = domain.Installment{
			InstallmentID: uuid.NewString(),
			EntryID:       entry.EntryID,
			DueDate:       entry.DueDate.AddDate(0, i, 0),
			Status:        domain.StatusPending,
			Amount:        amount,
			Penalty:       decimal.Zero,
			Interest:      decimal.Zero,
			Discount:      decimal.Zero,
			AuditFields:   audit,
		}
		if propertyLabel != nil && *propertyLabel != "" {
			installments[i].Meta = map[string]string{domain.MetaKeyPropertyLabel: *propertyLabel}
		}
	}
	return installments
}
