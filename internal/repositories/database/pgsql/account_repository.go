package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fortresspm/bookkeeping_backend/internal/apperrors"
	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	portsrepo "github.com/fortresspm/bookkeeping_backend/internal/core/ports/repositories"
	"github.com/fortresspm/bookkeeping_backend/internal/models"
	"github.com/fortresspm/bookkeeping_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// NewPgxAccountRepository creates a new repository for financial account data.
func NewPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// FindAccountByID retrieves a financial account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error) {
	query := `
		SELECT account_id, name, opening_balance, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM financial_accounts
		WHERE account_id = $1;
	`
	var modelAcc models.FinancialAccount
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(
		&modelAcc.AccountID,
		&modelAcc.Name,
		&modelAcc.OpeningBalance,
		&modelAcc.IsActive,
		&modelAcc.CreatedAt,
		&modelAcc.CreatedBy,
		&modelAcc.LastUpdatedAt,
		&modelAcc.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("financial account %s not found", accountID))
		}
		return nil, fmt.Errorf("failed to find financial account %s: %w", accountID, err)
	}

	account := mapping.ToDomainFinancialAccount(modelAcc)
	return &account, nil
}

// UpdateOpeningBalance sets the account's opening balance.
func (r *PgxAccountRepository) UpdateOpeningBalance(ctx context.Context, accountID string, openingBalance decimal.Decimal, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE financial_accounts
		SET opening_balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, openingBalance, updatedAt, updatedByUserID)
	if err != nil {
		return fmt.Errorf("failed to update opening balance for account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("financial account %s not found", accountID))
	}
	return nil
}
