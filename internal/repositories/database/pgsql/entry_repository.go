package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fortresspm/bookkeeping_backend/internal/apperrors"
	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	portsrepo "github.com/fortresspm/bookkeeping_backend/internal/core/ports/repositories"
	"github.com/fortresspm/bookkeeping_backend/internal/models"
	"github.com/fortresspm/bookkeeping_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// entrySelectColumns is the join projection shared by every entry read. The
// related cost-center, person and property columns come back NULL when the
// entry carries no reference.
const entrySelectColumns = `
	SELECT e.entry_id, e.type, e.status, e.amount, e.movement_date, e.due_date,
	       e.description, e.notes, e.reference_code, e.bank_account_id, e.counter_account_id,
	       e.cost_center_id, e.person_id, e.property_id,
	       e.created_at, e.created_by, e.last_updated_at, e.last_updated_by,
	       cc.name, cc.code,
	       p.name,
	       pr.code, pr.street, pr.number, pr.complement, pr.district, pr.city
	FROM journal_entries e
	LEFT JOIN cost_centers cc ON cc.cost_center_id = e.cost_center_id
	LEFT JOIN people p ON p.person_id = e.person_id
	LEFT JOIN properties pr ON pr.property_id = e.property_id`

const installmentSelectColumns = `
	SELECT installment_id, entry_id, due_date, payment_date, status,
	       amount, penalty, interest, discount, meta,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM journal_entry_installments`

type PgxEntryRepository struct {
	BaseRepository
}

// NewPgxEntryRepository creates a new repository for journal entry data.
func NewPgxEntryRepository(pool *pgxpool.Pool) *PgxEntryRepository {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryWithTx
var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.Type,
		&m.Status,
		&m.Amount,
		&m.MovementDate,
		&m.DueDate,
		&m.Description,
		&m.Notes,
		&m.ReferenceCode,
		&m.BankAccountID,
		&m.CounterAccountID,
		&m.CostCenterID,
		&m.PersonID,
		&m.PropertyID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.CostCenterName,
		&m.CostCenterCode,
		&m.PersonName,
		&m.PropertyCode,
		&m.PropertyStreet,
		&m.PropertyNumber,
		&m.PropertyComplement,
		&m.PropertyDistrict,
		&m.PropertyCity,
	)
	return m, err
}

func scanInstallment(row rowScanner) (models.Installment, error) {
	var m models.Installment
	var metaBytes []byte
	err := row.Scan(
		&m.InstallmentID,
		&m.EntryID,
		&m.DueDate,
		&m.PaymentDate,
		&m.Status,
		&m.Amount,
		&m.Penalty,
		&m.Interest,
		&m.Discount,
		&metaBytes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}
	if len(metaBytes) > 0 {
		if err := json.Unmarshal(metaBytes, &m.Meta); err != nil {
			return m, fmt.Errorf("failed to decode installment meta: %w", err)
		}
	}
	return m, nil
}

func marshalMeta(meta map[string]string) ([]byte, error) {
	if len(meta) == 0 {
		return nil, nil
	}
	return json.Marshal(meta)
}

// FindEntryByID retrieves an entry with installments and related records.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := entrySelectColumns + `
	WHERE e.entry_id = $1;`

	modelEntry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("journal entry %s not found", entryID))
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	entry := mapping.ToDomainEntry(modelEntry)

	installmentsByEntry, err := r.findInstallmentsByEntryIDs(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}
	entry.Installments = installmentsByEntry[entryID]

	return &entry, nil
}

// FindInstallmentByID retrieves a single installment.
func (r *PgxEntryRepository) FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error) {
	query := installmentSelectColumns + `
	WHERE installment_id = $1;`

	modelInst, err := scanInstallment(r.Pool.QueryRow(ctx, query, installmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("installment %s not found", installmentID))
		}
		return nil, fmt.Errorf("failed to find installment %s: %w", installmentID, err)
	}

	installment := mapping.ToDomainInstallment(modelInst)
	return &installment, nil
}

// ListEntries retrieves entries matching the filter with related records
// loaded, ordered by (movement_date, entry_id) so report rows and running
// balances are deterministic.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, error) {
	query := entrySelectColumns
	conditions := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if filter.BankAccountID != nil {
		args = append(args, *filter.BankAccountID)
		conditions = append(conditions, "e.bank_account_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		conditions = append(conditions, "e.type = $"+strconv.Itoa(len(args)))
	}
	if filter.Statuses != nil {
		if len(filter.Statuses) == 1 {
			args = append(args, string(filter.Statuses[0]))
			conditions = append(conditions, "e.status = $"+strconv.Itoa(len(args)))
		} else {
			statuses := make([]string, len(filter.Statuses))
			for i, s := range filter.Statuses {
				statuses[i] = string(s)
			}
			args = append(args, statuses)
			conditions = append(conditions, "e.status = ANY($"+strconv.Itoa(len(args))+")")
		}
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conditions = append(conditions, "e.movement_date >= $"+strconv.Itoa(len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conditions = append(conditions, "e.movement_date <= $"+strconv.Itoa(len(args)))
	}
	if filter.DateBefore != nil {
		args = append(args, *filter.DateBefore)
		conditions = append(conditions, "e.movement_date < $"+strconv.Itoa(len(args)))
	}

	for i, cond := range conditions {
		if i == 0 {
			query += "\n\tWHERE " + cond
		} else {
			query += "\n\t  AND " + cond
		}
	}
	query += "\n\tORDER BY e.movement_date ASC, e.entry_id ASC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0)
	entryIDs := make([]string, 0)
	for rows.Next() {
		modelEntry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, mapping.ToDomainEntry(modelEntry))
		entryIDs = append(entryIDs, modelEntry.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal entries: %w", err)
	}

	if len(entryIDs) == 0 {
		return entries, nil
	}

	installmentsByEntry, err := r.findInstallmentsByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Installments = installmentsByEntry[entries[i].EntryID]
	}

	return entries, nil
}

// findInstallmentsByEntryIDs batch-loads installments for the given entries,
// grouped by entry.
func (r *PgxEntryRepository) findInstallmentsByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.Installment, error) {
	query := installmentSelectColumns + `
	WHERE entry_id = ANY($1)
	ORDER BY entry_id ASC, installment_id ASC;`

	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load installments: %w", err)
	}
	defer rows.Close()

	byEntry := make(map[string][]domain.Installment, len(entryIDs))
	for rows.Next() {
		modelInst, err := scanInstallment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		byEntry[modelInst.EntryID] = append(byEntry[modelInst.EntryID], mapping.ToDomainInstallment(modelInst))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate installments: %w", err)
	}
	return byEntry, nil
}

const insertEntrySQL = `
	INSERT INTO journal_entries (entry_id, type, status, amount, movement_date, due_date,
		description, notes, reference_code, bank_account_id, counter_account_id,
		cost_center_id, person_id, property_id,
		created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);`

const insertInstallmentSQL = `
	INSERT INTO journal_entry_installments (installment_id, entry_id, due_date, payment_date, status,
		amount, penalty, interest, discount, meta,
		created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`

// SaveEntry persists a new entry together with its installment schedule in a
// single transaction. The installments go out as one batch.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, installments []domain.Installment) error {
	modelEntry := mapping.ToModelEntry(entry)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	_, err = tx.Exec(ctx, insertEntrySQL,
		modelEntry.EntryID,
		modelEntry.Type,
		modelEntry.Status,
		modelEntry.Amount,
		modelEntry.MovementDate,
		modelEntry.DueDate,
		modelEntry.Description,
		modelEntry.Notes,
		modelEntry.ReferenceCode,
		modelEntry.BankAccountID,
		modelEntry.CounterAccountID,
		modelEntry.CostCenterID,
		modelEntry.PersonID,
		modelEntry.PropertyID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", modelEntry.EntryID, err)
	}

	batch := &pgx.Batch{}
	for _, inst := range installments {
		modelInst := mapping.ToModelInstallment(inst)
		metaBytes, err := marshalMeta(modelInst.Meta)
		if err != nil {
			return fmt.Errorf("failed to encode installment meta: %w", err)
		}
		batch.Queue(insertInstallmentSQL,
			modelInst.InstallmentID,
			modelInst.EntryID,
			modelInst.DueDate,
			modelInst.PaymentDate,
			modelInst.Status,
			modelInst.Amount,
			modelInst.Penalty,
			modelInst.Interest,
			modelInst.Discount,
			metaBytes,
			modelInst.CreatedAt,
			modelInst.CreatedBy,
			modelInst.LastUpdatedAt,
			modelInst.LastUpdatedBy,
		)
	}
	if batch.Len() > 0 {
		results := tx.SendBatch(ctx, batch)
		for range installments {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return fmt.Errorf("failed to insert installment batch for entry %s: %w", modelEntry.EntryID, err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("failed to close installment batch: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}

// SaveInstallment appends one installment to an existing entry.
func (r *PgxEntryRepository) SaveInstallment(ctx context.Context, installment domain.Installment) error {
	modelInst := mapping.ToModelInstallment(installment)
	metaBytes, err := marshalMeta(modelInst.Meta)
	if err != nil {
		return fmt.Errorf("failed to encode installment meta: %w", err)
	}

	_, err = r.Pool.Exec(ctx, insertInstallmentSQL,
		modelInst.InstallmentID,
		modelInst.EntryID,
		modelInst.DueDate,
		modelInst.PaymentDate,
		modelInst.Status,
		modelInst.Amount,
		modelInst.Penalty,
		modelInst.Interest,
		modelInst.Discount,
		metaBytes,
		modelInst.CreatedAt,
		modelInst.CreatedBy,
		modelInst.LastUpdatedAt,
		modelInst.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert installment %s: %w", modelInst.InstallmentID, err)
	}
	return nil
}

const updateEntryStatusSQL = `
	UPDATE journal_entries
	SET status = $2, last_updated_at = $3, last_updated_by = $4
	WHERE entry_id = $1;`

// UpdateEntryStatus updates only the status and audit columns of an entry.
func (r *PgxEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedByUserID string, updatedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, updateEntryStatusSQL, entryID, string(status), updatedAt, updatedByUserID)
	if err != nil {
		return fmt.Errorf("failed to update status of journal entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("journal entry %s not found", entryID))
	}
	return nil
}

// UpdateEntryStatusInTx updates the entry status within the transaction.
func (r *PgxEntryRepository) UpdateEntryStatusInTx(ctx context.Context, tx pgx.Tx, entryID string, status domain.EntryStatus, updatedByUserID string, updatedAt time.Time) error {
	tag, err := tx.Exec(ctx, updateEntryStatusSQL, entryID, string(status), updatedAt, updatedByUserID)
	if err != nil {
		return fmt.Errorf("failed to update status of journal entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("journal entry %s not found", entryID))
	}
	return nil
}

// FindInstallmentForUpdate selects an installment and locks its row for the
// rest of the transaction.
func (r *PgxEntryRepository) FindInstallmentForUpdate(ctx context.Context, tx pgx.Tx, installmentID string) (*domain.Installment, error) {
	query := installmentSelectColumns + `
	WHERE installment_id = $1
	FOR UPDATE;`

	modelInst, err := scanInstallment(tx.QueryRow(ctx, query, installmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("installment %s not found", installmentID))
		}
		return nil, fmt.Errorf("failed to lock installment %s: %w", installmentID, err)
	}

	installment := mapping.ToDomainInstallment(modelInst)
	return &installment, nil
}

// UpdateInstallmentInTx persists the settled installment within the transaction.
func (r *PgxEntryRepository) UpdateInstallmentInTx(ctx context.Context, tx pgx.Tx, installment domain.Installment) error {
	modelInst := mapping.ToModelInstallment(installment)
	metaBytes, err := marshalMeta(modelInst.Meta)
	if err != nil {
		return fmt.Errorf("failed to encode installment meta: %w", err)
	}

	query := `
	UPDATE journal_entry_installments
	SET payment_date = $2, status = $3, penalty = $4, interest = $5, discount = $6,
	    meta = $7, last_updated_at = $8, last_updated_by = $9
	WHERE installment_id = $1;`

	tag, err := tx.Exec(ctx, query,
		modelInst.InstallmentID,
		modelInst.PaymentDate,
		modelInst.Status,
		modelInst.Penalty,
		modelInst.Interest,
		modelInst.Discount,
		metaBytes,
		modelInst.LastUpdatedAt,
		modelInst.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update installment %s: %w", modelInst.InstallmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("installment %s not found", modelInst.InstallmentID))
	}
	return nil
}

// FindInstallmentsByEntryIDInTx re-reads an entry's installments inside the
// transaction, ordered by installment_id.
func (r *PgxEntryRepository) FindInstallmentsByEntryIDInTx(ctx context.Context, tx pgx.Tx, entryID string) ([]domain.Installment, error) {
	query := installmentSelectColumns + `
	WHERE entry_id = $1
	ORDER BY installment_id ASC;`

	rows, err := tx.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load installments for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	installments := make([]domain.Installment, 0)
	for rows.Next() {
		modelInst, err := scanInstallment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		installments = append(installments, mapping.ToDomainInstallment(modelInst))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate installments: %w", err)
	}
	return installments, nil
}
