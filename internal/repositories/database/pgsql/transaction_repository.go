package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocket_ledger_app/internal/apperrors"
	"github.com/pocketledger/pocket_ledger_app/internal/core/domain"
	portsrepo "github.com/pocketledger/pocket_ledger_app/internal/core/ports/repositories"
	"github.com/pocketledger/pocket_ledger_app/internal/models"
	"github.com/pocketledger/pocket_ledger_app/internal/utils/mapping"
	"github.com/pocketledger/pocket_ledger_app/internal/utils/pagination"
)

const transactionColumns = `transaction_id, transaction_type, account_id, sender_account_id, receiver_account_id, amount, description, status, reversed_transaction_id, reversed_by_transaction_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Type,
		&m.AccountID,
		&m.SenderAccountID,
		&m.ReceiverAccountID,
		&m.Amount,
		&m.Description,
		&m.Status,
		&m.ReversedTransactionID,
		&m.ReversedByTransactionID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// lockAndCheckBalances locks the affected account rows, verifies that every
// account listed in nonNegative stays at or above zero after its delta, and
// returns the resulting balances. The check happens after the row locks are
// held, so a concurrent mutation cannot slip between the check and the write.
func (r *PgxTransactionRepository) lockAndCheckBalances(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, nonNegative []string) (map[string]decimal.Decimal, error) {
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}
	sort.Strings(accountIDs)

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}

	newBalances := make(map[string]decimal.Decimal, len(balanceChanges))
	for accID, delta := range balanceChanges {
		newBalances[accID] = lockedAccounts[accID].Balance.Add(delta)
	}

	for _, accID := range nonNegative {
		if newBalances[accID].IsNegative() {
			return nil, fmt.Errorf("%w: insufficient balance in account %s", apperrors.ErrConflict, accID)
		}
	}

	return newBalances, nil
}

func insertTransactionInTx(ctx context.Context, tx pgx.Tx, m models.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.Type,
		m.AccountID,
		m.SenderAccountID,
		m.ReceiverAccountID,
		m.Amount,
		m.Description,
		m.Status,
		m.ReversedTransactionID,
		m.ReversedByTransactionID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction %s conflicts with an existing record", apperrors.ErrConflict, m.TransactionID)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// SaveTransaction persists a transaction record and applies its balance
// changes in a single database transaction. Accounts listed in nonNegative
// must not drop below zero; the check runs against the locked rows.
// It returns the balances that resulted from the mutation.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, nonNegative []string) (map[string]decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	newBalances, err := r.lockAndCheckBalances(ctx, tx, balanceChanges, nonNegative)
	if err != nil {
		return nil, err
	}

	if err := insertTransactionInTx(ctx, tx, mapping.ToModelTransaction(txn)); err != nil {
		return nil, err
	}

	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, txn.CreatedBy, txn.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to apply balance changes for transaction %s: %w", txn.TransactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return newBalances, nil
}

// SaveReversal persists a reversal record, applies the compensating balance
// changes, and flips the original transaction to REVERSED, all in one
// database transaction. The UNIQUE constraint on reversed_transaction_id and
// the guarded status update together guarantee the original is reversed at
// most once even under concurrent attempts.
func (r *PgxTransactionRepository) SaveReversal(ctx context.Context, reversal domain.Transaction, balanceChanges map[string]decimal.Decimal, nonNegative []string, originalTransactionID string) (map[string]decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	newBalances, err := r.lockAndCheckBalances(ctx, tx, balanceChanges, nonNegative)
	if err != nil {
		return nil, err
	}

	if err := insertTransactionInTx(ctx, tx, mapping.ToModelTransaction(reversal)); err != nil {
		return nil, err
	}

	flipQuery := `
		UPDATE transactions
		SET status = $2, reversed_by_transaction_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1 AND status = $6;
	`
	cmdTag, err := tx.Exec(ctx, flipQuery,
		originalTransactionID,
		models.Reversed,
		reversal.TransactionID,
		reversal.CreatedAt,
		reversal.CreatedBy,
		models.Active,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to mark transaction %s as reversed: %w", originalTransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: transaction %s is already reversed", apperrors.ErrConflict, originalTransactionID)
	}

	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, reversal.CreatedBy, reversal.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to apply balance changes for reversal %s: %w", reversal.TransactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return newBalances, nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction " + transactionID)
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// buildHistoryQuery assembles the SQL and arguments for the account history
// listing. A limit <= 0 omits the LIMIT clause entirely, so the full history
// comes back in one response; a positive limit fetches one extra row so the
// caller can tell whether a next page exists.
func buildHistoryQuery(accountID string, limit int, nextToken *string) (string, []interface{}, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE (account_id = $1 OR sender_account_id = $1 OR receiver_account_id = $1)
	`
	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastTxnID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return "", nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		query += ` AND (created_at, transaction_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastTxnID)
	}

	query += ` ORDER BY created_at DESC, transaction_id DESC`

	if limit > 0 {
		args = append(args, limit+1)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	query += `;`

	return query, args, nil
}

// ListTransactionsForAccount retrieves the transactions touching the given
// account, newest first. With limit <= 0 the full history is returned and no
// token is produced; paging is strictly opt-in via a positive limit.
// Ordering is created_at DESC with transaction_id DESC as a stable
// tie-breaker, so equal timestamps always paginate deterministically.
func (r *PgxTransactionRepository) ListTransactionsForAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	query, args, err := buildHistoryQuery(accountID, limit, nextToken)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for account "+accountID, err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		m, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row for account "+accountID, scanErr)
		}
		transactions = append(transactions, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows for account "+accountID, err)
	}

	var nextTokenVal *string
	if limit > 0 && len(transactions) > limit {
		lastTxn := transactions[limit-1]
		token := pagination.EncodeToken(lastTxn.CreatedAt, lastTxn.TransactionID)
		nextTokenVal = &token
		transactions = transactions[:limit]
	}

	return mapping.ToDomainTransactionSlice(transactions), nextTokenVal, nil
}
