package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocket_ledger_app/internal/apperrors"
	"github.com/pocketledger/pocket_ledger_app/internal/core/domain"
	portsrepo "github.com/pocketledger/pocket_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pocketledger/pocket_ledger_app/internal/core/ports/services"
	"github.com/pocketledger/pocket_ledger_app/internal/dto"
	"github.com/pocketledger/pocket_ledger_app/internal/middleware"
	"github.com/pocketledger/pocket_ledger_app/internal/platform/cache"
)

// Each sentinel carries its error kind via wrapping, so handlers can map on
// the kind while tests assert on the stable message.
var (
	ErrInvalidAmount           = fmt.Errorf("%w: amount must be positive with at most two decimal places", apperrors.ErrValidation)
	ErrAccountNotFound         = fmt.Errorf("%w: account not found", apperrors.ErrNotFound)
	ErrRecipientNotFound       = fmt.Errorf("%w: recipient not found", apperrors.ErrNotFound)
	ErrTransactionNotFound     = fmt.Errorf("%w: transaction not found", apperrors.ErrNotFound)
	ErrNotAccountOwner         = fmt.Errorf("%w: caller does not own this account", apperrors.ErrForbidden)
	ErrSameAccountTransfer     = fmt.Errorf("%w: cannot transfer to your own account", apperrors.ErrConflict)
	ErrInsufficientBalance     = fmt.Errorf("%w: insufficient balance", apperrors.ErrConflict)
	ErrOnlyTransfersReversible = fmt.Errorf("%w: only transfers can be reversed", apperrors.ErrConflict)
	ErrAlreadyReversed         = fmt.Errorf("%w: transaction has already been reversed", apperrors.ErrConflict)
	ErrOnlySenderCanReverse    = fmt.Errorf("%w: only the sender can reverse a transfer", apperrors.ErrForbidden)
)

// ledgerService executes the balance-mutating operations. All writes go
// through the transaction repository's atomic primitives; this layer owns
// validation, ownership checks, and record construction.
type ledgerService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
	balanceCache    *cache.BalanceCache
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(transactionRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, balanceCache *cache.BalanceCache) portssvc.LedgerSvcFacade {
	return &ledgerService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		balanceCache:    balanceCache,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// ownedAccount fetches an account and verifies the caller owns it.
func (s *ledgerService) ownedAccount(ctx context.Context, callerUserID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	if !CanMutate(callerUserID, *account) {
		return nil, ErrNotAccountOwner
	}
	return account, nil
}

func newAudit(userID string, now time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

// Deposit credits the caller's account. Never balance-checked.
func (s *ledgerService) Deposit(ctx context.Context, callerUserID string, req dto.DepositRequest) (*portssvc.LedgerMutationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !dto.Decimal2dp(req.Amount) {
		return nil, ErrInvalidAmount
	}

	account, err := s.ownedAccount(ctx, callerUserID, req.AccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.NewDeposit(uuid.NewString(), account.AccountID, req.Amount, req.Description)
	txn.AuditFields = newAudit(callerUserID, now)

	balanceChanges := map[string]decimal.Decimal{account.AccountID: req.Amount}
	newBalances, err := s.transactionRepo.SaveTransaction(ctx, txn, balanceChanges, nil)
	if err != nil {
		logger.Error("Failed to save deposit", "account_id", account.AccountID, "error", err)
		return nil, err
	}

	s.balanceCache.Invalidate(ctx, account.AccountID)
	logger.Info("Deposit recorded", "transaction_id", txn.TransactionID, "account_id", account.AccountID)

	return &portssvc.LedgerMutationResult{Transaction: txn, NewBalance: newBalances[account.AccountID]}, nil
}

// Withdraw debits the caller's account unconditionally. The resulting
// balance may go negative; only transfers are balance-checked.
func (s *ledgerService) Withdraw(ctx context.Context, callerUserID string, req dto.WithdrawRequest) (*portssvc.LedgerMutationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !dto.Decimal2dp(req.Amount) {
		return nil, ErrInvalidAmount
	}

	account, err := s.ownedAccount(ctx, callerUserID, req.AccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.NewWithdraw(uuid.NewString(), account.AccountID, req.Amount, req.Description)
	txn.AuditFields = newAudit(callerUserID, now)

	balanceChanges := map[string]decimal.Decimal{account.AccountID: req.Amount.Neg()}
	newBalances, err := s.transactionRepo.SaveTransaction(ctx, txn, balanceChanges, nil)
	if err != nil {
		logger.Error("Failed to save withdrawal", "account_id", account.AccountID, "error", err)
		return nil, err
	}

	s.balanceCache.Invalidate(ctx, account.AccountID)
	logger.Info("Withdrawal recorded", "transaction_id", txn.TransactionID, "account_id", account.AccountID)

	return &portssvc.LedgerMutationResult{Transaction: txn, NewBalance: newBalances[account.AccountID]}, nil
}

// Transfer moves funds from the caller's account to the account owned by
// the user registered under req.TargetEmail.
func (s *ledgerService) Transfer(ctx context.Context, callerUserID string, req dto.TransferRequest) (*portssvc.LedgerMutationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !dto.Decimal2dp(req.Amount) {
		return nil, ErrInvalidAmount
	}

	source, err := s.ownedAccount(ctx, callerUserID, req.SourceAccountID)
	if err != nil {
		return nil, err
	}

	target, err := s.accountRepo.FindAccountByOwnerEmail(ctx, req.TargetEmail)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to resolve transfer recipient: %w", err)
	}

	if target.AccountID == source.AccountID {
		return nil, ErrSameAccountTransfer
	}

	// Early check for a friendly fast path. The authoritative check runs
	// inside the atomic write, against the locked rows.
	if source.Balance.LessThan(req.Amount) {
		return nil, ErrInsufficientBalance
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Transfer of %s to %s", req.Amount.StringFixed(2), req.TargetEmail)
	}

	now := time.Now().UTC()
	txn := domain.NewTransfer(uuid.NewString(), source.AccountID, target.AccountID, req.Amount, description)
	txn.AuditFields = newAudit(callerUserID, now)

	balanceChanges := map[string]decimal.Decimal{
		source.AccountID: req.Amount.Neg(),
		target.AccountID: req.Amount,
	}
	newBalances, err := s.transactionRepo.SaveTransaction(ctx, txn, balanceChanges, []string{source.AccountID})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, ErrInsufficientBalance
		}
		logger.Error("Failed to save transfer", "source_account_id", source.AccountID, "error", err)
		return nil, err
	}

	s.balanceCache.Invalidate(ctx, source.AccountID, target.AccountID)
	logger.Info("Transfer recorded", "transaction_id", txn.TransactionID, "source_account_id", source.AccountID, "target_account_id", target.AccountID)

	return &portssvc.LedgerMutationResult{Transaction: txn, NewBalance: newBalances[source.AccountID]}, nil
}

// ReverseTransaction undoes a transfer the caller originally sent. The
// created reversal is a transfer flowing backward: sender and receiver are
// the original's, swapped, and both balances return to their pre-transfer
// values. A transfer can be reversed at most once; the storage layer
// enforces that even under concurrent attempts.
func (s *ledgerService) ReverseTransaction(ctx context.Context, callerUserID string, transactionID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to load transaction %s: %w", transactionID, err)
	}

	if original.Type != domain.Transfer {
		return nil, ErrOnlyTransfersReversible
	}
	if original.IsReversed() {
		return nil, ErrAlreadyReversed
	}

	senderAccount, err := s.accountRepo.FindAccountByID(ctx, *original.SenderAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load sender account for reversal: %w", err)
	}
	if !CanReverse(callerUserID, *senderAccount, *original) {
		return nil, ErrOnlySenderCanReverse
	}

	now := time.Now().UTC()
	description := fmt.Sprintf("Reversal of transaction %s", original.TransactionID)
	reversal := domain.NewReversal(uuid.NewString(), *original, description)
	reversal.AuditFields = newAudit(callerUserID, now)

	// Money flows back: the original receiver is debited, so that account
	// must cover the amount.
	balanceChanges := map[string]decimal.Decimal{
		*original.SenderAccountID:   original.Amount,
		*original.ReceiverAccountID: original.Amount.Neg(),
	}
	nonNegative := []string{*original.ReceiverAccountID}

	_, err = s.transactionRepo.SaveReversal(ctx, reversal, balanceChanges, nonNegative, original.TransactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// Either the status flip lost a race against another reversal or
			// the receiver cannot cover the amount.
			return nil, s.classifyReversalConflict(ctx, original.TransactionID, err)
		}
		logger.Error("Failed to save reversal", "transaction_id", transactionID, "error", err)
		return nil, err
	}

	s.balanceCache.Invalidate(ctx, *original.SenderAccountID, *original.ReceiverAccountID)
	logger.Info("Reversal recorded", "transaction_id", reversal.TransactionID, "reversed_transaction_id", original.TransactionID)

	return &reversal, nil
}

// classifyReversalConflict distinguishes a lost reversal race from an
// insufficient receiver balance after the atomic write rejected the attempt.
func (s *ledgerService) classifyReversalConflict(ctx context.Context, originalID string, cause error) error {
	current, err := s.transactionRepo.FindTransactionByID(ctx, originalID)
	if err == nil && current.IsReversed() {
		return ErrAlreadyReversed
	}
	if errors.Is(cause, apperrors.ErrConflict) {
		return ErrInsufficientBalance
	}
	return cause
}

// GetTransaction retrieves a transaction the caller participates in, either
// side of it.
func (s *ledgerService) GetTransaction(ctx context.Context, callerUserID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to load transaction %s: %w", transactionID, err)
	}

	callerAccount, err := s.accountRepo.FindAccountByOwnerID(ctx, callerUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load caller account: %w", err)
	}

	if !transactionTouchesAccount(*txn, callerAccount.AccountID) {
		// Obscure existence from non-participants.
		return nil, ErrTransactionNotFound
	}

	return txn, nil
}

func transactionTouchesAccount(t domain.Transaction, accountID string) bool {
	if t.AccountID == accountID {
		return true
	}
	if t.SenderAccountID != nil && *t.SenderAccountID == accountID {
		return true
	}
	if t.ReceiverAccountID != nil && *t.ReceiverAccountID == accountID {
		return true
	}
	return false
}
