package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/pocketledger/pocket_ledger_app/internal/apperrors"
	portsrepo "github.com/pocketledger/pocket_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pocketledger/pocket_ledger_app/internal/core/ports/services"
	"github.com/pocketledger/pocket_ledger_app/internal/dto"
)

// historyService assembles the user-centric transaction history.
type historyService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
}

// NewHistoryService creates a new history service.
func NewHistoryService(transactionRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.HistorySvcFacade {
	return &historyService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

// Ensure historyService implements the portssvc.HistorySvcFacade interface
var _ portssvc.HistorySvcFacade = (*historyService)(nil)

// ListForUser returns every transaction where the user's account is the
// filing account, sender, or receiver, most recent first. Each record
// carries its reversal linkage, so callers can see whether and how a
// transfer was undone.
func (s *historyService) ListForUser(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	account, err := s.accountRepo.FindAccountByOwnerID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account for user %s: %w", userID, err)
	}

	transactions, nextToken, err := s.transactionRepo.ListTransactionsForAccount(ctx, account.AccountID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		NextToken:    nextToken,
	}, nil
}
