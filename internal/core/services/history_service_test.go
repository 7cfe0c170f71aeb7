package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pocketledger/pocket_ledger_app/internal/apperrors"
	"github.com/pocketledger/pocket_ledger_app/internal/core/domain"
	portssvc "github.com/pocketledger/pocket_ledger_app/internal/core/ports/services"
	"github.com/pocketledger/pocket_ledger_app/internal/core/services"
	"github.com/pocketledger/pocket_ledger_app/internal/dto"
)

type HistoryServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.HistorySvcFacade

	userID  string
	account domain.Account
}

func (suite *HistoryServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewHistoryService(suite.mockTxnRepo, suite.mockAccountRepo)

	suite.userID = uuid.NewString()
	suite.account = domain.Account{
		AccountID:   uuid.NewString(),
		OwnerUserID: suite.userID,
	}
}

func (suite *HistoryServiceTestSuite) TestListForUser() {
	deposit := domain.NewDeposit(uuid.NewString(), suite.account.AccountID, decimal.NewFromFloat(30), "")
	transfer := domain.NewTransfer(uuid.NewString(), suite.account.AccountID, uuid.NewString(), decimal.NewFromFloat(12.50), "lunch")

	suite.mockAccountRepo.On("FindAccountByOwnerID", mock.Anything, suite.userID).Return(&suite.account, nil)
	suite.mockTxnRepo.On("ListTransactionsForAccount", mock.Anything, suite.account.AccountID, 2, (*string)(nil)).
		Return([]domain.Transaction{transfer, deposit}, "next-page-token", nil)

	result, err := suite.service.ListForUser(context.Background(), suite.userID, dto.ListTransactionsParams{Limit: 2})

	suite.Require().NoError(err)
	suite.Require().Len(result.Transactions, 2)
	suite.Equal(transfer.TransactionID, result.Transactions[0].TransactionID)
	suite.Equal(deposit.TransactionID, result.Transactions[1].TransactionID)
	suite.Require().NotNil(result.NextToken)
	suite.Equal("next-page-token", *result.NextToken)
}

func (suite *HistoryServiceTestSuite) TestListForUserForwardsToken() {
	token := "opaque-cursor"
	suite.mockAccountRepo.On("FindAccountByOwnerID", mock.Anything, suite.userID).Return(&suite.account, nil)
	suite.mockTxnRepo.On("ListTransactionsForAccount", mock.Anything, suite.account.AccountID, 0, &token).
		Return([]domain.Transaction{}, nil, nil)

	result, err := suite.service.ListForUser(context.Background(), suite.userID, dto.ListTransactionsParams{NextToken: &token})

	suite.Require().NoError(err)
	suite.Empty(result.Transactions)
	suite.Nil(result.NextToken)
}

func (suite *HistoryServiceTestSuite) TestListForUserAccountMissing() {
	suite.mockAccountRepo.On("FindAccountByOwnerID", mock.Anything, suite.userID).Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.ListForUser(context.Background(), suite.userID, dto.ListTransactionsParams{})
	suite.ErrorIs(err, services.ErrAccountNotFound)
}

func TestHistoryService(t *testing.T) {
	suite.Run(t, new(HistoryServiceTestSuite))
}
