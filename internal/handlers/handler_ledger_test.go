package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pocketledger/pocket_ledger_app/internal/core/domain"
	portssvc "github.com/pocketledger/pocket_ledger_app/internal/core/ports/services"
	"github.com/pocketledger/pocket_ledger_app/internal/core/services"
	"github.com/pocketledger/pocket_ledger_app/internal/dto"
	"github.com/pocketledger/pocket_ledger_app/internal/handlers"
	"github.com/pocketledger/pocket_ledger_app/internal/middleware"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) Deposit(ctx context.Context, callerUserID string, req dto.DepositRequest) (*portssvc.LedgerMutationResult, error) {
	args := m.Called(ctx, callerUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.LedgerMutationResult), args.Error(1)
}

func (m *MockLedgerService) Withdraw(ctx context.Context, callerUserID string, req dto.WithdrawRequest) (*portssvc.LedgerMutationResult, error) {
	args := m.Called(ctx, callerUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.LedgerMutationResult), args.Error(1)
}

func (m *MockLedgerService) Transfer(ctx context.Context, callerUserID string, req dto.TransferRequest) (*portssvc.LedgerMutationResult, error) {
	args := m.Called(ctx, callerUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.LedgerMutationResult), args.Error(1)
}

func (m *MockLedgerService) ReverseTransaction(ctx context.Context, callerUserID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, callerUserID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) GetTransaction(ctx context.Context, callerUserID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, callerUserID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Mock HistoryService ---
type MockHistoryService struct {
	mock.Mock
}

var _ portssvc.HistorySvcFacade = (*MockHistoryService)(nil)

func (m *MockHistoryService) ListForUser(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockLedgerService  *MockLedgerService
	mockHistoryService *MockHistoryService
	jwtSecret          string
}

// generateTestToken creates a signed JWT for the given user.
func (suite *LedgerHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "pla-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = dto.RegisterCustomValidations(v)
	}

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLedgerService = new(MockLedgerService)
	suite.mockHistoryService = new(MockHistoryService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterLedgerRoutes(v1, suite.mockLedgerService, suite.mockHistoryService)
}

func (suite *LedgerHandlerTestSuite) doJSON(method, url, userID string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *LedgerHandlerTestSuite) TestDeposit_Success() {
	userID := uuid.NewString()
	accountID := uuid.NewString()
	reqBody := dto.DepositRequest{AccountID: accountID, Amount: decimal.NewFromFloat(25.50)}

	txn := domain.NewDeposit(uuid.NewString(), accountID, reqBody.Amount, "")
	suite.mockLedgerService.On("Deposit", mock.Anything, userID,
		mock.MatchedBy(func(r dto.DepositRequest) bool {
			return r.AccountID == accountID && r.Amount.Equal(reqBody.Amount)
		}),
	).Return(&portssvc.LedgerMutationResult{Transaction: txn, NewBalance: decimal.NewFromFloat(125.50)}, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions/deposit", userID, reqBody)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.MutationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.NewBalance.Equal(decimal.NewFromFloat(125.50)))
	suite.Equal(txn.TransactionID, resp.Transaction.TransactionID)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestDeposit_RejectsBadAmountAtBinding() {
	userID := uuid.NewString()
	// Three decimal places must be rejected before the service is reached.
	w := suite.doJSON(http.MethodPost, "/api/v1/transactions/deposit", userID, gin.H{
		"accountID": uuid.NewString(),
		"amount":    "10.123",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "Deposit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestDeposit_Unauthorized() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions/deposit", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestTransfer_InsufficientBalanceMapsToConflict() {
	userID := uuid.NewString()
	reqBody := dto.TransferRequest{
		SourceAccountID: uuid.NewString(),
		TargetEmail:     "peer@example.com",
		Amount:          decimal.NewFromFloat(999.99),
	}

	suite.mockLedgerService.On("Transfer", mock.Anything, userID, mock.Anything).
		Return(nil, services.ErrInsufficientBalance).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions/transfer", userID, reqBody)

	suite.Equal(http.StatusConflict, w.Code)

	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp.Error, "insufficient balance")
}

func (suite *LedgerHandlerTestSuite) TestReverse_ForbiddenForNonSender() {
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockLedgerService.On("ReverseTransaction", mock.Anything, userID, transactionID).
		Return(nil, services.ErrOnlySenderCanReverse).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions/"+transactionID+"/reverse", userID, nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestGetTransaction_NotFound() {
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockLedgerService.On("GetTransaction", mock.Anything, userID, transactionID).
		Return(nil, services.ErrTransactionNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/transactions/"+transactionID, userID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestListTransactions_Success() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	expected := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{
			{
				TransactionID: uuid.NewString(),
				Type:          string(domain.Transfer),
				AccountID:     accountID,
				Amount:        decimal.NewFromFloat(12.50),
				Status:        string(domain.Active),
				CreatedAt:     time.Now(),
			},
		},
		NextToken: nil,
	}

	suite.mockHistoryService.On("ListForUser", mock.Anything, userID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool { return p.Limit == 10 }),
	).Return(expected, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/transactions?limit=10", userID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Transactions, 1)
	suite.Equal(expected.Transactions[0].TransactionID, resp.Transactions[0].TransactionID)
	suite.mockHistoryService.AssertExpectations(suite.T())
	suite.mockLedgerService.AssertNotCalled(suite.T(), "GetTransaction")
}

func TestLedgerHandler(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
