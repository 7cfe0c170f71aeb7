package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pocketledger/pocket_ledger_app/internal/apperrors"
	"github.com/pocketledger/pocket_ledger_app/internal/core/domain"
	portsrepo "github.com/pocketledger/pocket_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pocketledger/pocket_ledger_app/internal/core/ports/services"
	"github.com/pocketledger/pocket_ledger_app/internal/core/services"
	"github.com/pocketledger/pocket_ledger_app/internal/dto"
	"github.com/pocketledger/pocket_ledger_app/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) CreateUserWithAccount(ctx context.Context, user domain.User, account domain.Account) error {
	args := m.Called(ctx, user, account)
	return args.Error(0)
}

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

func (suite *UserServiceTestSuite) TestRegisterCreatesUserAndAccountTogether() {
	req := dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "s3cretpass"}

	suite.mockUserRepo.On("CreateUserWithAccount", mock.Anything,
		mock.MatchedBy(func(user domain.User) bool {
			return user.Email == req.Email &&
				user.Name == req.Name &&
				user.PasswordHash != req.Password &&
				utils.CheckPasswordHash(req.Password, user.PasswordHash)
		}),
		mock.MatchedBy(func(account domain.Account) bool {
			return account.Balance.IsZero() && account.OwnerUserID != ""
		}),
	).Return(nil)

	user, account, err := suite.service.Register(context.Background(), req)

	suite.Require().NoError(err)
	suite.Equal(user.UserID, account.OwnerUserID)
	suite.True(account.Balance.IsZero())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterEmailTaken() {
	req := dto.RegisterRequest{Name: "Ada", Email: "taken@example.com", Password: "s3cretpass"}

	suite.mockUserRepo.On("CreateUserWithAccount", mock.Anything, mock.Anything, mock.Anything).
		Return(apperrors.ErrDuplicate)

	_, _, err := suite.service.Register(context.Background(), req)
	suite.ErrorIs(err, services.ErrEmailTaken)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestAuthenticateSuccess() {
	hash, err := utils.HashPassword("s3cretpass")
	suite.Require().NoError(err)
	user := domain.User{UserID: "user-1", Email: "ada@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", mock.Anything, user.Email).Return(&user, nil)

	got, err := suite.service.Authenticate(context.Background(), user.Email, "s3cretpass")
	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateWrongPassword() {
	hash, err := utils.HashPassword("s3cretpass")
	suite.Require().NoError(err)
	user := domain.User{UserID: "user-1", Email: "ada@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", mock.Anything, user.Email).Return(&user, nil)

	_, err = suite.service.Authenticate(context.Background(), user.Email, "wrongpass")
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestAuthenticateUnknownEmail() {
	// Unknown emails and wrong passwords must be indistinguishable.
	suite.mockUserRepo.On("FindUserByEmail", mock.Anything, "ghost@example.com").Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.Authenticate(context.Background(), "ghost@example.com", "whatever")
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestGetUserByIDNotFound() {
	suite.mockUserRepo.On("FindUserByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.GetUserByID(context.Background(), "missing")
	suite.ErrorIs(err, services.ErrUserNotFound)
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
