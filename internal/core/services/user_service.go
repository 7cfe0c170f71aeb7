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
	"github.com/pocketledger/pocket_ledger_app/internal/utils"
)

var (
	ErrEmailTaken         = fmt.Errorf("%w: email is already registered", apperrors.ErrDuplicate)
	ErrUserNotFound       = fmt.Errorf("%w: user not found", apperrors.ErrNotFound)
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// userService provides user lifecycle and credential checks.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

// Ensure userService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

// Register creates a user and their single zero-balance account in one
// database transaction, so a user never exists without an account.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, *domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	userID := uuid.NewString()

	user := domain.User{
		UserID:       userID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		AuditFields:  newAudit(userID, now),
	}
	account := domain.Account{
		AccountID:   uuid.NewString(),
		OwnerUserID: userID,
		Balance:     decimal.Zero,
		AuditFields: newAudit(userID, now),
	}

	if err := s.userRepo.CreateUserWithAccount(ctx, user, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, nil, ErrEmailTaken
		}
		logger.Error("Failed to register user", "error", err)
		return nil, nil, err
	}

	logger.Info("User registered", "user_id", userID, "account_id", account.AccountID)
	return &user, &account, nil
}

// Authenticate verifies email/password credentials and returns the user.
// Missing users and bad passwords both yield ErrInvalidCredentials, so a
// caller cannot tell which emails are registered.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user by email: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID retrieves a user by their unique identifier.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	return user, nil
}
