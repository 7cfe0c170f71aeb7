package services

import (
	"context"

	"github.com/pocketledger/pocket_ledger_app/internal/core/domain"
	"github.com/pocketledger/pocket_ledger_app/internal/dto"
)

// UserSvcFacade defines user lifecycle and authentication support.
type UserSvcFacade interface {
	// Register creates a user and their zero-balance account atomically.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, *domain.Account, error)

	// Authenticate verifies email/password credentials and returns the user.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUserByID retrieves a user by their unique identifier.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
