package account

import (
	"context"
)

// Service contains the business logic for account operations
type Service struct {
	repo Repository
}

// NewService creates a new account service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateAccount creates a new account with business validation
func (s *Service) CreateAccount(ctx context.Context, userID string, params CreateParams) (*Account, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, userID, params)
}

// GetAccount retrieves one of the user's accounts by ID
func (s *Service) GetAccount(ctx context.Context, userID, accountID string) (*Account, error) {
	return s.repo.GetByID(ctx, userID, accountID)
}

// ListAccounts retrieves all accounts for the user
func (s *Service) ListAccounts(ctx context.Context, userID string) ([]Account, error) {
	return s.repo.ListByUser(ctx, userID)
}

// UpdateAccount applies the given changes to an existing account
func (s *Service) UpdateAccount(ctx context.Context, userID, accountID string, params UpdateParams) (*Account, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	acc, err := s.repo.GetByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		acc.Name = *params.Name
	}
	if params.InitialBalance != nil {
		acc.InitialBalance = *params.InitialBalance
	}
	if params.Type != nil {
		acc.Type = *params.Type
	}

	if err := s.repo.Update(ctx, userID, *acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// DeleteAccount deletes an account. Referencing transactions are kept; the
// report aggregation treats their account reference as dangling.
func (s *Service) DeleteAccount(ctx context.Context, userID, accountID string) error {
	if _, err := s.repo.GetByID(ctx, userID, accountID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID, accountID)
}
