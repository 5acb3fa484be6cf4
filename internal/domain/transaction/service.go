package transaction

import (
	"context"
	"errors"
	"fmt"
)

// Service contains the business logic for transaction operations
type Service struct {
	repo Repository
}

// NewService creates a new transaction service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a transaction request. A recurring request is
// expanded into its installment series and persisted as one atomic batch; a
// plain request yields a single record. Either way the stored records are
// returned, so callers handle both cases uniformly.
func (s *Service) Create(ctx context.Context, userID string, params CreateParams) ([]Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if params.IsRecurring {
		series, err := ExpandRecurrence(params)
		if err != nil {
			return nil, err
		}
		stored, err := s.repo.CreateBatch(ctx, userID, series)
		if err != nil {
			return nil, fmt.Errorf("failed to store recurrence series: %w", err)
		}
		return stored, nil
	}

	stored, err := s.repo.Create(ctx, userID, params.base())
	if err != nil {
		return nil, fmt.Errorf("failed to store transaction: %w", err)
	}
	return []Transaction{*stored}, nil
}

// Get retrieves one of the user's transactions by ID
func (s *Service) Get(ctx context.Context, userID, id string) (*Transaction, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// List retrieves all transactions owned by the user
func (s *Service) List(ctx context.Context, userID string) ([]Transaction, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update applies the given changes to an existing transaction
func (s *Service) Update(ctx context.Context, userID, id string, params UpdateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.Description != nil {
		t.Description = *params.Description
	}
	if params.Amount != nil {
		t.Amount = *params.Amount
	}
	if params.Date != nil {
		t.Date = *params.Date
	}
	if params.DueDate != nil {
		t.DueDate = params.DueDate
	}
	if params.Type != nil {
		t.Type = *params.Type
	}
	if params.CategoryID != nil {
		t.CategoryID = *params.CategoryID
	}
	if params.SubcategoryID != nil {
		t.SubcategoryID = *params.SubcategoryID
	}
	if params.AccountID != nil {
		t.AccountID = *params.AccountID
	}
	if params.IsPaid != nil {
		t.IsPaid = *params.IsPaid
	}
	if params.CreditorName != nil {
		t.CreditorName = *params.CreditorName
	}
	if params.CreditorPhone != nil {
		t.CreditorPhone = *params.CreditorPhone
	}

	if err := s.repo.Update(ctx, userID, *t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a transaction. If the record belongs to a recurrence
// series, the whole series is deleted atomically; the series is the unit
// of deletion, never a single installment. Deleting an already-gone record
// is a no-op.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	t, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			return nil
		}
		return err
	}

	if t.RecurrenceID != "" {
		if _, err := s.repo.DeleteByRecurrenceID(ctx, userID, t.RecurrenceID); err != nil {
			return fmt.Errorf("failed to delete recurrence series %s: %w", t.RecurrenceID, err)
		}
		return nil
	}

	return s.repo.Delete(ctx, userID, id)
}

// DeleteMonth removes every transaction whose effective date falls in the
// given calendar month, as one atomic batch.
func (s *Service) DeleteMonth(ctx context.Context, userID string, year, month int) (int, error) {
	all, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	matched := FilterByMonth(all, year, month)
	if len(matched) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(matched))
	for _, t := range matched {
		ids = append(ids, t.ID)
	}

	if err := s.repo.DeleteByIDs(ctx, userID, ids); err != nil {
		return 0, fmt.Errorf("failed to delete transactions for %04d-%02d: %w", year, month, err)
	}
	return len(ids), nil
}

// Reset removes all of the user's transactions
func (s *Service) Reset(ctx context.Context, userID string) (int, error) {
	return s.repo.DeleteAll(ctx, userID)
}
