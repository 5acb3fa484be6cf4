package transaction

import (
	"context"
	"errors"
	"testing"

	"meusaldo/internal/domain/caldate"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	CreateFunc               func(ctx context.Context, userID string, t Transaction) (*Transaction, error)
	CreateBatchFunc          func(ctx context.Context, userID string, series []Transaction) ([]Transaction, error)
	GetByIDFunc              func(ctx context.Context, userID, id string) (*Transaction, error)
	ListByUserFunc           func(ctx context.Context, userID string) ([]Transaction, error)
	UpdateFunc               func(ctx context.Context, userID string, t Transaction) error
	DeleteFunc               func(ctx context.Context, userID, id string) error
	DeleteByRecurrenceIDFunc func(ctx context.Context, userID, recurrenceID string) (int, error)
	DeleteByIDsFunc          func(ctx context.Context, userID string, ids []string) error
	DeleteAllFunc            func(ctx context.Context, userID string) (int, error)
}

func (m *MockRepository) Create(ctx context.Context, userID string, t Transaction) (*Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, t)
	}
	return &t, nil
}

func (m *MockRepository) CreateBatch(ctx context.Context, userID string, series []Transaction) ([]Transaction, error) {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, userID, series)
	}
	return series, nil
}

func (m *MockRepository) GetByID(ctx context.Context, userID, id string) (*Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, ErrTransactionNotFound
}

func (m *MockRepository) ListByUser(ctx context.Context, userID string) ([]Transaction, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, userID string, t Transaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, t)
	}
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

func (m *MockRepository) DeleteByRecurrenceID(ctx context.Context, userID, recurrenceID string) (int, error) {
	if m.DeleteByRecurrenceIDFunc != nil {
		return m.DeleteByRecurrenceIDFunc(ctx, userID, recurrenceID)
	}
	return 0, nil
}

func (m *MockRepository) DeleteByIDs(ctx context.Context, userID string, ids []string) error {
	if m.DeleteByIDsFunc != nil {
		return m.DeleteByIDsFunc(ctx, userID, ids)
	}
	return nil
}

func (m *MockRepository) DeleteAll(ctx context.Context, userID string) (int, error) {
	if m.DeleteAllFunc != nil {
		return m.DeleteAllFunc(ctx, userID)
	}
	return 0, nil
}

func validParams() CreateParams {
	return CreateParams{
		Description: "Internet",
		Amount:      99.9,
		Date:        caldate.MustParse("2024-04-05"),
		Type:        TypeDebit,
		CategoryID:  "cat-1",
		AccountID:   "acc-1",
	}
}

func TestServiceCreate_Single(t *testing.T) {
	ctx := context.Background()

	var created *Transaction
	repo := &MockRepository{
		CreateFunc: func(ctx context.Context, userID string, tx Transaction) (*Transaction, error) {
			tx.ID = "fs-1"
			created = &tx
			return &tx, nil
		},
	}
	svc := NewService(repo)

	got, err := svc.Create(ctx, "user-1", validParams())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if created == nil || got[0].ID != "fs-1" {
		t.Errorf("stored record not returned: %+v", got)
	}
	if got[0].RecurrenceID != "" {
		t.Errorf("non-recurring record has recurrenceID %q", got[0].RecurrenceID)
	}
}

func TestServiceCreate_RecurringUsesAtomicBatch(t *testing.T) {
	ctx := context.Background()

	var batched []Transaction
	repo := &MockRepository{
		CreateFunc: func(ctx context.Context, userID string, tx Transaction) (*Transaction, error) {
			t.Fatal("single Create must not be called for a recurring request")
			return nil, nil
		},
		CreateBatchFunc: func(ctx context.Context, userID string, series []Transaction) ([]Transaction, error) {
			batched = series
			return series, nil
		},
	}
	svc := NewService(repo)

	params := validParams()
	params.IsRecurring = true
	params.Installments = 4

	got, err := svc.Create(ctx, "user-1", params)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(got) != 4 || len(batched) != 4 {
		t.Fatalf("series length = %d (batched %d), want 4", len(got), len(batched))
	}
	for i, rec := range batched {
		if rec.RecurrenceID != batched[0].RecurrenceID {
			t.Errorf("record %d has a different recurrenceID", i)
		}
	}
}

func TestServiceCreate_Invalid(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&MockRepository{})

	tests := []struct {
		name   string
		mutate func(*CreateParams)
	}{
		{name: "EmptyDescription", mutate: func(p *CreateParams) { p.Description = "" }},
		{name: "NegativeAmount", mutate: func(p *CreateParams) { p.Amount = -1 }},
		{name: "MissingDate", mutate: func(p *CreateParams) { p.Date = caldate.Date{} }},
		{name: "BadType", mutate: func(p *CreateParams) { p.Type = "TRANSFER" }},
		{name: "MissingCategory", mutate: func(p *CreateParams) { p.CategoryID = "" }},
		{name: "MissingAccount", mutate: func(p *CreateParams) { p.AccountID = "" }},
		{name: "RecurringWithoutInstallments", mutate: func(p *CreateParams) { p.IsRecurring = true; p.Installments = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.mutate(&params)
			if _, err := svc.Create(ctx, "user-1", params); err == nil {
				t.Error("Create expected validation error, got nil")
			}
		})
	}
}

func TestServiceDelete_SeriesAsUnit(t *testing.T) {
	ctx := context.Background()

	deletedSeries := ""
	singleDeletes := 0
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*Transaction, error) {
			return &Transaction{ID: id, RecurrenceID: "rec-7", IsRecurring: true, Installments: 3}, nil
		},
		DeleteByRecurrenceIDFunc: func(ctx context.Context, userID, recurrenceID string) (int, error) {
			deletedSeries = recurrenceID
			return 3, nil
		},
		DeleteFunc: func(ctx context.Context, userID, id string) error {
			singleDeletes++
			return nil
		},
	}
	svc := NewService(repo)

	if err := svc.Delete(ctx, "user-1", "tx-2-of-3"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deletedSeries != "rec-7" {
		t.Errorf("deleted series = %q, want rec-7", deletedSeries)
	}
	if singleDeletes != 0 {
		t.Errorf("single delete called %d times for a series member", singleDeletes)
	}
}

func TestServiceDelete_SingleRecord(t *testing.T) {
	ctx := context.Background()

	deletedID := ""
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*Transaction, error) {
			return &Transaction{ID: id}, nil
		},
		DeleteFunc: func(ctx context.Context, userID, id string) error {
			deletedID = id
			return nil
		},
		DeleteByRecurrenceIDFunc: func(ctx context.Context, userID, recurrenceID string) (int, error) {
			t.Fatal("series delete must not be called for a plain record")
			return 0, nil
		},
	}
	svc := NewService(repo)

	if err := svc.Delete(ctx, "user-1", "tx-9"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deletedID != "tx-9" {
		t.Errorf("deleted ID = %q, want tx-9", deletedID)
	}
}

func TestServiceDelete_AlreadyGone(t *testing.T) {
	ctx := context.Background()
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*Transaction, error) {
			return nil, ErrTransactionNotFound
		},
	}
	svc := NewService(repo)

	if err := svc.Delete(ctx, "user-1", "gone"); err != nil {
		t.Errorf("Delete of a missing record should be a no-op, got %v", err)
	}
}

func TestServiceDeleteMonth(t *testing.T) {
	ctx := context.Background()

	due := caldate.MustParse("2024-05-03")
	var deletedIDs []string
	repo := &MockRepository{
		ListByUserFunc: func(ctx context.Context, userID string) ([]Transaction, error) {
			return []Transaction{
				{ID: "in-month", Date: caldate.MustParse("2024-05-10")},
				{ID: "due-in-month", Date: caldate.MustParse("2024-04-28"), DueDate: &due},
				{ID: "other-month", Date: caldate.MustParse("2024-06-01")},
			}, nil
		},
		DeleteByIDsFunc: func(ctx context.Context, userID string, ids []string) error {
			deletedIDs = ids
			return nil
		},
	}
	svc := NewService(repo)

	n, err := svc.DeleteMonth(ctx, "user-1", 2024, 5)
	if err != nil {
		t.Fatalf("DeleteMonth failed: %v", err)
	}
	if n != 2 || len(deletedIDs) != 2 {
		t.Fatalf("deleted %d (batch %d), want 2", n, len(deletedIDs))
	}
	want := map[string]bool{"in-month": true, "due-in-month": true}
	for _, id := range deletedIDs {
		if !want[id] {
			t.Errorf("unexpected deleted ID %q", id)
		}
	}
}

func TestServiceDeleteMonth_NothingToDelete(t *testing.T) {
	ctx := context.Background()
	repo := &MockRepository{
		ListByUserFunc: func(ctx context.Context, userID string) ([]Transaction, error) {
			return nil, nil
		},
		DeleteByIDsFunc: func(ctx context.Context, userID string, ids []string) error {
			t.Fatal("DeleteByIDs must not be called for an empty month")
			return nil
		},
	}
	svc := NewService(repo)

	n, err := svc.DeleteMonth(ctx, "user-1", 2030, 1)
	if err != nil || n != 0 {
		t.Errorf("DeleteMonth = (%d, %v), want (0, nil)", n, err)
	}
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()

	var updated *Transaction
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*Transaction, error) {
			return &Transaction{ID: id, Description: "old", Amount: 10, Date: caldate.MustParse("2024-01-01"), Type: TypeDebit}, nil
		},
		UpdateFunc: func(ctx context.Context, userID string, tx Transaction) error {
			updated = &tx
			return nil
		},
	}
	svc := NewService(repo)

	desc := "new description"
	paid := true
	got, err := svc.Update(ctx, "user-1", "tx-1", UpdateParams{Description: &desc, IsPaid: &paid})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated == nil || updated.Description != "new description" || !updated.IsPaid {
		t.Errorf("Update stored %+v", updated)
	}
	if got.Amount != 10 {
		t.Errorf("untouched field changed: amount = %v", got.Amount)
	}
}

func TestServiceUpdate_RepoError(t *testing.T) {
	ctx := context.Background()
	repoErr := errors.New("backend unavailable")
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*Transaction, error) {
			return nil, repoErr
		},
	}
	svc := NewService(repo)

	if _, err := svc.Update(ctx, "user-1", "tx-1", UpdateParams{}); !errors.Is(err, repoErr) {
		t.Errorf("Update error = %v, want wrapped %v", err, repoErr)
	}
}
