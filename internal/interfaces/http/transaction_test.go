package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"meusaldo/internal/domain/caldate"
	"meusaldo/internal/domain/transaction"
	"meusaldo/internal/shared/middleware"
)

// memoryTransactionRepo is an in-memory transaction.Repository for handler tests.
type memoryTransactionRepo struct {
	nextID int
	store  map[string]transaction.Transaction
}

func newMemoryTransactionRepo() *memoryTransactionRepo {
	return &memoryTransactionRepo{store: map[string]transaction.Transaction{}}
}

func (m *memoryTransactionRepo) assignID() string {
	m.nextID++
	return fmt.Sprintf("tx-%d", m.nextID)
}

func (m *memoryTransactionRepo) Create(ctx context.Context, userID string, t transaction.Transaction) (*transaction.Transaction, error) {
	t.ID = m.assignID()
	m.store[t.ID] = t
	return &t, nil
}

func (m *memoryTransactionRepo) CreateBatch(ctx context.Context, userID string, series []transaction.Transaction) ([]transaction.Transaction, error) {
	out := make([]transaction.Transaction, len(series))
	for i, t := range series {
		t.ID = m.assignID()
		m.store[t.ID] = t
		out[i] = t
	}
	return out, nil
}

func (m *memoryTransactionRepo) GetByID(ctx context.Context, userID, id string) (*transaction.Transaction, error) {
	t, ok := m.store[id]
	if !ok {
		return nil, transaction.ErrTransactionNotFound
	}
	return &t, nil
}

func (m *memoryTransactionRepo) ListByUser(ctx context.Context, userID string) ([]transaction.Transaction, error) {
	var out []transaction.Transaction
	for _, t := range m.store {
		out = append(out, t)
	}
	return out, nil
}

func (m *memoryTransactionRepo) Update(ctx context.Context, userID string, t transaction.Transaction) error {
	m.store[t.ID] = t
	return nil
}

func (m *memoryTransactionRepo) Delete(ctx context.Context, userID, id string) error {
	delete(m.store, id)
	return nil
}

func (m *memoryTransactionRepo) DeleteByRecurrenceID(ctx context.Context, userID, recurrenceID string) (int, error) {
	n := 0
	for id, t := range m.store {
		if t.RecurrenceID == recurrenceID {
			delete(m.store, id)
			n++
		}
	}
	return n, nil
}

func (m *memoryTransactionRepo) DeleteByIDs(ctx context.Context, userID string, ids []string) error {
	for _, id := range ids {
		delete(m.store, id)
	}
	return nil
}

func (m *memoryTransactionRepo) DeleteAll(ctx context.Context, userID string) (int, error) {
	n := len(m.store)
	m.store = map[string]transaction.Transaction{}
	return n, nil
}

func newTransactionMux(repo *memoryTransactionRepo) *http.ServeMux {
	handler := NewTransactionHandler(transaction.NewService(repo), zerolog.Nop())
	mux := http.NewServeMux()
	mux.HandleFunc("/api/transactions", handler.HandleTransactions)
	mux.HandleFunc("/api/transactions/reset", handler.HandleReset)
	mux.HandleFunc("/api/transactions/month/{year}/{month}", handler.HandleDeleteMonth)
	mux.HandleFunc("/api/transactions/{id}", handler.HandleTransactionByID)
	return mux
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, "user-1")
	return req.WithContext(ctx)
}

func TestHandleCreateTransaction_Recurring(t *testing.T) {
	repo := newMemoryTransactionRepo()
	mux := newTransactionMux(repo)

	body := `{
		"description": "Aluguel",
		"amount": 1200,
		"date": "2024-01-31",
		"type": "DEBIT",
		"categoryId": "cat-1",
		"accountId": "acc-1",
		"isRecurring": true,
		"installments": 3
	}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/transactions", body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var created []transaction.Transaction
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("created %d records, want 3", len(created))
	}
	if created[0].Description != "Aluguel (1/3)" || created[2].Description != "Aluguel (3/3)" {
		t.Errorf("descriptions = %q / %q", created[0].Description, created[2].Description)
	}
	// Day-of-month clamping across February
	if created[1].Date != caldate.MustParse("2024-02-29") {
		t.Errorf("second installment date = %s", created[1].Date)
	}
	if len(repo.store) != 3 {
		t.Errorf("stored %d records", len(repo.store))
	}
}

func TestHandleCreateTransaction_Invalid(t *testing.T) {
	mux := newTransactionMux(newMemoryTransactionRepo())

	body := `{"description": "x", "amount": 10, "date": "2024-01-01", "type": "TRANSFER", "categoryId": "c", "accountId": "a"}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/transactions", body))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleTransactions_Unauthenticated(t *testing.T) {
	mux := newTransactionMux(newMemoryTransactionRepo())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/transactions", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestHandleDeleteTransaction_RemovesWholeSeries(t *testing.T) {
	repo := newMemoryTransactionRepo()
	mux := newTransactionMux(repo)

	// Seed a 3-installment series plus one unrelated record.
	series, _ := transaction.ExpandRecurrence(transaction.CreateParams{
		Description: "Internet", Amount: 100, Date: caldate.MustParse("2024-03-10"),
		Type: transaction.TypeDebit, CategoryID: "c", AccountID: "a",
		IsRecurring: true, Installments: 3,
	})
	stored, _ := repo.CreateBatch(context.Background(), "user-1", series)
	other, _ := repo.Create(context.Background(), "user-1", transaction.Transaction{
		Description: "Mercado", Amount: 50, Date: caldate.MustParse("2024-03-12"),
		Type: transaction.TypeDebit, CategoryID: "c", AccountID: "a",
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/transactions/"+stored[1].ID, ""))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(repo.store) != 1 {
		t.Errorf("remaining records = %d, want only the unrelated one", len(repo.store))
	}
	if _, ok := repo.store[other.ID]; !ok {
		t.Error("unrelated record was deleted")
	}
}

func TestHandleDeleteMonth(t *testing.T) {
	repo := newMemoryTransactionRepo()
	mux := newTransactionMux(repo)

	repo.Create(context.Background(), "user-1", transaction.Transaction{
		Description: "Abril", Amount: 10, Date: caldate.MustParse("2024-04-10"),
		Type: transaction.TypeDebit, CategoryID: "c", AccountID: "a",
	})
	repo.Create(context.Background(), "user-1", transaction.Transaction{
		Description: "Maio", Amount: 10, Date: caldate.MustParse("2024-05-10"),
		Type: transaction.TypeDebit, CategoryID: "c", AccountID: "a",
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/transactions/month/2024/4", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp map[string]int
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp["deleted"] != 1 {
		t.Errorf("deleted = %d, want 1", resp["deleted"])
	}
	if len(repo.store) != 1 {
		t.Errorf("remaining = %d, want 1", len(repo.store))
	}
}

func TestHandleReset(t *testing.T) {
	repo := newMemoryTransactionRepo()
	mux := newTransactionMux(repo)

	repo.Create(context.Background(), "user-1", transaction.Transaction{
		Description: "a", Amount: 1, Date: caldate.MustParse("2024-01-01"),
		Type: transaction.TypeDebit, CategoryID: "c", AccountID: "a",
	})
	repo.Create(context.Background(), "user-1", transaction.Transaction{
		Description: "b", Amount: 2, Date: caldate.MustParse("2024-02-01"),
		Type: transaction.TypeCredit, CategoryID: "c", AccountID: "a",
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/transactions/reset", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]int
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp["deleted"] != 2 {
		t.Errorf("deleted = %d, want 2", resp["deleted"])
	}
	if len(repo.store) != 0 {
		t.Errorf("store not emptied: %d left", len(repo.store))
	}
}

func TestHandleUpdateTransaction_TogglePaid(t *testing.T) {
	repo := newMemoryTransactionRepo()
	mux := newTransactionMux(repo)

	created, _ := repo.Create(context.Background(), "user-1", transaction.Transaction{
		Description: "Luz", Amount: 150, Date: caldate.MustParse("2024-04-01"),
		Type: transaction.TypeDebit, CategoryID: "c", AccountID: "a",
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/transactions/"+created.ID, `{"isPaid": true}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := repo.store[created.ID]; !got.IsPaid || got.Amount != 150 {
		t.Errorf("stored = %+v", got)
	}
}
