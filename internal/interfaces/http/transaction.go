package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"meusaldo/internal/domain/caldate"
	"meusaldo/internal/domain/transaction"
)

// TransactionHandler exposes transaction CRUD, recurrence expansion and the
// bulk delete operations.
type TransactionHandler struct {
	service *transaction.Service
	log     zerolog.Logger
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(service *transaction.Service, log zerolog.Logger) *TransactionHandler {
	return &TransactionHandler{service: service, log: log}
}

// CreateTransactionRequest is the transport shape for creating a transaction.
// A recurring request yields the whole installment series in the response.
type CreateTransactionRequest struct {
	Description   string        `json:"description"`
	Amount        float64       `json:"amount"`
	Date          caldate.Date  `json:"date"`
	DueDate       *caldate.Date `json:"dueDate,omitempty"`
	Type          string        `json:"type"`
	CategoryID    string        `json:"categoryId"`
	SubcategoryID string        `json:"subcategoryId,omitempty"`
	AccountID     string        `json:"accountId"`
	IsPaid        bool          `json:"isPaid"`
	IsRecurring   bool          `json:"isRecurring"`
	Installments  int           `json:"installments,omitempty"`
	CreditorName  string        `json:"creditorName,omitempty"`
	CreditorPhone string        `json:"creditorPhone,omitempty"`
}

// UpdateTransactionRequest carries the fields to change; absent fields are
// left untouched.
type UpdateTransactionRequest struct {
	Description   *string       `json:"description,omitempty"`
	Amount        *float64      `json:"amount,omitempty"`
	Date          *caldate.Date `json:"date,omitempty"`
	DueDate       *caldate.Date `json:"dueDate,omitempty"`
	Type          *string       `json:"type,omitempty"`
	CategoryID    *string       `json:"categoryId,omitempty"`
	SubcategoryID *string       `json:"subcategoryId,omitempty"`
	AccountID     *string       `json:"accountId,omitempty"`
	IsPaid        *bool         `json:"isPaid,omitempty"`
	CreditorName  *string       `json:"creditorName,omitempty"`
	CreditorPhone *string       `json:"creditorPhone,omitempty"`
}

// HandleTransactions serves GET (list) and POST (create) on /api/transactions.
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r, userID)
	case http.MethodPost:
		h.handleCreate(w, r, userID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TransactionHandler) handleList(w http.ResponseWriter, r *http.Request, userID string) {
	txs, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("failed to list transactions")
		http.Error(w, "Failed to list transactions", http.StatusInternalServerError)
		return
	}
	if txs == nil {
		txs = []transaction.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

func (h *TransactionHandler) handleCreate(w http.ResponseWriter, r *http.Request, userID string) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), userID, transaction.CreateParams{
		Description:   req.Description,
		Amount:        req.Amount,
		Date:          req.Date,
		DueDate:       req.DueDate,
		Type:          req.Type,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		AccountID:     req.AccountID,
		IsPaid:        req.IsPaid,
		IsRecurring:   req.IsRecurring,
		Installments:  req.Installments,
		CreditorName:  req.CreditorName,
		CreditorPhone: req.CreditorPhone,
	})
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error().Err(err).Str("user_id", userID).Msg("failed to create transaction")
		http.Error(w, "Failed to create transaction", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// HandleTransactionByID serves GET, PUT and DELETE on /api/transactions/{id}.
// Deleting any record of a recurrence series deletes the whole series.
func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Transaction ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, userID, id)
	case http.MethodPut:
		h.handleUpdate(w, r, userID, id)
	case http.MethodDelete:
		h.handleDelete(w, r, userID, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TransactionHandler) handleGet(w http.ResponseWriter, r *http.Request, userID, id string) {
	t, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, transaction.ErrTransactionNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("user_id", userID).Str("transaction_id", id).Msg("failed to get transaction")
		http.Error(w, "Failed to get transaction", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TransactionHandler) handleUpdate(w http.ResponseWriter, r *http.Request, userID, id string) {
	var req UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), userID, id, transaction.UpdateParams{
		Description:   req.Description,
		Amount:        req.Amount,
		Date:          req.Date,
		DueDate:       req.DueDate,
		Type:          req.Type,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		AccountID:     req.AccountID,
		IsPaid:        req.IsPaid,
		CreditorName:  req.CreditorName,
		CreditorPhone: req.CreditorPhone,
	})
	if err != nil {
		if errors.Is(err, transaction.ErrTransactionNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
			return
		}
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error().Err(err).Str("user_id", userID).Str("transaction_id", id).Msg("failed to update transaction")
		http.Error(w, "Failed to update transaction", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *TransactionHandler) handleDelete(w http.ResponseWriter, r *http.Request, userID, id string) {
	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Str("transaction_id", id).Msg("failed to delete transaction")
		http.Error(w, "Failed to delete transaction", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteMonth serves DELETE /api/transactions/month/{year}/{month},
// removing every transaction effective in that calendar month.
func (h *TransactionHandler) HandleDeleteMonth(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		http.Error(w, "Invalid year", http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(r.PathValue("month"))
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "Invalid month", http.StatusBadRequest)
		return
	}

	deleted, err := h.service.DeleteMonth(r.Context(), userID, year, month)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Int("year", year).Int("month", month).Msg("failed to delete month")
		http.Error(w, "Failed to delete month", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

// HandleReset serves POST /api/transactions/reset, wiping the user's entire
// transaction history.
func (h *TransactionHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	deleted, err := h.service.Reset(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("failed to reset transactions")
		http.Error(w, "Failed to reset transactions", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

func isValidationError(err error) bool {
	return errors.Is(err, transaction.ErrInvalidType) ||
		errors.Is(err, transaction.ErrInvalidAmount) ||
		errors.Is(err, transaction.ErrMissingDate) ||
		errors.Is(err, transaction.ErrInvalidInstallments) ||
		errors.Is(err, transaction.ErrNotRecurring) ||
		errors.Is(err, transaction.ErrMissingDescription) ||
		errors.Is(err, transaction.ErrMissingCategory) ||
		errors.Is(err, transaction.ErrMissingAccount)
}
