package transaction

import (
	"errors"

	"meusaldo/internal/domain/caldate"
)

// Transaction types
const (
	TypeDebit  = "DEBIT"
	TypeCredit = "CREDIT"
)

var validTypes = map[string]struct{}{
	TypeDebit:  {},
	TypeCredit: {},
}

// Domain errors
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidType         = errors.New("transaction type must be DEBIT or CREDIT")
	ErrInvalidAmount       = errors.New("transaction amount must not be negative")
	ErrMissingDate         = errors.New("transaction date is required")
	ErrMissingDescription  = errors.New("transaction description is required")
	ErrMissingCategory     = errors.New("category ID is required")
	ErrMissingAccount      = errors.New("account ID is required")
	ErrInvalidInstallments = errors.New("recurring transaction requires at least 1 installment")
	ErrNotRecurring        = errors.New("transaction is not recurring")
)

// Transaction is the central entity: a single dated debit or credit.
// Amount is always non-negative; direction is carried by Type.
// Records generated from one recurring request share a RecurrenceID and are
// treated as one unit for deletion.
type Transaction struct {
	ID            string        `json:"id"`
	Description   string        `json:"description"`
	Amount        float64       `json:"amount"`
	Date          caldate.Date  `json:"date"`
	DueDate       *caldate.Date `json:"dueDate,omitempty"`
	Type          string        `json:"type"` // "DEBIT" or "CREDIT"
	CategoryID    string        `json:"categoryId"`
	SubcategoryID string        `json:"subcategoryId,omitempty"`
	AccountID     string        `json:"accountId"`
	IsPaid        bool          `json:"isPaid"`
	IsRecurring   bool          `json:"isRecurring"`
	Installments  int           `json:"installments,omitempty"`
	RecurrenceID  string        `json:"recurrenceId,omitempty"`
	CreditorName  string        `json:"creditorName,omitempty"`
	CreditorPhone string        `json:"creditorPhone,omitempty"`
}

// EffectiveDate returns the due date when present, otherwise the nominal
// date. This is the single date used for month-scoping and recency ordering.
func (t Transaction) EffectiveDate() caldate.Date {
	if t.DueDate != nil && !t.DueDate.IsZero() {
		return *t.DueDate
	}
	return t.Date
}

// CreateParams contains parameters for creating a transaction.
// The ID is assigned by storage, never by the caller.
type CreateParams struct {
	Description   string
	Amount        float64
	Date          caldate.Date
	DueDate       *caldate.Date
	Type          string
	CategoryID    string
	SubcategoryID string
	AccountID     string
	IsPaid        bool
	IsRecurring   bool
	Installments  int
	CreditorName  string
	CreditorPhone string
}

// Validate validates the create parameters.
func (p CreateParams) Validate() error {
	if p.Description == "" {
		return ErrMissingDescription
	}
	if p.Amount < 0 {
		return ErrInvalidAmount
	}
	if p.Date.IsZero() {
		return ErrMissingDate
	}
	if !IsValidType(p.Type) {
		return ErrInvalidType
	}
	if p.CategoryID == "" {
		return ErrMissingCategory
	}
	if p.AccountID == "" {
		return ErrMissingAccount
	}
	if p.IsRecurring && p.Installments < 1 {
		return ErrInvalidInstallments
	}
	return nil
}

// UpdateParams contains optional fields for updating a transaction.
// Recurrence fields are deliberately absent: a series is reshaped by
// deleting and recreating it, never by editing installments in place.
type UpdateParams struct {
	Description   *string
	Amount        *float64
	Date          *caldate.Date
	DueDate       *caldate.Date
	Type          *string
	CategoryID    *string
	SubcategoryID *string
	AccountID     *string
	IsPaid        *bool
	CreditorName  *string
	CreditorPhone *string
}

// Validate validates the update parameters.
func (p UpdateParams) Validate() error {
	if p.Description != nil && *p.Description == "" {
		return ErrMissingDescription
	}
	if p.Amount != nil && *p.Amount < 0 {
		return ErrInvalidAmount
	}
	if p.Date != nil && p.Date.IsZero() {
		return ErrMissingDate
	}
	if p.Type != nil && !IsValidType(*p.Type) {
		return ErrInvalidType
	}
	return nil
}

// IsValidType checks if the provided transaction type is valid.
func IsValidType(t string) bool {
	_, ok := validTypes[t]
	return ok
}

// base builds a Transaction from create parameters without storage-assigned
// fields. Recurrence fields are filled in by ExpandRecurrence.
func (p CreateParams) base() Transaction {
	return Transaction{
		Description:   p.Description,
		Amount:        p.Amount,
		Date:          p.Date,
		DueDate:       p.DueDate,
		Type:          p.Type,
		CategoryID:    p.CategoryID,
		SubcategoryID: p.SubcategoryID,
		AccountID:     p.AccountID,
		IsPaid:        p.IsPaid,
		CreditorName:  p.CreditorName,
		CreditorPhone: p.CreditorPhone,
	}
}
