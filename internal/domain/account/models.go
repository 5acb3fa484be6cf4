package account

import (
	"errors"
)

// Allowed account types
var accountTypes = map[string]struct{}{
	"checking":    {},
	"savings":     {},
	"credit_card": {},
	"wallet":      {},
}

// Domain errors
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrEmptyName          = errors.New("account name is required")
)

// Account represents a financial account owned by a user. InitialBalance is
// signed; transaction amounts are applied on top of it by the aggregation
// functions in the transaction package.
type Account struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	InitialBalance float64 `json:"initialBalance"`
	Type           string  `json:"type"` // checking, savings, credit_card or wallet
}

// CreateParams contains parameters for creating a new account.
type CreateParams struct {
	Name           string
	InitialBalance float64
	Type           string
}

// Validate validates the create parameters.
func (p CreateParams) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if !IsValidAccountType(p.Type) {
		return ErrInvalidAccountType
	}
	return nil
}

// UpdateParams contains optional fields for updating an account.
type UpdateParams struct {
	Name           *string
	InitialBalance *float64
	Type           *string
}

// Validate validates the update parameters.
func (p UpdateParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return ErrEmptyName
	}
	if p.Type != nil && !IsValidAccountType(*p.Type) {
		return ErrInvalidAccountType
	}
	return nil
}

// IsValidAccountType checks if the provided account type is valid.
func IsValidAccountType(t string) bool {
	_, ok := accountTypes[t]
	return ok
}
