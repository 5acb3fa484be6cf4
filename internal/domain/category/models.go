package category

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSubcategoryNotFound = errors.New("subcategory not found")
	ErrDuplicateName       = errors.New("category with this name already exists")
	ErrInvalidType         = errors.New("category type must be DEBIT or CREDIT")
	ErrEmptyName           = errors.New("name is required")
)

var validTypes = map[string]struct{}{
	"DEBIT":  {},
	"CREDIT": {},
}

// Category classifies transactions of a single direction (DEBIT or CREDIT).
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Subcategory refines a parent category. Its effective type is the parent's.
type Subcategory struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"categoryId"`
}

// NormalizeName trims surrounding whitespace from a user-supplied name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// IsValidType checks if the provided category type is valid.
func IsValidType(t string) bool {
	_, ok := validTypes[t]
	return ok
}
