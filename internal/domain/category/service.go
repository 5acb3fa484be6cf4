package category

import (
	"context"
	"strings"
)

// Service contains the business logic for category and subcategory operations
type Service struct {
	repo Repository
}

// NewService creates a new category service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddCategory creates a category, rejecting empty and duplicate names.
// Name comparison is case-insensitive, matching the duplicate check the
// user sees in the categories screen.
func (s *Service) AddCategory(ctx context.Context, userID, name, categoryType string) (*Category, error) {
	name = NormalizeName(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !IsValidType(categoryType) {
		return nil, ErrInvalidType
	}

	existing, err := s.repo.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if strings.EqualFold(c.Name, name) {
			return nil, ErrDuplicateName
		}
	}

	return s.repo.CreateCategory(ctx, userID, Category{Name: name, Type: categoryType})
}

// ListCategories retrieves all of the user's categories
func (s *Service) ListCategories(ctx context.Context, userID string) ([]Category, error) {
	return s.repo.ListCategories(ctx, userID)
}

// DeleteCategory removes a category without cascading: subcategories and
// transactions keep their (now dangling) reference and reports fall back to
// the uncategorized label.
func (s *Service) DeleteCategory(ctx context.Context, userID, id string) error {
	return s.repo.DeleteCategory(ctx, userID, id)
}

// AddSubcategory creates a subcategory under an existing parent category.
func (s *Service) AddSubcategory(ctx context.Context, userID, name, categoryID string) (*Subcategory, error) {
	name = NormalizeName(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if categoryID == "" {
		return nil, ErrCategoryNotFound
	}

	parents, err := s.repo.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	found := false
	for _, c := range parents {
		if c.ID == categoryID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrCategoryNotFound
	}

	return s.repo.CreateSubcategory(ctx, userID, Subcategory{Name: name, CategoryID: categoryID})
}

// ListSubcategories retrieves all of the user's subcategories
func (s *Service) ListSubcategories(ctx context.Context, userID string) ([]Subcategory, error) {
	return s.repo.ListSubcategories(ctx, userID)
}

// DeleteSubcategory removes a subcategory
func (s *Service) DeleteSubcategory(ctx context.Context, userID, id string) error {
	return s.repo.DeleteSubcategory(ctx, userID, id)
}
