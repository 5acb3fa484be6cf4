package category

import "context"

// Repository defines the interface for category and subcategory data access.
type Repository interface {
	// CreateCategory stores a new category and returns it with its ID.
	CreateCategory(ctx context.Context, userID string, c Category) (*Category, error)

	// ListCategories retrieves all of the user's categories.
	ListCategories(ctx context.Context, userID string) ([]Category, error)

	// DeleteCategory removes a category. Subcategories and transactions
	// referencing it are left in place.
	DeleteCategory(ctx context.Context, userID, id string) error

	// CreateSubcategory stores a new subcategory and returns it with its ID.
	CreateSubcategory(ctx context.Context, userID string, s Subcategory) (*Subcategory, error)

	// ListSubcategories retrieves all of the user's subcategories.
	ListSubcategories(ctx context.Context, userID string) ([]Subcategory, error)

	// DeleteSubcategory removes a subcategory.
	DeleteSubcategory(ctx context.Context, userID, id string) error
}
