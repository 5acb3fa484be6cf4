package account

import "context"

// Repository defines the interface for account data access.
// Defined in the domain layer, implemented by the Firestore infrastructure.
type Repository interface {
	// Create stores a new account and returns it with its assigned ID.
	Create(ctx context.Context, userID string, params CreateParams) (*Account, error)

	// GetByID retrieves one of the user's accounts by ID.
	GetByID(ctx context.Context, userID, id string) (*Account, error)

	// ListByUser retrieves all accounts owned by the user.
	ListByUser(ctx context.Context, userID string) ([]Account, error)

	// Update overwrites the stored account identified by acc.ID.
	Update(ctx context.Context, userID string, acc Account) error

	// Delete removes an account. Transactions referencing it are left in
	// place; the aggregator degrades dangling references gracefully.
	Delete(ctx context.Context, userID, id string) error
}
