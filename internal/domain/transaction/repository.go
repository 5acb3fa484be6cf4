package transaction

import "context"

// Repository defines the interface for transaction data access.
// Defined in the domain layer, implemented by the Firestore infrastructure.
//
// Batch operations are atomic: either every record in the call is written
// or deleted, or none is. DeleteAll is the exception: it may chunk
// internally for data sets beyond the backend's batch limit.
type Repository interface {
	// Create stores a single transaction and returns it with its assigned ID.
	Create(ctx context.Context, userID string, t Transaction) (*Transaction, error)

	// CreateBatch stores a recurrence series as one atomic batch.
	CreateBatch(ctx context.Context, userID string, series []Transaction) ([]Transaction, error)

	// GetByID retrieves one of the user's transactions by ID.
	GetByID(ctx context.Context, userID, id string) (*Transaction, error)

	// ListByUser retrieves all transactions owned by the user.
	ListByUser(ctx context.Context, userID string) ([]Transaction, error)

	// Update overwrites the stored transaction identified by t.ID.
	Update(ctx context.Context, userID string, t Transaction) error

	// Delete removes a single transaction by ID.
	Delete(ctx context.Context, userID, id string) error

	// DeleteByRecurrenceID removes every record of a recurrence series as
	// one atomic batch and returns how many were removed.
	DeleteByRecurrenceID(ctx context.Context, userID, recurrenceID string) (int, error)

	// DeleteByIDs removes the given transactions as one atomic batch.
	DeleteByIDs(ctx context.Context, userID string, ids []string) error

	// DeleteAll removes every transaction of the user, chunking large
	// batches transparently. Returns how many were removed.
	DeleteAll(ctx context.Context, userID string) (int, error)
}
