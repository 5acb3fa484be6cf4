package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"meusaldo/internal/domain/caldate"
	"meusaldo/internal/domain/transaction"
)

// transactionDoc is the stored shape of a transaction. Dates are persisted
// as plain YYYY-MM-DD strings so the calendar-day semantics survive storage
// untouched by timezones.
type transactionDoc struct {
	Description   string  `firestore:"description"`
	Amount        float64 `firestore:"amount"`
	Date          string  `firestore:"date"`
	DueDate       string  `firestore:"dueDate,omitempty"`
	Type          string  `firestore:"type"`
	CategoryID    string  `firestore:"categoryId"`
	SubcategoryID string  `firestore:"subcategoryId,omitempty"`
	AccountID     string  `firestore:"accountId"`
	IsPaid        bool    `firestore:"isPaid"`
	IsRecurring   bool    `firestore:"isRecurring"`
	Installments  int     `firestore:"installments,omitempty"`
	RecurrenceID  string  `firestore:"recurrenceId,omitempty"`
	CreditorName  string  `firestore:"creditorName,omitempty"`
	CreditorPhone string  `firestore:"creditorPhone,omitempty"`
}

func toTransactionDoc(t transaction.Transaction) transactionDoc {
	doc := transactionDoc{
		Description:   t.Description,
		Amount:        t.Amount,
		Date:          t.Date.String(),
		Type:          t.Type,
		CategoryID:    t.CategoryID,
		SubcategoryID: t.SubcategoryID,
		AccountID:     t.AccountID,
		IsPaid:        t.IsPaid,
		IsRecurring:   t.IsRecurring,
		Installments:  t.Installments,
		RecurrenceID:  t.RecurrenceID,
		CreditorName:  t.CreditorName,
		CreditorPhone: t.CreditorPhone,
	}
	if t.DueDate != nil && !t.DueDate.IsZero() {
		doc.DueDate = t.DueDate.String()
	}
	return doc
}

func fromTransactionDoc(id string, doc transactionDoc) (transaction.Transaction, error) {
	date, err := caldate.Parse(doc.Date)
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("transaction %s has invalid date %q: %w", id, doc.Date, err)
	}

	t := transaction.Transaction{
		ID:            id,
		Description:   doc.Description,
		Amount:        doc.Amount,
		Date:          date,
		Type:          doc.Type,
		CategoryID:    doc.CategoryID,
		SubcategoryID: doc.SubcategoryID,
		AccountID:     doc.AccountID,
		IsPaid:        doc.IsPaid,
		IsRecurring:   doc.IsRecurring,
		Installments:  doc.Installments,
		RecurrenceID:  doc.RecurrenceID,
		CreditorName:  doc.CreditorName,
		CreditorPhone: doc.CreditorPhone,
	}
	if doc.DueDate != "" {
		due, err := caldate.Parse(doc.DueDate)
		if err != nil {
			return transaction.Transaction{}, fmt.Errorf("transaction %s has invalid due date %q: %w", id, doc.DueDate, err)
		}
		t.DueDate = &due
	}
	return t, nil
}

// TransactionRepository implements transaction.Repository on Firestore.
type TransactionRepository struct {
	client *Client
}

// NewTransactionRepository creates a new Firestore-backed transaction repository.
func NewTransactionRepository(client *Client) *TransactionRepository {
	return &TransactionRepository{client: client}
}

func (r *TransactionRepository) col(userID string) *firestore.CollectionRef {
	return r.client.userDoc(userID).Collection(transactionsCollection)
}

func (r *TransactionRepository) Create(ctx context.Context, userID string, t transaction.Transaction) (*transaction.Transaction, error) {
	ref := r.col(userID).NewDoc()
	if _, err := ref.Set(ctx, toTransactionDoc(t)); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	t.ID = ref.ID
	return &t, nil
}

// CreateBatch stores a recurrence series in a single atomic write batch.
func (r *TransactionRepository) CreateBatch(ctx context.Context, userID string, series []transaction.Transaction) ([]transaction.Transaction, error) {
	if len(series) == 0 {
		return nil, nil
	}
	if len(series) > maxBatchSize {
		return nil, fmt.Errorf("series of %d exceeds the atomic batch limit of %d", len(series), maxBatchSize)
	}

	batch := r.client.fs.Batch()
	out := make([]transaction.Transaction, len(series))
	for i, t := range series {
		ref := r.col(userID).NewDoc()
		batch.Set(ref, toTransactionDoc(t))
		t.ID = ref.ID
		out[i] = t
	}
	if _, err := batch.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction batch: %w", err)
	}
	return out, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, userID, id string) (*transaction.Transaction, error) {
	snap, err := r.col(userID).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, transaction.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	var doc transactionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode transaction %s: %w", id, err)
	}
	t, err := fromTransactionDoc(snap.Ref.ID, doc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]transaction.Transaction, error) {
	var out []transaction.Transaction
	it := r.col(userID).Documents(ctx)
	defer it.Stop()
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list transactions: %w", err)
		}

		var doc transactionDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode transaction %s: %w", snap.Ref.ID, err)
		}
		t, err := fromTransactionDoc(snap.Ref.ID, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *TransactionRepository) Update(ctx context.Context, userID string, t transaction.Transaction) error {
	if _, err := r.col(userID).Doc(t.ID).Set(ctx, toTransactionDoc(t)); err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", t.ID, err)
	}
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.col(userID).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", id, err)
	}
	return nil
}

// DeleteByRecurrenceID removes every record of a recurrence series in one
// atomic batch, so a partially deleted series can never be observed.
func (r *TransactionRepository) DeleteByRecurrenceID(ctx context.Context, userID, recurrenceID string) (int, error) {
	refs, err := r.col(userID).Where("recurrenceId", "==", recurrenceID).Select().Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to query recurrence series %s: %w", recurrenceID, err)
	}
	if len(refs) == 0 {
		return 0, nil
	}
	if len(refs) > maxBatchSize {
		return 0, fmt.Errorf("series of %d exceeds the atomic batch limit of %d", len(refs), maxBatchSize)
	}

	batch := r.client.fs.Batch()
	for _, snap := range refs {
		batch.Delete(snap.Ref)
	}
	if _, err := batch.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to delete recurrence series %s: %w", recurrenceID, err)
	}
	return len(refs), nil
}

func (r *TransactionRepository) DeleteByIDs(ctx context.Context, userID string, ids []string) error {
	refs := make([]*firestore.DocumentRef, len(ids))
	for i, id := range ids {
		refs[i] = r.col(userID).Doc(id)
	}
	return r.client.deleteRefs(ctx, refs)
}

// DeleteAll wipes the user's entire transaction history, committing in
// chunks of up to 500 deletes.
func (r *TransactionRepository) DeleteAll(ctx context.Context, userID string) (int, error) {
	snaps, err := r.col(userID).Select().Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to list transactions for reset: %w", err)
	}

	refs := make([]*firestore.DocumentRef, len(snaps))
	for i, snap := range snaps {
		refs[i] = snap.Ref
	}
	if err := r.client.deleteRefs(ctx, refs); err != nil {
		return 0, err
	}
	return len(refs), nil
}
