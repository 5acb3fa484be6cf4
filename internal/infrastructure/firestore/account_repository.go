package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"meusaldo/internal/domain/account"
)

type accountDoc struct {
	Name           string  `firestore:"name"`
	InitialBalance float64 `firestore:"initialBalance"`
	Type           string  `firestore:"type"`
}

// AccountRepository implements account.Repository on Firestore.
type AccountRepository struct {
	client *Client
}

// NewAccountRepository creates a new Firestore-backed account repository.
func NewAccountRepository(client *Client) *AccountRepository {
	return &AccountRepository{client: client}
}

func (r *AccountRepository) col(userID string) *firestore.CollectionRef {
	return r.client.userDoc(userID).Collection(accountsCollection)
}

func (r *AccountRepository) Create(ctx context.Context, userID string, params account.CreateParams) (*account.Account, error) {
	ref := r.col(userID).NewDoc()
	doc := accountDoc{Name: params.Name, InitialBalance: params.InitialBalance, Type: params.Type}
	if _, err := ref.Set(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &account.Account{
		ID:             ref.ID,
		Name:           params.Name,
		InitialBalance: params.InitialBalance,
		Type:           params.Type,
	}, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, userID, id string) (*account.Account, error) {
	snap, err := r.col(userID).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	var doc accountDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode account %s: %w", id, err)
	}
	return &account.Account{
		ID:             snap.Ref.ID,
		Name:           doc.Name,
		InitialBalance: doc.InitialBalance,
		Type:           doc.Type,
	}, nil
}

func (r *AccountRepository) ListByUser(ctx context.Context, userID string) ([]account.Account, error) {
	var out []account.Account
	it := r.col(userID).Documents(ctx)
	defer it.Stop()
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list accounts: %w", err)
		}

		var doc accountDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode account %s: %w", snap.Ref.ID, err)
		}
		out = append(out, account.Account{
			ID:             snap.Ref.ID,
			Name:           doc.Name,
			InitialBalance: doc.InitialBalance,
			Type:           doc.Type,
		})
	}
	return out, nil
}

func (r *AccountRepository) Update(ctx context.Context, userID string, acc account.Account) error {
	doc := accountDoc{Name: acc.Name, InitialBalance: acc.InitialBalance, Type: acc.Type}
	if _, err := r.col(userID).Doc(acc.ID).Set(ctx, doc); err != nil {
		return fmt.Errorf("failed to update account %s: %w", acc.ID, err)
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.col(userID).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete account %s: %w", id, err)
	}
	return nil
}
