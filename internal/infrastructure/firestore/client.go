// Package firestore implements the domain repositories on Cloud Firestore.
// All user data lives under users/{uid}; every query is scoped to one user's
// subtree.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Firestore rejects atomic write batches above this size.
const maxBatchSize = 500

const (
	usersCollection         = "users"
	transactionsCollection  = "transactions"
	categoriesCollection    = "categories"
	subcategoriesCollection = "subcategories"
	accountsCollection      = "accounts"
	settingsCollection      = "settings"
)

// Client wraps the Firebase app's Firestore and Auth handles.
type Client struct {
	fs   *firestore.Client
	auth *auth.Client
}

// NewClient initializes a Firebase app and returns Firestore and Auth clients.
// With an empty credentialsFile, application default credentials are used.
func NewClient(ctx context.Context, projectID, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firestore client: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}

	return &Client{fs: fs, auth: authClient}, nil
}

// Close releases the underlying Firestore connection.
func (c *Client) Close() error {
	return c.fs.Close()
}

// VerifyIDToken validates a Firebase ID token and returns the user's UID.
func (c *Client) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	token, err := c.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("failed to verify id token: %w", err)
	}
	return token.UID, nil
}

// ListUserIDs returns the UIDs of every user with data in the store. Uses
// DocumentRefs so users whose document only holds subcollections are still
// listed.
func (c *Client) ListUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	it := c.fs.Collection(usersCollection).DocumentRefs(ctx)
	for {
		ref, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}
		ids = append(ids, ref.ID)
	}
	return ids, nil
}

func (c *Client) userDoc(userID string) *firestore.DocumentRef {
	return c.fs.Collection(usersCollection).Doc(userID)
}

// deleteRefs removes the given documents in atomic batches of up to 500.
func (c *Client) deleteRefs(ctx context.Context, refs []*firestore.DocumentRef) error {
	for start := 0; start < len(refs); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(refs) {
			end = len(refs)
		}

		batch := c.fs.Batch()
		for _, ref := range refs[start:end] {
			batch.Delete(ref)
		}
		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit delete batch: %w", err)
		}
	}
	return nil
}
