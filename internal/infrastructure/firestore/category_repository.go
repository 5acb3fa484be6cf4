package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"meusaldo/internal/domain/category"
)

type categoryDoc struct {
	Name string `firestore:"name"`
	Type string `firestore:"type"`
}

type subcategoryDoc struct {
	Name       string `firestore:"name"`
	CategoryID string `firestore:"categoryId"`
}

// CategoryRepository implements category.Repository on Firestore.
type CategoryRepository struct {
	client *Client
}

// NewCategoryRepository creates a new Firestore-backed category repository.
func NewCategoryRepository(client *Client) *CategoryRepository {
	return &CategoryRepository{client: client}
}

func (r *CategoryRepository) categories(userID string) *firestore.CollectionRef {
	return r.client.userDoc(userID).Collection(categoriesCollection)
}

func (r *CategoryRepository) subcategories(userID string) *firestore.CollectionRef {
	return r.client.userDoc(userID).Collection(subcategoriesCollection)
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, userID string, c category.Category) (*category.Category, error) {
	ref := r.categories(userID).NewDoc()
	if _, err := ref.Set(ctx, categoryDoc{Name: c.Name, Type: c.Type}); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	c.ID = ref.ID
	return &c, nil
}

func (r *CategoryRepository) ListCategories(ctx context.Context, userID string) ([]category.Category, error) {
	var out []category.Category
	it := r.categories(userID).Documents(ctx)
	defer it.Stop()
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}

		var doc categoryDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode category %s: %w", snap.Ref.ID, err)
		}
		out = append(out, category.Category{ID: snap.Ref.ID, Name: doc.Name, Type: doc.Type})
	}
	return out, nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, userID, id string) error {
	if _, err := r.categories(userID).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	return nil
}

func (r *CategoryRepository) CreateSubcategory(ctx context.Context, userID string, s category.Subcategory) (*category.Subcategory, error) {
	ref := r.subcategories(userID).NewDoc()
	if _, err := ref.Set(ctx, subcategoryDoc{Name: s.Name, CategoryID: s.CategoryID}); err != nil {
		return nil, fmt.Errorf("failed to create subcategory: %w", err)
	}
	s.ID = ref.ID
	return &s, nil
}

func (r *CategoryRepository) ListSubcategories(ctx context.Context, userID string) ([]category.Subcategory, error) {
	var out []category.Subcategory
	it := r.subcategories(userID).Documents(ctx)
	defer it.Stop()
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list subcategories: %w", err)
		}

		var doc subcategoryDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode subcategory %s: %w", snap.Ref.ID, err)
		}
		out = append(out, category.Subcategory{ID: snap.Ref.ID, Name: doc.Name, CategoryID: doc.CategoryID})
	}
	return out, nil
}

func (r *CategoryRepository) DeleteSubcategory(ctx context.Context, userID, id string) error {
	if _, err := r.subcategories(userID).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete subcategory %s: %w", id, err)
	}
	return nil
}
