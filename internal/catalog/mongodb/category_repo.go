// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopgraph/shopgraph/internal/catalog"
)

type categoryDocument struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

// CategoryRepository implements catalog.CategoryRepository using MongoDB.
type CategoryRepository struct {
	col *mongo.Collection
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{col: db.Collection(CategoriesCollection)}
}

// EnsureIndexes creates the unique name index. Idempotent.
func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return oops.Code("CATEGORY_INDEX_FAILED").
			With("collection", CategoriesCollection).
			Wrap(err)
	}
	return nil
}

// Create stores a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *catalog.Category) error {
	_, err := r.col.InsertOne(ctx, categoryToDocument(category))
	if mongo.IsDuplicateKeyError(err) {
		return oops.Code("CATEGORY_NAME_TAKEN").
			With("name", category.Name).
			Errorf("category %q already exists", category.Name)
	}
	if err != nil {
		return oops.Code("CATEGORY_CREATE_FAILED").
			With("name", category.Name).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id ulid.ULID) (*catalog.Category, error) {
	var doc categoryDocument
	err := r.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, oops.Code("CATEGORY_NOT_FOUND").
			With("id", id.String()).
			Wrap(catalog.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("CATEGORY_GET_FAILED").
			With("id", id.String()).
			Wrap(err)
	}
	return categoryFromDocument(&doc)
}

// List returns all categories sorted by name.
func (r *CategoryRepository) List(ctx context.Context) ([]*catalog.Category, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, oops.Code("CATEGORY_LIST_FAILED").Wrap(err)
	}
	defer cursor.Close(ctx)

	var categories []*catalog.Category
	for cursor.Next(ctx) {
		var doc categoryDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, oops.Code("CATEGORY_LIST_FAILED").
				With("operation", "decode category").
				Wrap(err)
		}
		category, err := categoryFromDocument(&doc)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := cursor.Err(); err != nil {
		return nil, oops.Code("CATEGORY_LIST_FAILED").Wrap(err)
	}
	return categories, nil
}

// Delete removes a category.
func (r *CategoryRepository) Delete(ctx context.Context, id ulid.ULID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return oops.Code("CATEGORY_DELETE_FAILED").
			With("id", id.String()).
			Wrap(err)
	}
	if res.DeletedCount == 0 {
		return oops.Code("CATEGORY_NOT_FOUND").
			With("id", id.String()).
			Wrap(catalog.ErrNotFound)
	}
	return nil
}

func categoryToDocument(c *catalog.Category) *categoryDocument {
	return &categoryDocument{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func categoryFromDocument(doc *categoryDocument) (*catalog.Category, error) {
	id, err := ulid.Parse(doc.ID)
	if err != nil {
		return nil, oops.Code("CATEGORY_CORRUPT_ID").With("id", doc.ID).Wrap(err)
	}
	return &catalog.Category{
		ID:          id,
		Name:        doc.Name,
		Description: doc.Description,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}
