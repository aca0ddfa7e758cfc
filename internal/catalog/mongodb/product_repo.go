// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

// Package mongodb implements catalog repositories on top of MongoDB.
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

// Collection names.
const (
	ProductsCollection   = "products"
	CategoriesCollection = "categories"
	OrdersCollection     = "orders"
)

type productDocument struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description,omitempty"`
	PriceCents  int64     `bson:"price_cents"`
	CategoryID  string    `bson:"category_id"`
	Stock       int       `bson:"stock"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

// ProductRepository implements catalog.ProductRepository using MongoDB.
type ProductRepository struct {
	col *mongo.Collection
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(ProductsCollection)}
}

// EnsureIndexes creates the category lookup index. Idempotent.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category_id", Value: 1}},
	})
	if err != nil {
		return oops.Code("PRODUCT_INDEX_FAILED").
			With("collection", ProductsCollection).
			Wrap(err)
	}
	return nil
}

// Create stores a new product.
func (r *ProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	if _, err := r.col.InsertOne(ctx, productToDocument(product)); err != nil {
		return oops.Code("PRODUCT_CREATE_FAILED").
			With("operation", "insert product").
			With("name", product.Name).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a product by ID.
func (r *ProductRepository) GetByID(ctx context.Context, id ulid.ULID) (*catalog.Product, error) {
	var doc productDocument
	err := r.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, oops.Code("PRODUCT_NOT_FOUND").
			With("id", id.String()).
			Wrap(catalog.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("PRODUCT_GET_FAILED").
			With("id", id.String()).
			Wrap(err)
	}
	return productFromDocument(&doc)
}

// List returns products matching the filter, newest first.
func (r *ProductRepository) List(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, error) {
	query := bson.M{}
	if filter.CategoryID != nil {
		query["category_id"] = filter.CategoryID.String()
	}

	cursor, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, oops.Code("PRODUCT_LIST_FAILED").Wrap(err)
	}
	defer cursor.Close(ctx)

	var products []*catalog.Product
	for cursor.Next(ctx) {
		var doc productDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, oops.Code("PRODUCT_LIST_FAILED").
				With("operation", "decode product").
				Wrap(err)
		}
		product, err := productFromDocument(&doc)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := cursor.Err(); err != nil {
		return nil, oops.Code("PRODUCT_LIST_FAILED").Wrap(err)
	}
	return products, nil
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	product.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": product.ID.String()}, productToDocument(product))
	if err != nil {
		return oops.Code("PRODUCT_UPDATE_FAILED").
			With("id", product.ID.String()).
			Wrap(err)
	}
	if res.MatchedCount == 0 {
		return oops.Code("PRODUCT_NOT_FOUND").
			With("id", product.ID.String()).
			Wrap(catalog.ErrNotFound)
	}
	return nil
}

// AdjustStock adds delta to a product's stock in a single conditional
// update. Negative deltas only match documents with enough stock, which
// keeps concurrent order placements from overselling.
func (r *ProductRepository) AdjustStock(ctx context.Context, id ulid.ULID, delta int) error {
	filter := bson.M{"_id": id.String()}
	if delta < 0 {
		filter["stock"] = bson.M{"$gte": -delta}
	}

	res, err := r.col.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"stock": delta},
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return oops.Code("PRODUCT_STOCK_FAILED").
			With("id", id.String()).
			Wrap(err)
	}
	if res.MatchedCount == 0 {
		if delta < 0 {
			return oops.Code("PRODUCT_INSUFFICIENT_STOCK").
				With("id", id.String()).
				With("requested", -delta).
				Wrap(catalog.ErrInsufficientStock)
		}
		return oops.Code("PRODUCT_NOT_FOUND").
			With("id", id.String()).
			Wrap(catalog.ErrNotFound)
	}
	return nil
}

// Delete removes a product.
func (r *ProductRepository) Delete(ctx context.Context, id ulid.ULID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return oops.Code("PRODUCT_DELETE_FAILED").
			With("id", id.String()).
			Wrap(err)
	}
	if res.DeletedCount == 0 {
		return oops.Code("PRODUCT_NOT_FOUND").
			With("id", id.String()).
			Wrap(catalog.ErrNotFound)
	}
	return nil
}

func productToDocument(p *catalog.Product) *productDocument {
	return &productDocument{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		CategoryID:  p.CategoryID.String(),
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func productFromDocument(doc *productDocument) (*catalog.Product, error) {
	id, err := ulid.Parse(doc.ID)
	if err != nil {
		return nil, oops.Code("PRODUCT_CORRUPT_ID").With("id", doc.ID).Wrap(err)
	}
	categoryID, err := ulid.Parse(doc.CategoryID)
	if err != nil {
		return nil, oops.Code("PRODUCT_CORRUPT_ID").With("category_id", doc.CategoryID).Wrap(err)
	}
	return &catalog.Product{
		ID:          id,
		Name:        doc.Name,
		Description: doc.Description,
		PriceCents:  doc.PriceCents,
		CategoryID:  categoryID,
		Stock:       doc.Stock,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}
