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

type orderItemDocument struct {
	ProductID      string `bson:"product_id"`
	Quantity       int    `bson:"quantity"`
	UnitPriceCents int64  `bson:"unit_price_cents"`
}

type orderDocument struct {
	ID         string              `bson:"_id"`
	UserID     string              `bson:"user_id"`
	Items      []orderItemDocument `bson:"items"`
	TotalCents int64               `bson:"total_cents"`
	Status     string              `bson:"status"`
	CreatedAt  time.Time           `bson:"created_at"`
	UpdatedAt  time.Time           `bson:"updated_at"`
}

// OrderRepository implements catalog.OrderRepository using MongoDB.
type OrderRepository struct {
	col *mongo.Collection
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(OrdersCollection)}
}

// EnsureIndexes creates the user lookup index. Idempotent.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	if err != nil {
		return oops.Code("ORDER_INDEX_FAILED").
			With("collection", OrdersCollection).
			Wrap(err)
	}
	return nil
}

// Create stores a new order.
func (r *OrderRepository) Create(ctx context.Context, order *catalog.Order) error {
	if _, err := r.col.InsertOne(ctx, orderToDocument(order)); err != nil {
		return oops.Code("ORDER_CREATE_FAILED").
			With("order_id", order.ID.String()).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves an order by ID.
func (r *OrderRepository) GetByID(ctx context.Context, id ulid.ULID) (*catalog.Order, error) {
	var doc orderDocument
	err := r.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, oops.Code("ORDER_NOT_FOUND").
			With("id", id.String()).
			Wrap(catalog.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ORDER_GET_FAILED").
			With("id", id.String()).
			Wrap(err)
	}
	return orderFromDocument(&doc)
}

// List returns orders matching the filter, newest first.
func (r *OrderRepository) List(ctx context.Context, filter catalog.OrderFilter) ([]*catalog.Order, error) {
	query := bson.M{}
	if filter.UserID != nil {
		query["user_id"] = filter.UserID.String()
	}

	cursor, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, oops.Code("ORDER_LIST_FAILED").Wrap(err)
	}
	defer cursor.Close(ctx)

	var orders []*catalog.Order
	for cursor.Next(ctx) {
		var doc orderDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, oops.Code("ORDER_LIST_FAILED").
				With("operation", "decode order").
				Wrap(err)
		}
		order, err := orderFromDocument(&doc)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := cursor.Err(); err != nil {
		return nil, oops.Code("ORDER_LIST_FAILED").Wrap(err)
	}
	return orders, nil
}

func orderToDocument(o *catalog.Order) *orderDocument {
	items := make([]orderItemDocument, len(o.Items))
	for i, item := range o.Items {
		items[i] = orderItemDocument{
			ProductID:      item.ProductID.String(),
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		}
	}
	return &orderDocument{
		ID:         o.ID.String(),
		UserID:     o.UserID.String(),
		Items:      items,
		TotalCents: o.TotalCents,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func orderFromDocument(doc *orderDocument) (*catalog.Order, error) {
	id, err := ulid.Parse(doc.ID)
	if err != nil {
		return nil, oops.Code("ORDER_CORRUPT_ID").With("id", doc.ID).Wrap(err)
	}
	userID, err := ulid.Parse(doc.UserID)
	if err != nil {
		return nil, oops.Code("ORDER_CORRUPT_ID").With("user_id", doc.UserID).Wrap(err)
	}

	items := make([]catalog.OrderItem, len(doc.Items))
	for i, item := range doc.Items {
		productID, err := ulid.Parse(item.ProductID)
		if err != nil {
			return nil, oops.Code("ORDER_CORRUPT_ID").With("product_id", item.ProductID).Wrap(err)
		}
		items[i] = catalog.OrderItem{
			ProductID:      productID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		}
	}

	return &catalog.Order{
		ID:         id,
		UserID:     userID,
		Items:      items,
		TotalCents: doc.TotalCents,
		Status:     catalog.OrderStatus(doc.Status),
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}, nil
}
