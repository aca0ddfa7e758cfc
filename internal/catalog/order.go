// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package catalog

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

// Order lifecycle states.
const (
	OrderPending OrderStatus = "pending"
	OrderPaid    OrderStatus = "paid"
	OrderShipped OrderStatus = "shipped"
)

// OrderItem is one line of an order. UnitPriceCents is the product's
// price at order time; later catalog price changes do not rewrite
// history.
type OrderItem struct {
	ProductID      ulid.ULID
	Quantity       int
	UnitPriceCents int64
}

// Order is a customer's purchase.
type Order struct {
	ID         ulid.ULID
	UserID     ulid.ULID
	Items      []OrderItem
	TotalCents int64
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewOrder creates a validated pending Order. Items must already carry
// their live unit prices; the total is derived, never supplied.
func NewOrder(userID ulid.ULID, items []OrderItem) (*Order, error) {
	if userID.Compare(ulid.ULID{}) == 0 {
		return nil, oops.Code("ORDER_INVALID_USER").Errorf("user ID cannot be zero")
	}
	if len(items) == 0 {
		return nil, oops.Code("ORDER_EMPTY").Errorf("order must contain at least one item")
	}

	var total int64
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, oops.Code("ORDER_INVALID_QUANTITY").
				With("product_id", item.ProductID.String()).
				Errorf("quantity must be positive")
		}
		if item.UnitPriceCents < 0 {
			return nil, oops.Code("ORDER_INVALID_PRICE").
				With("product_id", item.ProductID.String()).
				Errorf("unit price cannot be negative")
		}
		total += item.UnitPriceCents * int64(item.Quantity)
	}

	now := time.Now()
	return &Order{
		ID:         ulid.Make(),
		UserID:     userID,
		Items:      items,
		TotalCents: total,
		Status:     OrderPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	UserID *ulid.ULID
}

// OrderRepository manages order persistence.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id ulid.ULID) (*Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*Order, error)
}
