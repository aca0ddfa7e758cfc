// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/shopgraph/shopgraph/internal/access"
	"github.com/shopgraph/shopgraph/internal/auth"
)

// OrderService coordinates order placement and retrieval.
type OrderService struct {
	orders   OrderRepository
	products ProductRepository
	logger   *slog.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders OrderRepository, products ProductRepository) (*OrderService, error) {
	return NewOrderServiceWithLogger(orders, products, slog.Default())
}

// NewOrderServiceWithLogger creates a new OrderService with an explicit logger.
func NewOrderServiceWithLogger(orders OrderRepository, products ProductRepository, logger *slog.Logger) (*OrderService, error) {
	if orders == nil {
		return nil, oops.Errorf("orders repository is required")
	}
	if products == nil {
		return nil, oops.Errorf("products repository is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &OrderService{orders: orders, products: products, logger: logger}, nil
}

// OrderItemInput is one requested order line. Prices never come from the
// client; they are read from the live product records at placement time.
type OrderItemInput struct {
	ProductID ulid.ULID
	Quantity  int
}

// PlaceOrder creates a pending order for the acting user. Each item is
// re-priced from the live product record and checked against stock;
// stock is decremented as part of placement.
func (s *OrderService) PlaceOrder(ctx context.Context, userID ulid.ULID, items []OrderItemInput) (*Order, error) {
	if len(items) == 0 {
		return nil, oops.Code("ORDER_EMPTY").Errorf("order must contain at least one item")
	}

	// Quantities aggregate per product, so an order with several lines
	// for the same product counts against stock as one total.
	totals := make(map[ulid.ULID]int, len(items))
	productIDs := make([]ulid.ULID, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, oops.Code("ORDER_INVALID_QUANTITY").
				With("product_id", item.ProductID.String()).
				Errorf("quantity must be positive")
		}
		if _, seen := totals[item.ProductID]; !seen {
			productIDs = append(productIDs, item.ProductID)
		}
		totals[item.ProductID] += item.Quantity
	}

	productsByID := make(map[ulid.ULID]*Product, len(productIDs))
	for _, id := range productIDs {
		product, err := s.products.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, oops.Code("PRODUCT_NOT_FOUND").
					With("product_id", id.String()).
					Wrap(ErrNotFound)
			}
			return nil, oops.Code("ORDER_PLACE_FAILED").
				With("operation", "get product").
				Wrap(err)
		}
		if product.Stock < totals[id] {
			return nil, oops.Code("ORDER_INSUFFICIENT_STOCK").
				With("product_id", product.ID.String()).
				With("requested", totals[id]).
				With("available", product.Stock).
				Wrap(ErrInsufficientStock)
		}
		productsByID[id] = product
	}

	lines := make([]OrderItem, 0, len(items))
	for _, item := range items {
		product := productsByID[item.ProductID]
		lines = append(lines, OrderItem{
			ProductID:      product.ID,
			Quantity:       item.Quantity,
			UnitPriceCents: product.PriceCents,
		})
	}

	// Stock is reserved through the repository's guarded decrement
	// before the order is recorded; the read check above only produces
	// the friendlier error. A guard failure here means a concurrent
	// placement won the remaining stock.
	reserved := make([]ulid.ULID, 0, len(productIDs))
	for _, id := range productIDs {
		if err := s.products.AdjustStock(ctx, id, -totals[id]); err != nil {
			s.releaseStock(ctx, reserved, totals)
			if errors.Is(err, ErrInsufficientStock) {
				return nil, oops.Code("ORDER_INSUFFICIENT_STOCK").
					With("product_id", id.String()).
					With("requested", totals[id]).
					Wrap(ErrInsufficientStock)
			}
			return nil, oops.Code("ORDER_PLACE_FAILED").
				With("operation", "reserve stock").
				Wrap(err)
		}
		reserved = append(reserved, id)
	}

	order, err := NewOrder(userID, lines)
	if err != nil {
		s.releaseStock(ctx, reserved, totals)
		return nil, err
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.releaseStock(ctx, reserved, totals)
		return nil, oops.Code("ORDER_PLACE_FAILED").
			With("operation", "insert order").
			Wrap(err)
	}

	s.logger.Info("order placed",
		"order_id", order.ID.String(),
		"user_id", userID.String(),
		"total_cents", order.TotalCents)
	return order, nil
}

// releaseStock returns reserved units after a failed placement. A
// failed release leaves stock understated, never oversold.
func (s *OrderService) releaseStock(ctx context.Context, ids []ulid.ULID, totals map[ulid.ULID]int) {
	for _, id := range ids {
		if err := s.products.AdjustStock(ctx, id, totals[id]); err != nil {
			s.logger.Warn("stock release failed",
				"product_id", id.String(),
				"quantity", totals[id],
				"error", err)
		}
	}
}

// GetOrder fetches one order, enforcing the ownership tier: customers
// read only their own orders, admins read any.
func (s *OrderService) GetOrder(ctx context.Context, requester auth.Identity, id ulid.ULID) (*Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if requester.EffectiveRole() != access.RoleAdmin && order.UserID.Compare(requester.UserID) != 0 {
		return nil, oops.Code("ORDER_FORBIDDEN").
			With("order_id", id.String()).
			Wrap(ErrForbidden)
	}
	return order, nil
}

// ListOrders lists orders visible to the requester. Admins may narrow to
// any user with the filter; customers always see exactly their own.
func (s *OrderService) ListOrders(ctx context.Context, requester auth.Identity, filter OrderFilter) ([]*Order, error) {
	if requester.EffectiveRole() != access.RoleAdmin {
		own := requester.UserID
		filter.UserID = &own
	}
	return s.orders.List(ctx, filter)
}
