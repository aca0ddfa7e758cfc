// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package catalog

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Name length constraints shared by products and categories.
const (
	MinNameLength = 1
	MaxNameLength = 120
)

// Product is a sellable catalog entry. Prices are minor units (cents)
// to keep arithmetic exact.
type Product struct {
	ID          ulid.ULID
	Name        string
	Description string
	PriceCents  int64
	CategoryID  ulid.ULID
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct creates a validated Product.
func NewProduct(name, description string, priceCents int64, categoryID ulid.ULID, stock int) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if priceCents < 0 {
		return nil, oops.Code("PRODUCT_INVALID_PRICE").
			With("price_cents", priceCents).
			Errorf("price cannot be negative")
	}
	if stock < 0 {
		return nil, oops.Code("PRODUCT_INVALID_STOCK").
			With("stock", stock).
			Errorf("stock cannot be negative")
	}
	if categoryID.Compare(ulid.ULID{}) == 0 {
		return nil, oops.Code("PRODUCT_INVALID_CATEGORY").Errorf("category ID cannot be zero")
	}

	now := time.Now()
	return &Product{
		ID:          ulid.Make(),
		Name:        name,
		Description: description,
		PriceCents:  priceCents,
		CategoryID:  categoryID,
		Stock:       stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func validateName(name string) error {
	if len(name) < MinNameLength {
		return oops.Code("CATALOG_INVALID_NAME").Errorf("name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return oops.Code("CATALOG_INVALID_NAME").
			With("length", len(name)).
			Errorf("name must be at most %d characters", MaxNameLength)
	}
	return nil
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryID *ulid.ULID
}

// ProductRepository manages product persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id ulid.ULID) (*Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*Product, error)
	Update(ctx context.Context, product *Product) error
	// AdjustStock atomically adds delta to a product's stock count. A
	// negative delta applies only while enough stock remains; a failed
	// guard returns an error wrapping ErrInsufficientStock.
	AdjustStock(ctx context.Context, id ulid.ULID, delta int) error
	// Delete removes a product. Returns an error wrapping ErrNotFound if
	// no such product exists.
	Delete(ctx context.Context, id ulid.ULID) error
}
