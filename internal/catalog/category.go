// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package catalog

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

// Category groups products. Names are unique across the store.
type Category struct {
	ID          ulid.ULID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory creates a validated Category.
func NewCategory(name, description string) (*Category, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Category{
		ID:          ulid.Make(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// CategoryRepository manages category persistence.
type CategoryRepository interface {
	// Create stores a new category. Name uniqueness is enforced by the
	// store.
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id ulid.ULID) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Delete(ctx context.Context, id ulid.ULID) error
}
