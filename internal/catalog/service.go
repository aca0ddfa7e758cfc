// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Service coordinates product and category operations.
type Service struct {
	products   ProductRepository
	categories CategoryRepository
	logger     *slog.Logger
}

// NewService creates a new catalog Service.
func NewService(products ProductRepository, categories CategoryRepository) (*Service, error) {
	return NewServiceWithLogger(products, categories, slog.Default())
}

// NewServiceWithLogger creates a new catalog Service with an explicit logger.
func NewServiceWithLogger(products ProductRepository, categories CategoryRepository, logger *slog.Logger) (*Service, error) {
	if products == nil {
		return nil, oops.Errorf("products repository is required")
	}
	if categories == nil {
		return nil, oops.Errorf("categories repository is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &Service{products: products, categories: categories, logger: logger}, nil
}

// ProductInput carries the fields for creating or updating a product.
type ProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	CategoryID  ulid.ULID
	Stock       int
}

// CreateProduct validates the input, checks the category exists, and
// persists a new product.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("CATEGORY_NOT_FOUND").
				With("category_id", in.CategoryID.String()).
				Wrap(ErrNotFound)
		}
		return nil, oops.Code("PRODUCT_CREATE_FAILED").
			With("operation", "check category").
			Wrap(err)
	}

	product, err := NewProduct(in.Name, in.Description, in.PriceCents, in.CategoryID, in.Stock)
	if err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, oops.Code("PRODUCT_CREATE_FAILED").
			With("operation", "insert product").
			Wrap(err)
	}

	s.logger.Info("product created", "product_id", product.ID.String(), "name", product.Name)
	return product, nil
}

// UpdateProduct applies the input to an existing product.
func (s *Service) UpdateProduct(ctx context.Context, id ulid.ULID, in ProductInput) (*Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.CategoryID.Compare(product.CategoryID) != 0 {
		if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, oops.Code("CATEGORY_NOT_FOUND").
					With("category_id", in.CategoryID.String()).
					Wrap(ErrNotFound)
			}
			return nil, oops.Code("PRODUCT_UPDATE_FAILED").
				With("operation", "check category").
				Wrap(err)
		}
	}

	updated, err := NewProduct(in.Name, in.Description, in.PriceCents, in.CategoryID, in.Stock)
	if err != nil {
		return nil, err
	}
	// Keep the record's identity and history.
	updated.ID = product.ID
	updated.CreatedAt = product.CreatedAt

	if err := s.products.Update(ctx, updated); err != nil {
		return nil, oops.Code("PRODUCT_UPDATE_FAILED").
			With("product_id", id.String()).
			Wrap(err)
	}
	return updated, nil
}

// DeleteProduct removes a product.
func (s *Service) DeleteProduct(ctx context.Context, id ulid.ULID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", "product_id", id.String())
	return nil
}

// GetProduct fetches one product.
func (s *Service) GetProduct(ctx context.Context, id ulid.ULID) (*Product, error) {
	return s.products.GetByID(ctx, id)
}

// ListProducts lists products, optionally narrowed by category.
func (s *Service) ListProducts(ctx context.Context, filter ProductFilter) ([]*Product, error) {
	return s.products.List(ctx, filter)
}

// CreateCategory persists a new category.
func (s *Service) CreateCategory(ctx context.Context, name, description string) (*Category, error) {
	category, err := NewCategory(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info("category created", "category_id", category.ID.String(), "name", category.Name)
	return category, nil
}

// DeleteCategory removes a category. Refuses when products still
// reference it.
func (s *Service) DeleteCategory(ctx context.Context, id ulid.ULID) error {
	products, err := s.products.List(ctx, ProductFilter{CategoryID: &id})
	if err != nil {
		return oops.Code("CATEGORY_DELETE_FAILED").
			With("operation", "list products in category").
			Wrap(err)
	}
	if len(products) > 0 {
		return oops.Code("CATEGORY_IN_USE").
			With("category_id", id.String()).
			With("product_count", len(products)).
			Wrap(ErrCategoryInUse)
	}
	return s.categories.Delete(ctx, id)
}

// GetCategory fetches one category.
func (s *Service) GetCategory(ctx context.Context, id ulid.ULID) (*Category, error) {
	return s.categories.GetByID(ctx, id)
}

// ListCategories lists all categories.
func (s *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.categories.List(ctx)
}
