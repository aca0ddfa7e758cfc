// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package catalog_test

import (
	"context"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopgraph/shopgraph/internal/catalog"
	"github.com/shopgraph/shopgraph/pkg/errutil"
)

// In-memory repositories shared by the catalog and order service tests.

type fakeProductRepo struct {
	products map[ulid.ULID]*catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[ulid.ULID]*catalog.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, p *catalog.Product) error {
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id ulid.ULID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProductRepo) List(_ context.Context, filter catalog.ProductFilter) ([]*catalog.Product, error) {
	var out []*catalog.Product
	for _, p := range r.products {
		if filter.CategoryID != nil && p.CategoryID.Compare(*filter.CategoryID) != 0 {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *catalog.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return catalog.ErrNotFound
	}
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *fakeProductRepo) AdjustStock(_ context.Context, id ulid.ULID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return catalog.ErrNotFound
	}
	if delta < 0 && p.Stock < -delta {
		return catalog.ErrInsufficientStock
	}
	p.Stock += delta
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id ulid.ULID) error {
	if _, ok := r.products[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[ulid.ULID]*catalog.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[ulid.ULID]*catalog.Category)}
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *catalog.Category) error {
	clone := *c
	r.categories[c.ID] = &clone
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id ulid.ULID) (*catalog.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]*catalog.Category, error) {
	var out []*catalog.Category
	for _, c := range r.categories {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id ulid.ULID) error {
	if _, ok := r.categories[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

type fakeOrderRepo struct {
	orders    map[ulid.ULID]*catalog.Order
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[ulid.ULID]*catalog.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *catalog.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *o
	r.orders[o.ID] = &clone
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id ulid.ULID) (*catalog.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *fakeOrderRepo) List(_ context.Context, filter catalog.OrderFilter) ([]*catalog.Order, error) {
	var out []*catalog.Order
	for _, o := range r.orders {
		if filter.UserID != nil && o.UserID.Compare(*filter.UserID) != 0 {
			continue
		}
		clone := *o
		out = append(out, &clone)
	}
	return out, nil
}

func newTestCatalog(t *testing.T) (*catalog.Service, *fakeProductRepo, *fakeCategoryRepo) {
	t.Helper()
	products := newFakeProductRepo()
	categories := newFakeCategoryRepo()
	svc, err := catalog.NewService(products, categories)
	require.NoError(t, err)
	return svc, products, categories
}

func seedCategory(t *testing.T, svc *catalog.Service) *catalog.Category {
	t.Helper()
	category, err := svc.CreateCategory(context.Background(), "Books", "printed matter")
	require.NoError(t, err)
	return category
}

func TestService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a product in an existing category", func(t *testing.T) {
		svc, _, _ := newTestCatalog(t)
		category := seedCategory(t, svc)

		product, err := svc.CreateProduct(ctx, catalog.ProductInput{
			Name:       "Sourcery",
			PriceCents: 1299,
			CategoryID: category.ID,
			Stock:      10,
		})
		require.NoError(t, err)
		assert.Equal(t, "Sourcery", product.Name)
		assert.Equal(t, category.ID, product.CategoryID)
	})

	t.Run("unknown category is not found", func(t *testing.T) {
		svc, _, _ := newTestCatalog(t)

		_, err := svc.CreateProduct(ctx, catalog.ProductInput{
			Name:       "Orphan",
			PriceCents: 100,
			CategoryID: ulid.Make(),
			Stock:      1,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("validation runs before persistence", func(t *testing.T) {
		svc, products, _ := newTestCatalog(t)
		category := seedCategory(t, svc)

		_, err := svc.CreateProduct(ctx, catalog.ProductInput{
			Name:       "",
			PriceCents: 100,
			CategoryID: category.ID,
		})
		errutil.AssertErrorCode(t, err, "CATALOG_INVALID_NAME")
		assert.Empty(t, products.products)

		_, err = svc.CreateProduct(ctx, catalog.ProductInput{
			Name:       "Negative",
			PriceCents: -1,
			CategoryID: category.ID,
		})
		errutil.AssertErrorCode(t, err, "PRODUCT_INVALID_PRICE")
		assert.Empty(t, products.products)
	})
}

func TestService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestCatalog(t)
	category := seedCategory(t, svc)

	product, err := svc.CreateProduct(ctx, catalog.ProductInput{
		Name:       "Sourcery",
		PriceCents: 1299,
		CategoryID: category.ID,
		Stock:      10,
	})
	require.NoError(t, err)

	t.Run("updates fields and keeps identity", func(t *testing.T) {
		updated, err := svc.UpdateProduct(ctx, product.ID, catalog.ProductInput{
			Name:       "Sourcery (paperback)",
			PriceCents: 999,
			CategoryID: category.ID,
			Stock:      20,
		})
		require.NoError(t, err)
		assert.Equal(t, product.ID, updated.ID)
		assert.Equal(t, int64(999), updated.PriceCents)
		assert.Equal(t, product.CreatedAt, updated.CreatedAt)
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		_, err := svc.UpdateProduct(ctx, ulid.Make(), catalog.ProductInput{
			Name:       "Ghost",
			PriceCents: 1,
			CategoryID: category.ID,
		})
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})
}

func TestService_DeleteCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses while products remain", func(t *testing.T) {
		svc, _, _ := newTestCatalog(t)
		category := seedCategory(t, svc)

		_, err := svc.CreateProduct(ctx, catalog.ProductInput{
			Name:       "Sourcery",
			PriceCents: 1299,
			CategoryID: category.ID,
			Stock:      1,
		})
		require.NoError(t, err)

		err = svc.DeleteCategory(ctx, category.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, catalog.ErrCategoryInUse)
	})

	t.Run("deletes an empty category", func(t *testing.T) {
		svc, _, _ := newTestCatalog(t)
		category := seedCategory(t, svc)

		require.NoError(t, svc.DeleteCategory(ctx, category.ID))

		_, err := svc.GetCategory(ctx, category.ID)
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})
}
