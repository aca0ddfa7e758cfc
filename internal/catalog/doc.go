// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

// Package catalog holds the storefront domain: products, categories, and
// orders.
//
// Domain types are created through their constructors (NewProduct,
// NewCategory, NewOrder), which validate input before anything touches
// the store. Repository implementations receive pre-validated values.
//
// Ownership rules live in the services: a customer reads only their own
// orders, an admin reads any. Role checks against the access policy are
// the API layer's job; the services enforce the per-record tier.
package catalog
