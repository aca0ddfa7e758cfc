// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package catalog

import "errors"

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the acting identity is not allowed to
// touch the record, distinct from ErrNotFound so the API can surface the
// two differently.
var ErrForbidden = errors.New("forbidden")

// ErrCategoryInUse is returned when deleting a category that still has
// products.
var ErrCategoryInUse = errors.New("category still has products")

// ErrInsufficientStock is returned when an order asks for more units
// than are available.
var ErrInsufficientStock = errors.New("insufficient stock")
