// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

// Package graphapi exposes the composed schema over HTTP. It owns the
// per-entity schema modules, the /graphql handler, the identity
// middleware, and the translation of domain errors into wire codes.
package graphapi
