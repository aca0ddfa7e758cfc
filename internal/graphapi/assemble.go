// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package graphapi

import (
	"log/slog"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shopgraph/shopgraph/internal/access"
	"github.com/shopgraph/shopgraph/internal/auth"
	"github.com/shopgraph/shopgraph/internal/catalog"
	"github.com/shopgraph/shopgraph/internal/schema"
)

// Services carries everything the API surface needs.
type Services struct {
	Auth    *auth.Service
	Catalog *catalog.Service
	Orders  *catalog.OrderService
	Policy  *access.Policy
}

// NewSchema composes all entity modules into one executable schema.
// Any collision between modules fails here, before a listener opens.
func NewSchema(svcs Services) (graphql.Schema, error) {
	return schema.Compose(
		UserModule(svcs.Auth),
		ProductModule(svcs.Catalog, svcs.Policy),
		CategoryModule(svcs.Catalog, svcs.Policy),
		OrderModule(svcs.Orders, svcs.Policy),
	)
}

// NewServer wires the /graphql endpoint with identity attachment.
func NewServer(svcs Services, logger *slog.Logger) (http.Handler, error) {
	composed, err := NewSchema(svcs)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/graphql", WithIdentity(svcs.Auth, NewHandler(composed, logger)))
	return mux, nil
}
