// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package main

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopgraph/shopgraph/internal/observability"
	"github.com/shopgraph/shopgraph/internal/store"
)

// ServeDeps contains injectable dependencies for the serve command.
// All fields with nil values will use their default implementations.
type ServeDeps struct {
	// StoreFactory connects to MongoDB.
	// Default: store.Connect
	StoreFactory func(ctx context.Context, uri, database string) (Store, error)

	// ObservabilityServerFactory creates an observability server.
	// Default: observability.NewServer
	ObservabilityServerFactory func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer
}

// Store interface wraps the methods used by serve from store.Mongo.
type Store interface {
	Database() *mongo.Database
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// ObservabilityServer interface wraps the methods used from observability.Server.
type ObservabilityServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
}

func (d *ServeDeps) applyDefaults() {
	if d.StoreFactory == nil {
		d.StoreFactory = func(ctx context.Context, uri, database string) (Store, error) {
			return store.Connect(ctx, uri, database)
		}
	}
	if d.ObservabilityServerFactory == nil {
		d.ObservabilityServerFactory = func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer {
			return observability.NewServer(addr, readinessChecker)
		}
	}
}
