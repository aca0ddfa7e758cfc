// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

// Package store owns the MongoDB connection lifecycle.
package store

import (
	"context"
	"time"

	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	pingTimeout     = 5 * time.Second
	connectBackoff  = 500 * time.Millisecond
	connectAttempts = 5
)

// Mongo wraps a connected client and the application database.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB and verifies the connection with a ping,
// retrying with exponential backoff so a server racing its database
// at boot settles instead of crashing.
func Connect(ctx context.Context, uri, database string) (*Mongo, error) {
	if uri == "" {
		return nil, oops.Code("STORE_URI_MISSING").Errorf("mongodb uri cannot be empty")
	}
	if database == "" {
		return nil, oops.Code("STORE_DATABASE_MISSING").Errorf("database name cannot be empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, oops.Code("STORE_CONNECT_FAILED").With("uri", uri).Wrap(err)
	}

	backoff := retry.WithMaxRetries(connectAttempts, retry.NewExponential(connectBackoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, oops.Code("STORE_PING_FAILED").With("uri", uri).Wrap(err)
	}

	return &Mongo{client: client, db: client.Database(database)}, nil
}

// Database returns the application database handle.
func (m *Mongo) Database() *mongo.Database {
	return m.db
}

// Ping checks liveness against the primary.
func (m *Mongo) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := m.client.Ping(pingCtx, readpref.Primary()); err != nil {
		return oops.Code("STORE_PING_FAILED").Wrap(err)
	}
	return nil
}

// Close disconnects from the server.
func (m *Mongo) Close(ctx context.Context) error {
	if err := m.client.Disconnect(ctx); err != nil {
		return oops.Code("STORE_DISCONNECT_FAILED").Wrap(err)
	}
	return nil
}
