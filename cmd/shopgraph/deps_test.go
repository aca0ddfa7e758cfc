// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

// mockStore implements Store for testing.
type mockStore struct {
	pingFunc  func(ctx context.Context) error
	closeFunc func(ctx context.Context) error
}

func (m *mockStore) Database() *mongo.Database { return nil }

func (m *mockStore) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

func (m *mockStore) Close(ctx context.Context) error {
	if m.closeFunc != nil {
		return m.closeFunc(ctx)
	}
	return nil
}

// mockObservabilityServer implements ObservabilityServer for testing.
type mockObservabilityServer struct {
	startFunc func() (<-chan error, error)
	stopFunc  func(ctx context.Context) error
}

func (m *mockObservabilityServer) Start() (<-chan error, error) {
	if m.startFunc != nil {
		return m.startFunc()
	}
	ch := make(chan error, 1)
	return ch, nil
}

func (m *mockObservabilityServer) Stop(ctx context.Context) error {
	if m.stopFunc != nil {
		return m.stopFunc(ctx)
	}
	return nil
}

func (m *mockObservabilityServer) Addr() string { return "127.0.0.1:0" }

func TestServeDeps_ApplyDefaults(t *testing.T) {
	deps := &ServeDeps{}
	deps.applyDefaults()

	assert.NotNil(t, deps.StoreFactory)
	assert.NotNil(t, deps.ObservabilityServerFactory)
}

func TestServeDeps_PreservesCustomFactories(t *testing.T) {
	storeCalled := false
	deps := &ServeDeps{
		StoreFactory: func(_ context.Context, _, _ string) (Store, error) {
			storeCalled = true
			return &mockStore{}, nil
		},
	}
	deps.applyDefaults()

	_, err := deps.StoreFactory(context.Background(), "", "")
	assert.NoError(t, err)
	assert.True(t, storeCalled, "custom StoreFactory should be preserved")
	assert.NotNil(t, deps.ObservabilityServerFactory, "nil factory should get a default")
}
