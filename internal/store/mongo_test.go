// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shopgraph/shopgraph/internal/store"
	"github.com/shopgraph/shopgraph/pkg/errutil"
)

func TestConnect_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("empty uri", func(t *testing.T) {
		_, err := store.Connect(ctx, "", "shopgraph")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "STORE_URI_MISSING")
	})

	t.Run("empty database", func(t *testing.T) {
		_, err := store.Connect(ctx, "mongodb://localhost:27017", "")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "STORE_DATABASE_MISSING")
	})
}
