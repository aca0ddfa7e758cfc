// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package main

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCommand_Properties(t *testing.T) {
	cmd := NewSeedCmd()

	assert.Equal(t, "seed", cmd.Use)
	assert.Contains(t, cmd.Short, "Seed")
	assert.Contains(t, cmd.Long, "idempotent")
}

func TestSeedCommand_Flags(t *testing.T) {
	cmd := NewSeedCmd()

	timeout := cmd.Flags().Lookup("timeout")
	require.NotNil(t, timeout)
	assert.Equal(t, defaultSeedTimeout.String(), timeout.DefValue)

	adminEmail := cmd.Flags().Lookup("admin-email")
	require.NotNil(t, adminEmail)
	assert.Equal(t, "", adminEmail.DefValue)
}

func TestSeedCommand_TimeoutParsing(t *testing.T) {
	cmd := NewSeedCmd()

	require.NoError(t, cmd.Flags().Set("timeout", "45s"))

	parsed, err := cmd.Flags().GetDuration("timeout")
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, parsed)
}

func TestSeedIDs_AreValidULIDs(t *testing.T) {
	ids := []string{
		seedCategoryBooksID,
		seedCategoryGamesID,
		seedProductNovelID,
		seedProductPuzzleID,
	}

	seen := make(map[ulid.ULID]bool)
	for _, raw := range ids {
		id, err := ulid.Parse(raw)
		require.NoError(t, err, "seed ID %q must parse", raw)
		assert.False(t, seen[id], "seed ID %q must be unique", raw)
		seen[id] = true
	}
}
