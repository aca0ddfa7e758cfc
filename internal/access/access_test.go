// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopgraph/shopgraph/internal/access"
	"github.com/shopgraph/shopgraph/pkg/errutil"
)

func TestValidRole(t *testing.T) {
	assert.True(t, access.ValidRole(access.RoleAnonymous))
	assert.True(t, access.ValidRole(access.RoleCustomer))
	assert.True(t, access.ValidRole(access.RoleAdmin))
	assert.False(t, access.ValidRole("superuser"))
	assert.False(t, access.ValidRole(""))
}

func TestPolicy_Can(t *testing.T) {
	policy := access.NewPolicy()

	t.Run("anonymous can read catalog", func(t *testing.T) {
		assert.True(t, policy.Can(access.RoleAnonymous, "read:product"))
		assert.True(t, policy.Can(access.RoleAnonymous, "read:category"))
	})

	t.Run("anonymous cannot mutate", func(t *testing.T) {
		assert.False(t, policy.Can(access.RoleAnonymous, "delete:product"))
		assert.False(t, policy.Can(access.RoleAnonymous, "create:order"))
	})

	t.Run("customer can place and read orders", func(t *testing.T) {
		assert.True(t, policy.Can(access.RoleCustomer, "create:order"))
		assert.True(t, policy.Can(access.RoleCustomer, "read:order"))
	})

	t.Run("customer cannot manage catalog", func(t *testing.T) {
		assert.False(t, policy.Can(access.RoleCustomer, "delete:product"))
		assert.False(t, policy.Can(access.RoleCustomer, "create:category"))
	})

	t.Run("admin can do everything", func(t *testing.T) {
		assert.True(t, policy.Can(access.RoleAdmin, "delete:product"))
		assert.True(t, policy.Can(access.RoleAdmin, "create:category"))
		assert.True(t, policy.Can(access.RoleAdmin, "update:product"))
		assert.True(t, policy.Can(access.RoleAdmin, "read:order"))
	})

	t.Run("unknown role has no permissions", func(t *testing.T) {
		assert.False(t, policy.Can("superuser", "read:product"))
	})
}

func TestNewPolicyWithRoles(t *testing.T) {
	t.Run("custom roles compile", func(t *testing.T) {
		policy, err := access.NewPolicyWithRoles(map[string][]string{
			"auditor": {"read:*"},
		})
		require.NoError(t, err)
		assert.True(t, policy.Can("auditor", "read:order"))
		assert.False(t, policy.Can("auditor", "delete:order"))
	})

	t.Run("invalid glob pattern fails", func(t *testing.T) {
		_, err := access.NewPolicyWithRoles(map[string][]string{
			"broken": {"read:["},
		})
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "INVALID_PERMISSION_PATTERN")
	})
}
