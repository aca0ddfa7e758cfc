// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shopgraph/shopgraph/internal/auth"
)

func TestIsLockedOut(t *testing.T) {
	t.Run("nil lockout is not locked", func(t *testing.T) {
		assert.False(t, auth.IsLockedOut(nil))
	})

	t.Run("future lockout is locked", func(t *testing.T) {
		future := time.Now().Add(5 * time.Minute)
		assert.True(t, auth.IsLockedOut(&future))
	})

	t.Run("past lockout is not locked", func(t *testing.T) {
		past := time.Now().Add(-5 * time.Minute)
		assert.False(t, auth.IsLockedOut(&past))
	})
}

func TestComputeLockoutTime(t *testing.T) {
	t.Run("below threshold returns nil", func(t *testing.T) {
		assert.Nil(t, auth.ComputeLockoutTime(0))
		assert.Nil(t, auth.ComputeLockoutTime(auth.LockoutThreshold-1))
	})

	t.Run("at threshold returns lockout in the future", func(t *testing.T) {
		lockout := auth.ComputeLockoutTime(auth.LockoutThreshold)
		if assert.NotNil(t, lockout) {
			assert.True(t, lockout.After(time.Now()))
			assert.WithinDuration(t, time.Now().Add(auth.LockoutDuration), *lockout, time.Minute)
		}
	})
}
