// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopgraph/shopgraph/internal/auth"
)

func TestNewTokenIssuer(t *testing.T) {
	t.Run("rejects empty secret", func(t *testing.T) {
		_, err := auth.NewTokenIssuer("", time.Hour)
		require.Error(t, err)
	})

	t.Run("zero ttl uses default", func(t *testing.T) {
		issuer, err := auth.NewTokenIssuer("test-secret", 0)
		require.NoError(t, err)
		assert.NotNil(t, issuer)
	})
}

func TestTokenIssuer_IssueVerify(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	t.Run("issued token carries the scheme prefix", func(t *testing.T) {
		token, err := issuer.Issue(ulid.Make())
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(token, "Bearer "))
	})

	t.Run("round trip recovers the subject", func(t *testing.T) {
		userID := ulid.Make()
		token, err := issuer.Issue(userID)
		require.NoError(t, err)

		raw, ok := auth.StripScheme(token)
		require.True(t, ok)

		got, err := issuer.Verify(raw)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("zero user ID is rejected", func(t *testing.T) {
		_, err := issuer.Issue(ulid.ULID{})
		require.Error(t, err)
	})

	t.Run("garbage token fails verification", func(t *testing.T) {
		_, err := issuer.Verify("not.a.jwt")
		require.Error(t, err)
	})

	t.Run("token signed with a different secret fails", func(t *testing.T) {
		other, err := auth.NewTokenIssuer("other-secret", time.Hour)
		require.NoError(t, err)

		token, err := other.Issue(ulid.Make())
		require.NoError(t, err)

		raw, ok := auth.StripScheme(token)
		require.True(t, ok)

		_, err = issuer.Verify(raw)
		require.Error(t, err)
	})

	t.Run("tampered payload fails verification", func(t *testing.T) {
		token, err := issuer.Issue(ulid.Make())
		require.NoError(t, err)

		raw, ok := auth.StripScheme(token)
		require.True(t, ok)

		parts := strings.Split(raw, ".")
		require.Len(t, parts, 3)
		// Flip a character in the payload segment.
		payload := []byte(parts[1])
		if payload[0] == 'A' {
			payload[0] = 'B'
		} else {
			payload[0] = 'A'
		}
		tampered := parts[0] + "." + string(payload) + "." + parts[2]

		_, err = issuer.Verify(tampered)
		require.Error(t, err)
	})

	t.Run("expired token fails verification", func(t *testing.T) {
		short, err := auth.NewTokenIssuer("test-secret", time.Nanosecond)
		require.NoError(t, err)

		token, err := short.Issue(ulid.Make())
		require.NoError(t, err)

		raw, ok := auth.StripScheme(token)
		require.True(t, ok)

		time.Sleep(10 * time.Millisecond)
		_, err = issuer.Verify(raw)
		require.Error(t, err)
	})
}

func TestStripScheme(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"bearer token", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"case-insensitive scheme", "bearer abc", "abc", true},
		{"empty header", "", "", false},
		{"scheme only", "Bearer ", "", false},
		{"wrong scheme", "Basic abc", "", false},
		{"no space", "Bearerabc", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := auth.StripScheme(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
