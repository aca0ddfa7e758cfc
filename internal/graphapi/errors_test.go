// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package graphapi

import (
	"errors"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopgraph/shopgraph/internal/auth"
	"github.com/shopgraph/shopgraph/internal/catalog"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, CodeUnauthenticated},
		{"email taken", oops.Code("AUTH_EMAIL_TAKEN").Wrap(auth.ErrEmailTaken), CodeConflict},
		{"user not found", auth.ErrNotFound, CodeNotFound},
		{"catalog not found", oops.Code("PRODUCT_NOT_FOUND").Wrap(catalog.ErrNotFound), CodeNotFound},
		{"forbidden", catalog.ErrForbidden, CodeForbidden},
		{"category in use", catalog.ErrCategoryInUse, CodeConflict},
		{"locked account", oops.Code("AUTH_ACCOUNT_LOCKED").Errorf("locked"), CodeUnauthenticated},
		{"validation", oops.Code("USER_INVALID_EMAIL").Errorf("bad email"), CodeBadUserInput},
		{"insufficient stock", oops.Code("ORDER_INSUFFICIENT_STOCK").Errorf("no stock"), CodeBadUserInput},
		{"unknown", errors.New("driver exploded"), CodeInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := translate(tt.err)
			code, ok := CodeOf(out)
			require.True(t, ok)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestTranslate_OpaqueInternal(t *testing.T) {
	out := translate(errors.New("connection string mongodb://secret"))

	var ge *Error
	require.ErrorAs(t, out, &ge)
	assert.Equal(t, "internal server error", ge.Message)
	assert.NotContains(t, ge.Extensions()["code"], "mongodb")
}

func TestTranslate_LockoutIndistinguishable(t *testing.T) {
	var locked, wrong *Error
	require.ErrorAs(t, translate(oops.Code("AUTH_ACCOUNT_LOCKED").Errorf("locked")), &locked)
	require.ErrorAs(t, translate(auth.ErrInvalidCredentials), &wrong)

	// A locked account and a wrong password must read the same on the
	// wire; the distinction lives only in logs.
	assert.Equal(t, wrong.Message, locked.Message)
	assert.Equal(t, wrong.Extensions(), locked.Extensions())
}

func TestTranslate_Nil(t *testing.T) {
	assert.NoError(t, translate(nil))
}

func TestTranslate_PassThrough(t *testing.T) {
	in := Forbidden(nil)
	assert.Equal(t, in, translate(in))
}
