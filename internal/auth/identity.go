// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package auth

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/shopgraph/shopgraph/internal/access"
)

// Identity is the per-request resolved acting identity. The zero value is
// the anonymous identity. Exactly one Identity is attached per request and
// it is immutable after attachment.
type Identity struct {
	UserID ulid.ULID
	Email  string
	Role   string
}

// NewIdentity builds an Identity from a live user record.
func NewIdentity(u *User) Identity {
	return Identity{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
	}
}

// Anonymous returns the anonymous identity.
func Anonymous() Identity {
	return Identity{Role: access.RoleAnonymous}
}

// IsAnonymous reports whether the identity carries no authenticated user.
func (i Identity) IsAnonymous() bool {
	return i.UserID.Compare(ulid.ULID{}) == 0
}

// EffectiveRole returns the identity's role, mapping the zero value to
// the anonymous role.
func (i Identity) EffectiveRole() string {
	if i.Role == "" {
		return access.RoleAnonymous
	}
	return i.Role
}

type identityKey struct{}

// IdentityContext returns a new context with the identity attached.
func IdentityContext(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

// IdentityFromContext returns the identity attached to the context, or
// the anonymous identity if none is attached.
func IdentityFromContext(ctx context.Context) Identity {
	if ident, ok := ctx.Value(identityKey{}).(Identity); ok {
		return ident
	}
	return Anonymous()
}
