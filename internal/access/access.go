// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

// Package access implements role-based authorization with glob-compiled
// permission patterns.
package access

import (
	"github.com/gobwas/glob"
	"github.com/samber/oops"
)

// Role names. Roles are flat tiers, not an inheritance hierarchy; each
// role composes permission groups explicitly.
const (
	RoleAnonymous = "anonymous"
	RoleCustomer  = "customer"
	RoleAdmin     = "admin"
)

// ValidRole reports whether the given role name is known.
func ValidRole(role string) bool {
	switch role {
	case RoleAnonymous, RoleCustomer, RoleAdmin:
		return true
	}
	return false
}

// Permission groups define reusable sets of "verb:resource" actions.

var anonymousPowers = []string{
	"read:product",
	"read:category",
}

var customerPowers = []string{
	"read:order",
	"create:order",
}

var adminPowers = []string{
	"create:*",
	"update:*",
	"delete:*",
	"read:*",
}

// DefaultRoles returns the default role definitions.
func DefaultRoles() map[string][]string {
	return map[string][]string{
		RoleAnonymous: anonymousPowers,
		RoleCustomer:  compose(anonymousPowers, customerPowers),
		RoleAdmin:     compose(anonymousPowers, customerPowers, adminPowers),
	}
}

// compose merges multiple permission slices into one.
func compose(groups ...[]string) []string {
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	result := make([]string, 0, total)
	for _, g := range groups {
		result = append(result, g...)
	}
	return result
}

// compiledPermission holds a permission pattern and its compiled glob.
type compiledPermission struct {
	pattern string
	glob    glob.Glob
}

// Policy decides whether a role may perform an action. The compiled role
// table is immutable after construction and safe for concurrent use.
type Policy struct {
	roles map[string][]compiledPermission
}

// NewPolicy creates a Policy with the default roles.
//
// Panics if the default roles contain an invalid permission pattern,
// which would be a code bug that should fail fast.
func NewPolicy() *Policy {
	p, err := NewPolicyWithRoles(DefaultRoles())
	if err != nil {
		panic("invalid permission pattern in DefaultRoles: " + err.Error())
	}
	return p
}

// NewPolicyWithRoles creates a Policy with custom role definitions.
// Returns an error if any permission pattern fails to compile.
func NewPolicyWithRoles(roles map[string][]string) (*Policy, error) {
	compiled := make(map[string][]compiledPermission, len(roles))
	for role, perms := range roles {
		list := make([]compiledPermission, 0, len(perms))
		for _, pattern := range perms {
			// ':' separates the verb from the resource.
			g, err := glob.Compile(pattern, ':')
			if err != nil {
				return nil, oops.In("access").
					Code("INVALID_PERMISSION_PATTERN").
					With("role", role).
					With("pattern", pattern).
					Wrap(err)
			}
			list = append(list, compiledPermission{pattern: pattern, glob: g})
		}
		compiled[role] = list
	}
	return &Policy{roles: compiled}, nil
}

// Can reports whether the role may perform the "verb:resource" action.
// Unknown roles have no permissions.
func (p *Policy) Can(role, action string) bool {
	for _, perm := range p.roles[role] {
		if perm.glob.Match(action) {
			return true
		}
	}
	return false
}
