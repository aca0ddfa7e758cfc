// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package auth

import "errors"

// ErrNotFound is returned when a requested user does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned when signing up with an email that is
// already registered.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is returned when login fails. The same error is
// produced for unknown emails and wrong passwords so callers cannot
// enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid email or password")
