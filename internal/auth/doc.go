// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

// Package auth provides authentication primitives for Shopgraph.
//
// # Domain Types
//
// User instances should be created with NewUser, which validates the
// email and stores only the credential hash. Direct struct initialization
// bypasses validation and may create invalid state.
//
// # Services
//
// Service coordinates the credential flows: Signup and Login issue signed
// bearer tokens, Authenticate resolves an Authorization header value to an
// Identity. Authentication failures are soft: Authenticate always produces
// an Identity, falling back to the anonymous one.
package auth
