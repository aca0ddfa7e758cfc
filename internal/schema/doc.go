// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

// Package schema composes a single executable GraphQL schema out of
// independent entity modules. Each module owns its base types and root
// fields; composition merges them and fails loudly on any collision so
// a broken schema never reaches a listener.
package schema
