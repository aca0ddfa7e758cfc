// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package graphapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationType(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"named query", "query Me { me { email } }", "query"},
		{"shorthand query", "{ me { email } }", "query"},
		{"leading whitespace", "\n\t{ products { id } }", "query"},
		{"mutation", "mutation { signup(email: \"a\", password: \"b\") { token } }", "mutation"},
		{"subscription", "subscription { orders { id } }", "subscription"},
		{"empty document", "", "query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, operationType(tt.query))
		})
	}
}
