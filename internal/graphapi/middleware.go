// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package graphapi

import (
	"net/http"

	"github.com/shopgraph/shopgraph/internal/auth"
)

// WithIdentity attaches the caller's identity to the request context
// before the wrapped handler runs. Resolution is soft: a missing or
// bad credential yields the anonymous identity, never an HTTP error.
// Every resolver downstream reads the same identity, so one request is
// one principal.
func WithIdentity(svc *auth.Service, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident := svc.Authenticate(r.Context(), r.Header.Get("Authorization"))
		next.ServeHTTP(w, r.WithContext(auth.IdentityContext(r.Context(), ident)))
	})
}
