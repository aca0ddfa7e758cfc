// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package graphapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/graphql-go/graphql"

	"github.com/shopgraph/shopgraph/internal/observability"
	"github.com/shopgraph/shopgraph/pkg/errutil"
)

type postData struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler executes GraphQL documents against a composed schema.
type Handler struct {
	schema graphql.Schema
	logger *slog.Logger
}

func NewHandler(schema graphql.Schema, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{schema: schema, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var p postData
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	observability.RecordGraphQLRequest(operationType(p.Query))

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  p.Query,
		VariableValues: p.Variables,
		OperationName:  p.OperationName,
		Context:        r.Context(),
	})

	for _, gqlErr := range result.Errors {
		orig := gqlErr.OriginalError()
		if orig == nil {
			// Parse and validation failures carry no resolver error.
			observability.RecordGraphQLError(CodeBadUserInput)
			continue
		}
		code := CodeInternalServerError
		if c, ok := CodeOf(orig); ok {
			code = c
		}
		observability.RecordGraphQLError(code)
		errutil.LogError(h.logger, "graphql request failed", orig)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("encoding graphql response", "error", err)
	}
}

// operationType classifies a request document by its leading keyword.
// The shorthand form ("{ ... }") is a query.
func operationType(query string) string {
	doc := strings.TrimSpace(query)
	switch {
	case strings.HasPrefix(doc, "mutation"):
		return "mutation"
	case strings.HasPrefix(doc, "subscription"):
		return "subscription"
	default:
		return "query"
	}
}
