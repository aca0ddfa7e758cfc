// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package graphapi

import (
	"github.com/graphql-go/graphql"

	"github.com/shopgraph/shopgraph/internal/auth"
	"github.com/shopgraph/shopgraph/internal/observability"
	"github.com/shopgraph/shopgraph/internal/schema"
)

// UserModule contributes accounts and credential issuance to the
// composed schema. Types are built per call so repeated composition
// never observes another schema's extensions.
func UserModule(svc *auth.Service) schema.Module {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"role":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	// AuthPayload pairs a serialized credential with the account it
	// was issued for. The token only ever appears here, never on User.
	authPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user":  &graphql.Field{Type: graphql.NewNonNull(userType)},
		},
	})

	return schema.Module{
		Name:  "user",
		Types: []graphql.Type{userType, authPayloadType},
		Queries: graphql.Fields{
			"me": &graphql.Field{
				Type:        userType,
				Description: "The authenticated account, or null for anonymous callers.",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ident := auth.IdentityFromContext(p.Context)
					if ident.IsAnonymous() {
						return nil, nil
					}
					user, err := svc.GetUser(p.Context, ident)
					if err != nil {
						return nil, translate(err)
					}
					return viewUser(user), nil
				},
			},
		},
		Mutations: graphql.Fields{
			"signup": &graphql.Field{
				Type:        graphql.NewNonNull(authPayloadType),
				Description: "Register a new customer account and issue a token.",
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					email, _ := p.Args["email"].(string)
					password, _ := p.Args["password"].(string)
					user, token, err := svc.Signup(p.Context, email, password)
					if err != nil {
						return nil, translate(err)
					}
					observability.RecordSignup()
					return authPayloadView{Token: token, User: viewUser(user)}, nil
				},
			},
			"login": &graphql.Field{
				Type:        graphql.NewNonNull(authPayloadType),
				Description: "Exchange credentials for a token.",
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					email, _ := p.Args["email"].(string)
					password, _ := p.Args["password"].(string)
					user, token, err := svc.Login(p.Context, email, password)
					if err != nil {
						return nil, translate(err)
					}
					return authPayloadView{Token: token, User: viewUser(user)}, nil
				},
			},
		},
	}
}
