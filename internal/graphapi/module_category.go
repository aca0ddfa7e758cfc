// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package graphapi

import (
	"github.com/graphql-go/graphql"

	"github.com/shopgraph/shopgraph/internal/access"
	"github.com/shopgraph/shopgraph/internal/catalog"
	"github.com/shopgraph/shopgraph/internal/schema"
)

// CategoryModule contributes the category taxonomy and extends Product
// with a resolved category object.
func CategoryModule(svc *catalog.Service, policy *access.Policy) schema.Module {
	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
		},
	})

	return schema.Module{
		Name:  "category",
		Types: []graphql.Type{categoryType},
		Extensions: map[string]graphql.Fields{
			"Product": {
				"category": &graphql.Field{
					Type: categoryType,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						product, ok := p.Source.(productView)
						if !ok {
							return nil, nil
						}
						id, err := parseID(map[string]interface{}{"id": product.CategoryID}, "id")
						if err != nil {
							return nil, err
						}
						category, err := svc.GetCategory(p.Context, id)
						if err != nil {
							return nil, translate(err)
						}
						return viewCategory(category), nil
					},
				},
			},
		},
		Queries: graphql.Fields{
			"category": &graphql.Field{
				Type: categoryType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireCan(p.Context, policy, "read:category"); err != nil {
						return nil, err
					}
					id, err := parseID(p.Args, "id")
					if err != nil {
						return nil, err
					}
					category, err := svc.GetCategory(p.Context, id)
					if err != nil {
						return nil, translate(err)
					}
					return viewCategory(category), nil
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(categoryType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireCan(p.Context, policy, "read:category"); err != nil {
						return nil, err
					}
					categories, err := svc.ListCategories(p.Context)
					if err != nil {
						return nil, translate(err)
					}
					out := make([]categoryView, 0, len(categories))
					for _, c := range categories {
						out = append(out, viewCategory(c))
					}
					return out, nil
				},
			},
		},
		Mutations: graphql.Fields{
			"createCategory": &graphql.Field{
				Type: graphql.NewNonNull(categoryType),
				Args: graphql.FieldConfigArgument{
					"name":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireCan(p.Context, policy, "create:category"); err != nil {
						return nil, err
					}
					name, _ := p.Args["name"].(string)
					description, _ := p.Args["description"].(string)
					category, err := svc.CreateCategory(p.Context, name, description)
					if err != nil {
						return nil, translate(err)
					}
					return viewCategory(category), nil
				},
			},
			"deleteCategory": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireCan(p.Context, policy, "delete:category"); err != nil {
						return nil, err
					}
					id, err := parseID(p.Args, "id")
					if err != nil {
						return nil, err
					}
					if err := svc.DeleteCategory(p.Context, id); err != nil {
						return nil, translate(err)
					}
					return id.String(), nil
				},
			},
		},
	}
}
