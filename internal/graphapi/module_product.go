// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package graphapi

import (
	"github.com/graphql-go/graphql"

	"github.com/shopgraph/shopgraph/internal/access"
	"github.com/shopgraph/shopgraph/internal/catalog"
	"github.com/shopgraph/shopgraph/internal/schema"
)

func newProductType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
			"priceCents":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"categoryId":  &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"stock":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})
}

func productInputFromArgs(args map[string]interface{}) (catalog.ProductInput, error) {
	categoryID, err := parseID(args, "categoryId")
	if err != nil {
		return catalog.ProductInput{}, err
	}
	name, _ := args["name"].(string)
	description, _ := args["description"].(string)
	priceCents, _ := args["priceCents"].(int)
	stock, _ := args["stock"].(int)
	return catalog.ProductInput{
		Name:        name,
		Description: description,
		PriceCents:  int64(priceCents),
		CategoryID:  categoryID,
		Stock:       stock,
	}, nil
}

var productArgs = graphql.FieldConfigArgument{
	"name":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
	"description": &graphql.ArgumentConfig{Type: graphql.String},
	"priceCents":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
	"categoryId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	"stock":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
}

// ProductModule contributes the product catalog. Reads are public,
// writes require the relevant admin power.
func ProductModule(svc *catalog.Service, policy *access.Policy) schema.Module {
	productType := newProductType()
	return schema.Module{
		Name:  "product",
		Types: []graphql.Type{productType},
		Queries: graphql.Fields{
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireCan(p.Context, policy, "read:product"); err != nil {
						return nil, err
					}
					id, err := parseID(p.Args, "id")
					if err != nil {
						return nil, err
					}
					product, err := svc.GetProduct(p.Context, id)
					if err != nil {
						return nil, translate(err)
					}
					return viewProduct(product), nil
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Args: graphql.FieldConfigArgument{
					"categoryId": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireCan(p.Context, policy, "read:product"); err != nil {
						return nil, err
					}
					var filter catalog.ProductFilter
					if _, ok := p.Args["categoryId"]; ok {
						id, err := parseID(p.Args, "categoryId")
						if err != nil {
							return nil, err
						}
						filter.CategoryID = &id
					}
					products, err := svc.ListProducts(p.Context, filter)
					if err != nil {
						return nil, translate(err)
					}
					return viewProducts(products), nil
				},
			},
		},
		Mutations: graphql.Fields{
			"createProduct": &graphql.Field{
				Type: graphql.NewNonNull(productType),
				Args: productArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireCan(p.Context, policy, "create:product"); err != nil {
						return nil, err
					}
					in, err := productInputFromArgs(p.Args)
					if err != nil {
						return nil, err
					}
					product, err := svc.CreateProduct(p.Context, in)
					if err != nil {
						return nil, translate(err)
					}
					return viewProduct(product), nil
				},
			},
			"updateProduct": &graphql.Field{
				Type: graphql.NewNonNull(productType),
				Args: withIDArg(productArgs),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireCan(p.Context, policy, "update:product"); err != nil {
						return nil, err
					}
					id, err := parseID(p.Args, "id")
					if err != nil {
						return nil, err
					}
					in, err := productInputFromArgs(p.Args)
					if err != nil {
						return nil, err
					}
					product, err := svc.UpdateProduct(p.Context, id, in)
					if err != nil {
						return nil, translate(err)
					}
					return viewProduct(product), nil
				},
			},
			"deleteProduct": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireCan(p.Context, policy, "delete:product"); err != nil {
						return nil, err
					}
					id, err := parseID(p.Args, "id")
					if err != nil {
						return nil, err
					}
					if err := svc.DeleteProduct(p.Context, id); err != nil {
						return nil, translate(err)
					}
					return id.String(), nil
				},
			},
		},
	}
}

func withIDArg(args graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	out := make(graphql.FieldConfigArgument, len(args)+1)
	out["id"] = &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}
	for name, arg := range args {
		out[name] = arg
	}
	return out
}
