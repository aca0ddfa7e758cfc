// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package graphapi

import (
	"github.com/graphql-go/graphql"
	"github.com/samber/oops"

	"github.com/shopgraph/shopgraph/internal/access"
	"github.com/shopgraph/shopgraph/internal/catalog"
	"github.com/shopgraph/shopgraph/internal/observability"
	"github.com/shopgraph/shopgraph/internal/schema"
)

func orderItemsFromArg(raw interface{}) ([]catalog.OrderItemInput, error) {
	list, ok := raw.([]interface{})
	if !ok {
		return nil, BadUserInput("invalid items",
			oops.Code("GRAPHAPI_INVALID_ID").Errorf("items must be a list"))
	}
	items := make([]catalog.OrderItemInput, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		productID, err := parseID(m, "productId")
		if err != nil {
			return nil, err
		}
		quantity, _ := m["quantity"].(int)
		items = append(items, catalog.OrderItemInput{ProductID: productID, Quantity: quantity})
	}
	return items, nil
}

// OrderModule contributes order placement and history. All operations
// need an authenticated caller; customers only ever see their own
// rows, which the service itself enforces.
func OrderModule(svc *catalog.OrderService, policy *access.Policy) schema.Module {
	orderItemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "OrderItem",
		Fields: graphql.Fields{
			"productId":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"quantity":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"unitPriceCents": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"userId":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"items":      &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(orderItemType)))},
			"totalCents": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"status":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt":  &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	orderItemInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "OrderItemInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"productId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"quantity":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	return schema.Module{
		Name:  "order",
		Types: []graphql.Type{orderType, orderItemType, orderItemInputType},
		Queries: graphql.Fields{
			"order": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ident, err := requireCan(p.Context, policy, "read:order")
					if err != nil {
						return nil, err
					}
					id, err := parseID(p.Args, "id")
					if err != nil {
						return nil, err
					}
					order, err := svc.GetOrder(p.Context, ident, id)
					if err != nil {
						return nil, translate(err)
					}
					return viewOrder(order), nil
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(orderType))),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ident, err := requireCan(p.Context, policy, "read:order")
					if err != nil {
						return nil, err
					}
					var filter catalog.OrderFilter
					if _, ok := p.Args["userId"]; ok {
						id, err := parseID(p.Args, "userId")
						if err != nil {
							return nil, err
						}
						filter.UserID = &id
					}
					orders, err := svc.ListOrders(p.Context, ident, filter)
					if err != nil {
						return nil, translate(err)
					}
					return viewOrders(orders), nil
				},
			},
		},
		Mutations: graphql.Fields{
			"placeOrder": &graphql.Field{
				Type: graphql.NewNonNull(orderType),
				Args: graphql.FieldConfigArgument{
					"items": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(orderItemInputType))),
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ident, err := requireCan(p.Context, policy, "create:order")
					if err != nil {
						return nil, err
					}
					items, err := orderItemsFromArg(p.Args["items"])
					if err != nil {
						return nil, err
					}
					order, err := svc.PlaceOrder(p.Context, ident.UserID, items)
					if err != nil {
						return nil, translate(err)
					}
					observability.RecordOrderPlaced()
					return viewOrder(order), nil
				},
			},
		},
	}
}
