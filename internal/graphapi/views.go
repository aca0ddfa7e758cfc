// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package graphapi

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/shopgraph/shopgraph/internal/access"
	"github.com/shopgraph/shopgraph/internal/auth"
	"github.com/shopgraph/shopgraph/internal/catalog"
)

// Wire views. Domain structs stay off the wire so schema shape and
// storage shape can drift independently; json tags double as the
// default resolver's field lookup.

type userView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func viewUser(u *auth.User) userView {
	return userView{
		ID:        u.ID.String(),
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

type authPayloadView struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

type productView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int       `json:"priceCents"`
	CategoryID  string    `json:"categoryId"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
}

func viewProduct(p *catalog.Product) productView {
	return productView{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  int(p.PriceCents),
		CategoryID:  p.CategoryID.String(),
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
	}
}

func viewProducts(products []*catalog.Product) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, viewProduct(p))
	}
	return out
}

type categoryView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func viewCategory(c *catalog.Category) categoryView {
	return categoryView{ID: c.ID.String(), Name: c.Name, Description: c.Description}
}

type orderItemView struct {
	ProductID      string `json:"productId"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int    `json:"unitPriceCents"`
}

type orderView struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	Items      []orderItemView `json:"items"`
	TotalCents int             `json:"totalCents"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func viewOrder(o *catalog.Order) orderView {
	items := make([]orderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemView{
			ProductID:      item.ProductID.String(),
			Quantity:       item.Quantity,
			UnitPriceCents: int(item.UnitPriceCents),
		})
	}
	return orderView{
		ID:         o.ID.String(),
		UserID:     o.UserID.String(),
		Items:      items,
		TotalCents: int(o.TotalCents),
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
	}
}

func viewOrders(orders []*catalog.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, viewOrder(o))
	}
	return out
}

func parseID(args map[string]interface{}, key string) (ulid.ULID, error) {
	raw, _ := args[key].(string)
	id, err := ulid.Parse(raw)
	if err != nil {
		return ulid.ULID{}, BadUserInput("invalid id",
			oops.Code("GRAPHAPI_INVALID_ID").With(key, raw).Wrap(err))
	}
	return id, nil
}

// requireCan gates a resolver on a policy action, returning the
// caller's identity on success. Anonymous callers are told to
// authenticate; authenticated callers without the power are forbidden.
func requireCan(ctx context.Context, policy *access.Policy, action string) (auth.Identity, error) {
	ident := auth.IdentityFromContext(ctx)
	if !policy.Can(ident.EffectiveRole(), action) {
		if ident.IsAnonymous() {
			return auth.Identity{}, Unauthenticated(nil)
		}
		return auth.Identity{}, Forbidden(nil)
	}
	return ident, nil
}
