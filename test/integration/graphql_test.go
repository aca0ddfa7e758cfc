// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/shopgraph/shopgraph/internal/access"
	"github.com/shopgraph/shopgraph/internal/auth"
)

// gqlResponse is the decoded /graphql response body.
type gqlResponse struct {
	Data   map[string]any `json:"data"`
	Errors []struct {
		Message    string         `json:"message"`
		Extensions map[string]any `json:"extensions"`
	} `json:"errors"`
}

// doGraphQL posts a query to the test server, optionally with a bearer token.
func doGraphQL(token, query string, variables map[string]any) gqlResponse {
	GinkgoHelper()

	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	Expect(err).NotTo(HaveOccurred())

	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/graphql", bytes.NewReader(body))
	Expect(err).NotTo(HaveOccurred())
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := http.DefaultClient.Do(req)
	Expect(err).NotTo(HaveOccurred())
	defer resp.Body.Close()
	Expect(resp.StatusCode).To(Equal(http.StatusOK))

	var out gqlResponse
	Expect(json.NewDecoder(resp.Body).Decode(&out)).To(Succeed())
	return out
}

func errorCode(resp gqlResponse) string {
	GinkgoHelper()
	Expect(resp.Errors).NotTo(BeEmpty())
	code, _ := resp.Errors[0].Extensions["code"].(string)
	return code
}

// signupUser registers a fresh customer and returns the issued token.
func signupUser(email, password string) string {
	GinkgoHelper()

	resp := doGraphQL("", `mutation ($email: String!, $password: String!) {
		signup(email: $email, password: $password) { token user { email role } }
	}`, map[string]any{"email": email, "password": password})
	Expect(resp.Errors).To(BeEmpty())

	payload := resp.Data["signup"].(map[string]any)
	token, _ := payload["token"].(string)
	Expect(token).NotTo(BeEmpty())
	return token
}

// makeAdmin creates an admin account directly through the repository and
// logs it in through the API.
func makeAdmin(email, password string) string {
	GinkgoHelper()

	hash, err := auth.NewArgon2idHasher().Hash(password)
	Expect(err).NotTo(HaveOccurred())
	admin, err := auth.NewUser(email, hash, access.RoleAdmin)
	Expect(err).NotTo(HaveOccurred())
	Expect(env.users.Create(env.ctx, admin)).To(Succeed())

	resp := doGraphQL("", `mutation ($email: String!, $password: String!) {
		login(email: $email, password: $password) { token }
	}`, map[string]any{"email": email, "password": password})
	Expect(resp.Errors).To(BeEmpty())

	token, _ := resp.Data["login"].(map[string]any)["token"].(string)
	Expect(token).NotTo(BeEmpty())
	return token
}

var _ = Describe("GraphQL API", Ordered, func() {
	var (
		adminToken    string
		customerToken string
		categoryID    string
		productID     string
	)

	BeforeAll(func() {
		adminToken = makeAdmin("admin@integration.test", "correct-horse-battery")
		customerToken = signupUser("customer@integration.test", "rather-long-password")
	})

	Describe("account lifecycle", func() {
		It("resolves me for an authenticated customer", func() {
			resp := doGraphQL(customerToken, `{ me { email role } }`, nil)
			Expect(resp.Errors).To(BeEmpty())

			me := resp.Data["me"].(map[string]any)
			Expect(me["email"]).To(Equal("customer@integration.test"))
			Expect(me["role"]).To(Equal("customer"))
		})

		It("resolves me to null for anonymous requests", func() {
			resp := doGraphQL("", `{ me { email } }`, nil)
			Expect(resp.Errors).To(BeEmpty())
			Expect(resp.Data["me"]).To(BeNil())
		})

		It("rejects duplicate signups", func() {
			resp := doGraphQL("", `mutation {
				signup(email: "customer@integration.test", password: "rather-long-password") { token }
			}`, nil)
			Expect(errorCode(resp)).To(Equal("CONFLICT"))
		})

		It("rejects logins with a wrong password", func() {
			resp := doGraphQL("", `mutation {
				login(email: "customer@integration.test", password: "wrong-password-here") { token }
			}`, nil)
			Expect(errorCode(resp)).To(Equal("UNAUTHENTICATED"))
		})
	})

	Describe("catalog administration", func() {
		It("lets an admin create a category", func() {
			resp := doGraphQL(adminToken, `mutation {
				createCategory(name: "Books", description: "Printed matter") { id name }
			}`, nil)
			Expect(resp.Errors).To(BeEmpty())

			category := resp.Data["createCategory"].(map[string]any)
			categoryID, _ = category["id"].(string)
			Expect(categoryID).NotTo(BeEmpty())
		})

		It("lets an admin create a product in that category", func() {
			resp := doGraphQL(adminToken, fmt.Sprintf(`mutation {
				createProduct(name: "Guards! Guards!", description: "A novel",
					priceCents: 1499, categoryId: %q, stock: 12) { id priceCents stock }
			}`, categoryID), nil)
			Expect(resp.Errors).To(BeEmpty())

			product := resp.Data["createProduct"].(map[string]any)
			productID, _ = product["id"].(string)
			Expect(productID).NotTo(BeEmpty())
			Expect(product["priceCents"]).To(BeEquivalentTo(1499))
		})

		It("serves the catalog to anonymous readers, category included", func() {
			resp := doGraphQL("", fmt.Sprintf(`{
				product(id: %q) { name category { name } }
			}`, productID), nil)
			Expect(resp.Errors).To(BeEmpty())

			product := resp.Data["product"].(map[string]any)
			Expect(product["name"]).To(Equal("Guards! Guards!"))
			Expect(product["category"].(map[string]any)["name"]).To(Equal("Books"))
		})

		It("refuses catalog writes from customers", func() {
			resp := doGraphQL(customerToken, `mutation {
				createCategory(name: "Sneaky", description: "") { id }
			}`, nil)
			Expect(errorCode(resp)).To(Equal("FORBIDDEN"))
		})

		It("refuses catalog writes from anonymous requests", func() {
			resp := doGraphQL("", `mutation {
				createCategory(name: "Sneakier", description: "") { id }
			}`, nil)
			Expect(errorCode(resp)).To(Equal("UNAUTHENTICATED"))
		})

		It("refuses to delete a category that still has products", func() {
			resp := doGraphQL(adminToken, fmt.Sprintf(`mutation {
				deleteCategory(id: %q)
			}`, categoryID), nil)
			Expect(errorCode(resp)).To(Equal("CONFLICT"))
		})
	})

	Describe("order placement", func() {
		It("re-prices the order from the live catalog and decrements stock", func() {
			resp := doGraphQL(customerToken, fmt.Sprintf(`mutation {
				placeOrder(items: [{productId: %q, quantity: 2}]) { id totalCents status }
			}`, productID), nil)
			Expect(resp.Errors).To(BeEmpty())

			order := resp.Data["placeOrder"].(map[string]any)
			Expect(order["totalCents"]).To(BeEquivalentTo(2998))
			Expect(order["status"]).To(Equal("pending"))

			check := doGraphQL("", fmt.Sprintf(`{ product(id: %q) { stock } }`, productID), nil)
			Expect(check.Errors).To(BeEmpty())
			Expect(check.Data["product"].(map[string]any)["stock"]).To(BeEquivalentTo(10))
		})

		It("rejects orders that exceed stock", func() {
			resp := doGraphQL(customerToken, fmt.Sprintf(`mutation {
				placeOrder(items: [{productId: %q, quantity: 999}]) { id }
			}`, productID), nil)
			Expect(errorCode(resp)).To(Equal("BAD_USER_INPUT"))
		})

		It("hides customer orders from other customers but not from admins", func() {
			otherToken := signupUser("other@integration.test", "another-long-password")

			mine := doGraphQL(customerToken, `{ orders { id } }`, nil)
			Expect(mine.Errors).To(BeEmpty())
			Expect(mine.Data["orders"].([]any)).To(HaveLen(1))

			theirs := doGraphQL(otherToken, `{ orders { id } }`, nil)
			Expect(theirs.Errors).To(BeEmpty())
			Expect(theirs.Data["orders"].([]any)).To(BeEmpty())

			all := doGraphQL(adminToken, `{ orders { id } }`, nil)
			Expect(all.Errors).To(BeEmpty())
			Expect(all.Data["orders"].([]any)).To(HaveLen(1))
		})

		It("refuses order history for anonymous requests", func() {
			resp := doGraphQL("", `{ orders { id } }`, nil)
			Expect(errorCode(resp)).To(Equal("UNAUTHENTICATED"))
		})
	})
})
