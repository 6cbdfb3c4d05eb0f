package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"grocery.GO/api/apitest"
	"grocery.GO/model/entity"
)

type gqlResponse struct {
	Data   map[string]json.RawMessage
	Errors []struct{ Message string }
}

func newHarness(t *testing.T) *apitest.Harness {
	t.Helper()
	h := apitest.New(t, nil)
	ctx := context.Background()
	for _, in := range []entity.ProductInput{
		{Name: "Banana", Category: "Fresh Fruit", Price: entity.SinglePrice(1.2)},
		{Name: "Apple", Category: "Fresh Fruit", Price: entity.SinglePrice(2.5)},
	} {
		if _, err := h.Deps.Repos.Products.Create(ctx, in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	RegisterGraphQLRoutes(h.Echo, h.Deps)
	return h
}

func post(t *testing.T, h *apitest.Harness, query string) gqlResponse {
	t.Helper()
	b, _ := json.Marshal(map[string]interface{}{"query": query, "variables": map[string]interface{}{}})
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := h.Send(req, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp gqlResponse
	apitest.Decode(t, rec, &resp)
	return resp
}

func TestGraphQL_HTTPRequestToResult(t *testing.T) {
	h := newHarness(t)
	resp := post(t, h, `query { products(sort: "name-asc") { total items { name price } } }`)
	if len(resp.Errors) > 0 {
		t.Fatalf("errors: %v", resp.Errors)
	}
	var products struct {
		Total int
		Items []struct {
			Name  string
			Price float64
		}
	}
	if err := json.Unmarshal(resp.Data["products"], &products); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	if products.Total != 2 || products.Items[0].Name != "Apple" {
		t.Errorf("products = %+v", products)
	}
}

func TestGraphQL_GetQuery(t *testing.T) {
	h := newHarness(t)
	req := httptest.NewRequest(http.MethodGet, "/graphql?query="+url.QueryEscape(`{ products(search: "ban") { total } }`), nil)
	rec := h.Send(req, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"total":1`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestGraphQL_SortKeysExtension(t *testing.T) {
	h := newHarness(t)
	resp := post(t, h, `{ _extension(name: "sortKeys") }`)
	if len(resp.Errors) > 0 {
		t.Fatalf("errors: %v", resp.Errors)
	}
	var raw string
	if err := json.Unmarshal(resp.Data["_extension"], &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(raw, "price-asc") || strings.Contains(raw, `""`) {
		t.Errorf("_extension = %s", raw)
	}
}

func TestGraphQL_Playground(t *testing.T) {
	h := newHarness(t)
	rec := h.Send(httptest.NewRequest(http.MethodGet, "/playground", nil), nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "GraphQLPlayground") {
		t.Errorf("playground status = %d", rec.Code)
	}
}
