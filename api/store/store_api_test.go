package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"grocery.GO/api/apitest"
	"grocery.GO/model/entity"
)

type productsBody struct {
	Products      []entity.Product       `json:"products"`
	Category      *entity.Category       `json:"category"`
	Status        string                 `json:"status"`
	Notifications []apitest.Notification `json:"notifications"`
	Error         string                 `json:"error"`
}

func seed(t *testing.T, h *apitest.Harness) {
	t.Helper()
	ctx := context.Background()
	if _, err := h.Deps.Repos.Categories.Create(ctx, entity.CategoryInput{Name: "Fresh Fruit"}); err != nil {
		t.Fatalf("create category: %v", err)
	}
	for _, in := range []entity.ProductInput{
		{Name: "Banana", Category: "Fresh Fruit", Price: entity.SinglePrice(1.2)},
		{Name: "Apple", Category: "Fresh Fruit", Price: entity.SinglePrice(2.5)},
		{Name: "Basmati Rice", Category: "Grains", Price: entity.SizedPrice(
			entity.SizePrice{Label: "1kg", Amount: 4}, entity.SizePrice{Label: "5kg", Amount: 18})},
	} {
		if _, err := h.Deps.Repos.Products.Create(ctx, in); err != nil {
			t.Fatalf("create product: %v", err)
		}
	}
}

func TestProducts_SortAndRange(t *testing.T) {
	h := apitest.New(t, nil, RegisterStoreRoutes)
	seed(t, h)

	rec := h.Do(t, http.MethodGet, "/api/store/products?sort=price-desc&max=3", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body productsBody
	apitest.Decode(t, rec, &body)
	if body.Status != "ready" || len(body.Products) != 2 {
		t.Fatalf("body = %+v", body)
	}
	if body.Products[0].Name != "Apple" || body.Products[1].Name != "Banana" {
		t.Errorf("order = %s, %s", body.Products[0].Name, body.Products[1].Name)
	}
}

func TestProducts_SizedInRange(t *testing.T) {
	h := apitest.New(t, nil, RegisterStoreRoutes)
	seed(t, h)

	rec := h.Do(t, http.MethodGet, "/api/store/products?min=10&max=20", nil, nil)
	var body productsBody
	apitest.Decode(t, rec, &body)
	if len(body.Products) != 1 || body.Products[0].Name != "Basmati Rice" {
		t.Errorf("products = %+v", body.Products)
	}
}

func TestProducts_UnknownSort(t *testing.T) {
	h := apitest.New(t, nil, RegisterStoreRoutes)

	rec := h.Do(t, http.MethodGet, "/api/store/products?sort=cheapest", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body productsBody
	apitest.Decode(t, rec, &body)
	if len(body.Notifications) != 1 || body.Notifications[0].Level != "error" {
		t.Errorf("notifications = %+v", body.Notifications)
	}
}

func TestCategoryProducts(t *testing.T) {
	h := apitest.New(t, nil, RegisterStoreRoutes)
	seed(t, h)

	rec := h.Do(t, http.MethodGet, "/api/store/categories/fresh-fruit/products?sort=name-asc&search=an", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body productsBody
	apitest.Decode(t, rec, &body)
	if body.Category == nil || body.Category.Name != "Fresh Fruit" {
		t.Errorf("category = %+v", body.Category)
	}
	if len(body.Products) != 1 || body.Products[0].Name != "Banana" {
		t.Errorf("products = %+v", body.Products)
	}
}

func TestProducts_BackendDown(t *testing.T) {
	h := apitest.New(t, nil, RegisterStoreRoutes)
	h.Backend.Close()

	rec := h.Do(t, http.MethodGet, "/api/store/products", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body productsBody
	apitest.Decode(t, rec, &body)
	if body.Status != "failed" || len(body.Products) != 0 {
		t.Errorf("body = %+v", body)
	}
	if len(body.Notifications) != 1 || body.Notifications[0].ID != "products-load" {
		t.Errorf("notifications = %+v", body.Notifications)
	}
}

func TestProducts_AbortedRequestKeepsCatalog(t *testing.T) {
	h := apitest.New(t, nil, RegisterStoreRoutes)
	seed(t, h)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/store/products", nil).WithContext(ctx)
	h.Send(req, nil)

	rec := h.Do(t, http.MethodGet, "/api/store/products", nil, nil)
	var body productsBody
	apitest.Decode(t, rec, &body)
	if body.Status != "ready" || len(body.Products) != 3 {
		t.Errorf("after aborted request: status = %s, products = %d, want ready 3", body.Status, len(body.Products))
	}
}
