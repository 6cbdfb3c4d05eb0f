package cart

import (
	"context"
	"net/http"
	"testing"

	"grocery.GO/api/apitest"
	"grocery.GO/model/entity"
)

type cartResponse struct {
	ID            string                 `json:"id"`
	Lines         []entity.CartLine      `json:"lines"`
	Count         int                    `json:"count"`
	Total         float64                `json:"total"`
	OrderID       string                 `json:"orderId"`
	Order         *entity.Order          `json:"order"`
	Stale         []string               `json:"stale"`
	Error         string                 `json:"error"`
	Redirect      string                 `json:"redirect"`
	Notifications []apitest.Notification `json:"notifications"`
}

var address = &entity.DeliveryAddress{Street: "1 Market St", City: "Springfield", ZipCode: "12345", Country: "US"}

func newHarness(t *testing.T) (*apitest.Harness, string, string) {
	t.Helper()
	h := apitest.New(t, nil, RegisterCartRoutes)
	ctx := context.Background()
	banana, err := h.Deps.Repos.Products.Create(ctx, entity.ProductInput{Name: "Banana", Category: "Fruit", Price: entity.SinglePrice(1.5)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	rice, err := h.Deps.Repos.Products.Create(ctx, entity.ProductInput{Name: "Rice", Category: "Grains", Price: entity.SizedPrice(
		entity.SizePrice{Label: "1kg", Amount: 4}, entity.SizePrice{Label: "5kg", Amount: 18})})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return h, banana, rice
}

func TestAdd_RequiresLogin(t *testing.T) {
	h, banana, _ := newHarness(t)

	rec := h.Do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": banana, "quantity": 1}, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	var body cartResponse
	apitest.Decode(t, rec, &body)
	if body.Redirect != "/login" {
		t.Errorf("redirect = %q, want /login", body.Redirect)
	}
}

func TestAdd_UnknownProduct(t *testing.T) {
	h, _, _ := newHarness(t)
	cookie := h.SignIn(t, "shopper@example.com", nil)

	rec := h.Do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": "missing", "quantity": 1}, cookie)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body cartResponse
	apitest.Decode(t, rec, &body)
	if body.Error != "Product not found" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestCart_AddUpdateRemove(t *testing.T) {
	h, banana, rice := newHarness(t)
	cookie := h.SignIn(t, "shopper@example.com", nil)

	rec := h.Do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": banana, "quantity": 2}, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d: %s", rec.Code, rec.Body.String())
	}
	rec = h.Do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": rice, "size": "5kg", "quantity": 1}, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add sized status = %d: %s", rec.Code, rec.Body.String())
	}
	var body cartResponse
	apitest.Decode(t, rec, &body)
	if body.Count != 2 || body.Total != 21 {
		t.Fatalf("count = %d total = %v, want 2 and 21", body.Count, body.Total)
	}
	riceLine := body.ID

	rec = h.Do(t, http.MethodPatch, "/api/cart/"+riceLine, map[string]interface{}{"quantity": 3}, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}
	body = cartResponse{}
	apitest.Decode(t, rec, &body)
	if body.Total != 57 {
		t.Errorf("total = %v, want 57", body.Total)
	}

	rec = h.Do(t, http.MethodDelete, "/api/cart/"+riceLine, nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove status = %d", rec.Code)
	}
	body = cartResponse{}
	apitest.Decode(t, rec, &body)
	if body.Count != 1 || body.Total != 3 {
		t.Errorf("count = %d total = %v, want 1 and 3", body.Count, body.Total)
	}
}

func TestAdd_SizedNeedsSize(t *testing.T) {
	h, _, rice := newHarness(t)
	cookie := h.SignIn(t, "shopper@example.com", nil)

	rec := h.Do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": rice, "quantity": 1}, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCheckout_NeedsAddress(t *testing.T) {
	h, banana, _ := newHarness(t)
	cookie := h.SignIn(t, "shopper@example.com", nil)
	h.Do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": banana, "quantity": 1}, cookie)

	rec := h.Do(t, http.MethodPost, "/api/checkout", nil, cookie)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	var body cartResponse
	apitest.Decode(t, rec, &body)
	if body.Redirect != "/account" {
		t.Errorf("redirect = %q, want /account", body.Redirect)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	h, _, _ := newHarness(t)
	cookie := h.SignIn(t, "shopper@example.com", address)

	rec := h.Do(t, http.MethodPost, "/api/checkout", nil, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCheckout_PlacesOrderAndEmptiesCart(t *testing.T) {
	h, banana, rice := newHarness(t)
	cookie := h.SignIn(t, "shopper@example.com", address)
	h.Do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": banana, "quantity": 2}, cookie)
	h.Do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": rice, "size": "1kg", "quantity": 1}, cookie)

	rec := h.Do(t, http.MethodPost, "/api/checkout", nil, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var body cartResponse
	apitest.Decode(t, rec, &body)
	if body.OrderID == "" || body.Order == nil {
		t.Fatalf("body = %+v", body)
	}
	if body.Order.TotalAmount != 7 || body.Order.Status != entity.OrderPending || len(body.Order.Items) != 2 {
		t.Errorf("order = %+v", body.Order)
	}
	if len(body.Stale) != 0 || body.Count != 0 {
		t.Errorf("stale = %v count = %d, want empty cart", body.Stale, body.Count)
	}

	rec = h.Do(t, http.MethodGet, "/api/orders?search=rice", nil, cookie)
	var history struct {
		Orders []entity.Order `json:"orders"`
	}
	apitest.Decode(t, rec, &history)
	if len(history.Orders) != 1 || history.Orders[0].ID != body.OrderID {
		t.Errorf("history = %+v", history.Orders)
	}
}

func TestOrders_InvalidStatus(t *testing.T) {
	h, _, _ := newHarness(t)
	cookie := h.SignIn(t, "shopper@example.com", nil)

	rec := h.Do(t, http.MethodGet, "/api/orders?status=shipped", nil, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
