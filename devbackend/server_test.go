package devbackend

import (
	"context"
	"errors"
	"testing"
	"time"

	"grocery.GO/core/apperr"
	"grocery.GO/model/entity"
	"grocery.GO/model/repository/cart"
	"grocery.GO/model/repository/category"
	"grocery.GO/model/repository/order"
	"grocery.GO/model/repository/product"
	"grocery.GO/model/repository/rest"
	"grocery.GO/model/repository/user"
)

func client(t *testing.T) *rest.Client {
	t.Helper()
	srv, _ := NewTestServer(t)
	c, err := rest.New(srv.URL)
	if err != nil {
		t.Fatalf("rest.New: %v", err)
	}
	return c
}

func TestProducts_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := product.NewProductRepository(client(t))

	id, err := repo.Create(ctx, entity.ProductInput{Name: "Mango", Category: "Fruit", Price: entity.SizedPrice(
		entity.SizePrice{Label: "1kg", Amount: 3},
		entity.SizePrice{Label: "5kg", Amount: 12},
	)})
	if err != nil || id == "" {
		t.Fatalf("Create = %q, %v", id, err)
	}
	if _, err := repo.Create(ctx, entity.ProductInput{Name: "Rice", Category: "Grains", Price: entity.SinglePrice(10)}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := repo.FetchAll(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("FetchAll = %d, %v", len(all), err)
	}
	var mango entity.Product
	for _, p := range all {
		if p.ID == id {
			mango = p
		}
	}
	if mango.Price.Kind() != entity.PriceSized || len(mango.Price.Sizes()) != 2 {
		t.Errorf("mango price = %+v", mango.Price.Sizes())
	}
	if mango.CreatedAt == nil {
		t.Error("createdAt not set")
	}

	if err := repo.Update(ctx, id, entity.ProductInput{Name: "Alphonso", Category: "Fruit", Price: entity.SinglePrice(4)}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	all, _ = repo.FetchAll(ctx)
	for _, p := range all {
		if p.ID == id {
			if a, ok := p.Price.Amount(); p.Name != "Alphonso" || !ok || a != 4 {
				t.Errorf("updated = %+v", p)
			}
		}
	}

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	all, _ = repo.FetchAll(ctx)
	if len(all) != 1 {
		t.Errorf("after delete = %d products", len(all))
	}
}

func TestProducts_SinglePriceRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := product.NewProductRepository(client(t))

	want := map[string]float64{"Rice": 10, "Milk": 2.5}
	for name, amount := range want {
		if _, err := repo.Create(ctx, entity.ProductInput{Name: name, Category: "Pantry", Price: entity.SinglePrice(amount)}); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	all, err := repo.FetchAll(ctx)
	if err != nil || len(all) != len(want) {
		t.Fatalf("FetchAll = %d, %v", len(all), err)
	}
	for _, p := range all {
		a, ok := p.Price.Amount()
		if !ok || a != want[p.Name] {
			t.Errorf("%s price = %v (single %v), want %v", p.Name, a, ok, want[p.Name])
		}
	}
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	repo := category.NewCategoryRepository(client(t))
	id, err := repo.Create(ctx, entity.CategoryInput{Name: "Fresh Fruit", Image: "https://img/fruit.png"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Update(ctx, id, entity.CategoryInput{Name: "Fruit", Image: "https://img/fruit.png"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	all, err := repo.FetchAll(ctx)
	if err != nil || len(all) != 1 || all[0].Name != "Fruit" || all[0].ID != id {
		t.Errorf("FetchAll = %+v, %v", all, err)
	}
}

func TestCart_AddThenRefetch(t *testing.T) {
	ctx := context.Background()
	repo := cart.NewCartRepository(client(t))

	empty, err := repo.ListByEmail(ctx, "ann@example.com")
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty cart = %v, %v", empty, err)
	}

	in := entity.CartLineInput{ProductID: "p1", Name: "Rice", UnitPrice: 10, Quantity: 2, OwnerEmail: "ann@example.com"}
	id, err := repo.Add(ctx, in)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	lines, err := repo.ListByEmail(ctx, "ann@example.com")
	if err != nil || len(lines) != 1 {
		t.Fatalf("ListByEmail = %v, %v", lines, err)
	}
	l := lines[0]
	if l.ID != id || l.ProductID != in.ProductID || l.Quantity != in.Quantity || l.UnitPrice != in.UnitPrice {
		t.Errorf("line = %+v, want %+v", l, in)
	}

	if err := repo.UpdateQuantity(ctx, id, 5); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	lines, _ = repo.ListByEmail(ctx, "ann@example.com")
	if got := lines[0].LineTotal(); got != 50 {
		t.Errorf("line total = %v, want 50", got)
	}

	other, _ := repo.ListByEmail(ctx, "bob@example.com")
	if len(other) != 0 {
		t.Errorf("bob's cart = %v", other)
	}
}

func TestOrdersAndUsers(t *testing.T) {
	ctx := context.Background()
	c := client(t)
	orders := order.NewOrderRepository(c)
	users := user.NewUserRepository(c)

	addr := &entity.DeliveryAddress{Street: "1 Main", City: "Dhaka", Country: "BD"}
	if _, err := users.Create(ctx, entity.UserProfile{Email: "ann@example.com", Name: "Ann", DeliveryAddress: addr}); err != nil {
		t.Fatalf("users.Create: %v", err)
	}
	p, err := users.FindByEmail(ctx, "ann@example.com")
	if err != nil || p == nil || p.DeliveryAddress.IsZero() || p.DeliveryAddress.City != "Dhaka" {
		t.Fatalf("FindByEmail = %+v, %v", p, err)
	}
	none, err := users.FindByEmail(ctx, "nobody@example.com")
	if err != nil || none != nil {
		t.Errorf("unknown user = %+v, %v", none, err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	for i, total := range []float64{20, 35} {
		_, err := orders.Create(ctx, entity.Order{
			OwnerEmail:      "ann@example.com",
			Name:            "Ann",
			DeliveryAddress: addr,
			Items:           []entity.OrderItem{{ProductID: "p1", Name: "Rice", Price: 10, Quantity: total / 10}},
			TotalAmount:     total,
			Status:          entity.OrderPending,
			OrderDate:       now.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("orders.Create: %v", err)
		}
	}
	list, err := orders.ListByEmail(ctx, "ann@example.com")
	if err != nil || len(list) != 2 {
		t.Fatalf("ListByEmail = %d, %v", len(list), err)
	}
	if list[0].TotalAmount != 35 || list[0].Items[0].Name != "Rice" || list[0].DeliveryAddress.City != "Dhaka" {
		t.Errorf("newest order = %+v", list[0])
	}
}

func TestMissingRoute(t *testing.T) {
	c := client(t)
	err := c.Get(context.Background(), "/nothing", nil, nil)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}
