package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"grocery.GO/config"
	"grocery.GO/devbackend"
	"grocery.GO/model/entity"
	"grocery.GO/model/repository/product"
	"grocery.GO/model/repository/rest"
)

func TestCatalogList_SortsByPrice(t *testing.T) {
	srv, _ := devbackend.NewTestServer(t)
	prev := config.AppConfig
	config.AppConfig = &config.Config{BaseAPIURL: srv.URL}
	defer func() { config.AppConfig = prev }()

	c, err := rest.New(srv.URL)
	if err != nil {
		t.Fatalf("rest.New: %v", err)
	}
	repo := product.NewProductRepository(c)
	for _, in := range []entity.ProductInput{
		{Name: "Basmati Rice", Category: "Grains", Price: entity.SizedPrice(entity.SizePrice{Label: "1kg", Amount: 4})},
		{Name: "Banana", Category: "Fruit", Price: entity.SinglePrice(1.2)},
		{Name: "Apple", Category: "Fruit", Price: entity.SinglePrice(2.5)},
	} {
		if _, err := repo.Create(context.Background(), in); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"catalog:list", "--sort", "price-asc", "--category", "fruit"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("output:\n%s", out.String())
	}
	if !strings.Contains(lines[1], "Banana") || !strings.Contains(lines[2], "Apple") {
		t.Errorf("order:\n%s", out.String())
	}
}

func TestFormatPrice(t *testing.T) {
	p := entity.SizedPrice(entity.SizePrice{Label: "1kg", Amount: 4}, entity.SizePrice{Label: "5kg", Amount: 18})
	if got := formatPrice(p); got != "1kg:4.00 5kg:18.00" {
		t.Errorf("formatPrice = %q", got)
	}
	if got := formatPrice(entity.SinglePrice(1.5)); got != "1.50" {
		t.Errorf("formatPrice = %q", got)
	}
}
