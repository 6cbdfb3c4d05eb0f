package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"grocery.GO/core/fetch"
	"grocery.GO/core/notify"
	"grocery.GO/model/entity"
)

type ProductSource interface {
	FetchAll(ctx context.Context) ([]entity.Product, error)
}

type CategorySource interface {
	FetchAll(ctx context.Context) ([]entity.Category, error)
}

// Views are the shared catalog lists. Each list has its own fetcher and lock.
type Views struct {
	Products   *fetch.Fetcher[entity.Product]
	Categories *fetch.Fetcher[entity.Category]
}

func NewViews(products ProductSource, categories CategorySource, n notify.Notifier) *Views {
	return &Views{
		Products: fetch.New[entity.Product]("products", products.FetchAll, n,
			notify.Error("products-load", "Could not load products")),
		Categories: fetch.New[entity.Category]("categories", categories.FetchAll, n,
			notify.Error("categories-load", "Could not load categories")),
	}
}

// RefreshAll reloads both lists concurrently. Both reads are always issued;
// the first failure is returned.
func (v *Views) RefreshAll(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return v.Products.Refresh(ctx) })
	g.Go(func() error { return v.Categories.Refresh(ctx) })
	return g.Wait()
}

// RefreshProducts satisfies the gateway's refresher.
func (v *Views) RefreshProducts(ctx context.Context) error {
	return v.Products.Refresh(ctx)
}

func (v *Views) RefreshCategories(ctx context.Context) error {
	return v.Categories.Refresh(ctx)
}

// Activate loads whichever list has never been loaded.
func (v *Views) Activate(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return v.Products.Activate(ctx) })
	g.Go(func() error { return v.Categories.Activate(ctx) })
	return g.Wait()
}

// List runs q over the current product snapshot.
func (v *Views) List(q Query) ([]entity.Product, fetch.Status) {
	snap := v.Products.Snapshot()
	return Apply(snap.Items, q), snap.Status
}

// CategoryBySlug finds a category in the current snapshot.
func (v *Views) CategoryBySlug(slug string) (entity.Category, bool) {
	want := Slug(slug)
	for _, c := range v.Categories.Items() {
		if Slug(c.Name) == want {
			return c, true
		}
	}
	return entity.Category{}, false
}

// ProductByID finds a product in the current snapshot.
func (v *Views) ProductByID(id string) (entity.Product, bool) {
	for _, p := range v.Products.Items() {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}
