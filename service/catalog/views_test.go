package catalog

import (
	"context"
	"errors"
	"testing"

	"grocery.GO/core/fetch"
	"grocery.GO/core/notify"
	"grocery.GO/model/entity"
)

type stubProducts struct {
	items []entity.Product
	err   error
	calls int
}

func (s *stubProducts) FetchAll(context.Context) ([]entity.Product, error) {
	s.calls++
	return s.items, s.err
}

type stubCategories struct {
	items []entity.Category
	err   error
}

func (s *stubCategories) FetchAll(context.Context) ([]entity.Category, error) {
	return s.items, s.err
}

func TestViews_RefreshAllAndList(t *testing.T) {
	p := &stubProducts{items: sample()}
	c := &stubCategories{items: []entity.Category{{ID: "c1", Name: "Fresh Fruit"}}}
	v := NewViews(p, c, nil)

	if err := v.RefreshAll(context.Background()); err != nil {
		t.Fatalf("RefreshAll: %v", err)
	}
	got, status := v.List(Query{Search: "rice"})
	if status != fetch.StatusReady || len(got) != 2 {
		t.Errorf("List = %v (%s), want 2 ready items", names(got), status)
	}
	if cat, ok := v.CategoryBySlug("fresh-fruit"); !ok || cat.ID != "c1" {
		t.Errorf("CategoryBySlug = %+v, %v", cat, ok)
	}
	if _, ok := v.ProductByID("2"); !ok {
		t.Error("ProductByID(2) not found")
	}
}

func TestViews_FailureIsIndependent(t *testing.T) {
	rec := notify.NewRecorder(nil)
	p := &stubProducts{items: sample()}
	c := &stubCategories{err: errors.New("down")}
	v := NewViews(p, c, rec)

	if err := v.RefreshAll(context.Background()); err == nil {
		t.Fatal("want error from categories")
	}
	if v.Products.Status() != fetch.StatusReady {
		t.Errorf("products status = %s, want ready", v.Products.Status())
	}
	if v.Categories.Status() != fetch.StatusFailed {
		t.Errorf("categories status = %s, want failed", v.Categories.Status())
	}
	all := rec.All()
	if len(all) != 1 || all[0].ID != "categories-load" {
		t.Errorf("notifications = %+v", all)
	}
}

func TestViews_ActivateLoadsOnce(t *testing.T) {
	p := &stubProducts{items: sample()}
	v := NewViews(p, &stubCategories{}, nil)
	v.Activate(context.Background())
	v.Activate(context.Background())
	if p.calls != 1 {
		t.Errorf("calls = %d, want 1", p.calls)
	}
}

type ctxProducts struct{ items []entity.Product }

func (s ctxProducts) FetchAll(ctx context.Context) ([]entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.items, nil
}

func TestViews_AbortedRequestKeepsSharedList(t *testing.T) {
	v := NewViews(ctxProducts{items: sample()}, &stubCategories{}, nil)

	aborted, cancel := context.WithCancel(context.Background())
	cancel()
	_ = v.Activate(aborted)

	got, status := v.List(Query{})
	if status != fetch.StatusReady || len(got) != len(sample()) {
		t.Errorf("List = %d items (%s), want %d ready", len(got), status, len(sample()))
	}
}
