package store

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"grocery.GO/api"
	"grocery.GO/core/apperr"
	"grocery.GO/core/fetch"
	"grocery.GO/core/notify"
	"grocery.GO/service/catalog"
)

func init() {
	api.RegisterModule(RegisterStoreRoutes)
}

// RegisterStoreRoutes serves the public catalog.
func RegisterStoreRoutes(apiGroup *echo.Group, d *api.Deps) {
	g := apiGroup.Group("/store")

	// GET /api/store/products?search=&sort=&category=&min=&max=
	g.GET("/products", func(c echo.Context) error {
		notes := notify.NewRecorder(d.Log)
		q, err := parseQuery(c, c.QueryParam("category"))
		if err != nil {
			return api.BadRequest(c, "store.products", apperr.MessageOf(err, err.Error()), notes)
		}
		_ = d.Views.Activate(c.Request().Context())
		items, status := d.Views.List(q)
		loadNotice(notes, status, "products-load", "Could not load products")
		return api.OK(c, http.StatusOK, api.Body{"products": items, "status": status}, notes)
	})

	g.GET("/categories", func(c echo.Context) error {
		notes := notify.NewRecorder(d.Log)
		_ = d.Views.Activate(c.Request().Context())
		snap := d.Views.Categories.Snapshot()
		loadNotice(notes, snap.Status, "categories-load", "Could not load categories")
		return api.OK(c, http.StatusOK, api.Body{"categories": snap.Items, "status": snap.Status}, notes)
	})

	// GET /api/store/categories/:slug/products
	g.GET("/categories/:slug/products", func(c echo.Context) error {
		notes := notify.NewRecorder(d.Log)
		slug := c.Param("slug")
		q, err := parseQuery(c, slug)
		if err != nil {
			return api.BadRequest(c, "store.category", apperr.MessageOf(err, err.Error()), notes)
		}
		_ = d.Views.Activate(c.Request().Context())
		body := api.Body{"category": nil}
		if cat, ok := d.Views.CategoryBySlug(slug); ok {
			body["category"] = cat
		}
		items, status := d.Views.List(q)
		loadNotice(notes, status, "products-load", "Could not load products")
		body["products"] = items
		body["status"] = status
		return api.OK(c, http.StatusOK, body, notes)
	})

	g.POST("/refresh", func(c echo.Context) error {
		notes := notify.NewRecorder(d.Log)
		if err := d.Views.RefreshAll(c.Request().Context()); err != nil {
			notes.Notify(notify.FromError("catalog-refresh", err, "Could not refresh the catalog"))
			return api.Fail(c, err, notes)
		}
		return api.OK(c, http.StatusOK, api.Body{
			"products":   len(d.Views.Products.Items()),
			"categories": len(d.Views.Categories.Items()),
		}, notes)
	})
}

func parseQuery(c echo.Context, category string) (catalog.Query, error) {
	key, err := catalog.ParseSortKey(c.QueryParam("sort"))
	if err != nil {
		return catalog.Query{}, err
	}
	q := catalog.Query{Search: c.QueryParam("search"), Sort: key, Category: category}
	if q.MinPrice, err = parseBound(c.QueryParam("min")); err != nil {
		return q, err
	}
	if q.MaxPrice, err = parseBound(c.QueryParam("max")); err != nil {
		return q, err
	}
	return q, nil
}

type boundError string

func (e boundError) Error() string { return "invalid price bound " + strconv.Quote(string(e)) }

func parseBound(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil, boundError(s)
	}
	return &v, nil
}

func loadNotice(notes *notify.Recorder, status fetch.Status, id, message string) {
	if status == fetch.StatusFailed {
		notes.Notify(notify.Error(id, message))
	}
}
