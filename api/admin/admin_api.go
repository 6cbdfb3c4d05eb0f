package admin

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"grocery.GO/api"
	"grocery.GO/core/apperr"
	"grocery.GO/core/auth"
	"grocery.GO/core/notify"
	"grocery.GO/model/entity"
	"grocery.GO/service/gateway"
	productService "grocery.GO/service/product"
)

func init() {
	api.RegisterModule(RegisterAdminRoutes)
}

// RegisterAdminRoutes serves catalog management behind back-office auth.
func RegisterAdminRoutes(apiGroup *echo.Group, d *api.Deps) {
	g := apiGroup.Group("/admin", auth.Admin())

	g.GET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	g.GET("/products", func(c echo.Context) error {
		notes := notify.NewRecorder(d.Log)
		_ = d.Views.Products.Refresh(c.Request().Context())
		snap := d.Views.Products.Snapshot()
		if snap.Err != nil {
			notes.Notify(notify.FromError("products-load", snap.Err, "Could not load products"))
		}
		return api.OK(c, http.StatusOK, api.Body{"products": snap.Items, "status": snap.Status}, notes)
	})

	g.POST("/products", func(c echo.Context) error {
		gw, notes := d.AdminScope()
		in, err := readProduct(c, d, nil)
		if err != nil {
			notes.Notify(notify.FromError("product-save", err, "Could not read the product"))
			return api.Fail(c, err, notes)
		}
		id, err := gw.CreateProduct(c.Request().Context(), in)
		if err != nil {
			return api.Fail(c, err, notes)
		}
		return api.OK(c, http.StatusCreated, api.Body{"id": id}, notes)
	})

	g.PATCH("/products/:id", func(c echo.Context) error {
		gw, notes := d.AdminScope()
		id := c.Param("id")
		_ = d.Views.Products.Activate(c.Request().Context())
		var existing *entity.Product
		if p, ok := d.Views.ProductByID(id); ok {
			existing = &p
		}
		in, err := readProduct(c, d, existing)
		if err != nil {
			notes.Notify(notify.FromError("product-save", err, "Could not read the product"))
			return api.Fail(c, err, notes)
		}
		if err := gw.UpdateProduct(c.Request().Context(), id, in); err != nil {
			return api.Fail(c, err, notes)
		}
		return api.OK(c, http.StatusOK, api.Body{"id": id}, notes)
	})

	g.DELETE("/products/:id", func(c echo.Context) error {
		gw, notes := d.AdminScope()
		if err := gw.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
			return api.Fail(c, err, notes)
		}
		return api.OK(c, http.StatusOK, nil, notes)
	})

	g.GET("/categories", func(c echo.Context) error {
		notes := notify.NewRecorder(d.Log)
		_ = d.Views.Categories.Refresh(c.Request().Context())
		snap := d.Views.Categories.Snapshot()
		if snap.Err != nil {
			notes.Notify(notify.FromError("categories-load", snap.Err, "Could not load categories"))
		}
		return api.OK(c, http.StatusOK, api.Body{"categories": snap.Items, "status": snap.Status}, notes)
	})

	g.POST("/categories", func(c echo.Context) error {
		gw, notes := d.AdminScope()
		in, err := readCategory(c, d, nil)
		if err != nil {
			notes.Notify(notify.FromError("category-save", err, "Could not read the category"))
			return api.Fail(c, err, notes)
		}
		id, err := gw.CreateCategory(c.Request().Context(), in)
		if err != nil {
			return api.Fail(c, err, notes)
		}
		return api.OK(c, http.StatusCreated, api.Body{"id": id}, notes)
	})

	g.PATCH("/categories/:id", func(c echo.Context) error {
		gw, notes := d.AdminScope()
		id := c.Param("id")
		_ = d.Views.Categories.Activate(c.Request().Context())
		var existing *entity.Category
		for _, cat := range d.Views.Categories.Items() {
			if cat.ID == id {
				cat := cat
				existing = &cat
			}
		}
		in, err := readCategory(c, d, existing)
		if err != nil {
			notes.Notify(notify.FromError("category-save", err, "Could not read the category"))
			return api.Fail(c, err, notes)
		}
		if err := gw.UpdateCategory(c.Request().Context(), id, in); err != nil {
			return api.Fail(c, err, notes)
		}
		return api.OK(c, http.StatusOK, api.Body{"id": id}, notes)
	})

	g.DELETE("/categories/:id", func(c echo.Context) error {
		gw, notes := d.AdminScope()
		if err := gw.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
			return api.Fail(c, err, notes)
		}
		return api.OK(c, http.StatusOK, nil, notes)
	})
}

func isForm(c echo.Context) bool {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(ct, echo.MIMEMultipartForm) || strings.HasPrefix(ct, echo.MIMEApplicationForm)
}

// uploadedImage publishes the "image" file of a multipart request. ok is false
// when the request carries no file.
func uploadedImage(c echo.Context, d *api.Deps) (url string, ok bool, err error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return "", false, nil
	}
	if d.Uploader == nil {
		return "", true, apperr.Validation("admin.upload", "Image upload is not configured")
	}
	f, err := fh.Open()
	if err != nil {
		return "", true, apperr.Validation("admin.upload", "Could not read the image")
	}
	defer f.Close()
	url, err = d.Uploader.Upload(c.Request().Context(), fh.Filename, f)
	return url, true, err
}

// readProduct decodes a product from JSON or a form. Form prices are either
// "price" or "sizes" ("1kg:10|5kg:45"). Without a new image the existing one
// is kept.
func readProduct(c echo.Context, d *api.Deps, existing *entity.Product) (entity.ProductInput, error) {
	const op = "admin.readProduct"
	var in entity.ProductInput
	if !isForm(c) {
		if err := json.NewDecoder(c.Request().Body).Decode(&in); err != nil {
			return in, apperr.Validation(op, "Invalid product: "+err.Error())
		}
	} else {
		in.Name = strings.TrimSpace(c.FormValue("name"))
		in.Category = strings.TrimSpace(c.FormValue("category"))
		in.Image = strings.TrimSpace(c.FormValue("image"))
		if sizes := strings.TrimSpace(c.FormValue("sizes")); sizes != "" {
			p, err := productService.ParseSizes(sizes)
			if err != nil {
				return in, apperr.Validation(op, err.Error())
			}
			in.Price = p
		} else if raw := strings.TrimSpace(c.FormValue("price")); raw != "" {
			amount, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return in, apperr.Validation(op, "Price must be a number")
			}
			in.Price = entity.SinglePrice(amount)
		}
		if err := gateway.ValidateProduct(op, in); err != nil {
			return in, err
		}
		url, ok, err := uploadedImage(c, d)
		if err != nil {
			return in, err
		}
		if ok {
			in.Image = url
		}
	}
	if in.Image == "" && existing != nil {
		in.Image = existing.Image
	}
	if in.CreatedAt == nil && existing != nil {
		in.CreatedAt = existing.CreatedAt
	}
	return in, nil
}

func readCategory(c echo.Context, d *api.Deps, existing *entity.Category) (entity.CategoryInput, error) {
	var in entity.CategoryInput
	if !isForm(c) {
		if err := json.NewDecoder(c.Request().Body).Decode(&in); err != nil {
			return in, apperr.Validation("admin.readCategory", "Invalid category: "+err.Error())
		}
	} else {
		in.Name = strings.TrimSpace(c.FormValue("name"))
		in.Description = strings.TrimSpace(c.FormValue("description"))
		in.Image = strings.TrimSpace(c.FormValue("image"))
		if err := gateway.ValidateCategory("admin.readCategory", in); err != nil {
			return in, err
		}
		url, ok, err := uploadedImage(c, d)
		if err != nil {
			return in, err
		}
		if ok {
			in.Image = url
		}
	}
	if existing != nil {
		if in.Image == "" {
			in.Image = existing.Image
		}
		if in.Description == "" {
			in.Description = existing.Description
		}
	}
	return in, nil
}
