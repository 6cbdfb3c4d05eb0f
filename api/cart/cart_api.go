package cart

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"grocery.GO/api"
	"grocery.GO/core/apperr"
	"grocery.GO/core/notify"
	"grocery.GO/model/entity"
	"grocery.GO/service/gateway"
	"grocery.GO/service/order"
)

func init() {
	api.RegisterModule(RegisterCartRoutes)
}

type lineView struct {
	entity.CartLine
	LineTotal float64 `json:"lineTotal"`
}

func cartBody(sc *api.Scope) api.Body {
	lines := sc.Cart.Lines()
	views := make([]lineView, len(lines))
	for i, l := range lines {
		views[i] = lineView{CartLine: l, LineTotal: l.LineTotal()}
	}
	return api.Body{
		"lines":  views,
		"count":  len(lines),
		"total":  sc.Cart.Total(),
		"status": sc.Cart.Status(),
	}
}

type addLineRequest struct {
	ProductID string  `json:"productId"`
	Size      string  `json:"size"`
	Quantity  float64 `json:"quantity"`
}

type quantityRequest struct {
	Quantity float64 `json:"quantity"`
}

// RegisterCartRoutes serves the signed-in user's cart, checkout and order history.
func RegisterCartRoutes(apiGroup *echo.Group, d *api.Deps) {
	apiGroup.GET("/cart", func(c echo.Context) error {
		sc := d.Scope(c)
		_ = sc.Cart.Activate(c.Request().Context())
		return api.OK(c, http.StatusOK, cartBody(sc), sc.Notes)
	})

	apiGroup.POST("/cart", func(c echo.Context) error {
		sc := d.Scope(c)
		var req addLineRequest
		if err := c.Bind(&req); err != nil {
			return api.BadRequest(c, "cart-add", "Invalid request body", sc.Notes)
		}
		ctx := c.Request().Context()
		_ = d.Views.Products.Activate(ctx)
		p, ok := d.Views.ProductByID(req.ProductID)
		if !ok && req.ProductID != "" {
			// The shared list may predate the product.
			_ = d.Views.Products.Refresh(ctx)
			p, ok = d.Views.ProductByID(req.ProductID)
		}
		if !ok && req.ProductID != "" {
			err := &apperr.Error{Op: "cart.add", Kind: apperr.KindNotFound, Message: "Product not found"}
			sc.Notes.Notify(notify.FromError("cart-add", err, ""))
			return api.Fail(c, err, sc.Notes)
		}
		id, err := sc.Gateway.AddLine(ctx, gateway.AddLineRequest{Product: p, Size: req.Size, Quantity: req.Quantity})
		if err != nil {
			return api.Fail(c, err, sc.Notes)
		}
		body := cartBody(sc)
		body["id"] = id
		return api.OK(c, http.StatusCreated, body, sc.Notes)
	})

	apiGroup.PATCH("/cart/:id", func(c echo.Context) error {
		sc := d.Scope(c)
		var req quantityRequest
		if err := c.Bind(&req); err != nil {
			return api.BadRequest(c, "cart-update", "Invalid request body", sc.Notes)
		}
		if err := sc.Gateway.UpdateQuantity(c.Request().Context(), c.Param("id"), req.Quantity); err != nil {
			return api.Fail(c, err, sc.Notes)
		}
		return api.OK(c, http.StatusOK, cartBody(sc), sc.Notes)
	})

	apiGroup.DELETE("/cart/:id", func(c echo.Context) error {
		sc := d.Scope(c)
		if err := sc.Gateway.RemoveLine(c.Request().Context(), c.Param("id")); err != nil {
			return api.Fail(c, err, sc.Notes)
		}
		return api.OK(c, http.StatusOK, cartBody(sc), sc.Notes)
	})

	// POST /api/checkout places the cart as one order. Cart lines that could
	// not be removed afterwards are listed under "stale".
	apiGroup.POST("/checkout", func(c echo.Context) error {
		sc := d.Scope(c)
		res, err := sc.Gateway.PlaceOrder(c.Request().Context())
		if err != nil {
			return api.Fail(c, err, sc.Notes)
		}
		stale := res.Stale
		if stale == nil {
			stale = []string{}
		}
		body := cartBody(sc)
		body["orderId"] = res.OrderID
		body["order"] = res.Order
		body["stale"] = stale
		return api.OK(c, http.StatusCreated, body, sc.Notes)
	})

	// GET /api/orders?search=&status=
	apiGroup.GET("/orders", func(c echo.Context) error {
		sc := d.Scope(c)
		status := c.QueryParam("status")
		if err := order.ValidateStatus(status); err != nil {
			return api.BadRequest(c, "orders", apperr.MessageOf(err, "Invalid status"), sc.Notes)
		}
		history := order.NewHistory(d.Repos.Orders, sc.Session, sc.Notes)
		_ = history.Refresh(c.Request().Context())
		orders := order.FilterOrders(history.Items(), order.HistoryQuery{Search: c.QueryParam("search"), Status: status})
		return api.OK(c, http.StatusOK, api.Body{"orders": orders, "status": history.Status()}, sc.Notes)
	})
}
