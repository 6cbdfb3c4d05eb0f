// Package gateway issues every create, update and delete call the storefront
// and back office make. Visible state changes only through the refetch that
// follows a successful call.
package gateway

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"grocery.GO/core/apperr"
	"grocery.GO/core/notify"
	"grocery.GO/core/session"
	"grocery.GO/model/entity"
	"grocery.GO/service/cart"
)

type ProductStore interface {
	Create(ctx context.Context, in entity.ProductInput) (string, error)
	Update(ctx context.Context, id string, in entity.ProductInput) error
	Delete(ctx context.Context, id string) error
}

type CategoryStore interface {
	Create(ctx context.Context, in entity.CategoryInput) (string, error)
	Update(ctx context.Context, id string, in entity.CategoryInput) error
	Delete(ctx context.Context, id string) error
}

type CartStore interface {
	Add(ctx context.Context, in entity.CartLineInput) (string, error)
	UpdateQuantity(ctx context.Context, id string, quantity float64) error
	Remove(ctx context.Context, id string) error
}

type OrderStore interface {
	Create(ctx context.Context, o entity.Order) (string, error)
}

type ProfileReader interface {
	FindByEmail(ctx context.Context, email string) (*entity.UserProfile, error)
}

// Refresher reloads the shared catalog lists after a catalog mutation.
type Refresher interface {
	RefreshProducts(ctx context.Context) error
	RefreshCategories(ctx context.Context) error
}

// Stores groups the backend collections the gateway writes to.
type Stores struct {
	Products   ProductStore
	Categories CategoryStore
	Carts      CartStore
	Orders     OrderStore
	Profiles   ProfileReader
}

// Redirect targets for unmet preconditions.
const (
	RedirectLogin   = "/login"
	RedirectAccount = "/account"
)

type Gateway struct {
	stores   Stores
	catalog  Refresher
	cart     *cart.Projection
	session  *session.Session
	notifier notify.Notifier
	log      *zap.Logger
	now      func() time.Time
}

// New builds a gateway for one user. cart may be nil for back-office use, and
// catalog may be nil when nothing holds a catalog list.
func New(stores Stores, catalog Refresher, c *cart.Projection, s *session.Session, n notify.Notifier, log *zap.Logger) *Gateway {
	if n == nil {
		n = notify.Discard{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{stores: stores, catalog: catalog, cart: c, session: s, notifier: n, log: log, now: time.Now}
}

// fail reports err to the user and returns it.
func (g *Gateway) fail(id string, err error, fallback string) error {
	if apperr.KindOf(err) == apperr.KindTransport {
		g.log.Warn("backend call failed", zap.String("op", id), zap.Error(err))
	}
	g.notifier.Notify(notify.FromError(id, err, fallback))
	return err
}

func (g *Gateway) refetchCart(ctx context.Context) {
	if g.cart != nil {
		_ = g.cart.Refetch(ctx)
	}
}

// AddLineRequest adds quantity of product to the signed-in user's cart. Size
// is required for sized products.
type AddLineRequest struct {
	Product  entity.Product
	Size     string
	Quantity float64
}

func (g *Gateway) AddLine(ctx context.Context, req AddLineRequest) (string, error) {
	const op = "gateway.AddLine"
	email := g.session.Email()
	if email == "" {
		return "", g.fail("cart-add", apperr.Precondition(op, "Please log in to add items to your cart", RedirectLogin), "")
	}
	if strings.TrimSpace(req.Product.ID) == "" {
		return "", g.fail("cart-add", apperr.Validation(op, "Product is required"), "")
	}
	if req.Quantity <= 0 {
		return "", g.fail("cart-add", apperr.Validation(op, "Quantity must be greater than zero"), "")
	}

	in := entity.CartLineInput{
		ProductID:  req.Product.ID,
		Name:       req.Product.Name,
		Image:      req.Product.Image,
		Quantity:   req.Quantity,
		OwnerEmail: email,
	}
	switch req.Product.Price.Kind() {
	case entity.PriceSized:
		if strings.TrimSpace(req.Size) == "" {
			return "", g.fail("cart-add", apperr.Validation(op, "Please select a size"), "")
		}
		size, ok := req.Product.Price.Size(req.Size)
		if !ok {
			return "", g.fail("cart-add", apperr.Validation(op, fmt.Sprintf("Size %q is not available", req.Size)), "")
		}
		in.UnitPrice = size.Amount
		in.Name = fmt.Sprintf("%s (%s)", req.Product.Name, size.Label)
	default:
		in.UnitPrice, _ = req.Product.Price.Amount()
	}

	id, err := g.stores.Carts.Add(ctx, in)
	if err != nil {
		return "", g.fail("cart-add", err, "Could not add item to cart")
	}
	g.notifier.Notify(notify.Success("cart-add", fmt.Sprintf("%s added to cart", in.Name)))
	g.refetchCart(ctx)
	return id, nil
}

func (g *Gateway) UpdateQuantity(ctx context.Context, lineID string, quantity float64) error {
	const op = "gateway.UpdateQuantity"
	if strings.TrimSpace(lineID) == "" {
		return g.fail("cart-update", apperr.Validation(op, "Cart line is required"), "")
	}
	if quantity <= 0 {
		return g.fail("cart-update", apperr.Validation(op, "Quantity must be greater than zero"), "")
	}
	if err := g.stores.Carts.UpdateQuantity(ctx, lineID, quantity); err != nil {
		return g.fail("cart-update", err, "Could not update quantity")
	}
	g.notifier.Notify(notify.Success("cart-update", "Quantity updated"))
	g.refetchCart(ctx)
	return nil
}

func (g *Gateway) RemoveLine(ctx context.Context, lineID string) error {
	const op = "gateway.RemoveLine"
	if strings.TrimSpace(lineID) == "" {
		return g.fail("cart-remove", apperr.Validation(op, "Cart line is required"), "")
	}
	if err := g.stores.Carts.Remove(ctx, lineID); err != nil {
		return g.fail("cart-remove", err, "Could not remove item")
	}
	g.notifier.Notify(notify.Success("cart-remove", "Item removed from cart"))
	g.refetchCart(ctx)
	return nil
}

// ValidateProduct checks the fields every saved product needs. Callers that do
// work before the save, such as an image upload, run it first.
func ValidateProduct(op string, in entity.ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return apperr.Validation(op, "Product name is required")
	}
	if in.Price.IsZero() {
		return apperr.Validation(op, "Price is required")
	}
	if err := in.Price.Validate(); err != nil {
		return apperr.Validation(op, err.Error())
	}
	if strings.TrimSpace(in.Category) == "" {
		return apperr.Validation(op, "Category is required")
	}
	return nil
}

func (g *Gateway) refreshProducts(ctx context.Context) {
	if g.catalog != nil {
		_ = g.catalog.RefreshProducts(ctx)
	}
}

func (g *Gateway) refreshCategories(ctx context.Context) {
	if g.catalog != nil {
		_ = g.catalog.RefreshCategories(ctx)
	}
}

func (g *Gateway) CreateProduct(ctx context.Context, in entity.ProductInput) (string, error) {
	if err := ValidateProduct("gateway.CreateProduct", in); err != nil {
		return "", g.fail("product-save", err, "")
	}
	if in.CreatedAt == nil {
		now := g.now().UTC()
		in.CreatedAt = &now
	}
	id, err := g.stores.Products.Create(ctx, in)
	if err != nil {
		return "", g.fail("product-save", err, "Could not create product")
	}
	g.notifier.Notify(notify.Success("product-save", "Product created"))
	g.refreshProducts(ctx)
	return id, nil
}

func (g *Gateway) UpdateProduct(ctx context.Context, id string, in entity.ProductInput) error {
	const op = "gateway.UpdateProduct"
	if strings.TrimSpace(id) == "" {
		return g.fail("product-save", apperr.Validation(op, "Product id is required"), "")
	}
	if err := ValidateProduct(op, in); err != nil {
		return g.fail("product-save", err, "")
	}
	if err := g.stores.Products.Update(ctx, id, in); err != nil {
		return g.fail("product-save", err, "Could not update product")
	}
	g.notifier.Notify(notify.Success("product-save", "Product updated"))
	g.refreshProducts(ctx)
	return nil
}

func (g *Gateway) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return g.fail("product-delete", apperr.Validation("gateway.DeleteProduct", "Product id is required"), "")
	}
	if err := g.stores.Products.Delete(ctx, id); err != nil {
		return g.fail("product-delete", err, "Could not delete product")
	}
	g.notifier.Notify(notify.Success("product-delete", "Product deleted"))
	g.refreshProducts(ctx)
	return nil
}

func ValidateCategory(op string, in entity.CategoryInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return apperr.Validation(op, "Category name is required")
	}
	return nil
}

func (g *Gateway) CreateCategory(ctx context.Context, in entity.CategoryInput) (string, error) {
	if err := ValidateCategory("gateway.CreateCategory", in); err != nil {
		return "", g.fail("category-save", err, "")
	}
	id, err := g.stores.Categories.Create(ctx, in)
	if err != nil {
		return "", g.fail("category-save", err, "Could not create category")
	}
	g.notifier.Notify(notify.Success("category-save", "Category created"))
	g.refreshCategories(ctx)
	return id, nil
}

func (g *Gateway) UpdateCategory(ctx context.Context, id string, in entity.CategoryInput) error {
	const op = "gateway.UpdateCategory"
	if strings.TrimSpace(id) == "" {
		return g.fail("category-save", apperr.Validation(op, "Category id is required"), "")
	}
	if err := ValidateCategory(op, in); err != nil {
		return g.fail("category-save", err, "")
	}
	if err := g.stores.Categories.Update(ctx, id, in); err != nil {
		return g.fail("category-save", err, "Could not update category")
	}
	g.notifier.Notify(notify.Success("category-save", "Category updated"))
	g.refreshCategories(ctx)
	return nil
}

func (g *Gateway) DeleteCategory(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return g.fail("category-delete", apperr.Validation("gateway.DeleteCategory", "Category id is required"), "")
	}
	if err := g.stores.Categories.Delete(ctx, id); err != nil {
		return g.fail("category-delete", err, "Could not delete category")
	}
	g.notifier.Notify(notify.Success("category-delete", "Category deleted"))
	g.refreshCategories(ctx)
	return nil
}

// PlaceOrderResult describes a recorded order. Stale holds the ids of cart
// lines that were ordered but could not be removed from the cart; the order
// stands regardless.
type PlaceOrderResult struct {
	OrderID string
	Order   entity.Order
	Removed []string
	Stale   []string
}

// PlaceOrder records the cart as a pending order, then deletes each ordered
// line. The two steps are not atomic.
func (g *Gateway) PlaceOrder(ctx context.Context) (*PlaceOrderResult, error) {
	const op = "gateway.PlaceOrder"
	ident, ok := g.session.Identity()
	if !ok || ident.Email == "" {
		return nil, g.fail("checkout", apperr.Precondition(op, "Please log in to place an order", RedirectLogin), "")
	}
	profile, err := g.stores.Profiles.FindByEmail(ctx, ident.Email)
	if err != nil {
		return nil, g.fail("checkout", err, "Could not load your profile")
	}
	if profile == nil || profile.DeliveryAddress.IsZero() {
		return nil, g.fail("checkout", apperr.Precondition(op, "Please add a delivery address before placing an order", RedirectAccount), "")
	}
	if g.cart == nil {
		return nil, g.fail("checkout", apperr.Validation(op, "Your cart is empty"), "")
	}
	if err := g.cart.Activate(ctx); err != nil {
		return nil, g.fail("checkout", err, "Could not load your cart")
	}
	lines := g.cart.Lines()
	if len(lines) == 0 {
		return nil, g.fail("checkout", apperr.Validation(op, "Your cart is empty"), "")
	}

	items, total := entity.SnapshotLines(lines)
	name := profile.Name
	if name == "" {
		name = ident.DisplayName
	}
	order := entity.Order{
		OwnerEmail:      ident.Email,
		Name:            name,
		DeliveryAddress: profile.DeliveryAddress,
		Items:           items,
		TotalAmount:     total,
		Status:          entity.OrderPending,
		OrderDate:       g.now().UTC(),
	}
	id, err := g.stores.Orders.Create(ctx, order)
	if err != nil {
		return nil, g.fail("checkout", err, "Could not place your order")
	}
	order.ID = id
	res := &PlaceOrderResult{OrderID: id, Order: order}

	var (
		mu sync.Mutex
		eg errgroup.Group
	)
	for _, l := range lines {
		lineID := l.ID
		eg.Go(func() error {
			err := g.stores.Carts.Remove(ctx, lineID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				g.log.Warn("cart line left after order", zap.String("order", id), zap.String("line", lineID), zap.Error(err))
				res.Stale = append(res.Stale, lineID)
				return nil
			}
			res.Removed = append(res.Removed, lineID)
			return nil
		})
	}
	_ = eg.Wait()

	g.notifier.Notify(notify.Success("checkout", "Order placed successfully"))
	if len(res.Stale) > 0 {
		g.notifier.Notify(notify.Info("checkout-stale", fmt.Sprintf("%d item(s) could not be removed from your cart", len(res.Stale))))
	}
	g.refetchCart(ctx)
	return res, nil
}
