package api

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"grocery.GO/config"
	"grocery.GO/core/auth"
	"grocery.GO/core/notify"
	"grocery.GO/core/session"
	"grocery.GO/model/repository/cart"
	"grocery.GO/model/repository/category"
	"grocery.GO/model/repository/order"
	"grocery.GO/model/repository/product"
	"grocery.GO/model/repository/rest"
	"grocery.GO/model/repository/user"
	"grocery.GO/service/account"
	"grocery.GO/service/catalog"
	cartService "grocery.GO/service/cart"
	"grocery.GO/service/gateway"
	"grocery.GO/service/identity"
	"grocery.GO/service/upload"
)

// Repos are the backend collections.
type Repos struct {
	Products   *product.ProductRepository
	Categories *category.CategoryRepository
	Carts      *cart.CartRepository
	Orders     *order.OrderRepository
	Users      *user.UserRepository
}

func NewRepos(c *rest.Client) Repos {
	return Repos{
		Products:   product.NewProductRepository(c),
		Categories: category.NewCategoryRepository(c),
		Carts:      cart.NewCartRepository(c),
		Orders:     order.NewOrderRepository(c),
		Users:      user.NewUserRepository(c),
	}
}

// Deps are shared by every handler. Views are process-wide; everything tied to
// a user is built per request by Scope.
type Deps struct {
	Config   *config.Config
	Log      *zap.Logger
	Repos    Repos
	Views    *catalog.Views
	Accounts *account.Service
	Uploader upload.Uploader
}

func NewDeps(cfg *config.Config, log *zap.Logger, c *rest.Client, p identity.Provider, u upload.Uploader) *Deps {
	repos := NewRepos(c)
	return &Deps{
		Config:   cfg,
		Log:      log,
		Repos:    repos,
		Views:    catalog.NewViews(repos.Products, repos.Categories, notify.Log{L: log.Named("catalog")}),
		Accounts: account.New(p, u, repos.Users, log.Named("account")),
		Uploader: u,
	}
}

func (d *Deps) Stores() gateway.Stores {
	return gateway.Stores{
		Products:   d.Repos.Products,
		Categories: d.Repos.Categories,
		Carts:      d.Repos.Carts,
		Orders:     d.Repos.Orders,
		Profiles:   d.Repos.Users,
	}
}

// Scope is one request's view of the store.
type Scope struct {
	Session  *session.Session
	Listener *session.Listener
	Notes    *notify.Recorder
	Cart     *cartService.Projection
	Gateway  *gateway.Gateway
}

func (d *Deps) Scope(c echo.Context) *Scope {
	s := auth.SessionFrom(c)
	notes := notify.NewRecorder(d.Log)
	projection := cartService.NewProjection(d.Repos.Carts, s, notes)
	return &Scope{
		Session:  s,
		Listener: auth.ListenerFrom(c),
		Notes:    notes,
		Cart:     projection,
		Gateway:  gateway.New(d.Stores(), d.Views, projection, s, notes, d.Log.Named("gateway")),
	}
}

// AdminScope has no session or cart.
func (d *Deps) AdminScope() (*gateway.Gateway, *notify.Recorder) {
	notes := notify.NewRecorder(d.Log)
	return gateway.New(d.Stores(), d.Views, nil, nil, notes, d.Log.Named("admin")), notes
}
