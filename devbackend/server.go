package devbackend

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// field is a patchable document key and its column.
type field struct {
	column string
	json   bool
}

var (
	categoryFields = map[string]field{"name": {"name", false}, "image": {"image", false}, "description": {"description", false}}
	productFields  = map[string]field{"name": {"name", false}, "price": {"price", true}, "image": {"image", false}, "category": {"category", false}}
	cartFields     = map[string]field{"quantity": {"quantity", false}, "price": {"price", false}, "name": {"name", false}, "image": {"image", false}}
	orderFields    = map[string]field{"status": {"status", false}}
)

// Register mounts the collection endpoints on g.
func Register(g *echo.Group, db *gorm.DB) {
	g.GET("/categories", list[Category](db, nil))
	g.POST("/categories", create(db, func(c *Category, id string) { c.ID = id }))
	g.PATCH("/categories/:id", patch[Category](db, categoryFields))
	g.DELETE("/categories/:id", remove[Category](db))

	g.GET("/products", list[Product](db, nil))
	g.POST("/products", create(db, func(p *Product, id string) { p.ID = id }))
	g.PATCH("/products/:id", patch[Product](db, productFields))
	g.DELETE("/products/:id", remove[Product](db))

	// On GET the :id segment is the owner's email.
	g.GET("/carts/:id", list[CartLine](db, func(c echo.Context, q *gorm.DB) *gorm.DB {
		return q.Where("email = ?", c.Param("id"))
	}))
	g.POST("/carts", create(db, func(l *CartLine, id string) { l.ID = id }))
	g.PATCH("/carts/:id", patch[CartLine](db, cartFields))
	g.DELETE("/carts/:id", remove[CartLine](db))

	g.POST("/orders", create(db, func(o *Order, id string) { o.ID = id }))
	g.GET("/orders/:id", list[Order](db, func(c echo.Context, q *gorm.DB) *gorm.DB {
		return q.Where("email = ?", c.Param("id")).Order("order_date desc")
	}))
	g.PATCH("/orders/:id", patch[Order](db, orderFields))

	g.GET("/users", list[User](db, func(c echo.Context, q *gorm.DB) *gorm.DB {
		if email := c.QueryParam("email"); email != "" {
			return q.Where("email = ?", email)
		}
		return q
	}))
	g.POST("/users", create(db, func(u *User, id string) { u.ID = id }))
}

type scopeFunc func(c echo.Context, q *gorm.DB) *gorm.DB

func list[T any](db *gorm.DB, scope scopeFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		q := db.WithContext(c.Request().Context()).Model(new(T))
		if scope != nil {
			q = scope(c, q)
		}
		out := []T{}
		if err := q.Find(&out).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, out)
	}
}

func create[T any](db *gorm.DB, setID func(*T, string)) echo.HandlerFunc {
	return func(c echo.Context) error {
		doc := new(T)
		if err := json.NewDecoder(c.Request().Body).Decode(doc); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		id := uuid.NewString()
		setID(doc, id)
		if err := db.WithContext(c.Request().Context()).Create(doc).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"acknowledged": true, "insertedId": id})
	}
}

func patch[T any](db *gorm.DB, fields map[string]field) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body map[string]json.RawMessage
		if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		updates := make(map[string]interface{}, len(body))
		for key, raw := range body {
			f, ok := fields[key]
			if !ok {
				continue
			}
			if f.json {
				updates[f.column] = datatypes.JSON(raw)
				continue
			}
			var v interface{}
			if err := json.Unmarshal(raw, &v); err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
			updates[f.column] = v
		}
		if len(updates) == 0 {
			return c.JSON(http.StatusOK, echo.Map{"acknowledged": true, "modifiedCount": 0})
		}
		res := db.WithContext(c.Request().Context()).Model(new(T)).Where("id = ?", c.Param("id")).Updates(updates)
		if res.Error != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": res.Error.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"acknowledged": true, "modifiedCount": res.RowsAffected})
	}
}

func remove[T any](db *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		res := db.WithContext(c.Request().Context()).Where("id = ?", c.Param("id")).Delete(new(T))
		if res.Error != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": res.Error.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"acknowledged": true, "deletedCount": res.RowsAffected})
	}
}

// New returns an echo server for the backend on db, migrating it first.
func New(db *gorm.DB) (*echo.Echo, error) {
	if err := Migrate(db); err != nil {
		return nil, err
	}
	e := echo.New()
	e.HideBanner = true
	Register(e.Group(""), db)
	return e, nil
}
