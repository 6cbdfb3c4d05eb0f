package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"grocery.GO/core/session"
	"grocery.GO/model/entity"
)

func TestSessions_IssuesCookieAndRestores(t *testing.T) {
	store := session.NewMemoryStore()
	e := echo.New()
	e.Use(Sessions(store, time.Hour, false, nil))
	e.GET("/whoami", func(c echo.Context) error {
		return c.String(http.StatusOK, SessionFrom(c).Email())
	})
	e.POST("/login", func(c echo.Context) error {
		return ListenerFrom(c).Authenticated(c.Request().Context(), entity.Identity{Email: "a@x.io"})
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookie {
		t.Fatalf("cookies = %v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Body.String() != "a@x.io" {
		t.Errorf("body = %q, want a@x.io", rec.Body.String())
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("cookie re-issued for a known session")
	}
}

func TestSessions_RejectsForgedID(t *testing.T) {
	store := session.NewMemoryStore()
	store.Save(context.Background(), "not-a-uuid", entity.Identity{Email: "x@x.io"}, 0)
	e := echo.New()
	e.Use(Sessions(store, time.Hour, false, nil))
	e.GET("/whoami", func(c echo.Context) error {
		return c.String(http.StatusOK, SessionFrom(c).Email())
	})
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not-a-uuid"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Body.String() != "" {
		t.Errorf("body = %q, want anonymous", rec.Body.String())
	}
}

func TestAdmin_Basic(t *testing.T) {
	t.Setenv("AUTH_TYPE", "")
	t.Setenv("API_USER", "admin")
	t.Setenv("API_PASS", "secret")
	e := echo.New()
	g := e.Group("/api/admin", Admin())
	g.GET("/products", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	g.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/products", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no credentials status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
	req.SetBasicAuth("admin", "secret")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("basic auth status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("skipped path status = %d, want 200", rec.Code)
	}
}

func TestAdmin_Key(t *testing.T) {
	t.Setenv("AUTH_TYPE", "key")
	t.Setenv("API_KEY", "k1")
	e := echo.New()
	e.GET("/api/admin/products", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, Admin())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
	req.Header.Set("Authorization", "Bearer k1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
