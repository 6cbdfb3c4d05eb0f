// Package apitest wires API modules to a fresh development backend for handler tests.
package apitest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"grocery.GO/api"
	"grocery.GO/config"
	"grocery.GO/core/auth"
	"grocery.GO/core/session"
	"grocery.GO/devbackend"
	"grocery.GO/model/entity"
	"grocery.GO/model/repository/rest"
	"grocery.GO/service/identity"
	"grocery.GO/service/upload"
)

type Harness struct {
	Echo     *echo.Echo
	Deps     *api.Deps
	Backend  *httptest.Server
	Sessions *session.MemoryStore
	Provider *identity.Memory
}

// New mounts modules on /api behind the session middleware. uploader may be nil.
func New(tb testing.TB, uploader upload.Uploader, modules ...api.ModuleFunc) *Harness {
	tb.Helper()
	srv, _ := devbackend.NewTestServer(tb)
	c, err := rest.New(srv.URL)
	if err != nil {
		tb.Fatalf("rest.New: %v", err)
	}
	provider := identity.NewMemory()
	d := api.NewDeps(&config.Config{SessionTTL: time.Hour}, zap.NewNop(), c, provider, uploader)
	store := session.NewMemoryStore()

	e := echo.New()
	g := e.Group("/api", auth.Sessions(store, time.Hour, false, nil))
	for _, m := range modules {
		m(g, d)
	}
	return &Harness{Echo: e, Deps: d, Backend: srv, Sessions: store, Provider: provider}
}

// SignIn creates a customer with a profile and returns a cookie for a
// signed-in session. address may be nil.
func (h *Harness) SignIn(tb testing.TB, email string, address *entity.DeliveryAddress) *http.Cookie {
	tb.Helper()
	ctx := context.Background()
	ident, err := h.Provider.SignUp(ctx, email, "secret123")
	if err != nil {
		tb.Fatalf("SignUp: %v", err)
	}
	if _, err := h.Deps.Repos.Users.Create(ctx, entity.UserProfile{Email: ident.Email, Name: "Test Customer", DeliveryAddress: address}); err != nil {
		tb.Fatalf("create profile: %v", err)
	}
	id := uuid.NewString()
	if err := h.Sessions.Save(ctx, id, ident, time.Hour); err != nil {
		tb.Fatalf("save session: %v", err)
	}
	return &http.Cookie{Name: auth.SessionCookie, Value: id}
}

// Do sends a JSON request. body may be nil; cookie may be nil.
func (h *Harness) Do(tb testing.TB, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	tb.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			tb.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return h.Send(req, cookie)
}

// Send serves a prepared request.
func (h *Harness) Send(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.Echo.ServeHTTP(rec, req)
	return rec
}

// Decode unmarshals a recorded response body.
func Decode(tb testing.TB, rec *httptest.ResponseRecorder, out interface{}) {
	tb.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		tb.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

// Notification is the wire form of a response notification.
type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	ID      string `json:"id"`
}
