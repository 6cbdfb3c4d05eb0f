// Package auth carries the storefront session middleware and the back-office
// authentication selected by AUTH_TYPE.
package auth

import (
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"grocery.GO/config"
	"grocery.GO/core/session"
)

// SessionCookie names the cookie holding the opaque session id.
const SessionCookie = "grocery_session"

const (
	ctxSession  = "session"
	ctxListener = "session_listener"
)

// Sessions opens the caller's session from store and stores it, with its
// listener, on the echo context. Requests without a valid session id get a
// fresh one.
func Sessions(store session.Store, ttl time.Duration, secure bool, log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(SessionCookie); err == nil {
				id = ck.Value
			}
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   int(ttl / time.Second),
				})
			}
			s, l, err := session.Open(c.Request().Context(), store, id, ttl)
			if err != nil {
				log.Warn("session store unavailable, continuing anonymous", zap.Error(err))
			}
			c.Set(ctxSession, s)
			c.Set(ctxListener, l)
			return next(c)
		}
	}
}

// SessionFrom returns the request's session. Without the Sessions middleware it
// is an anonymous session.
func SessionFrom(c echo.Context) *session.Session {
	if s, ok := c.Get(ctxSession).(*session.Session); ok {
		return s
	}
	s, _ := session.New("")
	return s
}

// ListenerFrom returns the writer of the request's session.
func ListenerFrom(c echo.Context) *session.Listener {
	if l, ok := c.Get(ctxListener).(*session.Listener); ok {
		return l
	}
	_, l := session.New("")
	return l
}

// Admin returns the back-office middleware based on AUTH_TYPE: "key" for a
// static API key, basic auth otherwise.
func Admin() echo.MiddlewareFunc {
	skipper := buildSkipper()
	switch os.Getenv("AUTH_TYPE") {
	case "key":
		return keyAuth(skipper)
	default:
		return basicAuth(skipper)
	}
}

func buildSkipper() middleware.Skipper {
	skipPaths := config.GetAuthSkipperPaths()
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
}

func basicAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	user, pass := os.Getenv("API_USER"), os.Getenv("API_PASS")
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Validator: func(username, password string, c echo.Context) (bool, error) {
			if user == "" {
				return false, nil
			}
			c.Set("auth_type", "basic")
			return username == user && password == pass, nil
		},
		Skipper: skipper,
	})
}

func keyAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	apiKey := os.Getenv("API_KEY")
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(key string, c echo.Context) (bool, error) {
			if apiKey == "" {
				return false, nil
			}
			c.Set("auth_type", "key")
			return key == apiKey, nil
		},
		Skipper: skipper,
	})
}
