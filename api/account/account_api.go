package account

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"grocery.GO/api"
	"grocery.GO/model/entity"
	accountService "grocery.GO/service/account"
)

func init() {
	api.RegisterModule(RegisterAccountRoutes)
}

type signupRequest struct {
	Name            string                  `json:"name" form:"name"`
	Email           string                  `json:"email" form:"email"`
	Password        string                  `json:"password" form:"password"`
	ConfirmPassword string                  `json:"confirmPassword" form:"confirmPassword"`
	DeliveryAddress *entity.DeliveryAddress `json:"deliveryAddress"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// RegisterAccountRoutes serves signup, login, logout and the current profile.
func RegisterAccountRoutes(apiGroup *echo.Group, d *api.Deps) {
	g := apiGroup.Group("/account")

	// POST /api/account/signup accepts JSON or a multipart form with an
	// optional "avatar" file.
	g.POST("/signup", func(c echo.Context) error {
		sc := d.Scope(c)
		var req signupRequest
		if err := c.Bind(&req); err != nil {
			return api.BadRequest(c, "signup", "Invalid request body", sc.Notes)
		}
		in := accountService.SignupRequest{
			Name:            req.Name,
			Email:           req.Email,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
			DeliveryAddress: req.DeliveryAddress,
		}
		if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
			if fh, err := c.FormFile("avatar"); err == nil {
				f, err := fh.Open()
				if err != nil {
					return api.BadRequest(c, "signup", "Could not read profile picture", sc.Notes)
				}
				defer f.Close()
				in.Avatar, in.AvatarName = f, fh.Filename
			}
		}
		profile, err := d.Accounts.Signup(c.Request().Context(), sc.Listener, sc.Notes, in)
		if err != nil {
			return api.Fail(c, err, sc.Notes)
		}
		return api.OK(c, http.StatusCreated, api.Body{"profile": profile}, sc.Notes)
	})

	g.POST("/login", func(c echo.Context) error {
		sc := d.Scope(c)
		var req loginRequest
		if err := c.Bind(&req); err != nil {
			return api.BadRequest(c, "login", "Invalid request body", sc.Notes)
		}
		ident, err := d.Accounts.Login(c.Request().Context(), sc.Listener, sc.Notes, req.Email, req.Password)
		if err != nil {
			return api.Fail(c, err, sc.Notes)
		}
		return api.OK(c, http.StatusOK, api.Body{"email": ident.Email, "name": ident.DisplayName}, sc.Notes)
	})

	g.POST("/logout", func(c echo.Context) error {
		sc := d.Scope(c)
		if err := d.Accounts.Logout(c.Request().Context(), sc.Session, sc.Listener, sc.Notes); err != nil {
			return api.Fail(c, err, sc.Notes)
		}
		return api.OK(c, http.StatusOK, nil, sc.Notes)
	})

	g.GET("/me", func(c echo.Context) error {
		sc := d.Scope(c)
		ctx := c.Request().Context()
		if err := d.Accounts.Restore(ctx, sc.Session, sc.Listener); err != nil {
			d.Log.Warn("session restore failed", zap.Error(err))
		}
		profile, err := d.Accounts.Profile(ctx, sc.Session)
		if err != nil {
			return api.Fail(c, err, sc.Notes)
		}
		return api.OK(c, http.StatusOK, api.Body{"profile": profile, "hasDeliveryAddress": !profile.DeliveryAddress.IsZero()}, sc.Notes)
	})
}
