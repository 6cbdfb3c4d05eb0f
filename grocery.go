//go:build !cli
// +build !cli

package main

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"grocery.GO/api"
	_ "grocery.GO/api/account"
	_ "grocery.GO/api/admin"
	_ "grocery.GO/api/cart"
	_ "grocery.GO/api/graphql"
	_ "grocery.GO/api/store"
	"grocery.GO/config"
	"grocery.GO/core/auth"
	"grocery.GO/core/session"
	"grocery.GO/cron"
	"grocery.GO/model/repository/rest"
	"grocery.GO/service/identity"
	"grocery.GO/service/upload"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()
	cfg := config.AppConfig
	log := config.Logger()
	defer log.Sync()

	log.Info(config.InitRedis())
	store := session.NewStore(config.RedisClient)

	client, err := rest.New(cfg.BaseAPIURL)
	if err != nil {
		log.Fatal("backend client", zap.Error(err))
	}

	var provider identity.Provider = identity.NewMemory()
	if cfg.AuthAPIKey != "" {
		fb, err := identity.NewFirebase(context.Background(), cfg.AuthAPIKey)
		if err != nil {
			log.Fatal("auth provider", zap.Error(err))
		}
		provider = fb
	} else {
		log.Warn("AUTH_API_KEY not set, accounts are kept in memory")
	}

	var uploader upload.Uploader
	if cfg.ImageUploadKey != "" {
		uploader = upload.NewImgbb(cfg.ImageUploadURL, cfg.ImageUploadKey)
	}

	d := api.NewDeps(cfg, log, client, provider, uploader)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			log.Debug("request", zap.String("path", c.Path()), zap.Int64("duration_ms", duration))
			return err
		}
	})

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Sessions(store, cfg.SessionTTL, cfg.CookieSecure, log.Named("session")))
	api.ApplyModules(apiGroup, d)
	api.ApplyRoutes(e, d)

	cron.RegisterCatalogRefresh(d.Views, log.Named("cron"))
	c := cron.StartCron(log.Named("cron"))
	defer c.Stop()

	if err := d.Views.RefreshAll(context.Background()); err != nil {
		log.Warn("initial catalog load failed", zap.Error(err))
	}

	log.Info("server running", zap.String("port", cfg.Port))
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
