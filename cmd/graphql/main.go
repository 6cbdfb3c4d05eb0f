// Standalone GraphQL server. Run with: go run ./cmd/graphql
package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"grocery.GO/api"
	graphqlApi "grocery.GO/api/graphql"
	"grocery.GO/config"
	"grocery.GO/core/notify"
	"grocery.GO/model/repository/rest"
	"grocery.GO/service/identity"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()
	cfg := config.AppConfig
	log := config.Logger()

	client, err := rest.New(cfg.BaseAPIURL)
	if err != nil {
		log.Fatal("backend client", zap.Error(err))
	}
	d := api.NewDeps(cfg, log, client, identity.NewMemory(), nil)

	e := echo.New()
	e.HideBanner = true
	graphqlApi.RegisterGraphQLRoutes(e, d)

	if err := d.Views.RefreshAll(context.Background()); err != nil {
		notify.Log{L: log}.Notify(notify.FromError("catalog-load", err, "Catalog not loaded"))
	}

	// ASCII banner on start (random font each run)
	gqlFonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "univers", "doom", "larry3d", "puffy", "rectangles", "bigchief", "cosmic"}
	fig := figure.NewFigure("grocery GQL ->", gqlFonts[rand.Intn(len(gqlFonts))], true)
	fig.Print()
	fmt.Println("Standalone GraphQL server")

	log.Info("graphql ready",
		zap.String("graphql", "http://localhost:"+cfg.Port+"/graphql"),
		zap.String("playground", "http://localhost:"+cfg.Port+"/playground"))
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
