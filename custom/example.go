package custom

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"grocery.GO/api"
	"grocery.GO/cmd"
	gqlregistry "grocery.GO/graphql/registry"
	"grocery.GO/service/catalog"
)

func init() {
	// GraphQL extension: _extension(name: "sortKeys")
	gqlregistry.Register("sortKeys", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		keys := catalog.SortKeys()
		out := make([]string, 0, len(keys))
		for _, k := range keys {
			if k != catalog.SortNone {
				out = append(out, string(k))
			}
		}
		return map[string]interface{}{"sortKeys": out}, nil
	})

	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "custom:slug [category name]",
		Short: "Print the storefront slug of a category name",
		Args:  cobra.MinimumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			c.Println(catalog.Slug(strings.Join(args, " ")))
		},
	})

	// HTTP route
	api.RegisterGET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}
