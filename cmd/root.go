package cmd

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"grocery.GO/api"
	"grocery.GO/config"
	"grocery.GO/core/notify"
	"grocery.GO/model/repository/rest"
	"grocery.GO/service/gateway"
)

var rootCmd = &cobra.Command{
	Use:   "grocery",
	Short: "grocery.GO storefront and back-office tools",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if config.AppConfig == nil {
			config.LoadAppConfig()
		}
	},
}

// Execute applies registered commands and runs the CLI.
func Execute() {
	Apply()
	if len(os.Args) < 2 {
		figure.NewFigure("grocery.GO", "small", true).Print()
		fmt.Println()
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// repos builds the backend collections from BASE_API_URL.
func repos() (api.Repos, error) {
	c, err := rest.New(config.AppConfig.BaseAPIURL)
	if err != nil {
		return api.Repos{}, err
	}
	return api.NewRepos(c), nil
}

func stores(r api.Repos) gateway.Stores {
	return gateway.Stores{
		Products:   r.Products,
		Categories: r.Categories,
		Carts:      r.Carts,
		Orders:     r.Orders,
		Profiles:   r.Users,
	}
}

// cliNotifier prints notifications the way the storefront would toast them.
type cliNotifier struct {
	cmd *cobra.Command
}

func (n cliNotifier) Notify(note notify.Notification) {
	n.cmd.Printf("[%s] %s\n", note.Level, note.Message)
}

func logger() *zap.Logger {
	return config.Logger().Named("cli")
}
