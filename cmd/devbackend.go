package cmd

import (
	"github.com/spf13/cobra"

	"grocery.GO/config"
	"grocery.GO/devbackend"
)

var devbackendAddr string

var devbackendCmd = &cobra.Command{
	Use:   "devbackend:serve",
	Short: "Serve the REST backend collections from MySQL or a local SQLite file",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.NewDB()
		if err != nil {
			return err
		}
		e, err := devbackend.New(db)
		if err != nil {
			return err
		}
		e.HideBanner = true
		cmd.Printf("Development backend at http://%s\n", devbackendAddr)
		return e.Start(devbackendAddr)
	},
}

func init() {
	devbackendCmd.Flags().StringVar(&devbackendAddr, "addr", "localhost:5000", "Listen address")
	rootCmd.AddCommand(devbackendCmd)
}
