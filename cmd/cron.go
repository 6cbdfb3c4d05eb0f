package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"grocery.GO/core/notify"
	"grocery.GO/cron"
	"grocery.GO/service/catalog"
)

var jobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := repos()
		if err != nil {
			return err
		}
		log := logger()
		views := catalog.NewViews(r.Products, r.Categories, notify.Log{L: log})
		cron.RegisterCatalogRefresh(views, log)

		if jobName != "" {
			name := strings.ToLower(jobName)
			j, ok := cron.Jobs()[name]
			if !ok {
				return fmt.Errorf("unknown job: %s", jobName)
			}
			cmd.Printf("Running cron job: %s\n", name)
			j.Run(args...)
			return nil
		}
		c := cron.StartCron(log)
		defer c.Stop()
		cmd.Println("Cron scheduler started. Press Ctrl+C to exit.")
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		return nil
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	rootCmd.AddCommand(cronStartCmd)
}
