package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"grocery.GO/core/session"
	"grocery.GO/model/entity"
	cartService "grocery.GO/service/cart"
	"grocery.GO/service/gateway"
)

var cartEmail string

var cartShowCmd = &cobra.Command{
	Use:   "cart:show",
	Short: "Show a customer's cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := repos()
		if err != nil {
			return err
		}
		s := session.ForIdentity(entity.Identity{Email: cartEmail})
		p := cartService.NewProjection(r.Carts, s, cliNotifier{cmd})
		if err := p.Refetch(cmd.Context()); err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "LINE\tNAME\tQTY\tUNIT\tTOTAL")
		for _, l := range p.Lines() {
			fmt.Fprintf(w, "%s\t%s\t%g\t%.2f\t%.2f\n", l.ID, l.Name, l.Quantity, l.UnitPrice, l.LineTotal())
		}
		fmt.Fprintf(w, "\t%d item(s)\t\t\t%.2f\n", p.Count(), p.Total())
		return w.Flush()
	},
}

var orderPlaceCmd = &cobra.Command{
	Use:   "order:place",
	Short: "Place an order from a customer's cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := repos()
		if err != nil {
			return err
		}
		n := cliNotifier{cmd}
		s := session.ForIdentity(entity.Identity{Email: cartEmail})
		p := cartService.NewProjection(r.Carts, s, n)
		gw := gateway.New(stores(r), nil, p, s, n, logger())
		res, err := gw.PlaceOrder(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Printf("Order %s: %d item(s), total %.2f\n", res.OrderID, len(res.Order.Items), res.Order.TotalAmount)
		for _, id := range res.Stale {
			cmd.Printf("  [stale] cart line %s is still in the cart\n", id)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{cartShowCmd, orderPlaceCmd} {
		c.Flags().StringVarP(&cartEmail, "email", "e", "", "Customer email (required)")
		c.MarkFlagRequired("email")
		rootCmd.AddCommand(c)
	}
}
