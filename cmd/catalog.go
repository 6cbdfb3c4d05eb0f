package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"grocery.GO/model/entity"
	"grocery.GO/service/catalog"
)

var (
	listSearch   string
	listSort     string
	listCategory string
	listMin      float64
	listMax      float64
)

var catalogListCmd = &cobra.Command{
	Use:   "catalog:list",
	Short: "List products with the storefront's search, price range and sort",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := catalog.ParseSortKey(listSort)
		if err != nil {
			return err
		}
		r, err := repos()
		if err != nil {
			return err
		}
		views := catalog.NewViews(r.Products, r.Categories, cliNotifier{cmd})
		if err := views.RefreshProducts(cmd.Context()); err != nil {
			return err
		}
		q := catalog.Query{Search: listSearch, Sort: key, Category: listCategory}
		if cmd.Flags().Changed("min") {
			q.MinPrice = &listMin
		}
		if cmd.Flags().Changed("max") {
			q.MaxPrice = &listMax
		}
		items, _ := views.List(q)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE")
		for _, p := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, formatPrice(p.Price))
		}
		return w.Flush()
	},
}

var categoriesListCmd = &cobra.Command{
	Use:   "categories:list",
	Short: "List categories and their storefront slugs",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := repos()
		if err != nil {
			return err
		}
		cats, err := r.Categories.FetchAll(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSLUG")
		for _, c := range cats {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, catalog.Slug(c.Name))
		}
		return w.Flush()
	},
}

func formatPrice(p entity.Price) string {
	if amount, ok := p.Amount(); ok {
		return fmt.Sprintf("%.2f", amount)
	}
	parts := make([]string, 0, len(p.Sizes()))
	for _, s := range p.Sizes() {
		parts = append(parts, fmt.Sprintf("%s:%.2f", s.Label, s.Amount))
	}
	return strings.Join(parts, " ")
}

func init() {
	catalogListCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Case-insensitive name search")
	catalogListCmd.Flags().StringVar(&listSort, "sort", "", "price-asc, price-desc, name-asc, name-desc or newest")
	catalogListCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Category name or slug")
	catalogListCmd.Flags().Float64Var(&listMin, "min", 0, "Lowest price")
	catalogListCmd.Flags().Float64Var(&listMax, "max", 0, "Highest price")
	rootCmd.AddCommand(catalogListCmd, categoriesListCmd)
}
