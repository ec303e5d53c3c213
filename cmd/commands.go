package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"storefront/internal/app"
	"storefront/internal/domain"
	"storefront/internal/service"
)

var (
	catalogCategory string
	catalogSearch   string
	customerName    string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List products",
	RunE: func(cmd *cobra.Command, args []string) error {
		category := domain.Category(catalogCategory)
		if category != "" && !category.Valid() {
			return fmt.Errorf("unknown category %q", catalogCategory)
		}
		return withShop(cmd, func(shop *app.Shop) error {
			list, err := shop.Services.Catalog.Find(cmd.Context(), service.ProductFilter{
				Query:    catalogSearch,
				Category: category,
			})
			if err != nil {
				return err
			}
			printProducts(cmd.OutOrStdout(), list)
			return nil
		})
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List orders placed under a name",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withShop(cmd, func(shop *app.Shop) error {
			list, err := shop.Services.Orders.ByCustomer(cmd.Context(), customerName)
			if err != nil {
				return err
			}
			printOrders(cmd.OutOrStdout(), list)
			return nil
		})
	},
}

var trackCmd = &cobra.Command{
	Use:   "track <order-id>",
	Short: "Show one order, checked against the customer name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withShop(cmd, func(shop *app.Shop) error {
			o, err := shop.Services.Orders.Track(cmd.Context(), args[0], customerName)
			if err != nil {
				return err
			}
			printOrders(cmd.OutOrStdout(), []domain.Order{*o})
			return nil
		})
	},
}

func withShop(cmd *cobra.Command, fn func(*app.Shop) error) error {
	shop, err := app.Open(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer shop.Close()
	return fn(shop)
}

func printProducts(w io.Writer, list []domain.Product) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tFLAGS")
	for _, p := range list {
		flags := ""
		if p.Featured {
			flags += "featured "
		}
		if p.NewArrival {
			flags += "new"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), flags)
	}
	_ = tw.Flush()
}

func printOrders(w io.Writer, list []domain.Order) {
	if len(list) == 0 {
		fmt.Fprintln(w, "no orders")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tITEMS\tTOTAL\tPLACED\tESTIMATED")
	for _, o := range list {
		items := 0
		for _, l := range o.Items {
			items += l.Quantity
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			o.ID, o.Status, items,
			domain.RoundCents(o.Total).StringFixed(2),
			o.CreatedAt.Format("2006-01-02"),
			o.EstimatedDelivery.Format("2006-01-02"))
	}
	_ = tw.Flush()
}
