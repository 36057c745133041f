package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/lawshop/internal/model"
)

func favCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "fav", Short: "Manage favorites"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := app.favorites().Items(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(w, "No favorites yet.")
				return nil
			}
			tw := table(w)
			fmt.Fprintln(tw, "ID\tSERVICE\tCATEGORY\tPRICE")
			for _, f := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.ID, f.Title, f.Category, money(f.Price, f.Currency))
			}
			return tw.Flush()
		},
	}

	add := &cobra.Command{
		Use:   "add SERVICE_ID",
		Short: "Bookmark a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Services.GetByID(cmd.Context(), model.ID(args[0]))
			if err != nil {
				return err
			}
			_, added, err := app.favorites().Add(cmd.Context(), svc)
			if err != nil {
				return err
			}
			if added {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s to favorites.\n", svc.Title)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already a favorite.\n", svc.Title)
			}
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm FAVORITE_ID",
		Short: "Remove a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.favorites().Remove(cmd.Context(), model.ID(args[0])); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed.")
			return nil
		},
	}

	toCart := &cobra.Command{
		Use:   "to-cart FAVORITE_ID",
		Short: "Add a favorite to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.cart(cmd.Context())
			if err != nil {
				return err
			}
			line, err := app.favorites().MoveToCart(cmd.Context(), model.ID(args[0]), c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s in cart: %d\n", line.Title, line.Quantity)
			return nil
		},
	}

	cmd.AddCommand(list, add, rm, toCart)
	return cmd
}
