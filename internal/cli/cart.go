package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/lawshop/internal/cart"
	"github.com/iliyamo/lawshop/internal/model"
)

func cartCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "cart", Short: "Show and edit the cart"}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := app.cart(cmd.Context())
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), c)
			return nil
		},
	}

	var qty int
	add := &cobra.Command{
		Use:   "add SERVICE_ID",
		Short: "Add a service to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := app.Services.GetByID(ctx, model.ID(args[0]))
			if err != nil {
				return err
			}
			c, err := app.cart(ctx)
			if err != nil {
				return err
			}
			line, err := c.Add(ctx, svc, qty)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s in cart: %d\n", line.Title, line.Quantity)
			return nil
		},
	}
	add.Flags().IntVarP(&qty, "qty", "q", 1, "units to add")

	setQty := &cobra.Command{
		Use:   "qty LINE_ID QUANTITY",
		Short: "Set a line's quantity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.cart(cmd.Context())
			if err != nil {
				return err
			}
			n, err := c.Edit(cmd.Context(), model.ID(args[0]), args[1])
			if errors.Is(err, cart.ErrInvalidQuantity) {
				return fmt.Errorf("quantity must be a number, kept %d", n)
			}
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), c)
			return nil
		},
	}

	step := func(use, short string, delta int) *cobra.Command {
		return &cobra.Command{
			Use:   use + " LINE_ID",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := app.cart(cmd.Context())
				if err != nil {
					return err
				}
				if _, err := c.Step(cmd.Context(), model.ID(args[0]), delta); err != nil {
					return err
				}
				printCart(cmd.OutOrStdout(), c)
				return nil
			},
		}
	}

	rm := &cobra.Command{
		Use:   "rm LINE_ID",
		Short: "Remove a line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.cart(cmd.Context())
			if err != nil {
				return err
			}
			id := model.ID(args[0])
			if _, ok := c.Line(id); !ok {
				return cart.ErrLineNotFound
			}
			if err := c.Remove(cmd.Context(), id); err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), c)
			return nil
		},
	}

	checkout := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the whole cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := app.cart(cmd.Context())
			if err != nil {
				return err
			}
			receipt, err := cart.NewCheckout(app.Orders, app.Notifier).Run(cmd.Context(), c, app.Session.Current())
			if err != nil && !errors.Is(err, cart.ErrCleanupIncomplete) {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Order %s placed. Total: %s\n", receipt.Order.OrderNumber, receipt.Totals)
			if err != nil {
				fmt.Fprintf(w, "Warning: %d cart lines could not be removed; run \"cart show\" to review them.\n", len(receipt.FailedLines))
			}
			return nil
		},
	}

	cmd.AddCommand(show, add, setQty, step("inc", "Add one unit", 1), step("dec", "Remove one unit", -1), rm, checkout)
	return cmd
}
