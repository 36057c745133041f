package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/lawshop/internal/admin"
	"github.com/iliyamo/lawshop/internal/catalog"
	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/repository"
)

func adminCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "admin", Short: "Administrator console"}
	cmd.AddCommand(adminServicesCmd(app), adminReviewsCmd(app))
	return cmd
}

func draftFlags(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.String("title", "", "title, at least 3 characters")
	fl.String("category", "", "category")
	fl.Float64("price", 0, "price, greater than zero")
	fl.String("currency", "", "currency code")
	fl.String("short", "", "short description, at least 20 characters")
	fl.String("details", "", "details")
	fl.String("duration", "", "duration in minutes")
	fl.String("format", "", "online|in_person|hybrid")
	fl.String("audience", "", "audience")
	fl.String("image", "", "image URL")
	fl.String("type", "", "service|product")
	fl.Bool("in-stock", true, "available for purchase")
}

// applyDraftFlags copies the flags given on the command line onto d.
func applyDraftFlags(cmd *cobra.Command, d *admin.ServiceDraft) {
	fl := cmd.Flags()
	for name, dst := range map[string]*string{
		"title":    &d.Title,
		"category": &d.Category,
		"currency": &d.Currency,
		"short":    &d.ShortDescription,
		"details":  &d.Details,
		"format":   &d.Format,
		"audience": &d.Audience,
		"image":    &d.Image,
		"type":     &d.Type,
	} {
		if fl.Changed(name) {
			*dst, _ = fl.GetString(name)
		}
	}
	if fl.Changed("price") {
		d.Price, _ = fl.GetFloat64("price")
	}
	if fl.Changed("duration") {
		v, _ := fl.GetString("duration")
		d.DurationMinutes = catalog.ParseNumber(v)
	}
	if fl.Changed("in-stock") {
		d.InStock, _ = fl.GetBool("in-stock")
	}
}

func printServices(cmd *cobra.Command, list []model.Service) {
	tw := table(cmd.OutOrStdout())
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tPRICE\tSTOCK")
	for _, s := range list {
		stock := "yes"
		if !s.InStock {
			stock = "no"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Title, s.Category, money(s.Price, s.Currency), stock)
	}
	tw.Flush()
}

func confirmFlag(cmd *cobra.Command) admin.Confirm {
	return func() bool {
		yes, _ := cmd.Flags().GetBool("yes")
		return yes
	}
}

func adminServicesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "List and edit services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := app.console().ListServices(cmd.Context(), app.Session.Current())
			if err != nil {
				return err
			}
			printServices(cmd, list)
			return nil
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Add a service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := admin.ServiceDraft{InStock: true}
			applyDraftFlags(cmd, &d)
			svc, list, err := app.console().Create(cmd.Context(), app.Session.Current(), d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (id %s).\n", svc.Title, svc.ID)
			printServices(cmd, list)
			return nil
		},
	}
	draftFlags(create)

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a service; omitted flags keep their values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor := app.Session.Current()
			if err := admin.Gate(actor); err != nil {
				return err
			}
			id := model.ID(args[0])
			cur, err := app.Services.GetByID(ctx, id)
			if err != nil {
				return err
			}
			d := admin.DraftFromService(cur)
			applyDraftFlags(cmd, &d)
			svc, list, err := app.console().Update(ctx, actor, id, d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s.\n", svc.Title)
			printServices(cmd, list)
			return nil
		},
	}
	draftFlags(update)

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.console().Delete(cmd.Context(), app.Session.Current(), model.ID(args[0]), confirmFlag(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			printServices(cmd, list)
			return nil
		},
	}
	del.Flags().Bool("yes", false, "confirm the deletion")

	cmd.AddCommand(create, update, del)
	return cmd
}

func adminReviewsCmd(app *App) *cobra.Command {
	var f struct{ service, user string }
	filter := func() repository.FeedbackFilter {
		return repository.FeedbackFilter{ServiceID: model.ID(f.service), UserID: model.ID(f.user)}
	}

	cmd := &cobra.Command{Use: "reviews", Short: "Moderate reviews"}
	cmd.PersistentFlags().StringVar(&f.service, "service", "", "only reviews of this service")
	cmd.PersistentFlags().StringVar(&f.user, "user", "", "only reviews by this user")

	list := &cobra.Command{
		Use:   "list",
		Short: "List reviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := app.console().ListReviews(cmd.Context(), app.Session.Current(), filter())
			if err != nil {
				return err
			}
			printReviews(cmd, items)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.console().DeleteReview(cmd.Context(), app.Session.Current(), model.ID(args[0]), filter(), confirmFlag(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			printReviews(cmd, items)
			return nil
		},
	}
	del.Flags().Bool("yes", false, "confirm the deletion")

	cmd.AddCommand(list, del)
	return cmd
}
