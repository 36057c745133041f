package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iliyamo/lawshop/internal/feedback"
	"github.com/iliyamo/lawshop/internal/model"
)

func reviewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "review", Short: "Write and read reviews"}

	var in feedback.Input
	var serviceID string
	submit := &cobra.Command{
		Use:   "submit",
		Short: "Review a service you purchased",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.ServiceID = model.ID(serviceID)
			fb, err := app.feedback().Submit(cmd.Context(), app.Session.Current(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Thank you! Your review is %s moderation.\n", fb.ModerationStatus)
			return nil
		},
	}
	submit.Flags().StringVar(&serviceID, "service", "", "purchased service id")
	submit.Flags().Float64Var(&in.Rating, "rating", 0, "rating from 1 to 5")
	submit.Flags().StringVar(&in.Comment, "comment", "", "at least 60 characters")

	list := &cobra.Command{
		Use:   "list SERVICE_ID",
		Short: "List the reviews of a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.feedback().ForService(cmd.Context(), model.ID(args[0]))
			if err != nil {
				return err
			}
			printReviews(cmd, items)
			return nil
		},
	}

	cmd.AddCommand(submit, list)
	return cmd
}

func printReviews(cmd *cobra.Command, items []model.Feedback) {
	w := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(w, "No reviews yet.")
		return
	}
	for _, fb := range items {
		stars := strings.Repeat("*", fb.Rating) + strings.Repeat(".", max(feedback.MaxRating-fb.Rating, 0))
		fmt.Fprintf(w, "#%s %s %s (%s, %s)\n  %s\n", fb.ID, stars, fb.Nickname,
			fb.CreatedAt.Format("2006-01-02"), fb.ModerationStatus, fb.Comment)
	}
}
