package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/lawshop/internal/seed"
	"github.com/iliyamo/lawshop/internal/session"
)

func prefsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "prefs", Short: "Display preferences"}

	theme := &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or set the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t := app.Prefs.Theme(ctx)
			switch {
			case len(args) == 0:
			case args[0] == "toggle":
				next, err := app.Prefs.ToggleTheme(ctx)
				if err != nil {
					return err
				}
				t = next
			default:
				if err := app.Prefs.SetTheme(ctx, session.Theme(args[0])); err != nil {
					return err
				}
				t = session.Theme(args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", t)
			return nil
		},
	}

	lang := &cobra.Command{
		Use:       "lang [en|ru]",
		Short:     "Show or set the interface language",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: session.Languages,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 {
				if err := app.Prefs.SetLanguage(ctx, args[0]); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Language: %s\n", app.Prefs.Language(ctx))
			return nil
		},
	}

	cmd.AddCommand(theme, lang)
	return cmd
}

func seedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the starter catalog into the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := seed.Seed(cmd.Context(), app.Services)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d services.\n", n)
			return nil
		},
	}
}
