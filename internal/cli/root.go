package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "lawshop",
		Short:         "Legal services storefront in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		catalogCmd(app),
		cartCmd(app),
		favCmd(app),
		registerCmd(app),
		loginCmd(app),
		logoutCmd(app),
		whoamiCmd(app),
		profileCmd(app),
		reviewCmd(app),
		adminCmd(app),
		prefsCmd(app),
		seedCmd(app),
	)
	return root
}
