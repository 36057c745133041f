package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/lawshop/internal/auth"
	"github.com/iliyamo/lawshop/internal/model"
)

var errSignedOut = errors.New("not signed in: run \"lawshop login\" first")

func registerCmd(app *App) *cobra.Command {
	var (
		in           auth.RegistrationInput
		autoPassword bool
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()
			checks := auth.NewUniquenessCache(app.Users)

			generated := ""
			if autoPassword {
				p, err := auth.NewPasswordGenerator().Generate()
				if err != nil {
					return err
				}
				in.PasswordMode = model.PasswordAuto
				in.Password, generated = p, p
			}
			in.ManualNickname = in.NicknameManual != ""
			if !in.ManualNickname && in.Nickname == "" {
				flow := auth.NewNicknameFlow(auth.NewNicknameGenerator(checks))
				nick, err := flow.Suggest(ctx, in.FirstName, in.LastName)
				if err != nil {
					return err
				}
				in.Nickname = nick
			}

			reg := auth.NewRegistrar(app.Users, app.hasher())
			form := auth.NewForm(checks)
			u, err := reg.Submit(ctx, form, in)
			if err != nil {
				return err
			}
			if err := app.Session.Set(ctx, &u); err != nil {
				return err
			}
			fmt.Fprintf(w, "Welcome, %s! You are signed in.\n", u.DisplayName())
			if generated != "" {
				fmt.Fprintf(w, "Your generated password: %s\nIt is shown only once.\n", generated)
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&in.LastName, "last-name", "", "last name")
	fl.StringVar(&in.FirstName, "first-name", "", "first name")
	fl.StringVar(&in.MiddleName, "middle-name", "", "middle name")
	fl.StringVar(&in.Phone, "phone", "", "Belarus phone number")
	fl.StringVar(&in.Email, "email", "", "email address")
	fl.StringVar(&in.DateOfBirth, "dob", "", "date of birth, YYYY-MM-DD")
	fl.StringVar(&in.Password, "password", "", "password")
	fl.StringVar(&in.PasswordConfirm, "confirm", "", "repeat the password")
	fl.BoolVar(&autoPassword, "auto-password", false, "generate a password")
	fl.StringVar(&in.Nickname, "nickname", "", "nickname; generated from the names when empty")
	fl.StringVar(&in.NicknameManual, "manual-nickname", "", "type your own nickname")
	fl.BoolVar(&in.AgreementAccepted, "accept-agreement", false, "accept the user agreement")
	return cmd
}

func loginCmd(app *App) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			u, err := auth.NewAuthenticator(app.Users, app.hasher()).Login(ctx, email, password)
			if err != nil {
				return err
			}
			if err := app.Session.Set(ctx, &u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", u.DisplayName())
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func logoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.Session.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func whoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			u, err := app.Session.Refresh(cmd.Context(), app.Users.GetByID)
			if u == nil {
				fmt.Fprintln(w, "Not signed in.")
				return nil
			}
			if err != nil {
				fmt.Fprintln(w, "Showing the saved profile; the store could not be reached.")
			}
			printUser(w, u)
			return nil
		},
	}
}

func profileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cur := app.Session.Current()
			if cur == nil {
				return errSignedOut
			}
			edit := auth.ProfileFrom(*cur)
			fl := cmd.Flags()
			changed := false
			for name, dst := range map[string]*string{
				"last-name":   &edit.LastName,
				"first-name":  &edit.FirstName,
				"middle-name": &edit.MiddleName,
				"phone":       &edit.Phone,
				"email":       &edit.Email,
				"dob":         &edit.DateOfBirth,
				"nickname":    &edit.Nickname,
			} {
				if fl.Changed(name) {
					v, _ := fl.GetString(name)
					*dst = v
					changed = true
				}
			}
			if !changed {
				printUser(cmd.OutOrStdout(), cur)
				return nil
			}
			u, err := auth.NewProfiles(app.Users).Update(ctx, *cur, edit)
			if err != nil {
				return err
			}
			if err := app.Session.Set(ctx, &u); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated.")
			printUser(cmd.OutOrStdout(), &u)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.String("last-name", "", "last name")
	fl.String("first-name", "", "first name")
	fl.String("middle-name", "", "middle name")
	fl.String("phone", "", "Belarus phone number")
	fl.String("email", "", "email address")
	fl.String("dob", "", "date of birth, YYYY-MM-DD")
	fl.String("nickname", "", "nickname")
	return cmd
}
