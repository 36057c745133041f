// Package cli is the terminal storefront. It drives the same catalog, cart,
// account and admin flows as the gateway, talking to the document store
// directly and keeping the signed-in user in a local session backend.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/lawshop/internal/admin"
	"github.com/iliyamo/lawshop/internal/auth"
	"github.com/iliyamo/lawshop/internal/cart"
	"github.com/iliyamo/lawshop/internal/config"
	"github.com/iliyamo/lawshop/internal/favorites"
	"github.com/iliyamo/lawshop/internal/feedback"
	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/repository"
	"github.com/iliyamo/lawshop/internal/session"
	"github.com/iliyamo/lawshop/internal/store"
)

// App holds everything the commands share.
type App struct {
	Cfg       config.Config
	Session   *session.Store
	Prefs     *session.Preferences
	Services  *repository.ServiceRepo
	Users     *repository.UserRepo
	Carts     *repository.CartRepo
	Favorites *repository.FavoriteRepo
	Orders    *repository.OrderRepo
	Reviews   *repository.FeedbackRepo
	Notifier  cart.Notifier
}

// NewApp opens the session stored in backend and builds the repositories
// over client.
func NewApp(ctx context.Context, cfg config.Config, client *store.Client, backend session.Backend) *App {
	return &App{
		Cfg:       cfg,
		Session:   session.Open(ctx, backend),
		Prefs:     session.NewPreferences(backend),
		Services:  repository.NewServiceRepo(client),
		Users:     repository.NewUserRepo(client),
		Carts:     repository.NewCartRepo(client),
		Favorites: repository.NewFavoriteRepo(client),
		Orders:    repository.NewOrderRepo(client),
		Reviews:   repository.NewFeedbackRepo(client),
	}
}

// cart returns the terminal's cart, refreshed. The terminal shares the
// single unowned cart, the way the browser storefront does.
func (a *App) cart(ctx context.Context) (*cart.Cart, error) {
	c := cart.New(a.Carts, "")
	if _, err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (a *App) favorites() *favorites.List { return favorites.New(a.Favorites, "") }

func (a *App) feedback() *feedback.Service { return feedback.NewService(a.Orders, a.Reviews) }

func (a *App) console() *admin.Console { return admin.NewConsole(a.Services, a.Users, a.Reviews) }

func (a *App) hasher() auth.Hasher { return auth.Hasher{Cost: a.Cfg.BcryptCost} }

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func money(amount float64, currency string) string {
	return cart.FormatAmount(decimal.NewFromFloat(amount)) + " " + currency
}

func printCart(w io.Writer, c *cart.Cart) {
	items := c.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "LINE\tSERVICE\tQTY\tPRICE\tTOTAL")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", it.ID, it.Title, it.Quantity,
			money(it.Price, it.Currency), cart.FormatAmount(cart.LineTotal(it))+" "+it.Currency)
	}
	tw.Flush()
	t := c.Totals()
	fmt.Fprintf(w, "Total: %s (%d items)\n", t, t.Count)
}

func printUser(w io.Writer, u *model.User) {
	tw := table(w)
	fmt.Fprintf(tw, "Nickname:\t%s\n", u.Nickname)
	fmt.Fprintf(tw, "Name:\t%s\n", u.FullName)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Phone:\t%s\n", u.PhoneFormatted)
	fmt.Fprintf(tw, "Born:\t%s\n", u.DateOfBirth)
	fmt.Fprintf(tw, "Role:\t%s\n", u.Role)
	tw.Flush()
}

// Describe turns a command error into the text shown to the user.
func Describe(err error) string {
	var (
		authErr     *auth.ValidationError
		feedbackErr *feedback.ValidationError
		draftErr    admin.FieldErrors
	)
	switch {
	case errors.As(err, &authErr):
		lines := make([]string, 0, len(authErr.Fields))
		for f, msg := range authErr.Fields {
			lines = append(lines, fmt.Sprintf("  %s: %s", f, msg))
		}
		sort.Strings(lines)
		return "Please fix the following:\n" + strings.Join(lines, "\n")
	case errors.As(err, &feedbackErr):
		lines := make([]string, 0, len(feedbackErr.Fields))
		for f, msg := range feedbackErr.Fields {
			lines = append(lines, fmt.Sprintf("  %s: %s", f, msg))
		}
		sort.Strings(lines)
		return "Please fix the following:\n" + strings.Join(lines, "\n")
	case errors.As(err, &draftErr):
		return "Please fix the following: " + draftErr.Error()
	case errors.Is(err, auth.ErrInvalidCredentials):
		return auth.MsgLoginFailed.Error()
	case errors.Is(err, admin.ErrNotConfirmed):
		return "Not deleted: repeat with --yes to confirm."
	case errors.Is(err, store.ErrNotFound):
		return "Not found."
	}
	return err.Error()
}
