package cli

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lawshop/internal/admin"
	"github.com/iliyamo/lawshop/internal/cart"
	"github.com/iliyamo/lawshop/internal/config"
	"github.com/iliyamo/lawshop/internal/feedback"
	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/session"
	"github.com/iliyamo/lawshop/internal/store"
	"github.com/iliyamo/lawshop/internal/store/storetest"
)

func newApp(t *testing.T) (*App, *storetest.Server) {
	t.Helper()
	db := storetest.New(t)
	cfg := config.Config{BcryptCost: 4, CatalogPageSize: 8}
	app := NewApp(context.Background(), cfg, store.NewClient(db.URL, 0), session.NewFileBackend(t.TempDir()))
	return app, db
}

func run(app *App, args ...string) (string, error) {
	var out bytes.Buffer
	root := NewRootCmd(app)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := run(app, args...)
	require.NoError(t, err, out)
	return out
}

func registerAnna(t *testing.T, app *App) {
	t.Helper()
	out := mustRun(t, app, "register",
		"--first-name", "Anna", "--last-name", "Ivanova",
		"--phone", "+375 29 123-45-67", "--email", "anna@law.by", "--dob", "1990-05-01",
		"--password", "Str0ng#Pass", "--confirm", "Str0ng#Pass",
		"--nickname", "AnnIva123", "--accept-agreement")
	require.Contains(t, out, "Welcome, AnnIva123!")
}

func TestSeedAndBrowse(t *testing.T) {
	app, _ := newApp(t)

	assert.Equal(t, "Seeded 30 services.\n", mustRun(t, app, "seed"))
	assert.Equal(t, "Seeded 0 services.\n", mustRun(t, app, "seed"))

	out := mustRun(t, app, "catalog", "--category", "Family", "--sort", "priceAsc")
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Showing")
	assert.Contains(t, out, "active filters: 1")

	out = mustRun(t, app, "catalog", "--page", "2")
	assert.Contains(t, out, "[2]")

	out = mustRun(t, app, "catalog", "--search", "no-such-service-anywhere")
	assert.Contains(t, out, "No services found.")

	out = mustRun(t, app, "catalog", "vocab")
	assert.Contains(t, out, "Corporate")
	assert.Contains(t, out, "in_person")
}

func TestCatalogStoreDown(t *testing.T) {
	app, db := newApp(t)
	db.Fail(http.MethodGet, "services", 1)

	_, err := run(app, "catalog")
	require.Error(t, err)
}

func TestCartAndCheckout(t *testing.T) {
	app, db := newApp(t)
	mustRun(t, app, "seed")

	for range 3 {
		mustRun(t, app, "cart", "add", "1")
	}
	out := mustRun(t, app, "cart", "show")
	assert.Contains(t, out, "Business Law")
	assert.Contains(t, out, "(3 items)")

	_, err := run(app, "cart", "qty", "1", "abc")
	require.Error(t, err)
	assert.Equal(t, "quantity must be a number, kept 3", err.Error())

	mustRun(t, app, "cart", "dec", "1")
	assert.EqualValues(t, 2, db.Docs("cart")[0]["quantity"])

	_, err = run(app, "cart", "checkout")
	assert.ErrorIs(t, err, cart.ErrSignInRequired)
	assert.Zero(t, db.Count(http.MethodPost, "orders"))

	registerAnna(t, app)
	out = mustRun(t, app, "cart", "checkout")
	assert.Contains(t, out, "placed. Total: 29,998 RUB")
	assert.Empty(t, db.Docs("cart"))

	_, err = run(app, "cart", "checkout")
	assert.ErrorIs(t, err, cart.ErrEmptyCart)
}

func TestFavorites(t *testing.T) {
	app, db := newApp(t)
	mustRun(t, app, "seed")

	assert.Contains(t, mustRun(t, app, "fav", "add", "2"), "Added")
	assert.Contains(t, mustRun(t, app, "fav", "add", "2"), "already a favorite")
	assert.Len(t, db.Docs("favorites"), 1)

	assert.Contains(t, mustRun(t, app, "fav", "to-cart", "1"), "in cart: 1")
	assert.Len(t, db.Docs("favorites"), 1)

	mustRun(t, app, "fav", "rm", "1")
	assert.Contains(t, mustRun(t, app, "fav", "list"), "No favorites yet.")
}

func TestAccountCommands(t *testing.T) {
	app, _ := newApp(t)

	assert.Contains(t, mustRun(t, app, "whoami"), "Not signed in.")
	registerAnna(t, app)
	assert.Contains(t, mustRun(t, app, "whoami"), "+375 29 123-45-67")

	mustRun(t, app, "logout")
	assert.Nil(t, app.Session.Current())

	_, err := run(app, "login", "--email", "anna@law.by", "--password", "Wr0ng#Pass")
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password.", Describe(err))

	assert.Contains(t, mustRun(t, app, "login", "--email", "ANNA@law.by", "--password", "Str0ng#Pass"), "Signed in as AnnIva123.")

	out := mustRun(t, app, "profile", "--middle-name", "Petrovna")
	assert.Contains(t, out, "Profile updated.")
	assert.Equal(t, "Ivanova Anna Petrovna", app.Session.Current().FullName)

	_, err = run(app, "register", "--first-name", "A", "--email", "bad")
	require.Error(t, err)
	assert.Contains(t, Describe(err), "Please fix the following:")
}

func TestReviewNeedsPurchase(t *testing.T) {
	app, _ := newApp(t)
	mustRun(t, app, "seed")

	_, err := run(app, "review", "submit", "--service", "1", "--rating", "5", "--comment", "x")
	assert.ErrorIs(t, err, feedback.ErrSignInRequired)

	registerAnna(t, app)
	_, err = run(app, "review", "submit", "--service", "1", "--rating", "5", "--comment", "x")
	assert.ErrorIs(t, err, feedback.ErrNoPurchases)

	mustRun(t, app, "cart", "add", "1")
	mustRun(t, app, "cart", "checkout")
	comment := "Precise advice on the shareholder agreement, delivered well ahead of the deadline."
	out := mustRun(t, app, "review", "submit", "--service", "1", "--rating", "4", "--comment", comment)
	assert.Contains(t, out, "pending")

	out = mustRun(t, app, "review", "list", "1")
	assert.Contains(t, out, "****.")
	assert.Contains(t, out, "AnnIva123")
}

func TestAdminCommands(t *testing.T) {
	app, db := newApp(t)
	mustRun(t, app, "seed")

	_, err := run(app, "admin", "services", "delete", "1", "--yes")
	assert.ErrorIs(t, err, admin.ErrAuthRequired)

	require.NoError(t, app.Session.Set(context.Background(), &model.User{ID: "9", Nickname: "root", Role: model.RoleAdministrator}))

	_, err = run(app, "admin", "services", "delete", "1")
	require.ErrorIs(t, err, admin.ErrNotConfirmed)
	assert.Equal(t, "Not deleted: repeat with --yes to confirm.", Describe(err))
	assert.Len(t, db.Docs("services"), 30)

	assert.Contains(t, mustRun(t, app, "admin", "services", "delete", "1", "--yes"), "Deleted.")
	assert.Len(t, db.Docs("services"), 29)

	_, err = run(app, "admin", "services", "create", "--title", "Ok")
	require.Error(t, err)
	assert.Contains(t, Describe(err), "title")

	out := mustRun(t, app, "admin", "services", "create",
		"--title", "Visa Consultation", "--category", "Immigration", "--price", "120",
		"--currency", "EUR", "--short", "Work and study visas explained step by step.")
	assert.Contains(t, out, "Created Visa Consultation")

	out = mustRun(t, app, "admin", "services", "update", "2", "--price", "15000")
	assert.Contains(t, out, "Updated")
	for _, d := range db.Docs("services") {
		if d["id"] == float64(2) {
			assert.EqualValues(t, 15000, d["price"])
		}
	}

	assert.Contains(t, mustRun(t, app, "admin", "reviews", "list"), "No reviews yet.")
}

func TestPrefs(t *testing.T) {
	app, _ := newApp(t)

	assert.Equal(t, "Theme: dark\n", mustRun(t, app, "prefs", "theme"))
	assert.Equal(t, "Theme: light\n", mustRun(t, app, "prefs", "theme", "toggle"))
	assert.Equal(t, "Theme: light\n", mustRun(t, app, "prefs", "theme"))
	_, err := run(app, "prefs", "theme", "neon")
	assert.Error(t, err)

	assert.Equal(t, "Language: en\n", mustRun(t, app, "prefs", "lang"))
	assert.Equal(t, "Language: ru\n", mustRun(t, app, "prefs", "lang", "RU"))
}
