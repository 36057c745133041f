package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lawshop/internal/auth"
	"github.com/iliyamo/lawshop/internal/catalog"
	"github.com/iliyamo/lawshop/internal/config"
	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/store"
	"github.com/iliyamo/lawshop/internal/store/storetest"
)

const adminPassword = "Adm1n#Pass"

type gateway struct {
	e  *echo.Echo
	db *storetest.Server
}

func newGateway(t *testing.T) *gateway {
	t.Helper()
	db := storetest.New(t)
	e := New(Deps{
		Cfg: config.Config{
			JWTSecret:       "test-secret",
			AccessTTLMin:    5,
			BcryptCost:      4,
			CatalogPageSize: 2,
		},
		Store: store.NewClient(db.URL, 0),
	})
	return &gateway{e: e, db: db}
}

func (g *gateway) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var payload *strings.Reader
	if body == nil {
		payload = strings.NewReader("")
	} else {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		payload = strings.NewReader(string(b))
	}
	req := httptest.NewRequest(method, path, payload)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	g.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (g *gateway) seedServices() []string {
	var ids []string
	for _, s := range []model.Service{
		{Title: "Business Law", Category: "Corporate", Price: 14999, Currency: "RUB", Format: model.FormatOnline, InStock: true, Rating: 4.8},
		{Title: "Divorce Support", Category: "Family", Price: 9000, Currency: "RUB", Format: model.FormatInPerson, InStock: true, Rating: 4.5},
		{Title: "Trademark Filing", Category: "Intellectual Property", Price: 200, Currency: "USD", Format: model.FormatHybrid, InStock: true, Rating: 4.9},
	} {
		ids = append(ids, g.db.Seed("services", s))
	}
	return ids
}

func registration(first, last, email, nickname string) auth.RegistrationInput {
	return auth.RegistrationInput{
		LastName:          last,
		FirstName:         first,
		Phone:             "80291234567",
		Email:             email,
		DateOfBirth:       "1990-05-01",
		PasswordMode:      model.PasswordManual,
		Password:          "Str0ng#Pass",
		PasswordConfirm:   "Str0ng#Pass",
		Nickname:          nickname,
		AgreementAccepted: true,
	}
}

// register creates a customer and returns its id and token.
func (g *gateway) register(t *testing.T, first, email, nickname string) (string, string) {
	t.Helper()
	rec := g.do(t, http.MethodPost, "/v1/auth/register", registration(first, "Ivanova", email, nickname), "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	user := body["user"].(map[string]any)
	access := body["access"].(map[string]any)
	return jsonID(user["id"]), access["token"].(string)
}

func (g *gateway) signInAdmin(t *testing.T) string {
	t.Helper()
	hash, err := auth.Hasher{Cost: 4}.Hash(adminPassword)
	require.NoError(t, err)
	g.db.Seed("users", model.User{
		FirstName:     "Root",
		LastName:      "Admin",
		Email:         "admin@law.by",
		EmailLower:    "admin@law.by",
		Nickname:      "Root",
		NicknameLower: "root",
		PasswordHash:  hash,
		Role:          "Administrator",
	})
	rec := g.do(t, http.MethodPost, "/v1/auth/login", map[string]string{"email": "Admin@Law.by", "password": adminPassword}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode(t, rec)["access"].(map[string]any)["token"].(string)
}

func jsonID(v any) string {
	var id model.ID
	b, _ := json.Marshal(v)
	_ = json.Unmarshal(b, &id)
	return id.String()
}

func TestHealthz(t *testing.T) {
	g := newGateway(t)
	rec := g.do(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCatalogBrowse(t *testing.T) {
	g := newGateway(t)
	ids := g.seedServices()

	rec := g.do(t, http.MethodGet, "/v1/services?sort=priceAsc", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 3, body["total"])
	assert.EqualValues(t, 2, body["totalPages"])
	items := body["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "Trademark Filing", items[0].(map[string]any)["title"])
	assert.Equal(t, "Divorce Support", items[1].(map[string]any)["title"])

	rec = g.do(t, http.MethodGet, "/v1/services?sort=priceAsc&page=5", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.EqualValues(t, 2, body["page"])
	require.Len(t, body["items"], 1)
	assert.Equal(t, "Business Law", body["items"].([]any)[0].(map[string]any)["title"])

	rec = g.do(t, http.MethodGet, "/v1/services?category=Family,Corporate&priceMax=10000", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.EqualValues(t, 1, body["total"])
	assert.EqualValues(t, 2, body["activeFilters"])

	rec = g.do(t, http.MethodGet, "/v1/services/"+ids[0], nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Business Law", decode(t, rec)["title"])

	rec = g.do(t, http.MethodGet, "/v1/services/999", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = g.do(t, http.MethodGet, "/v1/catalog/vocabulary", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Len(t, body["categories"], 3)
	assert.Len(t, body["formats"], 3)
}

func TestCatalogStoreDown(t *testing.T) {
	g := newGateway(t)
	g.db.Fail(http.MethodGet, "services", 1)

	rec := g.do(t, http.MethodGet, "/v1/services", nil, "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, catalog.LoadFailedMessage, body["error"])
	assert.Equal(t, catalog.LoadFailedMessage, body["message"])
	assert.Equal(t, []any{}, body["items"])
	assert.EqualValues(t, 0, body["total"])
	assert.Contains(t, body, "pager")
}

func TestRegisterAndLogin(t *testing.T) {
	g := newGateway(t)

	id, token := g.register(t, "Anna", "Anna@Law.by", "AnnIva123")
	assert.NotEmpty(t, id)
	assert.NotEmpty(t, token)
	stored := g.db.Docs("users")
	require.Len(t, stored, 1)
	assert.NotEmpty(t, stored[0]["passwordHash"])

	rec := g.do(t, http.MethodPost, "/v1/auth/register", registration("Anna", "Ivanova", "anna@law.by", "AnnIva123"), "")
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	assert.Len(t, g.db.Docs("users"), 1)

	rec = g.do(t, http.MethodPost, "/v1/auth/login", map[string]string{"email": "anna@law.by", "password": "wrong#Pass1"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid email or password."}`, rec.Body.String())

	rec = g.do(t, http.MethodPost, "/v1/auth/login", map[string]string{"email": "anna@law.by", "password": "Str0ng#Pass"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	token = decode(t, rec)["access"].(map[string]any)["token"].(string)

	rec = g.do(t, http.MethodGet, "/v1/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode(t, rec)
	assert.Equal(t, "AnnIva123", me["nickname"])
	assert.NotContains(t, me, "passwordHash")

	rec = g.do(t, http.MethodGet, "/v1/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAvailabilityChecks(t *testing.T) {
	g := newGateway(t)
	g.register(t, "Anna", "anna@law.by", "AnnIva123")

	rec := g.do(t, http.MethodGet, "/v1/auth/check-email?email=ANNA@law.by", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["available"])

	rec = g.do(t, http.MethodGet, "/v1/auth/check-email?email=boris@law.by", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["available"])

	rec = g.do(t, http.MethodGet, "/v1/auth/check-email?email=not-an-email", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = g.do(t, http.MethodPost, "/v1/auth/suggest-password", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, auth.ValidatePassword(decode(t, rec)["password"].(string)))
}

func TestCartFlow(t *testing.T) {
	g := newGateway(t)
	ids := g.seedServices()
	_, token := g.register(t, "Anna", "anna@law.by", "AnnIva123")

	for range 3 {
		rec := g.do(t, http.MethodPost, "/v1/cart", map[string]any{"serviceId": ids[0]}, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	rec := g.do(t, http.MethodPost, "/v1/cart", map[string]any{"serviceId": ids[2]}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = g.do(t, http.MethodGet, "/v1/cart", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode(t, rec)
	items := view["items"].([]any)
	require.Len(t, items, 2)
	lineID := jsonID(items[0].(map[string]any)["id"])
	assert.EqualValues(t, 3, items[0].(map[string]any)["quantity"])
	assert.EqualValues(t, 4, view["itemCount"])

	rec = g.do(t, http.MethodPatch, "/v1/cart/"+lineID, map[string]any{"quantity": "abc"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.EqualValues(t, 3, decode(t, rec)["quantity"])

	rec = g.do(t, http.MethodPost, "/v1/cart/"+lineID+"/step", map[string]int{"delta": -1}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, decode(t, rec)["itemCount"])

	rec = g.do(t, http.MethodDelete, "/v1/cart/999", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = g.do(t, http.MethodPost, "/v1/cart/checkout", nil, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.NotContains(t, body, "warning")
	order := body["receipt"].(map[string]any)["order"].(map[string]any)
	assert.NotEmpty(t, order["orderNumber"])
	assert.EqualValues(t, 3, order["itemCount"])
	assert.Len(t, g.db.Docs("orders"), 1)
	assert.Empty(t, g.db.Docs("cart"))

	rec = g.do(t, http.MethodPost, "/v1/cart/checkout", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, g.db.Count(http.MethodPost, "orders"))
}

func TestCartIsPerUser(t *testing.T) {
	g := newGateway(t)
	ids := g.seedServices()
	_, anna := g.register(t, "Anna", "anna@law.by", "AnnIva123")
	_, boris := g.register(t, "Boris", "boris@law.by", "BorIva456")

	rec := g.do(t, http.MethodPost, "/v1/cart", map[string]any{"serviceId": ids[1]}, anna)
	require.Equal(t, http.StatusOK, rec.Code)
	lineID := jsonID(decode(t, rec)["line"].(map[string]any)["id"])

	rec = g.do(t, http.MethodGet, "/v1/cart", nil, boris)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["items"])

	rec = g.do(t, http.MethodDelete, "/v1/cart/"+lineID, nil, boris)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, g.db.Docs("cart"), 1)

	rec = g.do(t, http.MethodGet, "/v1/cart", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckoutKeepsCartWhenOrderFails(t *testing.T) {
	g := newGateway(t)
	ids := g.seedServices()
	_, token := g.register(t, "Anna", "anna@law.by", "AnnIva123")
	require.Equal(t, http.StatusOK, g.do(t, http.MethodPost, "/v1/cart", map[string]any{"serviceId": ids[0]}, token).Code)

	g.db.Fail(http.MethodPost, "orders", 1)
	rec := g.do(t, http.MethodPost, "/v1/cart/checkout", nil, token)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Len(t, g.db.Docs("cart"), 1)
	assert.Zero(t, g.db.Count(http.MethodDelete, "cart"))
}

func TestFavorites(t *testing.T) {
	g := newGateway(t)
	ids := g.seedServices()
	_, token := g.register(t, "Anna", "anna@law.by", "AnnIva123")

	rec := g.do(t, http.MethodPost, "/v1/favorites", map[string]any{"serviceId": ids[2]}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	favID := jsonID(decode(t, rec)["favorite"].(map[string]any)["id"])

	rec = g.do(t, http.MethodPost, "/v1/favorites", map[string]any{"serviceId": ids[2]}, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, g.db.Docs("favorites"), 1)

	rec = g.do(t, http.MethodPost, "/v1/favorites/"+favID+"/cart", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, g.db.Docs("cart"), 1)

	rec = g.do(t, http.MethodDelete, "/v1/favorites/"+favID, nil, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = g.do(t, http.MethodPost, "/v1/favorites/toggle", map[string]any{"serviceId": ids[1]}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["favorite"])
}

func TestFeedbackRequiresPurchase(t *testing.T) {
	g := newGateway(t)
	ids := g.seedServices()
	_, token := g.register(t, "Anna", "anna@law.by", "AnnIva123")

	rec := g.do(t, http.MethodGet, "/v1/feedback/eligibility", nil, token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	require.Equal(t, http.StatusOK, g.do(t, http.MethodPost, "/v1/cart", map[string]any{"serviceId": ids[1]}, token).Code)
	require.Equal(t, http.StatusCreated, g.do(t, http.MethodPost, "/v1/cart/checkout", nil, token).Code)

	rec = g.do(t, http.MethodGet, "/v1/feedback/eligibility", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	services := decode(t, rec)["services"].([]any)
	require.Len(t, services, 1)
	assert.Equal(t, "Divorce Support", services[0].(map[string]any)["title"])

	rec = g.do(t, http.MethodPost, "/v1/feedback", map[string]any{"serviceId": ids[1], "rating": 5, "comment": "short"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["fields"], "comment")

	comment := strings.Repeat("Clear advice and quick turnaround. ", 3)
	rec = g.do(t, http.MethodPost, "/v1/feedback", map[string]any{"serviceId": ids[1], "rating": 5, "comment": comment}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	fb := decode(t, rec)
	assert.Equal(t, model.ModerationPending, fb["moderationStatus"])
	assert.Equal(t, "AnnIva123", fb["nickname"])

	rec = g.do(t, http.MethodGet, "/v1/services/"+ids[1]+"/feedback", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["items"], 1)
}

func TestAdminConsole(t *testing.T) {
	g := newGateway(t)
	ids := g.seedServices()
	_, customer := g.register(t, "Anna", "anna@law.by", "AnnIva123")
	admin := g.signInAdmin(t)

	rec := g.do(t, http.MethodGet, "/v1/admin/dashboard", nil, customer)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"forbidden"}`, rec.Body.String())

	rec = g.do(t, http.MethodGet, "/v1/admin/dashboard", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = g.do(t, http.MethodPost, "/v1/admin/services", map[string]any{"title": "No", "price": -1}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["fields"], "title")
	assert.Len(t, g.db.Docs("services"), 3)

	draft := map[string]any{
		"title":            "Visa Consultation",
		"category":         "Immigration",
		"price":            120,
		"currency":         "EUR",
		"shortDescription": "Work and study visas explained step by step.",
		"format":           "online",
		"inStock":          true,
	}
	rec = g.do(t, http.MethodPost, "/v1/admin/services", draft, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Len(t, body["services"], 4)
	assert.Equal(t, "visa-consultation", body["service"].(map[string]any)["slug"])

	rec = g.do(t, http.MethodDelete, "/v1/admin/services/"+ids[0], nil, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, g.db.Docs("services"), 4)

	rec = g.do(t, http.MethodDelete, "/v1/admin/services/"+ids[0]+"?confirm=true", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode(t, rec)["services"], 3)
}
