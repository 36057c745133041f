package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/store"
	"github.com/iliyamo/lawshop/internal/store/storetest"
)

func TestCartRepoScopesByOwner(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	repo := NewCartRepo(store.NewClient(srv.URL, 0))
	_, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	_, err = repo.FindByService(context.Background(), "u1", "5")
	require.NoError(t, err)

	assert.Equal(t, "", queries[0])
	assert.Equal(t, "ownerId=u1&serviceId=5", queries[1])
}

func TestSharedCartSkipsOwnedLines(t *testing.T) {
	db := storetest.New(t)
	db.Seed("cart", map[string]any{"serviceId": 1, "quantity": 2})
	db.Seed("cart", map[string]any{"serviceId": 1, "quantity": 5, "ownerId": "7"})
	db.Seed("cart", map[string]any{"serviceId": 2, "quantity": 1, "ownerId": "7"})
	db.Seed("favorites", map[string]any{"serviceId": 2})
	db.Seed("favorites", map[string]any{"serviceId": 3, "ownerId": "7"})
	c := store.NewClient(db.URL, 0)
	ctx := context.Background()

	shared, err := NewCartRepo(c).List(ctx, "")
	require.NoError(t, err)
	require.Len(t, shared, 1)
	assert.Equal(t, 2, shared[0].Quantity)

	byService, err := NewCartRepo(c).FindByService(ctx, "", "2")
	require.NoError(t, err)
	assert.Empty(t, byService)

	owned, err := NewCartRepo(c).List(ctx, "7")
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	favs, err := NewFavoriteRepo(c).List(ctx, "")
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, model.ID("2"), favs[0].ServiceID)
}

func TestCartRepoPatchesOnlyQuantity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/cart/3", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"quantity":4}`, string(body))
		_, _ = w.Write([]byte(`{"id":3,"serviceId":1,"quantity":4}`))
	}))
	defer srv.Close()

	line, err := NewCartRepo(store.NewClient(srv.URL, 0)).UpdateQuantity(context.Background(), "3", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, line.Quantity)
	assert.Equal(t, model.ID("1"), line.ServiceID)
}

func TestUserRepoLowercasesLookups(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "anna@law.by", r.URL.Query().Get("emailLower"))
		_ = json.NewEncoder(w).Encode([]model.User{{ID: "4", Email: "Anna@Law.by"}})
	}))
	defer srv.Close()

	users, err := NewUserRepo(store.NewClient(srv.URL, 0)).FindByEmail(context.Background(), "  Anna@Law.BY ")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, model.ID("4"), users[0].ID)
}

func TestFeedbackRepoFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "8", q.Get("serviceId"))
		assert.Empty(t, q.Get("userId"))
		assert.Equal(t, "desc", q.Get("_order"))
		_, _ = w.Write([]byte(`[{"id":1,"serviceId":8,"userId":2,"rating":5}]`))
	}))
	defer srv.Close()

	items, err := NewFeedbackRepo(store.NewClient(srv.URL, 0)).List(context.Background(), FeedbackFilter{ServiceID: "8"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
