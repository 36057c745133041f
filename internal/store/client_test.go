package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	ID    int    `json:"id,omitempty"`
	Title string `json:"title"`
}

func TestListReadsTotalCount(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Header().Set(TotalCountHeader, "42")
		_ = json.NewEncoder(w).Encode([]doc{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", 0)
	items, total, err := List[doc](context.Background(), c, "services", url.Values{"_page": {"2"}, "category": {"x", "y"}})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 42, total)
	assert.Equal(t, []string{"x", "y"}, gotQuery["category"])
	assert.Equal(t, "2", gotQuery.Get("_page"))
}

func TestListFallsBackToItemCount(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"garbage", "many"},
		{"negative", "-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.header != "" {
					w.Header().Set(TotalCountHeader, tt.header)
				}
				_, _ = w.Write([]byte(`[{"id":1,"title":"a"},{"id":2,"title":"b"},{"id":3,"title":"c"}]`))
			}))
			defer srv.Close()

			items, total, err := List[doc](context.Background(), NewClient(srv.URL, 0), "services", nil)
			require.NoError(t, err)
			assert.Len(t, items, 3)
			assert.Equal(t, 3, total)
		})
	}
}

func TestListNullBodyIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	items, total, err := List[doc](context.Background(), NewClient(srv.URL, 0), "cart", nil)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Equal(t, 0, total)
}

func TestGetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := Get[doc](context.Background(), NewClient(srv.URL, 0), "users", "7")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := Delete(context.Background(), NewClient(srv.URL, 0), "cart", "3")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusInternalServerError))
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.MethodDelete, se.Method)
	assert.Equal(t, "/cart/3", se.Path)
}

func TestCreateAndPatchSendJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "/services", r.URL.Path)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(doc{ID: 9, Title: in["title"].(string)})
		case http.MethodPatch:
			assert.Equal(t, "/services/9", r.URL.Path)
			_ = json.NewEncoder(w).Encode(doc{ID: 9, Title: in["title"].(string)})
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	created, err := Create[doc](context.Background(), c, "services", doc{Title: "Audit"})
	require.NoError(t, err)
	assert.Equal(t, 9, created.ID)

	patched, err := Patch[doc](context.Background(), c, "services", "9", map[string]any{"title": "Audit+"})
	require.NoError(t, err)
	assert.Equal(t, "Audit+", patched.Title)
}
