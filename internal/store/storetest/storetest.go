// Package storetest runs an in-memory document store with json-server
// conventions behind an httptest.Server, for tests that want the real
// store client and repositories end to end.
package storetest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
)

type doc = map[string]any

// Server is an in-memory document store.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	collections map[string][]doc
	next        map[string]int
	failures    map[string]int
	requests    []string
}

// New starts a server and closes it when the test ends.
func New(t testing.TB) *Server {
	s := &Server{collections: map[string][]doc{}, next: map[string]int{}, failures: map[string]int{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Seed stores v (any JSON-encodable document) in collection, assigning a
// numeric id when it has none, and returns the id.
func (s *Server) Seed(collection string, v any) string {
	d := toDoc(v)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(collection, d)
}

// Docs returns a copy of every document in collection.
func (s *Server) Docs(collection string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.collections[collection]))
	for _, d := range s.collections[collection] {
		out = append(out, clone(d))
	}
	return out
}

// Fail makes the next n requests matching method and collection answer 500.
func (s *Server) Fail(method, collection string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+collection] += n
}

// Requests lists "METHOD /collection" for every request served so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// Count returns how many requests matched method and collection.
func (s *Server) Count(method, collection string) int {
	n := 0
	for _, r := range s.Requests() {
		if r == method+" /"+collection {
			n++
		}
	}
	return n
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	collection := parts[0]
	id := ""
	if len(parts) > 1 {
		id, _ = url.PathUnescape(parts[1])
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, r.Method+" /"+collection)
	if key := r.Method + " " + collection; s.failures[key] > 0 {
		s.failures[key]--
		http.Error(w, "injected failure", http.StatusInternalServerError)
		return
	}

	switch {
	case r.Method == http.MethodGet && id == "":
		s.list(w, collection, r.URL.Query())
	case r.Method == http.MethodGet:
		if i := s.index(collection, id); i >= 0 {
			writeJSON(w, http.StatusOK, s.collections[collection][i])
			return
		}
		writeJSON(w, http.StatusNotFound, doc{})
	case r.Method == http.MethodPost && id == "":
		var d doc
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if v, ok := d["id"]; ok && fmt.Sprint(v) == "" {
			delete(d, "id")
		}
		s.insert(collection, d)
		writeJSON(w, http.StatusCreated, d)
	case r.Method == http.MethodPut || r.Method == http.MethodPatch:
		i := s.index(collection, id)
		if i < 0 {
			writeJSON(w, http.StatusNotFound, doc{})
			return
		}
		var d doc
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		cur := s.collections[collection][i]
		if r.Method == http.MethodPut {
			d["id"] = cur["id"]
			s.collections[collection][i] = d
		} else {
			for k, v := range d {
				if k != "id" {
					cur[k] = v
				}
			}
		}
		writeJSON(w, http.StatusOK, s.collections[collection][i])
	case r.Method == http.MethodDelete && id != "":
		i := s.index(collection, id)
		if i < 0 {
			writeJSON(w, http.StatusNotFound, doc{})
			return
		}
		docs := s.collections[collection]
		s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
		writeJSON(w, http.StatusOK, doc{})
	default:
		http.Error(w, "unsupported", http.StatusMethodNotAllowed)
	}
}

func (s *Server) insert(collection string, d doc) string {
	if v, ok := d["id"]; ok && fmt.Sprint(v) != "" {
		id := fmt.Sprint(v)
		if n, err := strconv.Atoi(id); err == nil && n > s.next[collection] {
			s.next[collection] = n
		}
		s.collections[collection] = append(s.collections[collection], d)
		return id
	}
	s.next[collection]++
	n := s.next[collection]
	d["id"] = float64(n)
	s.collections[collection] = append(s.collections[collection], d)
	return strconv.Itoa(n)
}

func (s *Server) index(collection, id string) int {
	for i, d := range s.collections[collection] {
		if str(d["id"]) == id {
			return i
		}
	}
	return -1
}

func (s *Server) list(w http.ResponseWriter, collection string, q url.Values) {
	out := []doc{}
	for _, d := range s.collections[collection] {
		if matches(d, q) {
			out = append(out, d)
		}
	}

	if field := q.Get("_sort"); field != "" {
		desc := q.Get("_order") == "desc"
		sort.SliceStable(out, func(i, j int) bool {
			c := compare(out[i][field], out[j][field])
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(len(out)))
	if page, err := strconv.Atoi(q.Get("_page")); err == nil && page > 0 {
		limit, err := strconv.Atoi(q.Get("_limit"))
		if err != nil || limit < 1 {
			limit = 10
		}
		start := min((page-1)*limit, len(out))
		end := min(start+limit, len(out))
		out = out[start:end]
	}
	writeJSON(w, http.StatusOK, out)
}

func matches(d doc, q url.Values) bool {
	for key, vals := range q {
		if strings.HasPrefix(key, "_") {
			continue
		}
		switch {
		case key == "q":
			if !fullText(d, vals[0]) {
				return false
			}
		case strings.HasSuffix(key, "_gte"):
			f, ok := num(d[strings.TrimSuffix(key, "_gte")])
			bound, _ := strconv.ParseFloat(vals[0], 64)
			if !ok || f < bound {
				return false
			}
		case strings.HasSuffix(key, "_lte"):
			f, ok := num(d[strings.TrimSuffix(key, "_lte")])
			bound, _ := strconv.ParseFloat(vals[0], 64)
			if !ok || f > bound {
				return false
			}
		case strings.HasSuffix(key, "_like"):
			v := strings.ToLower(str(d[strings.TrimSuffix(key, "_like")]))
			if !strings.Contains(v, strings.ToLower(vals[0])) {
				return false
			}
		default:
			got := str(d[key])
			hit := false
			for _, want := range vals {
				if got == want {
					hit = true
					break
				}
			}
			if !hit {
				return false
			}
		}
	}
	return true
}

func fullText(d doc, needle string) bool {
	needle = strings.ToLower(needle)
	for _, v := range d {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

func compare(a, b any) int {
	fa, oka := num(a)
	fb, okb := num(b)
	switch {
	case oka && okb:
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case oka:
		return -1
	case okb:
		return 1
	}
	return strings.Compare(str(a), str(b))
}

func num(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func toDoc(v any) doc {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	var d doc
	if err := json.Unmarshal(b, &d); err != nil {
		panic(err)
	}
	return d
}

func clone(d doc) doc {
	b, _ := json.Marshal(d)
	var out doc
	_ = json.Unmarshal(b, &out)
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
