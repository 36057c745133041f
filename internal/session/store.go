// Package session keeps the signed-in user and the visitor's display
// preferences in a pluggable key/value backend.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/iliyamo/lawshop/internal/logger"
	"github.com/iliyamo/lawshop/internal/model"
)

// CurrentUserKey is the backend key holding the signed-in user.
const CurrentUserKey = "lawshop.currentUser"

// Store is the process-wide session. Subscribers are called synchronously,
// in subscription order, after every Set and Clear.
type Store struct {
	backend Backend

	mu      sync.RWMutex
	current *model.User

	subMu  sync.Mutex
	subs   map[int]func(*model.User)
	order  []int
	nextID int
}

// Open loads the stored user. Unreadable or corrupt data is logged and the
// session starts anonymous.
func Open(ctx context.Context, backend Backend) *Store {
	s := &Store{backend: backend, subs: map[int]func(*model.User){}}
	raw, ok, err := backend.Load(ctx, CurrentUserKey)
	if err != nil {
		logger.Warn(ctx, "session load failed", zap.Error(err))
		return s
	}
	if !ok || len(raw) == 0 {
		return s
	}
	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil {
		logger.Warn(ctx, "stored session is corrupt, starting anonymous", zap.Error(err))
		return s
	}
	u = u.Public()
	s.current = &u
	return s
}

// Current returns a copy of the signed-in user, or nil.
func (s *Store) Current() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// IsAdmin reports whether the signed-in user is an administrator.
func (s *Store) IsAdmin() bool { return s.Current().IsAdmin() }

// Set stores u without its password hash. A nil user clears the session.
func (s *Store) Set(ctx context.Context, u *model.User) error {
	if u == nil {
		return s.Clear(ctx)
	}
	pub := u.Public()
	raw, err := json.Marshal(pub)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.backend.Save(ctx, CurrentUserKey, raw); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.mu.Lock()
	s.current = &pub
	s.mu.Unlock()
	s.notify(&pub)
	return nil
}

// Clear signs the user out.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.Remove(ctx, CurrentUserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.notify(nil)
	return nil
}

// Subscribe registers fn for session changes and returns a function that
// removes it.
func (s *Store) Subscribe(fn func(*model.User)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(u *model.User) {
	s.subMu.Lock()
	fns := make([]func(*model.User), 0, len(s.subs))
	kept := s.order[:0]
	for _, id := range s.order {
		if fn, ok := s.subs[id]; ok {
			fns = append(fns, fn)
			kept = append(kept, id)
		}
	}
	s.order = kept
	s.subMu.Unlock()

	for _, fn := range fns {
		var c *model.User
		if u != nil {
			cp := *u
			c = &cp
		}
		fn(c)
	}
}

// Refresh reloads the signed-in user through fetch. When fetch fails the
// session is left as it was and the error is returned.
func (s *Store) Refresh(ctx context.Context, fetch func(context.Context, model.ID) (model.User, error)) (*model.User, error) {
	cur := s.Current()
	if cur == nil || cur.ID.IsZero() {
		return nil, nil
	}
	fresh, err := fetch(ctx, cur.ID)
	if err != nil {
		logger.Warn(ctx, "session refresh failed", zap.String("user_id", cur.ID.String()), zap.Error(err))
		return cur, err
	}
	if err := s.Set(ctx, &fresh); err != nil {
		return cur, err
	}
	return s.Current(), nil
}
