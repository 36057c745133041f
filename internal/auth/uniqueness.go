package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/iliyamo/lawshop/internal/model"
)

// Prober looks users up by the lowercase email and nickname copies.
type Prober interface {
	FindByEmail(ctx context.Context, email string) ([]model.User, error)
	FindByNickname(ctx context.Context, nickname string) ([]model.User, error)
}

// UniquenessCache remembers probe answers for the lifetime of one form so
// repeated blur/submit checks do not hit the store again. Keys are
// lowercased. Failed probes are not remembered.
type UniquenessCache struct {
	probe Prober

	mu        sync.Mutex
	emails    map[string]bool
	nicknames map[string]bool
}

func NewUniquenessCache(p Prober) *UniquenessCache {
	return &UniquenessCache{probe: p, emails: map[string]bool{}, nicknames: map[string]bool{}}
}

func (c *UniquenessCache) EmailUnique(ctx context.Context, email string) (bool, error) {
	return c.check(ctx, c.emails, email, c.probe.FindByEmail)
}

func (c *UniquenessCache) NicknameUnique(ctx context.Context, nickname string) (bool, error) {
	return c.check(ctx, c.nicknames, nickname, c.probe.FindByNickname)
}

// Reset forgets every remembered answer.
func (c *UniquenessCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.emails = map[string]bool{}
	c.nicknames = map[string]bool{}
}

func (c *UniquenessCache) check(ctx context.Context, memo map[string]bool, value string,
	find func(context.Context, string) ([]model.User, error)) (bool, error) {
	key := strings.ToLower(strings.TrimSpace(value))

	c.mu.Lock()
	unique, ok := memo[key]
	c.mu.Unlock()
	if ok {
		return unique, nil
	}

	users, err := find(ctx, key)
	if err != nil {
		return false, err
	}
	unique = len(users) == 0

	c.mu.Lock()
	memo[key] = unique
	c.mu.Unlock()
	return unique, nil
}
