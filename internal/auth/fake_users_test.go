package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/store"
)

type memUsers struct {
	mu       sync.Mutex
	users    []model.User
	probes   int
	probeErr error
	patches  []map[string]any
}

func (m *memUsers) find(field func(model.User) string, v string) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.probes++
	if m.probeErr != nil {
		return nil, m.probeErr
	}
	var out []model.User
	for _, u := range m.users {
		if field(u) == strings.ToLower(v) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) ([]model.User, error) {
	return m.find(func(u model.User) string { return u.EmailLower }, email)
}

func (m *memUsers) FindByNickname(_ context.Context, nick string) ([]model.User, error) {
	return m.find(func(u model.User) string { return u.NicknameLower }, nick)
}

func (m *memUsers) GetByID(_ context.Context, id model.ID) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, store.ErrNotFound
}

func (m *memUsers) Create(_ context.Context, u model.User) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = model.ID(strconv.Itoa(len(m.users) + 1))
	m.users = append(m.users, u)
	return u, nil
}

func (m *memUsers) Patch(_ context.Context, id model.ID, fields map[string]any) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patches = append(m.patches, fields)
	for i, u := range m.users {
		if u.ID != id {
			continue
		}
		for k, v := range fields {
			s, _ := v.(string)
			switch k {
			case "firstName":
				u.FirstName = s
			case "lastName":
				u.LastName = s
			case "middleName":
				u.MiddleName = s
			case "fullName":
				u.FullName = s
			case "phone":
				u.Phone = s
			case "phoneFormatted":
				u.PhoneFormatted = s
			case "email":
				u.Email = s
			case "emailLower":
				u.EmailLower = s
			case "dateOfBirth":
				u.DateOfBirth = s
			case "nickname":
				u.Nickname = s
			case "nicknameLower":
				u.NicknameLower = s
			}
		}
		m.users[i] = u
		return u, nil
	}
	return model.User{}, store.ErrNotFound
}

var errProbe = errors.New("store down")
