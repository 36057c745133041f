package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lawshop/internal/model"
)

func seededUser(t *testing.T) *memUsers {
	t.Helper()
	hash, err := Hasher{Cost: 4}.Hash("Str0ng#Pass")
	require.NoError(t, err)
	return &memUsers{users: []model.User{{
		ID: "7", Email: "Anna@Law.by", EmailLower: "anna@law.by", Nickname: "anna",
		NicknameLower: "anna", FirstName: "Анна", LastName: "Иванова", Phone: "+375291234567",
		DateOfBirth: "1990-05-01", PasswordHash: hash, Role: model.RoleCustomer,
	}}}
}

func TestLogin(t *testing.T) {
	users := seededUser(t)
	a := NewAuthenticator(users, Hasher{Cost: 4})
	a.Now = func() time.Time { return fixedNow }

	u, err := a.Login(context.Background(), " ANNA@law.by ", "Str0ng#Pass")
	require.NoError(t, err)
	assert.Equal(t, model.ID("7"), u.ID)
	assert.Empty(t, u.PasswordHash)
	require.NotNil(t, u.LastLoginAt)
	assert.Equal(t, fixedNow, *u.LastLoginAt)
	require.Len(t, users.patches, 1)
	assert.Equal(t, fixedNow, users.patches[0]["lastLoginAt"])
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	a := NewAuthenticator(seededUser(t), Hasher{Cost: 4})
	_, err := a.Login(context.Background(), "nobody@law.by", "Str0ng#Pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = a.Login(context.Background(), "anna@law.by", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginFieldChecks(t *testing.T) {
	a := NewAuthenticator(seededUser(t), Hasher{Cost: 4})
	var verr *ValidationError

	_, err := a.Login(context.Background(), "not-an-email", "x")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MsgLoginEmail.Error(), verr.Fields[FieldEmail])

	_, err = a.Login(context.Background(), "anna@law.by", "")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MsgLoginPassword.Error(), verr.Fields[FieldPassword])
}

func TestProfileUpdate(t *testing.T) {
	users := seededUser(t)
	users.users = append(users.users, model.User{ID: "8", EmailLower: "taken@law.by", NicknameLower: "taken"})
	p := NewProfiles(users)
	p.Now = func() time.Time { return fixedNow }
	current := users.users[0]

	in := ProfileFrom(current)
	assert.Equal(t, "+375 29 123-45-67", in.Phone)
	in.MiddleName = "Сергеевна"
	in.Phone = "80447654321"
	u, err := p.Update(context.Background(), current, in)
	require.NoError(t, err)
	assert.Equal(t, "Иванова Анна Сергеевна", u.FullName)
	assert.Equal(t, "+375447654321", u.Phone)
	assert.Equal(t, "anna@law.by", u.EmailLower)
	assert.Empty(t, u.PasswordHash)

	in.Email = "TAKEN@law.by"
	in.Nickname = "taken"
	_, err = p.Update(context.Background(), current, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MsgEmailTaken.Error(), verr.Fields[FieldEmail])
	assert.Equal(t, MsgNicknameTaken.Error(), verr.Fields[FieldNickname])
}
