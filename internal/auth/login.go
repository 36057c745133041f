package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/lawshop/internal/logger"
	"github.com/iliyamo/lawshop/internal/model"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticator signs users in against the users collection.
type Authenticator struct {
	Users  Users
	Hasher Hasher
	Now    func() time.Time
}

func NewAuthenticator(users Users, h Hasher) *Authenticator {
	return &Authenticator{Users: users, Hasher: h, Now: time.Now}
}

// Login checks the credentials and stamps lastLoginAt. The returned user
// carries no password hash. A failed lastLoginAt write is logged only.
func (a *Authenticator) Login(ctx context.Context, email, password string) (model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !ValidEmailSyntax(email) {
		return model.User{}, &ValidationError{Fields: map[Field]string{FieldEmail: MsgLoginEmail.Error()}}
	}
	if password == "" {
		return model.User{}, &ValidationError{Fields: map[Field]string{FieldPassword: MsgLoginPassword.Error()}}
	}

	users, err := a.Users.FindByEmail(ctx, email)
	if err != nil {
		logger.Error(ctx, "user lookup failed", err)
		return model.User{}, fmt.Errorf("login: %w", err)
	}
	if len(users) == 0 || !a.Hasher.Verify(users[0].PasswordHash, password) {
		return model.User{}, ErrInvalidCredentials
	}
	u := users[0]

	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	stamp := now().UTC()
	if _, err := a.Users.Patch(ctx, u.ID, map[string]any{"lastLoginAt": stamp}); err != nil {
		logger.Warn(ctx, "lastLoginAt update failed", zap.String("user_id", u.ID.String()), zap.Error(err))
	}
	u.LastLoginAt = &stamp
	return u.Public(), nil
}
