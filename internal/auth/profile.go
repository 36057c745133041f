package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/lawshop/internal/logger"
	"github.com/iliyamo/lawshop/internal/model"
)

// ProfileInput is an edit of the signed-in user's own profile.
type ProfileInput struct {
	LastName    string `json:"lastName"`
	FirstName   string `json:"firstName"`
	MiddleName  string `json:"middleName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
	Nickname    string `json:"nickname"`
}

// ProfileFrom pre-fills an edit with the current values.
func ProfileFrom(u model.User) ProfileInput {
	phone := u.Phone
	if phone == "" {
		phone = u.PhoneFormatted
	}
	return ProfileInput{
		LastName:    u.LastName,
		FirstName:   u.FirstName,
		MiddleName:  u.MiddleName,
		Phone:       FormatPhone(phone),
		Email:       u.Email,
		DateOfBirth: u.DateOfBirth,
		Nickname:    u.Nickname,
	}
}

// Profiles edits user records.
type Profiles struct {
	Users Users
	Now   func() time.Time
}

func NewProfiles(users Users) *Profiles { return &Profiles{Users: users, Now: time.Now} }

// Update validates the edit with the registration rules and patches the
// user. Email and nickname are only probed for uniqueness when they
// change. fullName and the lowercase lookup copies are recomputed.
func (p *Profiles) Update(ctx context.Context, current model.User, in ProfileInput) (model.User, error) {
	checks := NewUniquenessCache(p.Users)
	verr := &ValidationError{}

	last, err := ValidateName(in.LastName)
	verr.add(FieldLastName, err)
	first, err := ValidateName(in.FirstName)
	verr.add(FieldFirstName, err)
	middle := ValidateMiddleName(in.MiddleName)

	phone, err := NormalizePhone(in.Phone)
	verr.add(FieldPhone, err)

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	_, err = ValidateDateOfBirth(in.DateOfBirth, now())
	verr.add(FieldDOB, err)

	email, err := ValidateEmailSyntax(in.Email)
	if err == nil && !strings.EqualFold(email, current.Email) {
		email, err = ValidateEmail(ctx, checks, email)
	}
	verr.add(FieldEmail, err)

	nickname := strings.TrimSpace(in.Nickname)
	if !strings.EqualFold(nickname, current.Nickname) {
		nickname, err = ValidateManualNickname(nickname)
		if err == nil {
			unique, perr := checks.NicknameUnique(ctx, nickname)
			switch {
			case perr != nil:
				err = MsgNicknameUnverified
			case !unique:
				err = MsgNicknameTaken
			}
		}
		verr.add(FieldNickname, err)
	}

	if !verr.empty() {
		return model.User{}, verr
	}

	updated, err := p.Users.Patch(ctx, current.ID, map[string]any{
		"firstName":      first,
		"lastName":       last,
		"middleName":     middle,
		"fullName":       model.ComposeFullName(last, first, middle),
		"phone":          phone.Digits,
		"phoneFormatted": phone.Formatted,
		"email":          email,
		"emailLower":     strings.ToLower(email),
		"dateOfBirth":    strings.TrimSpace(in.DateOfBirth),
		"nickname":       nickname,
		"nicknameLower":  strings.ToLower(nickname),
	})
	if err != nil {
		logger.Error(ctx, "profile update failed", err, zap.String("user_id", current.ID.String()))
		return model.User{}, fmt.Errorf("update profile: %w", err)
	}
	return updated.Public(), nil
}
