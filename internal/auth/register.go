package auth

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/lawshop/internal/logger"
	"github.com/iliyamo/lawshop/internal/model"
)

// ErrSubmitInProgress rejects a second submit while one is running.
var ErrSubmitInProgress = errors.New("auth: submission already in progress")

// Users is the users collection as the auth flows need it.
type Users interface {
	Prober
	GetByID(ctx context.Context, id model.ID) (model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
	Patch(ctx context.Context, id model.ID, fields map[string]any) (model.User, error)
}

// ValidationError lists the fields that failed and their messages.
type ValidationError struct {
	Fields map[Field]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

func (e *ValidationError) add(f Field, err error) {
	if err == nil {
		return
	}
	if e.Fields == nil {
		e.Fields = map[Field]string{}
	}
	e.Fields[f] = err.Error()
}

func (e *ValidationError) empty() bool { return len(e.Fields) == 0 }

// RegistrationInput is what the visitor submitted.
type RegistrationInput struct {
	LastName          string                 `json:"lastName"`
	FirstName         string                 `json:"firstName"`
	MiddleName        string                 `json:"middleName"`
	Phone             string                 `json:"phone"`
	Email             string                 `json:"email"`
	DateOfBirth       string                 `json:"dateOfBirth"`
	PasswordMode      model.PasswordStrategy `json:"passwordMode"`
	Password          string                 `json:"password"`
	PasswordConfirm   string                 `json:"passwordConfirm"`
	Nickname          string                 `json:"nickname"`
	ManualNickname    bool                   `json:"manualNickname"`
	NicknameManual    string                 `json:"nicknameManual"`
	AgreementAccepted bool                   `json:"agreementAccepted"`
}

// Registrar creates accounts.
type Registrar struct {
	Users  Users
	Hasher Hasher
	Now    func() time.Time
}

func NewRegistrar(users Users, h Hasher) *Registrar {
	return &Registrar{Users: users, Hasher: h, Now: time.Now}
}

func (r *Registrar) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Submit re-validates every field, synchronous rules first and then the
// uniqueness probes, and writes the user only when all of them pass. The
// returned user carries no password hash. form may be nil; when given it
// receives every verdict.
func (r *Registrar) Submit(ctx context.Context, form *Form, in RegistrationInput) (model.User, error) {
	if form == nil {
		form = NewForm(nil)
	}
	if form.Checks == nil {
		form.Checks = NewUniquenessCache(r.Users)
	}
	if form.Submitting {
		return model.User{}, ErrSubmitInProgress
	}
	if in.PasswordMode != model.PasswordAuto {
		in.PasswordMode = model.PasswordManual
	}
	form.PasswordMode = in.PasswordMode
	form.ManualNickname = form.ManualNickname || in.ManualNickname

	verr := &ValidationError{}
	check := func(f Field, value string, err error) {
		form.field(f).Value = value
		form.Mark(f, err)
		verr.add(f, err)
	}

	last, err := ValidateName(in.LastName)
	check(FieldLastName, last, err)
	first, err := ValidateName(in.FirstName)
	check(FieldFirstName, first, err)
	middle := ValidateMiddleName(in.MiddleName)
	check(FieldMiddleName, middle, nil)

	phone, err := NormalizePhone(in.Phone)
	check(FieldPhone, phone.Formatted, err)

	today := r.now()
	_, err = ValidateDateOfBirth(in.DateOfBirth, today)
	check(FieldDOB, strings.TrimSpace(in.DateOfBirth), err)

	if in.AgreementAccepted {
		check(FieldAgreement, "true", nil)
	} else {
		check(FieldAgreement, "", MsgAgreementRequired)
	}

	email, err := ValidateEmail(ctx, form.Checks, in.Email)
	check(FieldEmail, email, err)

	if in.PasswordMode == model.PasswordManual {
		err = ValidatePassword(in.Password)
		check(FieldPassword, "", err)
		if err == nil {
			check(FieldPasswordConfirm, "", ValidateConfirmation(in.Password, in.PasswordConfirm))
		}
	} else {
		check(FieldPassword, "", ValidatePassword(in.Password))
		form.Mark(FieldPasswordConfirm, nil)
	}

	nickname, nickField, err := r.checkNickname(ctx, form, in)
	check(nickField, nickname, err)

	if !verr.empty() {
		return model.User{}, verr
	}

	form.Submitting = true
	defer func() { form.Submitting = false }()

	hash, err := r.Hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}
	stamp := today.UTC()
	u := model.User{
		FirstName:           first,
		LastName:            last,
		MiddleName:          middle,
		FullName:            model.ComposeFullName(last, first, middle),
		Phone:               phone.Digits,
		PhoneFormatted:      phone.Formatted,
		Email:               email,
		EmailLower:          strings.ToLower(email),
		DateOfBirth:         strings.TrimSpace(in.DateOfBirth),
		PasswordHash:        hash,
		PasswordStrategy:    in.PasswordMode,
		Nickname:            nickname,
		NicknameLower:       strings.ToLower(nickname),
		Role:                model.RoleCustomer,
		Status:              "active",
		RegisteredAt:        &stamp,
		AgreementAcceptedAt: &stamp,
		AgreementVersion:    AgreementVersion,
	}
	created, err := r.Users.Create(ctx, u)
	if err != nil {
		logger.Error(ctx, "user create failed", err, zap.String("email", u.EmailLower))
		return model.User{}, fmt.Errorf("register: %w", err)
	}
	logger.Info(ctx, "user registered", zap.String("user_id", created.ID.String()))
	return created.Public(), nil
}

func (r *Registrar) checkNickname(ctx context.Context, form *Form, in RegistrationInput) (string, Field, error) {
	if form.ManualNickname {
		v, err := ValidateManualNickname(in.NicknameManual)
		if err != nil {
			return v, FieldNicknameManual, err
		}
		unique, err := form.Checks.NicknameUnique(ctx, v)
		switch {
		case err != nil:
			logger.Warn(ctx, "nickname uniqueness probe failed", zap.Error(err))
			return v, FieldNicknameManual, MsgNicknameUnverified
		case !unique:
			return v, FieldNicknameManual, MsgNicknameTaken
		}
		return v, FieldNicknameManual, nil
	}

	v := strings.TrimSpace(in.Nickname)
	if v == "" {
		return v, FieldNickname, MsgNicknameMissing
	}
	// Generated nicknames always fit the typed pattern.
	if !manualNickname.MatchString(v) {
		return v, FieldNickname, MsgNicknameFormat
	}
	unique, err := form.Checks.NicknameUnique(ctx, v)
	switch {
	case err != nil:
		logger.Warn(ctx, "nickname uniqueness probe failed", zap.Error(err))
		return v, FieldNickname, MsgNicknameUnverified
	case !unique:
		return v, FieldNickname, MsgNicknameExists
	}
	return v, FieldNickname, nil
}
