package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lawshop/internal/model"
)

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Анна-Мария O'Neil", SanitizeName("  Анна-Мария   O'Neil42! "))
	assert.Equal(t, "", SanitizeName("1234 @@"))

	_, err := ValidateName("  ")
	assert.ErrorIs(t, err, MsgRequired)
	_, err = ValidateName("Я")
	assert.ErrorIs(t, err, MsgNameTooShort)
	v, err := ValidateName("Ян")
	require.NoError(t, err)
	assert.Equal(t, "Ян", v)
	assert.Equal(t, "", ValidateMiddleName("777"))
}

func TestNormalizePhoneEquivalentForms(t *testing.T) {
	want := Phone{Digits: "+375291234567", Formatted: "+375 29 123-45-67"}
	for _, in := range []string{"80291234567", "375291234567", "+375 (29) 123-45-67", "+375 29 123 45 67"} {
		got, err := NormalizePhone(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestNormalizePhoneRejects(t *testing.T) {
	for _, in := range []string{"", "80221234567", "+375 22 123-45-67", "+7 912 123-45-67", "37529123456", "3752912345678"} {
		_, err := NormalizePhone(in)
		assert.ErrorIs(t, err, MsgPhoneInvalid, in)
	}
	assert.Equal(t, "+375 44 765-43-21", FormatPhone("+375447654321"))
	assert.Equal(t, "n/a", FormatPhone("n/a"))
}

func TestValidateEmail(t *testing.T) {
	users := &memUsers{users: []model.User{{ID: "1", EmailLower: "taken@law.by"}}}
	checks := NewUniquenessCache(users)
	ctx := context.Background()

	_, err := ValidateEmail(ctx, checks, " ")
	assert.ErrorIs(t, err, MsgEmailRequired)
	_, err = ValidateEmail(ctx, checks, "no-at.by")
	assert.ErrorIs(t, err, MsgEmailInvalid)
	_, err = ValidateEmail(ctx, checks, "Taken@Law.by")
	assert.ErrorIs(t, err, MsgEmailTaken)
	v, err := ValidateEmail(ctx, checks, " free@law.by ")
	require.NoError(t, err)
	assert.Equal(t, "free@law.by", v)

	users.probeErr = errProbe
	_, err = ValidateEmail(ctx, NewUniquenessCache(users), "other@law.by")
	assert.ErrorIs(t, err, MsgEmailUnverified)
}

func TestUniquenessCacheRemembersAnswersNotErrors(t *testing.T) {
	users := &memUsers{}
	checks := NewUniquenessCache(users)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := checks.EmailUnique(ctx, "A@B.by")
		require.NoError(t, err)
		assert.True(t, ok)
		_, _ = checks.EmailUnique(ctx, "a@b.by")
	}
	assert.Equal(t, 1, users.probes)

	users.probeErr = errProbe
	_, err := checks.NicknameUnique(ctx, "lex")
	assert.Error(t, err)
	users.probeErr = nil
	ok, err := checks.NicknameUnique(ctx, "lex")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, users.probes)

	checks.Reset()
	_, _ = checks.EmailUnique(ctx, "a@b.by")
	assert.Equal(t, 4, users.probes)
}

func TestValidateDateOfBirth(t *testing.T) {
	today := time.Date(2024, 10, 15, 9, 0, 0, 0, time.UTC)
	_, err := ValidateDateOfBirth("", today)
	assert.ErrorIs(t, err, MsgDOBRequired)
	_, err = ValidateDateOfBirth("15.10.2000", today)
	assert.ErrorIs(t, err, MsgDOBInvalid)
	_, err = ValidateDateOfBirth("2008-10-15", today)
	assert.NoError(t, err, "sixteenth birthday is today")
	_, err = ValidateDateOfBirth("2008-10-16", today)
	assert.ErrorIs(t, err, MsgDOBTooYoung)
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", MsgPasswordRequired},
		{"Aa1!", MsgPasswordLength},
		{"Aa1!Aa1!Aa1!Aa1!Aa1!x", MsgPasswordLength},
		{"abcdefgh1!", MsgPasswordClasses},
		{"ABCDEFGH1!", MsgPasswordClasses},
		{"Abcdefghi!", MsgPasswordClasses},
		{"Abcdefgh12", MsgPasswordClasses},
		{"Goodpass1`", nil},
		{"Str0ng#Pass", nil},
	}
	for _, tt := range tests {
		err := ValidatePassword(tt.in)
		if tt.want == nil {
			assert.NoError(t, err, tt.in)
		} else {
			assert.ErrorIs(t, err, tt.want, tt.in)
		}
	}
	assert.True(t, IsCommonPassword("PassWord123"))
	assert.False(t, IsCommonPassword("Str0ng#Pass"))

	assert.ErrorIs(t, ValidateConfirmation("Str0ng#Pass", ""), MsgConfirmRequired)
	assert.ErrorIs(t, ValidateConfirmation("Str0ng#Pass", "str0ng#pass"), MsgConfirmMismatch)
	assert.NoError(t, ValidateConfirmation("Str0ng#Pass", "Str0ng#Pass"))
}

func TestGeneratedPasswordsAlwaysSatisfyPolicy(t *testing.T) {
	g := NewSeededPasswordGenerator([32]byte{7})
	for i := 0; i < 1000; i++ {
		p, err := g.Generate()
		require.NoError(t, err)
		require.NoError(t, ValidatePassword(p), p)
		assert.NotContainsf(t, p, "0", "look-alike in %q", p)
		assert.NotContainsf(t, p, "l", "look-alike in %q", p)
	}
}

func TestHasher(t *testing.T) {
	h := Hasher{Cost: 4}
	hash, err := h.Hash("Str0ng#Pass")
	require.NoError(t, err)
	assert.True(t, h.Verify(hash, "Str0ng#Pass"))
	assert.False(t, h.Verify(hash, "str0ng#pass"))
	assert.False(t, h.Verify("", ""))
}

func TestAgreementRequiresScrollToBottom(t *testing.T) {
	var a Agreement
	now := time.Now()
	assert.ErrorIs(t, a.Accept(now), MsgAgreementRequired)
	assert.False(t, a.Scrolled(100, 300, 500))
	assert.True(t, a.Scrolled(192, 300, 500))
	assert.True(t, a.Scrolled(0, 300, 500), "stays read")
	require.NoError(t, a.Accept(now))
	assert.True(t, a.Accepted())
	assert.ErrorIs(t, a.Decline(), MsgAgreementRequired)
	assert.False(t, a.Accepted())
}
