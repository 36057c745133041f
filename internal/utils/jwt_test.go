package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
    tok, err := NewAccessToken("s3cret", "42", "customer", 15)
    require.NoError(t, err)
    assert.WithinDuration(t, time.Now().Add(15*time.Minute), tok.Exp, 5*time.Second)

    cl, err := ParseAccessToken("s3cret", tok.Token)
    require.NoError(t, err)
    assert.Equal(t, Claims{UserID: "42", Role: "customer"}, cl)
}

func TestParseAccessTokenRejects(t *testing.T) {
    tok, err := NewAccessToken("s3cret", "42", "customer", 15)
    require.NoError(t, err)
    _, err = ParseAccessToken("other", tok.Token)
    assert.ErrorIs(t, err, ErrInvalidToken)

    expired, err := NewAccessToken("s3cret", "42", "customer", -1)
    require.NoError(t, err)
    _, err = ParseAccessToken("s3cret", expired.Token)
    assert.ErrorIs(t, err, ErrInvalidToken)

    noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "customer", "exp": time.Now().Add(time.Hour).Unix()})
    raw, err := noSub.SignedString([]byte("s3cret"))
    require.NoError(t, err)
    _, err = ParseAccessToken("s3cret", raw)
    assert.ErrorIs(t, err, ErrInvalidToken)
}
