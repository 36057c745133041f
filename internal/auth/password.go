package auth

import (
	"crypto/rand"
	"errors"
	mrand "math/rand/v2"
	"strings"
	"sync"
	"unicode/utf8"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 20

	passwordSymbols = "!@#$%^&*()-_=+[{]}|;:'\",<.>/?`~"
)

// commonPasswords is the 2024 top list, compared case-insensitively.
var commonPasswords = func() map[string]struct{} {
	list := []string{
		"123456", "admin", "123456789", "12345", "qwerty", "password", "12345678",
		"111111", "123123", "abc123", "1234567890", "1234", "iloveyou", "1q2w3e",
		"123321", "qwerty123", "000000", "password1", "123", "qazwsx", "123qwe",
		"dragon", "sunshine", "letmein", "monkey", "princess", "trustno1",
		"welcome", "football", "baseball", "solo", "password123", "passw0rd",
		"admin123", "qwertyuiop", "login", "asdfghjkl", "1qaz2wsx", "zxcvbn",
		"freedom", "whatever", "qwerty1", "696969", "zaq12wsx", "starwars",
		"shadow", "michael", "superman", "ninja", "azerty", "121212", "batman",
		"master", "hello123", "photoshop", "7777777", "1password", "qwert",
		"killer", "killer123", "pokemon", "naruto", "88888888", "football1",
		"internet", "letmein123", "love", "flower", "zaq1xsw2", "987654321",
		"1234567", "qwerty12", "pass123", "pass1234", "pass12345", "qwe123",
		"qweasdzxc", "zaq123", "secret", "00000000", "1g2w3e4r", "zxcvbnm",
		"asd123", "myspace1", "charlie", "bailey", "987654", "11111111", "555555",
		"hello", "lovely", "midnight", "pepper", "ginger", "welcome1", "summer",
		"ashley", "football123", "admin1", "matrix", "merlin",
	}
	m := make(map[string]struct{}, len(list))
	for _, p := range list {
		m[p] = struct{}{}
	}
	return m
}()

// IsCommonPassword reports whether p is on the denylist.
func IsCommonPassword(p string) bool {
	_, ok := commonPasswords[strings.ToLower(p)]
	return ok
}

// HasRequiredClasses reports whether p mixes an ASCII upper and lower case
// letter, a digit and a symbol.
func HasRequiredClasses(p string) bool {
	var upper, lower, digit, symbol bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// ValidatePassword applies the manual password policy.
func ValidatePassword(p string) error {
	n := utf8.RuneCountInString(p)
	switch {
	case p == "":
		return MsgPasswordRequired
	case n < MinPasswordLength || n > MaxPasswordLength:
		return MsgPasswordLength
	case !HasRequiredClasses(p):
		return MsgPasswordClasses
	case IsCommonPassword(p):
		return MsgPasswordCommon
	}
	return nil
}

// ValidateConfirmation requires an exact repeat of the password.
func ValidateConfirmation(password, confirm string) error {
	if confirm == "" {
		return MsgConfirmRequired
	}
	if confirm != password {
		return MsgConfirmMismatch
	}
	return nil
}

const (
	genUpper   = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	genLower   = "abcdefghijkmnpqrstuvwxyz"
	genDigits  = "23456789"
	genSpecial = "!@#$%^&*()-_=+[]{}<>?"
	genAll     = genUpper + genLower + genDigits + genSpecial

	defaultGeneratorAttempts = 32
)

// ErrPasswordGeneration is returned when no acceptable password was drawn
// within the attempt budget.
var ErrPasswordGeneration = errors.New("auth: could not generate a password")

// PasswordGenerator draws passwords that always satisfy the manual policy.
// Look-alike characters (I, O, l, o, 0, 1) are never used.
type PasswordGenerator struct {
	MaxAttempts int

	mu  sync.Mutex
	rng *mrand.Rand
}

// NewPasswordGenerator seeds a ChaCha8 source from crypto/rand.
func NewPasswordGenerator() *PasswordGenerator {
	var seed [32]byte
	_, _ = rand.Read(seed[:])
	return NewSeededPasswordGenerator(seed)
}

// NewSeededPasswordGenerator is deterministic for a given seed.
func NewSeededPasswordGenerator(seed [32]byte) *PasswordGenerator {
	return &PasswordGenerator{MaxAttempts: defaultGeneratorAttempts, rng: mrand.New(mrand.NewChaCha8(seed))}
}

// Generate starts with one character of each class, fills up to a random
// length in [MinPasswordLength, MaxPasswordLength] and shuffles.
func (g *PasswordGenerator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	attempts := g.MaxAttempts
	if attempts < 1 {
		attempts = defaultGeneratorAttempts
	}
	for range attempts {
		p := g.draw()
		if HasRequiredClasses(p) && !IsCommonPassword(p) {
			return p, nil
		}
	}
	return "", ErrPasswordGeneration
}

func (g *PasswordGenerator) draw() string {
	pick := func(set string) byte { return set[g.rng.IntN(len(set))] }
	size := MinPasswordLength + g.rng.IntN(MaxPasswordLength-MinPasswordLength+1)
	buf := make([]byte, 0, size)
	buf = append(buf, pick(genUpper), pick(genLower), pick(genDigits), pick(genSpecial))
	for len(buf) < size {
		buf = append(buf, pick(genAll))
	}
	g.rng.Shuffle(len(buf), func(i, j int) { buf[i], buf[j] = buf[j], buf[i] })
	return string(buf)
}
