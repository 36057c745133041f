package auth

import "golang.org/x/crypto/bcrypt"

// Hasher hashes passwords with bcrypt at Cost. Out-of-range costs fall
// back to bcrypt.DefaultCost.
type Hasher struct{ Cost int }

func (h Hasher) cost() int {
	if h.Cost < bcrypt.MinCost || h.Cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return h.Cost
}

// Hash returns the bcrypt hash of plain.
func (h Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compares a stored hash with a plain password. An empty hash never
// matches.
func (h Hasher) Verify(hash, plain string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
