package password

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt cost used for new hashes.
const DefaultCost = 12

// MinLength is the minimum accepted password length.
const MinLength = 8

// Hasher abstracts the credential hashing algorithm so it can be swapped
// without touching the session logic. Verify must be constant-time with
// respect to the presented secret.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) bool
}

// BcryptHasher is the production Hasher.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher creates a bcrypt hasher with the default cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: DefaultCost}
}

// Hash hashes a secret with bcrypt.
func (h *BcryptHasher) Hash(secret string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a secret with a stored hash.
func (h *BcryptHasher) Verify(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// Validate checks whether a password meets the minimum requirements.
func Validate(secret string) bool {
	return len(secret) >= MinLength
}
