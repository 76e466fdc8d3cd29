package session

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// maxBcryptInput is the longest password bcrypt accepts.
const maxBcryptInput = 72

func isBcryptHash(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}

// bcryptInput returns what bcrypt sees for password. Passwords over the
// bcrypt limit are replaced by the base64 of their SHA-256 digest, so every
// byte still counts.
func bcryptInput(password string) []byte {
	if len(password) <= maxBcryptInput {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), cost)
	if err != nil {
		return "", fmt.Errorf("session: cannot hash password: %w", err)
	}
	return string(hash), nil
}

// checkPassword compares a submitted password with the stored credential.
// Stored values that are not bcrypt hashes are legacy plaintext and are
// compared verbatim; upgrade reports that such a match should be rehashed.
func checkPassword(stored, password string) (ok, upgrade bool) {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), bcryptInput(password)) == nil, false
	}
	if stored == password {
		return true, true
	}
	return false, false
}
