package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost is deliberately expensive and fixed process-wide.
const bcryptCost = 12

// MaxPasswordBytes is the bcrypt input limit. Longer plaintexts must be
// rejected by callers before hashing; bcrypt errors instead of
// truncating.
const MaxPasswordBytes = 72

// HashPassword hashes a plaintext password with the fixed cost.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
// Mismatch and malformed hashes both return an error, never a panic.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
