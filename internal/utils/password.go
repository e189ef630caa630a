package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a plain password with the configured
// cost (BCRYPT_COST).
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt
// hash. Comparison time does not depend on where the mismatch is.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
