package helpers

import "golang.org/x/crypto/bcrypt"

// HashSecret hashes a short-lived secret (such as a 2FA code) with bcrypt
func HashSecret(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareSecret compares a bcrypt hash with a plain secret
func CompareSecret(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
