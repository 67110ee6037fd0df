package helpers

import (
	"crypto/sha256"
	"encoding/hex"
)

// Redis key helpers

// KeyUser is the Redis hash holding one registered user
func KeyUser(email string) string {
	return "user:" + email
}

// KeyUserIndex is the Redis set of every registered email
const KeyUserIndex = "users:index"

// KeyTwoFACode is the Redis key for the pending 2FA code of an email
func KeyTwoFACode(email string) string {
	return "login:2fa:" + email
}

// KeyBannedToken is the Redis key marking a revoked token. Tokens are hashed
// to keep keys short.
func KeyBannedToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "token:banned:" + hex.EncodeToString(sum[:])
}
