package util

import (
	"golang.org/x/crypto/bcrypt"
)

// VerifyAdminPassword reports whether password matches the bcrypt hash
// configured through ADMIN_PASSWORD_HASH. A malformed hash verifies as
// false.
func VerifyAdminPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
