// Package auth implements the telnet login gate's credential check.
package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Credentials configures the single login gate. When PasswordHash is
// set it takes precedence over Password and is verified with bcrypt;
// otherwise Password is compared byte-exact in constant time.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// Enabled reports whether authentication is required at all.
func (c Credentials) Enabled() bool {
	return c.Username != "" && (c.Password != "" || c.PasswordHash != "")
}

// Verify checks a username/password pair against the configured
// credentials.
func (c Credentials) Verify(username, password string) bool {
	if !c.Enabled() {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(c.Username), []byte(username)) == 1
	if c.PasswordHash != "" {
		passOK := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
		return userOK && passOK
	}
	passOK := subtle.ConstantTimeCompare([]byte(c.Password), []byte(password)) == 1
	return userOK && passOK
}

// HashPassword produces a bcrypt hash suitable for Credentials.PasswordHash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
