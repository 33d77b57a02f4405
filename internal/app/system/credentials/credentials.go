// Package credentials owns password hashing and verification.
//
// Passwords are stored only as bcrypt hashes; the plaintext credential
// exists in memory for the duration of a signup or login request and is
// never written anywhere.
package credentials

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned by Verify when the password does not match
// the stored hash. Callers should present it to users as a generic
// invalid-credentials failure, without distinguishing it from an
// unknown email.
var ErrMismatch = errors.New("credentials do not match")

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 8

// ErrTooShort is returned by Hash when the password is shorter than
// MinPasswordLength.
var ErrTooShort = errors.New("password is too short")

// Hash derives a bcrypt hash from a plaintext password.
func Hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrTooShort
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify checks a plaintext password against a stored hash. It returns
// ErrMismatch for a wrong password and passes through any other bcrypt
// error (e.g. a corrupt hash).
func Verify(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
