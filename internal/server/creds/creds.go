// Package creds implements the credential engine: salted one-way password
// key derivation and constant-time verification. It has no dependencies on
// the rest of the core beyond shared error values.
package creds

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/pbkdf2"

	"github.com/dmitrijs2005/guildchat/internal/common"
)

// PBKDF2 parameters. The iteration count is the tuned cost factor; raise
// it only together with a re-derivation path for stored credentials.
const (
	Iterations = 120_000
	KeyLength  = 32
	SaltLength = 16

	minPasswordLen = 6
)

// NewSalt returns a fresh random salt. Salts are unique per account;
// collisions are negligible at this length.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltLength)
}

// DeriveKey computes the derived key for a password and salt. The
// password is whitespace-trimmed first, so accidental leading or trailing
// spaces do not create two distinct credentials. Same inputs always yield
// the same key; different salts yield unlinkable keys.
func DeriveKey(password string, salt []byte) []byte {
	trimmed := strings.TrimSpace(password)
	return pbkdf2.Key([]byte(trimmed), salt, Iterations, KeyLength, sha256.New)
}

// Verify recomputes the derived key for the candidate password and
// compares it to the expected key in constant time.
func Verify(candidate string, salt, expected []byte) bool {
	derived := DeriveKey(candidate, salt)
	return subtle.ConstantTimeCompare(derived, expected) == 1
}

// CheckPolicy validates a password against the account policy: after
// trimming it must be at least six characters and contain at least one
// letter and one digit. Violations wrap common.ErrPasswordPolicy with a
// human-readable reason.
func CheckPolicy(password string) error {
	trimmed := strings.TrimSpace(password)

	if len(trimmed) < minPasswordLen {
		return fmt.Errorf("%w: must be at least %d characters", common.ErrPasswordPolicy, minPasswordLen)
	}

	var hasLetter, hasDigit bool
	for _, r := range trimmed {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: must contain at least one letter", common.ErrPasswordPolicy)
	}
	if !hasDigit {
		return fmt.Errorf("%w: must contain at least one digit", common.ErrPasswordPolicy)
	}
	return nil
}
