// Package models defines the core entities of the chat backend and their
// validation rules. Entities reference each other by string identifiers
// (usernames, guild/channel ids) rather than by live object links; the
// repositories resolve those references at load time.
package models

import "regexp"

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// DeletedUsername is the reserved username substituted for message
// authors whose account no longer exists. It can never be registered and
// lookups report it as absent.
const DeletedUsername = "deleted_user"

// Credential is a derived password key with its salt, both hex-encoded.
// The plaintext password is never stored.
type Credential struct {
	Value string `json:"value"`
	Salt  string `json:"salt"`
}

// Account is a registered user. Username is the immutable primary key;
// one account persists as accounts/<username>.json.
type Account struct {
	Username    string     `json:"username"`
	DisplayName string     `json:"displayName"`
	Password    Credential `json:"password"`
}

// ValidUsername reports whether s is a well-formed username:
// non-empty and limited to ASCII letters, digits, '_' and '-'.
func ValidUsername(s string) bool {
	return usernameRegex.MatchString(s)
}

// DeletedUserPlaceholder returns the well-known stand-in account used
// when resolving authorship of messages whose author was deleted.
func DeletedUserPlaceholder() *Account {
	return &Account{
		Username:    DeletedUsername,
		DisplayName: "Deleted User",
	}
}
