package models

import (
	"regexp"
	"strings"
)

var (
	// Guild and channel display names allow spaces on top of the
	// username charset; ids are the lowercase slug of the name.
	nameRegex = regexp.MustCompile(`^[A-Za-z0-9_ -]+$`)
	idRegex   = regexp.MustCompile(`^[a-z0-9_-]+$`)

	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// Guild is a named collection of channels. ID is derived from the name
// at creation via NameToID and never changes afterwards, even if the
// guild is renamed.
type Guild struct {
	ID       string
	Name     string
	Channels []*Channel
}

// Channel is an ordered sequence of messages inside a guild. The id
// follows the same slug rule as guild ids and is unique per guild.
type Channel struct {
	ID       string
	Name     string
	Messages []*Message
}

// Message is free text with a non-owning back-reference to its author.
// Author is resolved by username when the owning guild is loaded; for a
// deleted author it carries the DeletedUserPlaceholder account.
type Message struct {
	Content string
	Author  *Account
}

// ValidName reports whether s is a well-formed guild or channel display
// name: non-empty after trimming, letters/digits/'_'/'-'/spaces only.
func ValidName(s string) bool {
	return nameRegex.MatchString(strings.TrimSpace(s)) && strings.TrimSpace(s) != ""
}

// ValidID reports whether s is a well-formed guild or channel id.
func ValidID(s string) bool {
	return idRegex.MatchString(s)
}

// NameToID derives the id slug for a display name: trim, lowercase, and
// collapse each whitespace run into a single hyphen. The function is
// deterministic and idempotent on its own output.
func NameToID(name string) string {
	return whitespaceRuns.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
