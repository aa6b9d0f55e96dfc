package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUsername(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"john_doe", true},
		{"John-Doe42", true},
		{"a", true},
		{"", false},
		{"  ", false},
		{"john doe", false},
		{"john.doe", false},
		{"jöhn", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ValidUsername(tc.in), "username %q", tc.in)
	}
}

func TestValidName(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"My Cool Guild", true},
		{"  general  ", true},
		{"guild_1-a", true},
		{"", false},
		{"   ", false},
		{"bad!name", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ValidName(tc.in), "name %q", tc.in)
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"my-cool-guild", true},
		{"g_1", true},
		{"", false},
		{"My-Guild", false},
		{"has space", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ValidID(tc.in), "id %q", tc.in)
	}
}

func TestNameToID(t *testing.T) {
	assert.Equal(t, "my-cool-guild", NameToID("My Cool Guild "))
	assert.Equal(t, "a-b", NameToID("  a \t b "))
	assert.Equal(t, "general", NameToID("General"))
}

func TestNameToID_Idempotent(t *testing.T) {
	once := NameToID("My Cool Guild ")
	assert.Equal(t, once, NameToID(once))
}

func TestDeletedUserPlaceholder(t *testing.T) {
	p := DeletedUserPlaceholder()
	assert.Equal(t, DeletedUsername, p.Username)
	assert.Equal(t, "Deleted User", p.DisplayName)
	assert.Empty(t, p.Password.Value)
}
