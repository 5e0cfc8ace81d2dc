package domain

import (
	"context"
	"strings"
)

// Alias field names tried, in order, when reading a guest. The first field
// holding a non-empty string wins.
var (
	EmailFields = []string{"email", "user_email"}
	NameFields  = []string{"name", "user_name", "user_first_name"}
)

// Guest is a raw guest object as returned by the guest-list API. Field names
// vary between API versions, so it is kept untyped and read through aliases.
type Guest map[string]any

// Email returns the guest's email using EmailFields.
func (g Guest) Email() (string, bool) {
	return g.pick(EmailFields)
}

// Name returns the guest's display name using NameFields.
func (g Guest) Name() (string, bool) {
	return g.pick(NameFields)
}

func (g Guest) pick(fields []string) (string, bool) {
	for _, k := range fields {
		if s, ok := g[k].(string); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}

// GuestFetcher fetches the guest list of one event (Luma API or a test double).
type GuestFetcher interface {
	FetchGuests(ctx context.Context, eventAPIID string) ([]Guest, error)
}

// EmailHasher derives a stable, non-reversible fingerprint of an email.
type EmailHasher interface {
	Hash(email string) string
}
