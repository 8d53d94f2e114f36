// Package oauth bridges a third-party login handshake into a local user
// record. A Provider hands the browser to the identity provider and turns the
// returned authorization code into a profile.
package oauth

import "context"

// Profile is what a provider knows about the authenticated user. Email and
// AvatarHash may be empty when the provider withholds them.
type Profile struct {
	Id         string
	Username   string
	Email      string
	AvatarHash string
}

// Provider is one concrete OAuth integration.
type Provider interface {
	// AuthCodeURL builds the authorization redirect target. state is echoed
	// back on the callback and must match.
	AuthCodeURL(state string) string
	// ExchangeCode trades the callback code for the provider's user profile.
	ExchangeCode(ctx context.Context, code string) (*Profile, error)
}
