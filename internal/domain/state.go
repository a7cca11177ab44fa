package domain

import "context"

// Theme is the UI color scheme preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Well-known keys of the local state store.
const (
	StateKeyToken          = "auth_token"
	StateKeyProfile        = "profile_snapshot"
	StateKeyProfilePicture = "profile_picture"
	StateKeyTheme          = "theme"
)

// StateRepository defines the interface for durable client-side state:
// the bearer token, the cached profile snapshot, the profile picture data URI
// and the theme preference.
type StateRepository interface {
	// Get returns the stored value for a key, or "" when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
