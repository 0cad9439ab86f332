package repository

import "context"

// PreferenceRepository stores durable key/value settings.
// A missing key reads as the empty string.
type PreferenceRepository interface {
	GetPreference(ctx context.Context, key string) (string, error)
	SetPreference(ctx context.Context, key, value string) error
}
