// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered pet owner.
// It contains authentication credentials and profile metadata.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users and is compared case-sensitively.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// Name is the optional display name.
	Name string `gorm:"size:100"`

	// AvatarURL is an optional link to the user's avatar image.
	AvatarURL string `gorm:"size:2048"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// ProfileUpdate lists the profile fields a user may change about themselves.
// Nil fields are left untouched. Credentials are not part of it.
type ProfileUpdate struct {
	Name      *string
	AvatarURL *string
}

// IsEmpty reports whether the update would change nothing.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.AvatarURL == nil
}
