// Package user provides user profile management.
//
// # PII Considerations
//
// This package handles user profile data with minimal PII collection:
//
// Data Stored:
//   - UserID: Internal identifier (not PII, randomly generated)
//   - DisplayName: Chosen by the user, shown on shared itineraries
//   - AvatarURL: Optional photo URL, stamped onto itineraries the user creates
//
// Data NOT Stored:
//   - Email and credentials (handled separately in auth)
//   - Location history (itineraries are explicit documents the user saves)
package user

import "time"

// User represents a user's profile.
type User struct {
	// ID is the unique user identifier (format: usr_XXXX).
	ID string

	// DisplayName is the name shown on shared itineraries.
	DisplayName string

	// AvatarURL is an optional photo URL. It is copied onto itineraries at
	// creation time as the creator's profile image.
	AvatarURL string

	// CreatedAt is when the profile was created.
	CreatedAt time.Time

	// UpdatedAt is when the profile was last updated.
	UpdatedAt time.Time
}

// DefaultUser returns a new profile with empty display fields.
func DefaultUser(id string) *User {
	now := time.Now()
	return &User{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
