package ports

import "context"

// AccountPort defines the interface for updating account profiles.
type AccountPort interface {
	// UpdateDisplayName sets the display name shown at the table for userID.
	// Returns an error if the profile update fails.
	UpdateDisplayName(ctx context.Context, userID, displayName string) error
}
