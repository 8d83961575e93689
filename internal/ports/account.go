package ports

import "context"

// Profile is what the table shows for a seated account.
type Profile struct {
	Username    string
	DisplayName string
	AvatarIndex int
}

// AccountPort edits the public profile of an account.
type AccountPort interface {
	// UpdateProfile stores p for userID. Empty strings leave the stored field unchanged.
	UpdateProfile(ctx context.Context, userID string, p Profile) error
}
