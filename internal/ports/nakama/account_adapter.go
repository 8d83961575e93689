package nakama

import (
	"context"

	"hearts/internal/ports"
)

type accountUpdater interface {
	AccountUpdateId(ctx context.Context, userID, username string, metadata map[string]interface{}, displayName, timezone, location, langTag, avatarUrl string) error
}

// NakamaAccountAdapter writes profiles through AccountUpdateId. Human accounts carry the
// same metadata keys as provisioned bots, with is_bot set to false.
type NakamaAccountAdapter struct {
	nk accountUpdater
}

func NewNakamaAccountAdapter(nk accountUpdater) *NakamaAccountAdapter {
	return &NakamaAccountAdapter{nk: nk}
}

func (a *NakamaAccountAdapter) UpdateProfile(ctx context.Context, userID string, p ports.Profile) error {
	metadata := map[string]interface{}{
		"is_bot":       false,
		"avatar_index": p.AvatarIndex,
	}
	return a.nk.AccountUpdateId(ctx, userID, p.Username, metadata, p.DisplayName, "", "", "", "")
}

var _ ports.AccountPort = (*NakamaAccountAdapter)(nil)
