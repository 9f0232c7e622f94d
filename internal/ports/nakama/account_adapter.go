package nakama

import (
	"context"

	"literature/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaAccountAdapter implements ports.AccountPort using Nakama's account API.
type NakamaAccountAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaAccountAdapter creates a new account adapter.
func NewNakamaAccountAdapter(nk runtime.NakamaModule) *NakamaAccountAdapter {
	return &NakamaAccountAdapter{nk: nk}
}

// UpdateDisplayName sets the display name shown for userID. The username is
// left untouched.
func (a *NakamaAccountAdapter) UpdateDisplayName(ctx context.Context, userID, displayName string) error {
	return a.nk.AccountUpdateId(ctx, userID, "", nil, displayName, "", "", "", "")
}

var _ ports.AccountPort = (*NakamaAccountAdapter)(nil)
