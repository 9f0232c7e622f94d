package nakama

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"literature/internal/app/onboarding"

	"github.com/form3tech-oss/jwt-go"
	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

var errNoUserID = errors.New("session token carries no uid")

// AfterAuthenticateDevice gives a freshly created account a friendly display
// name and a player record keyed by the account id. Returning users are left alone.
func AfterAuthenticateDevice(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, out *api.Session, in *api.AuthenticateDeviceRequest) error {
	if !out.GetCreated() {
		return nil
	}

	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		// The hook context may lack a user id; the new session token names the user.
		resolved, err := extractUserIDFromToken(out.GetToken())
		if err != nil {
			logger.Error("AfterAuthenticateDevice: Failed to extract user ID from token: %v", err)
			return err
		}
		userID = resolved
	}

	service := onboarding.NewService(NewNakamaAccountAdapter(nk), NewPlayerStore(nk), nil)
	result, err := service.OnboardNewUser(ctx, userID)
	if result.ProfileUpdateErr != nil {
		logger.Warn("AfterAuthenticateDevice: Failed to update profile for user %s: %v", userID, result.ProfileUpdateErr)
	}
	if err != nil {
		logger.Error("AfterAuthenticateDevice: Onboarding failed for user %s: %v", userID, err)
		return err
	}
	logger.Info("Onboarded new user %s as %q", userID, result.Player.Name)
	return nil
}

// extractUserIDFromToken reads the uid claim of a Nakama session token.
// The signature is not checked; Nakama issued the token moments ago.
func extractUserIDFromToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}
	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return "", errNoUserID
	}
	return uid, nil
}
