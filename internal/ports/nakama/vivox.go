package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"

	"literature/internal/app"
	"literature/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

var (
	vivoxService     *app.VivoxService
	vivoxServiceOnce sync.Once
)

type vivoxTokenRequest struct {
	Action string `json:"action"`
}

type vivoxTokenResponse struct {
	Token   string `json:"token"`
	Channel string `json:"channel,omitempty"`
}

func getVivoxService(ctx context.Context) *app.VivoxService {
	vivoxServiceOnce.Do(func() {
		if vivoxService != nil {
			return
		}
		env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
		cfg := config.FromEnv(env)
		vivoxService = app.NewVivoxService(cfg.VivoxSecret, cfg.VivoxIssuer, cfg.VivoxDomain)
	})
	return vivoxService
}

// RpcGetVivoxToken signs a Vivox login token, or a join token for the
// caller's team channel in their current game.
// Payload: {"action": "login" | "join"}
func RpcGetVivoxToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}

	req := vivoxTokenRequest{Action: app.VivoxTokenActionLogin}
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid payload", codeInvalidArgument)
		}
	}

	service := getVivoxService(ctx)
	if !service.Configured() {
		logger.Error("RpcGetVivoxToken: Vivox credentials missing from env")
		return "", runtime.NewError("voice chat is not configured", codeFailedPrecondition)
	}

	var channel string
	if req.Action == app.VivoxTokenActionJoin {
		channel, err = teamChannel(ctx, nk, userID)
		if err != nil {
			return "", err
		}
	}

	token, err := service.GenerateToken(userID, req.Action, channel)
	switch {
	case errors.Is(err, app.ErrVivoxAction):
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	case err != nil:
		logger.Error("RpcGetVivoxToken: Failed to generate token for %s: %v", userID, err)
		return "", runtime.NewError("internal error", codeInternal)
	}
	return respond(vivoxTokenResponse{Token: token, Channel: channel})
}

// teamChannel resolves the voice channel of the caller's team.
func teamChannel(ctx context.Context, store StorageAPI, userID string) (string, error) {
	player, err := NewPlayerStore(store).Get(ctx, userID)
	if err != nil {
		return "", lookupError(err)
	}
	if player.GameID == "" {
		return "", runtime.NewError("player is not seated in a game", codeFailedPrecondition)
	}
	game, err := NewGameStore(store).Get(ctx, player.GameID)
	if err != nil {
		return "", lookupError(err)
	}
	seated, ok := game.PlayerByID(userID)
	if !ok {
		return "", runtime.NewError("player is not seated in a game", codeFailedPrecondition)
	}
	return app.TeamChannel(game.Code, seated.Seat), nil
}
