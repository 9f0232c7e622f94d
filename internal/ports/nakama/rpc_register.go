package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"literature/internal/app/onboarding"
	"literature/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

type registerRequest struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Seat     int    `json:"seat"`
}

// RegisterResponse echoes the stored player record.
type RegisterResponse struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Seat     int    `json:"seat"`
}

// rpcRegisterPlayer creates or renames a player. Session callers always act
// on their own account; server calls may name any player_id or none.
func rpcRegisterPlayer(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req registerRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid payload", codeInvalidArgument)
		}
	}
	if req.Seat < 0 {
		return "", runtime.NewError("seat must not be negative", codeInvalidArgument)
	}
	playerID, session, err := requestedPlayerID(ctx, req.PlayerID)
	if err != nil {
		logger.Warn("rpcRegisterPlayer: %v", err)
		return "", err
	}
	req.PlayerID = playerID

	service := onboarding.NewService(NewNakamaAccountAdapter(nk), NewPlayerStore(nk), nil)
	var player *domain.Player
	if session {
		player, err = service.RegisterAccount(ctx, req.PlayerID, req.Name, req.Seat)
	} else {
		player, err = service.RegisterPlayer(ctx, req.PlayerID, req.Name, req.Seat)
	}
	if err != nil {
		logger.Error("rpcRegisterPlayer [Player:%s]: %v", req.PlayerID, err)
		return "", lookupError(err)
	}

	logger.Debug("rpcRegisterPlayer: Registered %s as %q", player.ID, player.Name)
	return respond(RegisterResponse{PlayerID: player.ID, Name: player.Name, Seat: player.Seat})
}
