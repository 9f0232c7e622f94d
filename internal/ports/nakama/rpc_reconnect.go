package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"literature/internal/app/reconnect"
	"literature/internal/domain"
	"literature/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

type reconnectRequest struct {
	PlayerID string `json:"player_id"`
}

// ReconnectResponse restores a client. Only the caller's own hand is included;
// everyone else is reduced to the public snapshot.
type ReconnectResponse struct {
	PlayerID string              `json:"player_id"`
	Name     string              `json:"name"`
	Hand     []domain.Card       `json:"hand"`
	Snapshot *Snapshot           `json:"snapshot,omitempty"`
	Log      []string            `json:"log,omitempty"`
	Chat     []ports.ChatMessage `json:"chat,omitempty"`
}

func rpcReconnect(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req reconnectRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid payload", codeInvalidArgument)
		}
	}
	playerID, _, err := requestedPlayerID(ctx, req.PlayerID)
	if err != nil {
		logger.Warn("rpcReconnect: %v", err)
		return "", err
	}
	if playerID == "" {
		return "", runtime.NewError("user session or player_id required", codeInvalidArgument)
	}
	req.PlayerID = playerID

	service := reconnect.NewService(NewPlayerStore(nk), NewGameStore(nk), NewChatStore(nk))
	result, err := service.Reconnect(ctx, req.PlayerID)
	if err != nil {
		logger.Warn("rpcReconnect [Player:%s]: %v", req.PlayerID, err)
		return "", lookupError(err)
	}

	resp := ReconnectResponse{
		PlayerID: result.Player.ID,
		Name:     result.Player.Name,
		Log:      result.Log,
		Chat:     result.Chat,
	}
	resp.Hand = append(resp.Hand, result.Player.Hand...)
	domain.SortHand(resp.Hand)
	if result.Game != nil {
		snap := buildSnapshot(result.Game, nil, 0)
		resp.Snapshot = &snap
	}
	return respond(resp)
}
