package nakama

import (
	"context"
	"database/sql"
	"fmt"

	"literature/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickMatchResponse is the payload returned to clients when requesting a lobby-capable match.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// quickMatchQuery finds lobbies of this game with at least one open seat.
var quickMatchQuery = fmt.Sprintf("+label.%s:>=1 +label.game:literature +label.phase:%s", MatchLabelKeyOpenSeats, domain.StatusLobby)

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	limit := 10
	authoritative := true
	minSize := 1
	maxSize := domain.MaxSeats - 1

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, quickMatchQuery)
	if err != nil {
		logger.Error("rpcQuickMatch [User:%s]: MatchList error: %v", userID, err)
		return "", runtime.NewError("failed to list matches", codeInternal)
	}

	if len(matches) > 0 {
		logger.Debug("rpcQuickMatch [User:%s]: Found existing match %s", userID, matches[0].MatchId)
		return respond(QuickMatchResponse{MatchID: matches[0].MatchId, IsNew: false})
	}

	// Create new match; seat/owner assignment happens in MatchJoin (server-authoritative).
	matchID, err := nk.MatchCreate(ctx, MatchNameLiterature, map[string]interface{}{})
	if err != nil {
		logger.Error("rpcQuickMatch [User:%s]: MatchCreate error: %v", userID, err)
		return "", runtime.NewError("failed to create match", codeInternal)
	}

	logger.Info("rpcQuickMatch [User:%s]: Created new match %s", userID, matchID)
	return respond(QuickMatchResponse{MatchID: matchID, IsNew: true})
}
