package nakama

import (
	"encoding/json"
	"fmt"

	"literature/internal/app"
	"literature/internal/bot"
	"literature/internal/domain"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

type askRequest struct {
	TargetSeat int    `json:"target_seat"`
	Card       string `json:"card"`
}

type declareRequest struct {
	Set         string     `json:"set"`
	Declaration [][]string `json:"declaration"`
}

type transferRequest struct {
	TargetSeat int `json:"target_seat"`
}

type chatRequest struct {
	Message string `json:"message"`
}

// ErrorEvent is sent privately on OpError.
type ErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlayerView is the public view of a seated player.
type PlayerView struct {
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	Seat           int    `json:"seat"`
	Team           int    `json:"team"`
	IsOwner        bool   `json:"is_owner"`
	IsBot          bool   `json:"is_bot"`
	Connected      bool   `json:"connected"`
	CardsRemaining int    `json:"cards_remaining"`
	Score          int    `json:"score"`
}

// Snapshot is broadcast on OpStateSnapshot; it never carries hands.
type Snapshot struct {
	GameID      string        `json:"game_id"`
	Code        string        `json:"code"`
	Status      domain.Status `json:"status"`
	CurrentTurn int           `json:"current_turn"`
	Players     []PlayerView  `json:"players"`
	TeamScores  [2]int        `json:"team_scores"`
	Discarded   []domain.Card `json:"discarded"`
	Tick        int64         `json:"tick"`
}

func decodeAsk(data []byte) (int, domain.Card, error) {
	var req askRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return 0, "", fmt.Errorf("decode ask: %w", err)
	}
	card, err := domain.ParseCard(req.Card)
	if err != nil {
		return 0, "", err
	}
	return req.TargetSeat, card, nil
}

func decodeDeclare(data []byte) (string, domain.Declaration, error) {
	var req declareRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return "", nil, fmt.Errorf("decode declaration: %w", err)
	}
	decl := make(domain.Declaration, len(req.Declaration))
	for i, group := range req.Declaration {
		for _, raw := range group {
			card, err := domain.ParseCard(raw)
			if err != nil {
				return "", nil, fmt.Errorf("%w: %q", err, raw)
			}
			decl[i] = append(decl[i], card)
		}
	}
	return req.Set, decl, nil
}

func decodeTransfer(data []byte) (int, error) {
	var req transferRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return 0, fmt.Errorf("decode transfer: %w", err)
	}
	return req.TargetSeat, nil
}

func decodeChat(data []byte) (string, error) {
	var req chatRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return "", fmt.Errorf("decode chat: %w", err)
	}
	return req.Message, nil
}

// eventOpCode maps app events to server op codes.
func eventOpCode(kind app.EventKind) (int64, bool) {
	switch kind {
	case app.EventPlayerJoined, app.EventPlayerLeft:
		return OpStateSnapshot, true
	case app.EventHandDealt:
		return OpHand, true
	case app.EventGameStarted:
		return OpGameStarted, true
	case app.EventCardTaken:
		return OpCardTaken, true
	case app.EventCardAsked:
		return OpCardAsked, true
	case app.EventTurnTransferred:
		return OpTurnTransferred, true
	case app.EventSetDeclared:
		return OpSetDeclared, true
	case app.EventGameEnded:
		return OpGameOver, true
	}
	return 0, false
}

func buildSnapshot(game *domain.Game, connected map[string]bool, tick int64) Snapshot {
	snap := Snapshot{Tick: tick}
	if game == nil {
		return snap
	}
	snap.GameID = game.ID
	snap.Code = game.Code
	snap.Status = game.Status
	snap.CurrentTurn = game.CurrentTurn
	snap.Discarded = game.Discarded
	snap.TeamScores = [2]int{game.TeamScore(domain.TeamEven), game.TeamScore(domain.TeamOdd)}
	for _, p := range game.Players {
		snap.Players = append(snap.Players, PlayerView{
			UserID:         p.ID,
			Name:           p.Name,
			Seat:           p.Seat,
			Team:           domain.Team(p.Seat),
			IsOwner:        p.ID == game.OwnerID,
			IsBot:          bot.IsBot(p.ID),
			Connected:      connected[p.ID] || bot.IsBot(p.ID),
			CardsRemaining: len(p.Hand),
			Score:          p.Score,
		})
	}
	return snap
}

// matchLabel renders the JSON label quick match queries against.
// maxPlayers caps the advertised open seats below the table maximum.
func matchLabel(game *domain.Game, maxPlayers int) (string, error) {
	label := domain.LabelPayload{Open: maxPlayers, Game: "literature", Phase: string(domain.StatusLobby)}
	if game != nil {
		label = domain.ComputeLabel(game)
		if capped := maxPlayers - game.SeatCount(); label.Open > capped {
			label.Open = max(capped, 0)
		}
	}
	s, err := structpb.NewStruct(map[string]any{
		MatchLabelKeyOpenSeats: label.Open,
		"game":                 label.Game,
		"phase":                label.Phase,
	})
	if err != nil {
		return "", err
	}
	b, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
