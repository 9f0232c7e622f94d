// Package reconnect rebuilds what a returning client needs to resume a game.
package reconnect

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"literature/internal/domain"
	"literature/internal/ports"
)

// MaxChatLength bounds a single chat message in runes.
const MaxChatLength = 280

var (
	ErrEmptyChat   = errors.New("chat message is empty")
	ErrChatTooLong = errors.New("chat message too long")
)

// Payload is everything a reconnecting client needs.
type Payload struct {
	Player *domain.Player      `json:"player"`
	Game   *domain.Game        `json:"game,omitempty"`
	Log    []string            `json:"log,omitempty"`
	Chat   []ports.ChatMessage `json:"chat,omitempty"`
}

type Service struct {
	players ports.PlayerDirectory
	games   ports.GameDirectory
	chats   ports.ChatHistory
}

func NewService(players ports.PlayerDirectory, games ports.GameDirectory, chats ports.ChatHistory) *Service {
	return &Service{players: players, games: games, chats: chats}
}

// Reconnect loads playerID and, when seated, its game and chat history.
// Lookup failures, including ports.ErrNotFound, are returned to the caller.
func (s *Service) Reconnect(ctx context.Context, playerID string) (Payload, error) {
	player, err := s.players.Get(ctx, playerID)
	if err != nil {
		return Payload{}, fmt.Errorf("load player %s: %w", playerID, err)
	}
	payload := Payload{Player: player}
	if player.GameID == "" {
		return payload, nil
	}

	game, err := s.games.Get(ctx, player.GameID)
	if err != nil {
		return Payload{}, fmt.Errorf("load game %s: %w", player.GameID, err)
	}
	chat, err := s.chats.List(ctx, game.ID)
	if err != nil {
		return Payload{}, fmt.Errorf("load chat %s: %w", game.ID, err)
	}

	// The game snapshot holds the authoritative hand.
	if seated, ok := game.PlayerByID(playerID); ok {
		payload.Player = seated
	}
	payload.Game = game
	payload.Log = game.LogLines()
	payload.Chat = chat
	return payload, nil
}

// AddChat appends message from playerID to gameID's history.
func (s *Service) AddChat(ctx context.Context, gameID, playerID, message string) (ports.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ports.ChatMessage{}, ErrEmptyChat
	}
	if utf8.RuneCountInString(message) > MaxChatLength {
		return ports.ChatMessage{}, ErrChatTooLong
	}
	return s.chats.Append(ctx, message, gameID, playerID)
}
