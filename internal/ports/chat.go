package ports

import (
	"context"
	"time"
)

// ChatMessage is one line of in-game chat.
type ChatMessage struct {
	GameID   string    `json:"game_id"`
	PlayerID string    `json:"player_id"`
	Message  string    `json:"message"`
	SentAt   time.Time `json:"sent_at"`
}

// ChatHistory keeps the ordered chat of every game.
type ChatHistory interface {
	// Append records message from playerID in gameID.
	Append(ctx context.Context, message, gameID, playerID string) (ChatMessage, error)
	// List returns the chat of gameID, oldest first.
	List(ctx context.Context, gameID string) ([]ChatMessage, error)
}
