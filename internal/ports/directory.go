package ports

import (
	"context"
	"errors"

	"literature/internal/domain"
)

// ErrNotFound is returned by directory lookups for an unknown id.
var ErrNotFound = errors.New("not found")

// PlayerDirectory stores player records outside a running match.
type PlayerDirectory interface {
	// Get returns the player with id or ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Player, error)
	// Create registers a new player with a fresh id.
	Create(ctx context.Context, name string, seat int) (*domain.Player, error)
	// UpdateDetails changes the name and seat of an existing player.
	// Returns ErrNotFound if the player does not exist.
	UpdateDetails(ctx context.Context, id, name string, seat int) (*domain.Player, error)
	// Save writes the full player record, creating it when absent.
	Save(ctx context.Context, player *domain.Player) error
}

// GameDirectory stores game snapshots.
type GameDirectory interface {
	// Get returns the game with id or ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Game, error)
	// Save writes a snapshot of the game.
	Save(ctx context.Context, game *domain.Game) error
}
