package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"literature/internal/domain"
	"literature/internal/ports"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// StorageAPI is the subset of runtime.NakamaModule used by the directories.
type StorageAPI interface {
	StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error)
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
}

const (
	// Objects are system-owned and hidden from clients; hands are secret.
	permissionNoRead  = 0
	permissionNoWrite = 0

	chatAppendRetries = 3
)

func readObject(ctx context.Context, store StorageAPI, collection, key string, out any) (string, error) {
	objects, err := store.StorageRead(ctx, []*runtime.StorageRead{{Collection: collection, Key: key}})
	if err != nil {
		return "", fmt.Errorf("read %s/%s: %w", collection, key, err)
	}
	if len(objects) == 0 {
		return "", fmt.Errorf("%s/%s: %w", collection, key, ports.ErrNotFound)
	}
	if err := json.Unmarshal([]byte(objects[0].GetValue()), out); err != nil {
		return "", fmt.Errorf("decode %s/%s: %w", collection, key, err)
	}
	return objects[0].GetVersion(), nil
}

// writeObject stores value; a non-empty version makes the write conditional.
func writeObject(ctx context.Context, store StorageAPI, collection, key, version string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, key, err)
	}
	_, err = store.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      collection,
		Key:             key,
		Value:           string(data),
		Version:         version,
		PermissionRead:  permissionNoRead,
		PermissionWrite: permissionNoWrite,
	}})
	if err != nil {
		return fmt.Errorf("write %s/%s: %w", collection, key, err)
	}
	return nil
}

// PlayerStore implements ports.PlayerDirectory on Nakama storage.
type PlayerStore struct {
	store StorageAPI
}

func NewPlayerStore(store StorageAPI) *PlayerStore {
	return &PlayerStore{store: store}
}

func (s *PlayerStore) Get(ctx context.Context, id string) (*domain.Player, error) {
	var p domain.Player
	if _, err := readObject(ctx, s.store, CollectionPlayers, id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PlayerStore) Create(ctx context.Context, name string, seat int) (*domain.Player, error) {
	p := &domain.Player{ID: uuid.NewString(), Name: name, Seat: seat}
	if err := s.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PlayerStore) UpdateDetails(ctx context.Context, id, name string, seat int) (*domain.Player, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name, p.Seat = name, seat
	if err := s.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PlayerStore) Save(ctx context.Context, player *domain.Player) error {
	return writeObject(ctx, s.store, CollectionPlayers, player.ID, "", player)
}

// GameStore implements ports.GameDirectory on Nakama storage.
type GameStore struct {
	store StorageAPI
}

func NewGameStore(store StorageAPI) *GameStore {
	return &GameStore{store: store}
}

func (s *GameStore) Get(ctx context.Context, id string) (*domain.Game, error) {
	g := &domain.Game{}
	if _, err := readObject(ctx, s.store, CollectionGames, id, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GameStore) Save(ctx context.Context, game *domain.Game) error {
	return writeObject(ctx, s.store, CollectionGames, game.ID, "", game)
}

type chatLog struct {
	Messages []ports.ChatMessage `json:"messages"`
}

// ChatStore implements ports.ChatHistory with one storage object per game.
// Appends use the object version so concurrent writers do not drop lines.
type ChatStore struct {
	store StorageAPI
	now   func() time.Time
}

func NewChatStore(store StorageAPI) *ChatStore {
	return &ChatStore{store: store, now: time.Now}
}

func (s *ChatStore) Append(ctx context.Context, message, gameID, playerID string) (ports.ChatMessage, error) {
	msg := ports.ChatMessage{GameID: gameID, PlayerID: playerID, Message: message, SentAt: s.now().UTC()}

	var err error
	for attempt := 0; attempt < chatAppendRetries; attempt++ {
		var history chatLog
		version, readErr := readObject(ctx, s.store, CollectionChat, gameID, &history)
		switch {
		case errors.Is(readErr, ports.ErrNotFound):
			version = "*" // create only
		case readErr != nil:
			return ports.ChatMessage{}, readErr
		}
		history.Messages = append(history.Messages, msg)
		if err = writeObject(ctx, s.store, CollectionChat, gameID, version, history); err == nil {
			return msg, nil
		}
	}
	return ports.ChatMessage{}, err
}

func (s *ChatStore) List(ctx context.Context, gameID string) ([]ports.ChatMessage, error) {
	var history chatLog
	if _, err := readObject(ctx, s.store, CollectionChat, gameID, &history); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return history.Messages, nil
}

var (
	_ ports.PlayerDirectory = (*PlayerStore)(nil)
	_ ports.GameDirectory   = (*GameStore)(nil)
	_ ports.ChatHistory     = (*ChatStore)(nil)
)
