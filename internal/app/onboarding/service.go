package onboarding

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"literature/internal/domain"
	"literature/internal/ports"
)

// Result captures non-fatal onboarding outcomes.
type Result struct {
	// ProfileUpdateErr is set when the profile update failed but onboarding continued.
	ProfileUpdateErr error
	Player           *domain.Player
}

// Service handles post-auth onboarding and player registration.
type Service struct {
	accounts ports.AccountPort
	players  ports.PlayerDirectory

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService constructs an onboarding service with required ports.
// accounts/players must be non-nil; rng may be nil to use a time-seeded default.
func NewService(accounts ports.AccountPort, players ports.PlayerDirectory, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		accounts: accounts,
		players:  players,
		rng:      rng,
	}
}

// OnboardNewUser gives a newly created account a friendly display name and a
// player record keyed by the account id.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil || s.players == nil {
		return Result{}, fmt.Errorf("onboarding service not configured")
	}

	result := Result{}
	displayName := s.FriendlyName()
	if err := s.accounts.UpdateDisplayName(ctx, userID, displayName); err != nil {
		// Profile updates are best-effort; the player record is what matches need.
		result.ProfileUpdateErr = err
	}

	player := &domain.Player{ID: userID, Name: displayName}
	if err := s.players.Save(ctx, player); err != nil {
		return result, fmt.Errorf("failed to save player %s: %w", userID, err)
	}
	result.Player = player
	return result, nil
}

// RegisterPlayer updates the player with id, or creates a new one when id is
// empty or unknown. Other lookup failures are returned as-is.
func (s *Service) RegisterPlayer(ctx context.Context, id, name string, seat int) (*domain.Player, error) {
	if s.players == nil {
		return nil, fmt.Errorf("onboarding service not configured")
	}
	name = s.displayName(name)

	if id != "" {
		_, err := s.players.Get(ctx, id)
		switch {
		case err == nil:
			return s.players.UpdateDetails(ctx, id, name, seat)
		case !errors.Is(err, ports.ErrNotFound):
			return nil, fmt.Errorf("lookup player %s: %w", id, err)
		}
	}
	return s.players.Create(ctx, name, seat)
}

// RegisterAccount updates the player record owned by an authenticated
// account, creating it under userID when missing.
func (s *Service) RegisterAccount(ctx context.Context, userID, name string, seat int) (*domain.Player, error) {
	if s.players == nil {
		return nil, fmt.Errorf("onboarding service not configured")
	}
	name = s.displayName(name)

	_, err := s.players.Get(ctx, userID)
	switch {
	case err == nil:
		return s.players.UpdateDetails(ctx, userID, name, seat)
	case !errors.Is(err, ports.ErrNotFound):
		return nil, fmt.Errorf("lookup player %s: %w", userID, err)
	}
	player := &domain.Player{ID: userID, Name: name, Seat: seat}
	if err := s.players.Save(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to save player %s: %w", userID, err)
	}
	return player, nil
}

func (s *Service) displayName(name string) string {
	if name = domain.CleanName(name); name == "" {
		return s.FriendlyName()
	}
	return name
}

// FriendlyName returns a random AdjectiveNoun#### name.
func (s *Service) FriendlyName() string {
	adjectives := []string{"Happy", "Shiny", "Brave", "Clever", "Swift", "Calm", "Mighty", "Witty", "Sly", "Wild"}
	nouns := []string{"Panda", "Tiger", "Eagle", "Dolphin", "Wolf", "Otter", "Falcon", "Bear", "Fox", "Lion"}

	s.mu.Lock()
	defer s.mu.Unlock()
	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
