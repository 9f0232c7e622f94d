package onboarding

import (
	"context"
	"errors"
	"math/rand"
	"regexp"
	"testing"

	"literature/internal/domain"
	"literature/internal/ports"
)

type fakeAccountPort struct {
	updateErr error
	names     map[string]string
}

func (f *fakeAccountPort) UpdateDisplayName(ctx context.Context, userID, displayName string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.names == nil {
		f.names = map[string]string{}
	}
	f.names[userID] = displayName
	return nil
}

type fakePlayers struct {
	players map[string]*domain.Player
	getErr  error
	saveErr error
	created int
}

func newFakePlayers(existing ...*domain.Player) *fakePlayers {
	f := &fakePlayers{players: map[string]*domain.Player{}}
	for _, p := range existing {
		f.players[p.ID] = p
	}
	return f
}

func (f *fakePlayers) Get(ctx context.Context, id string) (*domain.Player, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.players[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return p, nil
}

func (f *fakePlayers) Create(ctx context.Context, name string, seat int) (*domain.Player, error) {
	f.created++
	p := &domain.Player{ID: "new-" + name, Name: name, Seat: seat}
	f.players[p.ID] = p
	return p, nil
}

func (f *fakePlayers) UpdateDetails(ctx context.Context, id, name string, seat int) (*domain.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	p.Name, p.Seat = name, seat
	return p, nil
}

func (f *fakePlayers) Save(ctx context.Context, player *domain.Player) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.players[player.ID] = player
	return nil
}

var friendlyName = regexp.MustCompile(`^[A-Z][a-z]+[A-Z][a-z]+\d{4}$`)

func TestOnboardNewUser(t *testing.T) {
	accounts := &fakeAccountPort{}
	players := newFakePlayers()
	service := NewService(accounts, players, rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if result.ProfileUpdateErr != nil {
		t.Fatalf("unexpected profile error: %v", result.ProfileUpdateErr)
	}
	name := accounts.names["user-1"]
	if !friendlyName.MatchString(name) {
		t.Fatalf("display name %q is not a friendly name", name)
	}
	if p := players.players["user-1"]; p == nil || p.Name != name {
		t.Fatalf("player record = %+v", p)
	}
}

func TestOnboardNewUser_ProfileFailureIsNonFatal(t *testing.T) {
	profileErr := errors.New("profile down")
	service := NewService(&fakeAccountPort{updateErr: profileErr}, newFakePlayers(), rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if !errors.Is(result.ProfileUpdateErr, profileErr) {
		t.Fatalf("ProfileUpdateErr = %v", result.ProfileUpdateErr)
	}
}

func TestOnboardNewUser_SaveFailure(t *testing.T) {
	saveErr := errors.New("storage down")
	players := newFakePlayers()
	players.saveErr = saveErr
	service := NewService(&fakeAccountPort{}, players, rand.New(rand.NewSource(1)))

	if _, err := service.OnboardNewUser(context.Background(), "user-1"); !errors.Is(err, saveErr) {
		t.Fatalf("error = %v, want %v", err, saveErr)
	}
}

func TestRegisterPlayer(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		playerName  string
		seat        int
		wantCreated bool
		wantName    string
	}{
		{name: "known id updates", id: "u1", playerName: "Naven", seat: 3, wantName: "Naven"},
		{name: "unknown id creates", id: "ghost", playerName: "Vivek", seat: 2, wantCreated: true, wantName: "Vivek"},
		{name: "empty id creates", playerName: "Nandha", wantCreated: true, wantName: "Nandha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := newFakePlayers(&domain.Player{ID: "u1", Name: "old", Seat: 1})
			service := NewService(&fakeAccountPort{}, players, rand.New(rand.NewSource(1)))

			got, err := service.RegisterPlayer(context.Background(), tt.id, tt.playerName, tt.seat)
			if err != nil {
				t.Fatalf("RegisterPlayer() error: %v", err)
			}
			if got.Name != tt.wantName || got.Seat != tt.seat {
				t.Fatalf("player = %+v", got)
			}
			if created := players.created == 1; created != tt.wantCreated {
				t.Fatalf("created = %v, want %v", created, tt.wantCreated)
			}
		})
	}
}

func TestRegisterPlayerGeneratesNameWhenBlank(t *testing.T) {
	service := NewService(&fakeAccountPort{}, newFakePlayers(), rand.New(rand.NewSource(5)))
	got, err := service.RegisterPlayer(context.Background(), "", "", 0)
	if err != nil {
		t.Fatalf("RegisterPlayer() error: %v", err)
	}
	if !friendlyName.MatchString(got.Name) {
		t.Fatalf("name %q is not a friendly name", got.Name)
	}
}

func TestRegisterPlayerPropagatesLookupFailure(t *testing.T) {
	lookupErr := errors.New("storage down")
	players := newFakePlayers()
	players.getErr = lookupErr
	service := NewService(&fakeAccountPort{}, players, rand.New(rand.NewSource(1)))

	if _, err := service.RegisterPlayer(context.Background(), "u1", "x", 1); !errors.Is(err, lookupErr) {
		t.Fatalf("error = %v, want %v", err, lookupErr)
	}
	if players.created != 0 {
		t.Fatal("lookup failure must not create a player")
	}
}

func TestRegisterPlayerStripsLogSeparator(t *testing.T) {
	players := newFakePlayers(&domain.Player{ID: "u1", Name: "old"})
	service := NewService(&fakeAccountPort{}, players, rand.New(rand.NewSource(1)))

	got, err := service.RegisterPlayer(context.Background(), "u1", "JOIN:x", 1)
	if err != nil {
		t.Fatalf("RegisterPlayer() error: %v", err)
	}
	if got.Name != "JOINx" {
		t.Fatalf("name = %q", got.Name)
	}

	got, err = service.RegisterPlayer(context.Background(), "u1", " : ", 1)
	if err != nil {
		t.Fatalf("RegisterPlayer() error: %v", err)
	}
	if !friendlyName.MatchString(got.Name) {
		t.Fatalf("name %q is not a friendly name", got.Name)
	}
}

func TestRegisterAccount(t *testing.T) {
	players := newFakePlayers(&domain.Player{ID: "u1", Name: "old", Seat: 1})
	service := NewService(&fakeAccountPort{}, players, rand.New(rand.NewSource(1)))

	got, err := service.RegisterAccount(context.Background(), "u1", "Naven", 3)
	if err != nil {
		t.Fatalf("RegisterAccount() error: %v", err)
	}
	if got.ID != "u1" || got.Name != "Naven" || got.Seat != 3 {
		t.Fatalf("player = %+v", got)
	}

	got, err = service.RegisterAccount(context.Background(), "u2", "Vivek", 2)
	if err != nil {
		t.Fatalf("RegisterAccount() error: %v", err)
	}
	if got.ID != "u2" || players.players["u2"] != got || players.created != 0 {
		t.Fatalf("account record = %+v, created = %d", got, players.created)
	}
}
