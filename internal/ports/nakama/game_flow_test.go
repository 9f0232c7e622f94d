package nakama

import (
	"context"
	"encoding/json"
	"testing"

	"literature/internal/app"
	"literature/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// TestFullGameWithBots seats one human, lets bots fill the table and plays
// until every set is declared. The human's turns are played by the timer.
func TestFullGameWithBots(t *testing.T) {
	mh, state, dispatcher, storage := newTestMatch(t)
	human := presence(1)
	join(t, mh, state, dispatcher, human)

	state.Env.BotsEnabled = true
	state.Env.BotMinDelay, state.Env.BotMaxDelay = 0, 0
	state.Config.TurnDurationSeconds = 1

	tick := func() {
		state.Tick++
		mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, state.Tick, state, nil)
	}

	for i := 0; i <= state.Env.BotAutoFillDelay+1 && state.Game.SeatCount() < state.Config.MinPlayers; i++ {
		tick()
	}
	if state.Game.SeatCount() != state.Config.MinPlayers {
		t.Fatalf("table not filled: %d seats", state.Game.SeatCount())
	}

	send(mh, state, dispatcher, human, OpStartGame, struct{}{})
	if state.Game.Status != domain.StatusActive {
		t.Fatalf("game did not start: %s", state.Game.Status)
	}

	const maxTicks = 20000
	for i := 0; i < maxTicks && state.Game.Status == domain.StatusActive; i++ {
		tick()
	}
	if state.Game.Status != domain.StatusOver {
		t.Fatalf("game still %s after %d ticks (%d cards in play)", state.Game.Status, maxTicks, state.Game.CardsInPlay())
	}

	if got := len(state.Game.Discarded); got != len(domain.NewDeck()) {
		t.Fatalf("discarded %d cards, want the full deck", got)
	}
	declarations := 0
	for _, entry := range state.Game.Log {
		if entry.Tag == domain.TagDeclare {
			declarations++
		}
	}
	even, odd := state.Game.TeamScore(domain.TeamEven), state.Game.TeamScore(domain.TeamOdd)
	if declarations == 0 || even+odd != declarations {
		t.Fatalf("team scores %d+%d, want one point per declaration (%d)", even, odd, declarations)
	}

	over := dispatcher.withOpCode(OpGameOver)
	if len(over) != 1 {
		t.Fatalf("game over broadcasts = %d, want 1", len(over))
	}
	var ended app.GameEndedPayload
	if err := json.Unmarshal(over[0].data, &ended); err != nil {
		t.Fatalf("decode game over: %v", err)
	}
	if ended.TeamScores != [2]int{even, odd} {
		t.Fatalf("broadcast scores %v, want [%d %d]", ended.TeamScores, even, odd)
	}

	stored, err := NewGameStore(storage).Get(context.Background(), state.Game.ID)
	if err != nil || stored.Status != domain.StatusOver {
		t.Fatalf("stored game = %+v, %v", stored, err)
	}

	// The finished match shuts down once the human leaves.
	if mh.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, state.Tick, state, []runtime.Presence{human}) != nil {
		t.Fatalf("match kept running without humans")
	}
}
