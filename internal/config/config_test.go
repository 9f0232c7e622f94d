package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    GameConfig
		wantErr bool
	}{
		{
			name: "defaults fill missing keys",
			data: `{"turn_duration_seconds": 30}`,
			want: GameConfig{MinPlayers: 6, MaxPlayers: 8, TurnDurationSeconds: 30, BotAutoFillDelaySeconds: 5},
		},
		{
			name: "six only table",
			data: `{"min_players": 6, "max_players": 6, "round_progress_after_take": true}`,
			want: GameConfig{MinPlayers: 6, MaxPlayers: 6, TurnDurationSeconds: 60, BotAutoFillDelaySeconds: 5, RoundProgressAfterTake: true},
		},
		{name: "too few", data: `{"min_players": 4}`, wantErr: true},
		{name: "odd bound", data: `{"max_players": 7}`, wantErr: true},
		{name: "inverted", data: `{"min_players": 8, "max_players": 6}`, wantErr: true},
		{name: "malformed", data: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadGameConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game_config.json")
	if err := os.WriteFile(path, []byte(`{"bot_auto_fill_delay_seconds": 9}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := LoadGameConfig(path); err != nil {
		t.Fatalf("LoadGameConfig() error: %v", err)
	}
	if got := GetGameConfig().BotAutoFillDelaySeconds; got != 9 {
		t.Fatalf("auto fill delay = %d, want 9", got)
	}
	if got := FromEnv(nil).BotAutoFillDelay; got != 9 {
		t.Fatalf("env fallback = %d, want 9", got)
	}
}

func TestFromEnv(t *testing.T) {
	env := FromEnv(map[string]string{
		EnvBotsEnabled:      "true",
		EnvBotMinDelay:      "4",
		EnvBotMaxDelay:      "2",
		EnvBotAutoFillDelay: "nope",
		EnvVivoxIssuer:      "iss",
		EnvVivoxSecret:      "sec",
		EnvVivoxDomain:      "vx.example.com",
	})
	if !env.BotsEnabled || env.VivoxIssuer != "iss" || env.VivoxDomain != "vx.example.com" {
		t.Fatalf("env = %+v", env)
	}
	if env.BotMinDelay != 4 || env.BotMaxDelay != 4 {
		t.Fatalf("delays = %d..%d, want 4..4", env.BotMinDelay, env.BotMaxDelay)
	}
	if env.BotAutoFillDelay <= 0 {
		t.Fatalf("auto fill delay = %d", env.BotAutoFillDelay)
	}
}
