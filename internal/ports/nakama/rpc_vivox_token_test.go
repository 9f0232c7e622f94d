package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"literature/internal/app"
	"literature/internal/domain"

	"github.com/form3tech-oss/jwt-go"
	"github.com/heroiclabs/nakama-common/runtime"
)

func withVivox(t *testing.T, service *app.VivoxService) {
	t.Helper()
	vivoxServiceOnce.Do(func() {})
	vivoxService = service
	t.Cleanup(func() { vivoxService = nil })
}

func userContext(userID string) context.Context {
	return context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, userID)
}

func TestRpcGetVivoxToken_GeneratesValidClaims(t *testing.T) {
	withVivox(t, app.NewVivoxService("test-secret", "issuer", "example.com"))

	ctx := userContext("user123")
	payload := `{"action":"login"}`

	raw1, err := RpcGetVivoxToken(ctx, noopLogger{}, nil, nil, payload)
	if err != nil {
		t.Fatalf("RpcGetVivoxToken error: %v", err)
	}
	raw2, err := RpcGetVivoxToken(ctx, noopLogger{}, nil, nil, payload)
	if err != nil {
		t.Fatalf("RpcGetVivoxToken error: %v", err)
	}

	claims1 := parseVivoxClaims(t, parseToken(t, raw1).Token, "test-secret")
	claims2 := parseVivoxClaims(t, parseToken(t, raw2).Token, "test-secret")

	assertClaim(t, claims1, "iss", "issuer")
	assertClaim(t, claims1, "sub", "user123")
	assertClaim(t, claims1, "vxa", app.VivoxTokenActionLogin)
	assertClaim(t, claims1, "f", "sip:.issuer.user123.@example.com")

	if claims1["vxi"] == claims2["vxi"] {
		t.Errorf("vxi claim must be unique per token. Got %v for both.", claims1["vxi"])
	}
}

func TestRpcGetVivoxToken_JoinUsesTeamChannel(t *testing.T) {
	withVivox(t, app.NewVivoxService("test-secret", "issuer", "example.com"))
	nk := newFakeNakama()
	ctx := userContext("user-2")

	game := &domain.Game{
		ID:     "g-1",
		Code:   "QWERTY",
		Status: domain.StatusActive,
		Players: []*domain.Player{
			{ID: "user-1", Seat: 1, GameID: "g-1"},
			{ID: "user-2", Seat: 2, GameID: "g-1"},
		},
	}
	if err := NewGameStore(nk).Save(ctx, game); err != nil {
		t.Fatal(err)
	}
	if err := NewPlayerStore(nk).Save(ctx, game.Players[1]); err != nil {
		t.Fatal(err)
	}

	raw, err := RpcGetVivoxToken(ctx, noopLogger{}, nil, nk, `{"action":"join"}`)
	if err != nil {
		t.Fatalf("RpcGetVivoxToken error: %v", err)
	}
	resp := parseToken(t, raw)
	if resp.Channel != "qwerty-team0" {
		t.Fatalf("channel = %q, want qwerty-team0", resp.Channel)
	}
	claims := parseVivoxClaims(t, resp.Token, "test-secret")
	assertClaim(t, claims, "t", "sip:confctl-g-qwerty-team0@example.com")
}

func TestRpcGetVivoxToken_Errors(t *testing.T) {
	tests := []struct {
		name     string
		service  *app.VivoxService
		ctx      context.Context
		payload  string
		wantCode int
	}{
		{name: "NoSession", service: app.NewVivoxService("s", "i", "d"), ctx: context.Background(), payload: `{}`, wantCode: codeInvalidArgument},
		{name: "NotConfigured", service: app.NewVivoxService("", "", ""), ctx: userContext("u"), payload: `{}`, wantCode: codeFailedPrecondition},
		{name: "BadAction", service: app.NewVivoxService("s", "i", "d"), ctx: userContext("u"), payload: `{"action":"kick"}`, wantCode: codeInvalidArgument},
		{name: "JoinWithoutPlayer", service: app.NewVivoxService("s", "i", "d"), ctx: userContext("u"), payload: `{"action":"join"}`, wantCode: codeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withVivox(t, tt.service)
			_, err := RpcGetVivoxToken(tt.ctx, noopLogger{}, nil, newFakeNakama(), tt.payload)
			assertRuntimeCode(t, err, tt.wantCode)
		})
	}
}

func parseToken(t *testing.T, jsonRaw string) vivoxTokenResponse {
	t.Helper()
	var resp vivoxTokenResponse
	if err := json.Unmarshal([]byte(jsonRaw), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected token in response")
	}
	return resp
}

func parseVivoxClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	if !token.Valid {
		t.Fatal("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not map claims")
	}
	return claims
}

func assertClaim(t *testing.T, claims jwt.MapClaims, key, expected string) {
	t.Helper()
	val, ok := claims[key]
	if !ok {
		t.Errorf("missing claim: %s", key)
		return
	}
	str, ok := val.(string)
	if !ok {
		t.Errorf("claim %s is not a string: %v", key, val)
		return
	}
	if str != expected {
		t.Errorf("claim %s = %s, want %s", key, str, expected)
	}
}
