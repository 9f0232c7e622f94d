package app

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"literature/internal/domain"

	"github.com/form3tech-oss/jwt-go"
)

const (
	VivoxTokenActionLogin = "login"
	VivoxTokenActionJoin  = "join"

	vivoxTokenTTL = time.Hour
)

var (
	ErrVivoxNotConfigured = errors.New("vivox config is incomplete")
	ErrVivoxAction        = errors.New("unsupported vivox action")
	ErrVivoxChannel       = errors.New("channel name is required for join tokens")
)

// VivoxService signs voice tokens. Teammates share one channel per game so
// that opponents cannot overhear a declaration being planned.
type VivoxService struct {
	secret string
	issuer string
	domain string
	now    func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

func NewVivoxService(secret, issuer, domain string) *VivoxService {
	return &VivoxService{
		secret: secret,
		issuer: issuer,
		domain: domain,
		now:    time.Now,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Configured reports whether tokens can be signed.
func (s *VivoxService) Configured() bool {
	return s != nil && s.secret != "" && s.issuer != "" && s.domain != ""
}

// TeamChannel names the voice channel for the team sitting at seat in game code.
func TeamChannel(code string, seat int) string {
	return fmt.Sprintf("%s-team%d", strings.ToLower(code), domain.Team(seat))
}

// GenerateToken signs a login or join token for user. channelName is only
// consulted for join tokens.
func (s *VivoxService) GenerateToken(user, action, channelName string) (string, error) {
	if !s.Configured() {
		return "", ErrVivoxNotConfigured
	}
	if user == "" {
		return "", fmt.Errorf("user is required")
	}

	from := s.userURI(user)
	var to string
	switch action {
	case VivoxTokenActionLogin:
		to = from
	case VivoxTokenActionJoin:
		if channelName == "" {
			return "", ErrVivoxChannel
		}
		to = s.channelURI(channelName)
	default:
		return "", fmt.Errorf("%w: %s", ErrVivoxAction, action)
	}

	now := s.now()
	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": user,
		"exp": now.Add(vivoxTokenTTL).Unix(),
		"vxa": action,
		"vxi": fmt.Sprintf("%d-%d", now.UnixNano(), s.nonce()),
		"f":   from,
		"t":   to,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
}

func (s *VivoxService) nonce() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Int63()
}

func (s *VivoxService) userURI(user string) string {
	return "sip:." + s.issuer + "." + user + ".@" + s.domain
}

// Non-positional group channel.
func (s *VivoxService) channelURI(channelName string) string {
	return "sip:confctl-g-" + channelName + "@" + s.domain
}
