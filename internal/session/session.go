package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mahenabeywickrama/bovita-candles-fe/internal/domain"
	"github.com/mahenabeywickrama/bovita-candles-fe/internal/gateway"
	apperrors "github.com/mahenabeywickrama/bovita-candles-fe/pkg/errors"
)

// Session is the server-side record behind a browser cookie. The browser only
// ever sees the opaque session ID; tokens stay on the server.
type Session struct {
	ID           string           `json:"id"`
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
	Principal    domain.Principal `json:"principal"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// ErrNotFound is returned by stores when no session exists for an ID.
var ErrNotFound = errors.New("session not found")

// Store persists sessions keyed by their opaque ID.
type Store interface {
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// Manager creates, resolves and destroys sessions. The session lifetime
// follows the access token's exp claim; fallbackTTL covers tokens without one.
type Manager struct {
	store       Store
	logger      *slog.Logger
	fallbackTTL time.Duration
}

func NewManager(store Store, logger *slog.Logger, fallbackTTL time.Duration) *Manager {
	return &Manager{store: store, logger: logger, fallbackTTL: fallbackTTL}
}

// Establish creates a session for a freshly authenticated account. A disabled
// account never gets a session: the tokens are dropped on the floor and the
// caller receives an account-disabled error.
func (m *Manager) Establish(ctx context.Context, pair gateway.TokenPair, p domain.Principal) (*Session, error) {
	if !p.IsActive {
		m.logger.WarnContext(ctx, "refusing session for disabled account", slog.String("email", p.Email))
		return nil, apperrors.AccountDisabled(p.Email)
	}

	s := &Session{
		ID:           uuid.NewString(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Principal:    p,
		CreatedAt:    time.Now().UTC(),
	}

	ttl := m.fallbackTTL
	if d, ok := tokenTTL(pair.AccessToken); ok {
		ttl = d
	}
	if ttl <= 0 {
		return nil, apperrors.Unauthorized("access token already expired")
	}

	if err := m.store.Save(ctx, s, ttl); err != nil {
		return nil, apperrors.Wrap(err, "save session")
	}
	return s, nil
}

// Resolve looks up the session behind a cookie value. A missing, expired or
// disabled session yields (nil, nil): the caller treats that as anonymous.
func (m *Manager) Resolve(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, nil
	}

	s, err := m.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "load session")
	}

	if expired(s.AccessToken) {
		m.logger.InfoContext(ctx, "purging session with expired access token", slog.String("session_id", s.ID))
		_ = m.store.Delete(ctx, s.ID)
		return nil, nil
	}
	if !s.Principal.IsActive {
		_ = m.store.Delete(ctx, s.ID)
		return nil, nil
	}
	return s, nil
}

// Destroy removes a session. Removing a session that is already gone is fine.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return apperrors.Wrap(err, "destroy session")
	}
	return nil
}

// tokenTTL reads the exp claim without verifying the signature. The backend
// is the authority on token validity; the claim only sizes the session TTL.
func tokenTTL(accessToken string) (time.Duration, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims); err != nil {
		return 0, false
	}
	if claims.ExpiresAt == nil {
		return 0, false
	}
	return time.Until(claims.ExpiresAt.Time), true
}

func expired(accessToken string) bool {
	d, ok := tokenTTL(accessToken)
	return ok && d <= 0
}
