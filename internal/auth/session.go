package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "photoshare/internal/errors"
)

const (
	// SessionTTL is the fixed lifetime of a session. It is never extended.
	SessionTTL = 24 * time.Hour
	// CookieName is the HTTP-only cookie carrying the session token.
	CookieName = "photoshare_session"
)

// ErrSessionNotFound is returned by stores for unknown or lapsed sessions.
var ErrSessionNotFound = errors.New("session not found")

// Session is an authenticated association between a token and a user.
type Session struct {
	ID        string
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// Claims is the signed payload of a session token.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// SessionStore persists session ids server side so they can be revoked.
type SessionStore interface {
	Save(ctx context.Context, id string, userID uuid.UUID, ttl time.Duration) error
	Lookup(ctx context.Context, id string) (uuid.UUID, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// SessionManager issues, resolves and destroys session tokens. The token is
// an HS256-signed value whose jti keys the server-side record, so a token is
// only valid while both its signature and its store entry hold.
type SessionManager struct {
	secret []byte
	store  SessionStore
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionManager creates a session manager. A non-positive ttl selects SessionTTL.
func NewSessionManager(secret string, store SessionStore, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &SessionManager{
		secret: []byte(secret),
		store:  store,
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the configured session lifetime.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Create starts a session for userID.
func (m *SessionManager) Create(ctx context.Context, userID uuid.UUID) (*Session, error) {
	now := m.now()
	session := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(m.ttl),
	}

	claims := &Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	session.Token = token

	if err := m.store.Save(ctx, session.ID, userID, m.ttl); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return session, nil
}

// Resolve returns the live session behind token, or ErrUnauthenticated.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*Session, error) {
	claims, err := m.parse(token)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	userID, err := m.store.Lookup(ctx, claims.ID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, apperrors.ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if userID.String() != claims.UserID {
		return nil, apperrors.ErrUnauthenticated
	}

	return &Session{
		ID:        claims.ID,
		Token:     token,
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Destroy ends the session behind token, or returns ErrNotLoggedIn when
// there is none.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.ErrNotLoggedIn
	}
	claims, err := m.parse(token)
	if err != nil {
		return apperrors.ErrNotLoggedIn
	}
	existed, err := m.store.Delete(ctx, claims.ID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if !existed {
		return apperrors.ErrNotLoggedIn
	}
	return nil
}

func (m *SessionManager) parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
