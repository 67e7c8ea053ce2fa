package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionCookie     = "auth_token"
	DefaultSessionTTL = 24 * time.Hour
)

var ErrSessionSecretRequired = errors.New("session secret is required")

// SessionClaims identify the user a token was issued to. The wallet is
// checked against the stored user on every request.
type SessionClaims struct {
	UserID int64  `json:"id"`
	Wallet string `json:"wallet_address"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies HS256 session tokens.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration) (*SessionManager, error) {
	if secret == "" {
		return nil, ErrSessionSecretRequired
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

func (m *SessionManager) Issue(userID int64, wallet, role string) (string, error) {
	now := m.now()
	claims := SessionClaims{
		UserID: userID,
		Wallet: wallet,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Verify returns the claims of a valid, unexpired token signed with HS256.
func (m *SessionManager) Verify(token string) (SessionClaims, error) {
	var claims SessionClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return SessionClaims{}, err
	}
	if claims.UserID <= 0 || claims.Wallet == "" {
		return SessionClaims{}, errors.New("session token has no subject")
	}
	return claims, nil
}
