package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken covers malformed, tampered and expired tokens alike.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = fmt.Errorf("%w: expired", ErrInvalidToken)
)

// IssuedToken is a freshly signed bearer token.
type IssuedToken struct {
	Token     string
	ID        string
	ExpiresAt time.Time
}

// TokenClaims is what a valid token resolves to.
type TokenClaims struct {
	Username  string
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager issues and verifies stateless HS256 bearer tokens.
// Resolve never touches storage.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	Now    func() time.Time
}

func NewTokenManager(cfg JWTConfig) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TTL(),
		Now:    time.Now,
	}
}

func (m *TokenManager) Issue(username string) (*IssuedToken, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errors.New("issue token: empty username")
	}

	now := m.Now().UTC()
	expiresAt := now.Add(m.ttl)
	id := uuid.NewString()

	claims := jwt.RegisteredClaims{
		Subject:   username,
		Issuer:    m.issuer,
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &IssuedToken{Token: signed, ID: id, ExpiresAt: expiresAt}, nil
}

func (m *TokenManager) Resolve(token string) (*TokenClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	resolved := &TokenClaims{
		Username:  claims.Subject,
		ID:        claims.ID,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}
	if claims.IssuedAt != nil {
		resolved.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	return resolved, nil
}
