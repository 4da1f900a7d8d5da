package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"matmind-server-go/internal/domain/auth/model"
)

// ErrInvalidSession is the single failure every token problem collapses
// into: missing, malformed, mis-signed and expired tokens are
// indistinguishable to callers.
var ErrInvalidSession = errors.New("invalid session")

// SessionClaims is the signed claim set carried by the session cookie.
type SessionClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies session tokens. It is stateless: any
// holder of the same secret can verify a token without a session store.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a token service with the process-wide secret.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token service requires a signing secret")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock overrides the time source, used by expiry tests.
func (ts *TokenService) WithClock(now func() time.Time) *TokenService {
	if now != nil {
		ts.now = now
	}
	return ts
}

// TTL returns the validity window shared by token and cookie.
func (ts *TokenService) TTL() time.Duration {
	return ts.ttl
}

// Issue signs a session token for the verified identity.
func (ts *TokenService) Issue(identity model.UserIdentity) (string, error) {
	now := ts.now()
	claims := SessionClaims{
		ID:    identity.ID,
		Email: identity.Email,
		Name:  identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a session token. The signing method is pinned:
// the algorithm named by the token header is only ever compared against
// HMAC, never trusted. All failures collapse into ErrInvalidSession.
func (ts *TokenService) Verify(tokenString string) (model.UserIdentity, error) {
	if tokenString == "" {
		return model.UserIdentity{}, ErrInvalidSession
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return ts.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(ts.now),
	)
	if err != nil || !token.Valid {
		return model.UserIdentity{}, ErrInvalidSession
	}
	if claims.ID == "" || claims.Email == "" {
		return model.UserIdentity{}, ErrInvalidSession
	}

	return model.UserIdentity{
		ID:    claims.ID,
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}
