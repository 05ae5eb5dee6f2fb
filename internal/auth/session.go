package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"meterportal/internal/model"
)

var (
	ErrSessionInvalid = errors.New("session token is invalid")
	ErrSessionExpired = errors.New("session token is expired")
)

type sessionClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
}

// SessionManager issues and validates HS256 portal session tokens.
type SessionManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionManager validates the signing secret and returns a manager.
func NewSessionManager(secret, issuer string, ttl time.Duration, now func() time.Time) (*SessionManager, error) {
	if len(secret) < 32 {
		return nil, errors.New("session secret must be at least 32 bytes")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	if now == nil {
		now = time.Now
	}
	return &SessionManager{secret: []byte(secret), issuer: issuer, ttl: ttl, now: now}, nil
}

// Issue signs a session for the user.
func (m *SessionManager) Issue(user model.User) (model.Session, error) {
	now := m.now().UTC()
	exp := now.Add(m.ttl)
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   strings.ToLower(user.Email),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Name: user.Name,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return model.Session{}, fmt.Errorf("sign session: %w", err)
	}
	return model.Session{Token: signed, ExpiresAt: exp}, nil
}

// Parse validates a session token and returns its user.
func (m *SessionManager) Parse(token string) (model.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return model.User{}, ErrSessionInvalid
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.User{}, ErrSessionExpired
		}
		return model.User{}, fmt.Errorf("%w: %v", ErrSessionInvalid, err)
	}
	if claims.Subject == "" {
		return model.User{}, ErrSessionInvalid
	}
	return model.User{Email: claims.Subject, Name: claims.Name}, nil
}
