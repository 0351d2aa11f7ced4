package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is what a token vouches for. Every token carries a session; only
// registered customers have a UserID and Email.
type Identity struct {
	SessionID string
	UserID    uuid.UUID
	Email     string
}

// IsUser reports whether the identity belongs to a registered customer.
func (i Identity) IsUser() bool {
	return i.UserID != uuid.Nil
}

type jwtCustomClaims struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id,omitempty"`
	Email     string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.NewString()
}

// GenerateToken creates a signed JWT for id.
func GenerateToken(secret string, id Identity, ttl time.Duration) (string, error) {
	if id.SessionID == "" {
		return "", errors.New("session id is required")
	}

	claims := &jwtCustomClaims{
		SessionID: id.SessionID,
		Email:     id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.SessionID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	if id.IsUser() {
		claims.UserID = id.UserID.String()
		claims.Subject = claims.UserID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the token and returns the identity it carries.
func ParseToken(secret, tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, err
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return Identity{}, jwt.ErrTokenInvalidClaims
	}

	id := Identity{SessionID: claims.SessionID, Email: claims.Email}
	if claims.UserID != "" {
		if id.UserID, err = uuid.Parse(claims.UserID); err != nil {
			return Identity{}, jwt.ErrTokenInvalidClaims
		}
	}
	return id, nil
}
