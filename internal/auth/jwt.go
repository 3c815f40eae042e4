package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid claims")
)

// keyClaims has no expiry: a key stays valid until it is deleted on logout.
type keyClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// KeyIssuer signs and verifies token keys with HMAC-SHA256.
type KeyIssuer struct {
	secret []byte
}

func NewKeyIssuer(secret string) *KeyIssuer {
	return &KeyIssuer{secret: []byte(secret)}
}

// Generate issues a new key for userID. Each call yields a distinct key.
func (k *KeyIssuer) Generate(userID uint) (string, error) {
	claims := keyClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(k.secret)
}

// Parse checks the signature and returns the user id the key was issued to.
func (k *KeyIssuer) Parse(key string) (uint, error) {
	var claims keyClaims
	token, err := jwt.ParseWithClaims(key, &claims, func(*jwt.Token) (interface{}, error) {
		return k.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	if claims.UserID == 0 {
		return 0, ErrInvalidClaims
	}
	return claims.UserID, nil
}
