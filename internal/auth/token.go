package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// TokenClaims identifies the authenticated entity. EntityType is either
// "user" or "admin"; route middleware checks it against the required type.
type TokenClaims struct {
	EntityID   string `json:"entityID"`
	EntityType string `json:"entityType"`
	jwt.RegisteredClaims
}

type TokenService struct {
	accessTokenSecret       []byte
	accessTokenExpiryInSecs int64
}

func NewTokenService(accessTokenSecret string, accessTokenExpiryInSecs int64) *TokenService {
	return &TokenService{
		accessTokenSecret:       []byte(accessTokenSecret),
		accessTokenExpiryInSecs: accessTokenExpiryInSecs,
	}
}

func (ts *TokenService) NewAccessToken(entityID, entityType string) (string, error) {
	now := time.Now()

	claims := &TokenClaims{
		EntityID:   entityID,
		EntityType: entityType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ts.accessTokenExpiryInSecs) * time.Second)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString(ts.accessTokenSecret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}

	return token, nil
}

func (ts *TokenService) ValidateAccessToken(tokenStr string) (bool, *TokenClaims, error) {
	claims := new(TokenClaims)

	token, err := jwt.ParseWithClaims(
		tokenStr,
		claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return ts.accessTokenSecret, nil
		},
	)
	if err != nil {
		return false, nil, nil // expired or tampered tokens are a plain "not valid"
	}

	return token.Valid, claims, nil
}
