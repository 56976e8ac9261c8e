// api/util/jwt_util.go

package util

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spop-ops/commander/api/config"
	api_errors "github.com/spop-ops/commander/api/errors"
	"github.com/spop-ops/commander/api/model"
)

type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// Claims carried by every token this service issues.
type Claims struct {
	jwt.RegisteredClaims
	UserID      uint      `json:"user_id"`
	Username    string    `json:"username"`
	Rank        string    `json:"rank"`
	IsCommander bool      `json:"is_commander"`
	Kind        TokenKind `json:"kind"`
}

// TokenPair is the access/refresh pair returned on register and login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// IssueTokenPair signs a fresh access and refresh token for the user.
func IssueTokenPair(user *model.User) (*TokenPair, error) {
	access, err := signToken(user, AccessToken, config.GetDuration("auth.accessTokenTTL"))
	if err != nil {
		return nil, err
	}
	refresh, err := signToken(user, RefreshToken, config.GetDuration("auth.refreshTokenTTL"))
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func signToken(user *model.User, kind TokenKind, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:      user.ID,
		Username:    user.Username,
		Rank:        string(user.Rank),
		IsCommander: user.IsCommander,
		Kind:        kind,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.GetString("auth.secret")))
}

// ParseToken verifies the signature and expiry and returns the claims.
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.GetString("auth.secret")), nil
	})
	if err != nil {
		return nil, api_errors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, api_errors.ErrInvalidToken
	}
	return claims, nil
}
