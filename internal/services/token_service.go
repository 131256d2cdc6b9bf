package services

import (
	"errors"
	"time"

	"bathstore/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var ErrBadToken = errors.New("invalid or expired token")

// APIClaims is the bearer-token payload for the JSON API group.
type APIClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type TokenService struct {
	Secret []byte
	TTL    time.Duration
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{Secret: []byte(secret), TTL: 24 * time.Hour}
}

func (s *TokenService) Issue(u *domain.User) (string, error) {
	claims := APIClaims{
		UserID: u.ID,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.TTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

func (s *TokenService) Parse(tokenStr string) (*APIClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &APIClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return s.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrBadToken
	}
	claims, ok := token.Claims.(*APIClaims)
	if !ok {
		return nil, ErrBadToken
	}
	return claims, nil
}
