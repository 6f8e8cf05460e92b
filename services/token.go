package services

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/boyidapuvivek/CaptureRideBackend/models"
)

type TokenClaims struct {
	UserID   string `json:"_id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func accessTokenExpiry() time.Duration {
	if d, err := time.ParseDuration(os.Getenv("ACCESS_TOKEN_EXPIRY")); err == nil {
		return d
	}
	return 24 * time.Hour
}

func refreshTokenExpiry() time.Duration {
	if d, err := time.ParseDuration(os.Getenv("REFRESH_TOKEN_EXPIRY")); err == nil {
		return d
	}
	return 10 * 24 * time.Hour
}

func GenerateAccessToken(user models.User) (string, error) {
	claims := TokenClaims{
		UserID:   user.ID.Hex(),
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenExpiry())),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("ACCESS_TOKEN_SECRET")))
}

func GenerateRefreshToken(user models.User) (string, error) {
	claims := TokenClaims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(refreshTokenExpiry())),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("REFRESH_TOKEN_SECRET")))
}

func ParseAccessToken(tokenString string) (*TokenClaims, error) {
	return parseToken(tokenString, os.Getenv("ACCESS_TOKEN_SECRET"))
}

func ParseRefreshToken(tokenString string) (*TokenClaims, error) {
	return parseToken(tokenString, os.Getenv("REFRESH_TOKEN_SECRET"))
}

func parseToken(tokenString, secret string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
