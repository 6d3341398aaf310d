package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"unitrack_backend/internals/configs"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// IssueAccessToken signs the short-lived token carried on every request.
// Claims: user_id, roles, institution_id.
func IssueAccessToken(userID uuid.UUID, institutionID *uuid.UUID, roles []string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"roles":   roles,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(AccessTokenTTL).Unix(),
	}
	if institutionID != nil {
		claims["institution_id"] = institutionID.String()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

// IssueRefreshToken signs the long-lived token used only against /refresh.
func IssueRefreshToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"typ":     "refresh",
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(RefreshTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTRefreshSecret))
}

// ParseRefreshToken verifies a refresh token and returns the subject user id.
func ParseRefreshToken(tokenString string) (uuid.UUID, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return uuid.Nil, errors.New("not a refresh token")
	}
	sub, _ := claims["user_id"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errors.New("invalid user_id claim")
	}
	return id, nil
}
