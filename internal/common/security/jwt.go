package security

import (
	"errors"
	"time"

	"olw_backend/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateToken issues an HMAC-signed bearer token carrying the user id.
func GenerateToken(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(config.AppConfig.JWTExp).Unix(),
		"iat":     time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// GetUserIDFromClaims extracts the user id from decoded token claims.
// Numeric claims decode as float64.
func GetUserIDFromClaims(claims map[string]interface{}) (int64, error) {
	switch id := claims["user_id"].(type) {
	case float64:
		return int64(id), nil
	case int64:
		return id, nil
	}
	return 0, errors.New("user_id claim is missing or not a number")
}
