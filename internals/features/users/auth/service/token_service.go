// internals/features/users/auth/service/token_service.go
package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"nestflow_backend/internals/configs"
	userModel "nestflow_backend/internals/features/users/user/model"
)

// BuildAccessClaims embeds the identity the middleware expects: user id,
// email, role and the tenant boundary (center id).
func BuildAccessClaims(u *userModel.UserModel, now time.Time, ttl time.Duration) jwt.MapClaims {
	claims := jwt.MapClaims{
		"id":    u.ID.String(),
		"email": u.Email,
		"role":  u.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	if u.CenterID != nil {
		claims["center_id"] = u.CenterID.String()
	}
	return claims
}

// CreateAccessToken signs an HS256 access token for the user.
func CreateAccessToken(u *userModel.UserModel) (string, error) {
	if configs.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret is not configured")
	}
	ttl := time.Duration(configs.JWTExpiresHours) * time.Hour
	claims := BuildAccessClaims(u, time.Now().UTC(), ttl)
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
}

// ParseAccessToken verifies the signature and returns the claims. Used by
// the websocket handshake, which cannot go through the HTTP middleware.
func ParseAccessToken(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
