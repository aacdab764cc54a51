// Package auth issues and verifies the bearer tokens that identify callers.
// Tokens are stateless: validity depends solely on signature and expiry,
// there is no server-side revocation.
package auth

import (
	"errors"
	"fmt"
	"time"

	"renomapro/internal/domain/users"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the validity window of an issued token.
const TokenTTL = 7 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the decoded identity a verified token carries.
type Claims struct {
	UserID uint
	Email  string
	Role   string
}

func IssueToken(secret []byte, user *users.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(TokenTTL).Unix(),
	})
	return token.SignedString(secret)
}

func ParseToken(secret []byte, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	if userID, ok := mapClaims["user_id"].(float64); ok {
		claims.UserID = uint(userID)
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}
	if claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
