// file: utils/jwt.go
package utils

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/syedmaroofhussain3-blip/university-hub/models"
	"os"
	"time"
)

var jwtSecret = []byte(getSecret())

func getSecret() string {
	if s := os.Getenv("UNIHUB_JWT_SECRET"); s != "" {
		return s
	}
	return "a-very-secure-secret-that-should-be-in-config-file"
}

type Claims struct {
	UserID uint32      `json:"user_id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

func GenerateToken(user models.User, role models.Role) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, err
}
