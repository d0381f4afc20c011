package jwtPkg

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"BlogPublisher/internal/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
	userLocalsKey     = "user"
)

var (
	ErrEmptyHeader   = errors.New("empty Authorization header")
	ErrInvalidFormat = errors.New("invalid Authorization format")
	ErrMissingClaims = errors.New("token claims are missing required fields")
)

func Sign(user entity.UserLoginData, expiresIn time.Duration) (string, int64, error) {
	secret := os.Getenv(AccessTokenSecret)
	if secret == "" {
		return "", 0, fmt.Errorf("%s not set", AccessTokenSecret)
	}

	expiredAt := time.Now().Add(expiresIn).Unix()
	claims := jwt.MapClaims{
		"exp":      expiredAt,
		"id":       user.ID,
		"email":    user.Email,
		"username": user.Username,
		"role":     user.Role,
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", 0, err
	}

	return accessToken, expiredAt, nil
}

// ParseBearer verifies an "Authorization: Bearer <token>" header value and extracts the caller.
func ParseBearer(header string) (entity.UserLoginData, error) {
	if header == "" {
		return entity.UserLoginData{}, ErrEmptyHeader
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return entity.UserLoginData{}, ErrInvalidFormat
	}

	accessToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if accessToken == "" {
		return entity.UserLoginData{}, ErrInvalidFormat
	}

	secret := os.Getenv(AccessTokenSecret)
	if secret == "" {
		return entity.UserLoginData{}, errors.New("JWT secret not configured")
	}

	token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return entity.UserLoginData{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return entity.UserLoginData{}, ErrMissingClaims
	}

	id, _ := claims["id"].(string)
	email, _ := claims["email"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if id == "" || email == "" {
		return entity.UserLoginData{}, ErrMissingClaims
	}

	return entity.UserLoginData{ID: id, Email: email, Username: username, Role: role}, nil
}

func SetUserLoginData(c *fiber.Ctx, user entity.UserLoginData) {
	c.Locals(userLocalsKey, user)
}

func GetUserLoginData(c *fiber.Ctx) (entity.UserLoginData, error) {
	user, ok := c.Locals(userLocalsKey).(entity.UserLoginData)
	if !ok {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}

	return user, nil
}

// GetViewerID returns the caller id on routes with optional authentication, "" for anonymous callers.
func GetViewerID(c *fiber.Ctx) string {
	user, err := GetUserLoginData(c)
	if err != nil {
		return ""
	}
	return user.ID
}
