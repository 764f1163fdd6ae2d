package domain

import (
	"errors"
	"math"
	"os"
)

const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

var (
	MessageUserNotAllowed       = "user not allowed"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	JwtSecret = os.Getenv("JWT_SECRET")

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrForbidden      = errors.New("access to this restaurant is not allowed")
)

// RoundPrice rounds a monetary amount to two decimal places.
func RoundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
