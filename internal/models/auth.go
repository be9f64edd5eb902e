package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserRole names what an authenticated caller may do.
type UserRole string

const (
	// RoleAdmin may change school records.
	RoleAdmin UserRole = "ADMIN"
)

// LoginRequest holds the administrator credentials.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse returns the issued access token.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	Role        UserRole  `json:"role"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
	jwt.RegisteredClaims
}
