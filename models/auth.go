package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// AdminLoginRequest represents the admin console login body
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required" example:"reviewer"`
	Password string `json:"password" binding:"required,min=8" example:"securePassword123"`
}

// AdminLoginResponse carries the issued bearer token
type AdminLoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// AdminClaims represents the JWT claims issued to reviewers
type AdminClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`

	jwt.RegisteredClaims
}
