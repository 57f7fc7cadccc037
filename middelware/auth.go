package middelware

import (
	"awards-backend/models"
	"awards-backend/utils"
	"awards-backend/utils/logger"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ReviewerRole is the only role issued to admin console users
const ReviewerRole = "reviewer"

// Context keys set by AuthMiddleware
const (
	ClaimsContextKey   = "admin_claims"
	UsernameContextKey = "admin_username"
)

// ErrInvalidCredentials is returned for a wrong username or password
var ErrInvalidCredentials = errors.New("invalid username or password")

// JWTManager issues and validates reviewer tokens
type JWTManager struct {
	Config            *models.Config
	Logger            logger.Logger
	BlacklistedTokens map[string]time.Time // token ID -> expiry
	TokenMutex        sync.RWMutex
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(cfg *models.Config, log logger.Logger) *JWTManager {
	return &JWTManager{
		Config:            cfg,
		Logger:            log,
		BlacklistedTokens: make(map[string]time.Time),
	}
}

// Authenticate checks reviewer credentials against the configured bcrypt
// hash and issues a token.
func (j *JWTManager) Authenticate(username, password string) (*models.AdminLoginResponse, error) {
	if j.Config.AdminPasswordHash == "" {
		j.Logger.Warn("Admin login attempted but no admin password hash is configured")
		return nil, ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(j.Config.AdminUsername)) == 1
	passOK := utils.CheckPassword(j.Config.AdminPasswordHash, password)
	if !userOK || !passOK {
		j.Logger.Warnf("Failed admin login for %q", username)
		return nil, ErrInvalidCredentials
	}

	token, err := j.GenerateToken(username)
	if err != nil {
		return nil, err
	}

	return &models.AdminLoginResponse{
		Token:     token,
		ExpiresIn: int64(j.Config.JWTExpiresIn.Seconds()),
	}, nil
}

// GenerateToken generates a signed HS256 token for a reviewer
func (j *JWTManager) GenerateToken(username string) (string, error) {
	now := time.Now()
	claims := models.AdminClaims{
		Username: username,
		Role:     ReviewerRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   username,
			Issuer:    j.Config.AppName,
			Audience:  jwt.ClaimStrings{j.Config.AppName},
			ExpiresAt: jwt.NewNumericDate(now.Add(j.Config.JWTExpiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.Config.JWTSecret))
	if err != nil {
		j.Logger.Errorf("Failed to sign JWT token: %v", err)
		return "", err
	}

	j.Logger.Debugf("Generated JWT token for reviewer: %s", username)
	return tokenString, nil
}

// ValidateToken parses tokenString and returns its claims
func (j *JWTManager) ValidateToken(tokenString string) (*models.AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Prevent algorithm confusion
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.Config.JWTSecret), nil
	},
		jwt.WithIssuer(j.Config.AppName),
		jwt.WithAudience(j.Config.AppName),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.AdminClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.Role != ReviewerRole {
		return nil, fmt.Errorf("role %q is not allowed", claims.Role)
	}

	j.TokenMutex.RLock()
	expiry, revoked := j.BlacklistedTokens[claims.ID]
	j.TokenMutex.RUnlock()
	if revoked && expiry.After(time.Now()) {
		return nil, errors.New("token has been revoked")
	}

	return claims, nil
}

// RevokeToken blacklists a token ID until its expiry
func (j *JWTManager) RevokeToken(tokenID string, expiry time.Time) {
	j.TokenMutex.Lock()
	defer j.TokenMutex.Unlock()

	j.BlacklistedTokens[tokenID] = expiry
	j.Logger.Debugf("Revoked token %s", tokenID)
}

// CleanupExpiredTokens removes expired entries from the blacklist
func (j *JWTManager) CleanupExpiredTokens() {
	j.TokenMutex.Lock()
	defer j.TokenMutex.Unlock()

	now := time.Now()
	for tokenID, expiry := range j.BlacklistedTokens {
		if expiry.Before(now) {
			delete(j.BlacklistedTokens, tokenID)
		}
	}
}

// AuthMiddleware requires a valid "Bearer <token>" Authorization header
func (j *JWTManager) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Missing Authorization header", "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, "Invalid Authorization header format", "Authorization header must be in format: Bearer <token>")
			return
		}

		claims, err := j.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			j.Logger.Warnf("Token validation failed: %v", err)
			abortUnauthorized(c, "Invalid or expired token", err.Error())
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Set(UsernameContextKey, claims.Username)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message, details string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.APIResponse{
		Status:  "error",
		Code:    http.StatusUnauthorized,
		Message: message,
		Error: &models.APIError{
			Type:    "AuthenticationError",
			Details: details,
		},
	})
}
