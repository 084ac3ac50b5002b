package util

import (
	"fmt"
	"time"

	"cbt_backend/internal/config"
	"cbt_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// signingMethod resolves the configured algorithm. Only HMAC variants are
// accepted; the signing key is a shared secret.
func signingMethod(alg string) (jwt.SigningMethod, error) {
	if alg == "" {
		alg = "HS256"
	}
	method := jwt.GetSigningMethod(alg)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm: %s", alg)
	}
	return method, nil
}

// GenerateToken issues an access token with sub = username and the
// configured TTL.
func GenerateToken(cfg *config.JWTConfig, username string) (string, error) {
	method, err := signingMethod(cfg.Algorithm)
	if err != nil {
		return "", err
	}

	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.AccessTokenTTL())),
	}

	token := jwt.NewWithClaims(method, claims)
	return token.SignedString([]byte(cfg.SecretKey))
}

// ParseToken verifies signature and expiry and returns the subject username.
func ParseToken(cfg *config.JWTConfig, tokenString string) (string, error) {
	method, err := signingMethod(cfg.Algorithm)
	if err != nil {
		return "", err
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.SecretKey), nil
	}, jwt.WithValidMethods([]string{method.Alg()}))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}

// ParseTokenAllowExpired verifies the signature but not the expiry, so the
// refresh flow can inspect how long ago the token lapsed. Returns the
// subject and the expiry timestamp.
func ParseTokenAllowExpired(cfg *config.JWTConfig, tokenString string) (string, time.Time, error) {
	method, err := signingMethod(cfg.Algorithm)
	if err != nil {
		return "", time.Time{}, err
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	claims := &jwt.RegisteredClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.SecretKey), nil
	})
	if err != nil || !token.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return "", time.Time{}, ErrTokenInvalid
	}
	return claims.Subject, claims.ExpiresAt.Time, nil
}

// GetUserFromContext returns the authenticated user stored by the auth
// middleware, or nil on unauthenticated requests.
func GetUserFromContext(c *gin.Context) *model.User {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := v.(*model.User)
	if !ok {
		return nil
	}
	return user
}
