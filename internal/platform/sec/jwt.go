// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing, OTP
// generation) from the domain logic. It acts as an Infrastructure service
// injected into the Application layer via small interfaces defined by the
// consuming packages.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/worklink/internal/platform/apperr"
)

// AuthClaims represents the payload embedded inside a Worklink JWT.
//
// # Why custom claims?
//
// By embedding the UserID, Email, and Role directly inside the JWT, the
// authentication middleware can reconstruct the active user context WITHOUT
// querying the database on every single API request. Server-side revocation
// is still possible because the auth service additionally compares presented
// tokens against the value stored on the user row.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// TokenConfig carries the signing secrets and lifetimes for [TokenService].
//
// Secrets come from process configuration and are never hard-coded. Access
// and refresh tokens use distinct secrets so a token signed for one purpose
// can never verify as the other.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	Issuer        string

	// AccessTTL is the default access token lifetime.
	AccessTTL time.Duration
	// AccessRememberTTL replaces AccessTTL when remember-me is requested.
	AccessRememberTTL time.Duration
	// RefreshTTL is the fixed refresh token lifetime.
	RefreshTTL time.Duration
}

// TokenService handles generation and verification of JWT tokens using HS256.
type TokenService struct {
	cfg TokenConfig
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("sec: token signing secrets must not be empty")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, fmt.Errorf("sec: access and refresh secrets must differ")
	}

	return &TokenService{cfg: cfg}, nil
}

// GenerateAccessToken creates a signed access token for a user.
//
// # Parameters
//   - userID, email, role: Identity claims embedded in the payload.
//   - rememberMe: Extends the lifetime from the short default to the long
//     remember-me duration.
func (service *TokenService) GenerateAccessToken(userID, email, role string, rememberMe bool) (string, error) {
	timeToLive := service.cfg.AccessTTL
	if rememberMe {
		timeToLive = service.cfg.AccessRememberTTL
	}

	return service.sign(userID, email, role, service.cfg.AccessSecret, timeToLive)
}

// GenerateRefreshToken creates a signed refresh token for a user.
// Refresh tokens always use the fixed long lifetime.
func (service *TokenService) GenerateRefreshToken(userID, email, role string) (string, error) {
	return service.sign(userID, email, role, service.cfg.RefreshSecret, service.cfg.RefreshTTL)
}

// VerifyAccessToken checks the signature and validity of an access token.
func (service *TokenService) VerifyAccessToken(tokenString string) (*AuthClaims, error) {
	return service.verify(tokenString, service.cfg.AccessSecret)
}

// VerifyRefreshToken checks the signature and validity of a refresh token.
func (service *TokenService) VerifyRefreshToken(tokenString string) (*AuthClaims, error) {
	return service.verify(tokenString, service.cfg.RefreshSecret)
}

// sign builds and signs an HS256 token with the standard claim set.
func (service *TokenService) sign(userID, email, role, secret string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// verify parses a token and fails closed.
//
// Malformed, mis-signed, and expired tokens all surface as a single
// Unauthorized error; the concrete parse failure is kept in the cause chain
// for server-side logging only.
func (service *TokenService) verify(tokenString, secret string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		unauthorized := apperr.Unauthorized("Invalid or expired token")
		unauthorized.Cause = err
		return nil, unauthorized
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	return claims, nil
}
