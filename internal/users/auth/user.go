// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and credential lifecycle layer.

It defines the core domain entity (User) together with the logic for password
authentication, OTP email verification, token issuance and revocation, and
password recovery.

# Architecture

This layer is the "Truth" of the system. The User entity carries its own
verification challenge and active token pair, so session revocation is a
plain column update rather than a separate session store.
*/
package auth

import (
	"strings"
	"time"

	"github.com/taibuivan/worklink/internal/platform/sec"
)

// # Domain Entities

// UserStatus represents the administrative standing of an account.
type UserStatus string

const (
	// StatusActive marks an account in good standing.
	StatusActive UserStatus = "ACTIVE"

	// StatusBlocked marks an account locked out by an administrator.
	// Blocked accounts can never authenticate, including via social sign-in.
	StatusBlocked UserStatus = "BLOCKED"
)

// AuthProvider identifies the identity source an account registered through.
type AuthProvider string

const (
	// ProviderLocal is email + password registration.
	ProviderLocal AuthProvider = "local"

	// ProviderGoogle is Google social sign-in.
	ProviderGoogle AuthProvider = "google"

	// ProviderLinkedIn is LinkedIn social sign-in.
	ProviderLinkedIn AuthProvider = "linkedin"
)

// OTPChallenge pairs a one-time passcode with its expiry instant.
//
// The two values live and die together: a user either has a full pending
// challenge or none at all. Repositories write and clear both columns in a
// single statement so the pair can never be observed half-set.
type OTPChallenge struct {
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// NewOTPChallenge issues a fresh 6-digit challenge valid for [OTPTTL].
func NewOTPChallenge() OTPChallenge {
	return OTPChallenge{
		Code:      sec.GenerateOTP(),
		ExpiresAt: time.Now().Add(OTPTTL),
	}
}

// Matches reports whether the submitted code equals the stored code.
func (challenge OTPChallenge) Matches(code string) bool {
	return challenge.Code != "" && challenge.Code == code
}

// Expired reports whether the challenge is past its expiry at the given instant.
func (challenge OTPChallenge) Expired(now time.Time) bool {
	return now.After(challenge.ExpiresAt)
}

// User represents a registered account on the Worklink platform.
//
// # Nullable fields
//
// Social sign-in accounts have no password, and tokens only exist while a
// session is active, so PasswordHash, OTP, AccessToken, and RefreshToken are
// pointers: nil means "absent", never "empty string".
type User struct {
	ID             string        `json:"id"`
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	Email          string        `json:"email"`
	PasswordHash   *string       `json:"-"` // Explicitly omitted from JSON for security.
	Role           sec.UserRole  `json:"role"`
	Status         UserStatus    `json:"status"`
	IsVerified     bool          `json:"is_verified"`
	OTP            *OTPChallenge `json:"-"` // Pending verification challenge. Omitted for security.
	AccessToken    *string       `json:"-"` // Currently valid access token. Omitted for security.
	RefreshToken   *string       `json:"-"` // Currently valid refresh token. Omitted for security.
	Provider       AuthProvider  `json:"provider"`
	AvatarURL      string        `json:"avatar_url,omitempty"`
	AcceptedTerms  bool          `json:"accepted_terms"`
	MarketingOptIn bool          `json:"marketing_opt_in"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// PublicProfile is the client-safe projection of a User returned by the
// registration and verification endpoints.
type PublicProfile struct {
	ID        string       `json:"id"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Email     string       `json:"email"`
	Role      sec.UserRole `json:"role"`
	AvatarURL string       `json:"avatar_url,omitempty"`
}

// Public returns the client-safe projection of the user.
func (user *User) Public() PublicProfile {
	return PublicProfile{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
		AvatarURL: user.AvatarURL,
	}
}

// Profile is the full self-view projection returned by GET /me.
type Profile struct {
	ID            string       `json:"id"`
	FirstName     string       `json:"first_name"`
	LastName      string       `json:"last_name"`
	Email         string       `json:"email"`
	Role          sec.UserRole `json:"role"`
	Status        UserStatus   `json:"status"`
	IsVerified    bool         `json:"is_verified"`
	Provider      AuthProvider `json:"provider"`
	AvatarURL     string       `json:"avatar_url,omitempty"`
	AcceptedTerms bool         `json:"accepted_terms"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// SelfProfile returns the full self-view projection of the user.
func (user *User) SelfProfile() Profile {
	return Profile{
		ID:            user.ID,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Email:         user.Email,
		Role:          user.Role,
		Status:        user.Status,
		IsVerified:    user.IsVerified,
		Provider:      user.Provider,
		AvatarURL:     user.AvatarURL,
		AcceptedTerms: user.AcceptedTerms,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

// TokenPair is a matched access/refresh token set issued in one operation.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// NormalizeEmail lowercases and trims an email address.
//
// Every service entry point normalizes before lookup so the same mailbox can
// never register twice with different casing.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldFirstName    = "first_name"
	FieldLastName     = "last_name"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldOTP          = "otp"
	FieldRefreshToken = "refresh_token"
	FieldAccessToken  = "access_token"
	FieldMessage      = "message"
)
