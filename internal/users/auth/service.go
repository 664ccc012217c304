// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Service layer for the authentication domain.

It orchestrates the credential lifecycle: password verification, OTP
email-verification gating, paired token issuance and rotation, and password
recovery.

Architecture:

  - Service: Orchestrates business logic (Login, VerifyOTP, Refresh).
  - Repository: Abstracted interface over Postgres (users.account).
  - Security: Bcrypt password hashing and HS256-signed JWTs via [sec].

Stored-token equality is the revocation mechanism: a JWT that verifies
cryptographically is still rejected unless it matches the token currently
stored on the user row.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/worklink/internal/platform/apperr"
	"github.com/taibuivan/worklink/internal/platform/ctxutil"
	"github.com/taibuivan/worklink/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for generating and verifying security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed access JWT for the given user.
	//
	// # Parameters
	//   - userID, email, role: Identity claims embedded in the payload.
	//   - rememberMe: Selects the extended lifetime instead of the short default.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, email, role string, rememberMe bool) (string, error)

	// GenerateRefreshToken creates a signed refresh JWT for the given user.
	GenerateRefreshToken(userID, email, role string) (string, error)

	// VerifyRefreshToken checks signature and expiry of a refresh JWT and
	// returns its claims. Fails closed with an Unauthorized error.
	VerifyRefreshToken(tokenString string) (*sec.AuthClaims, error)
}

// OTPSender defines the contract for delivering one-time passcodes.
type OTPSender interface {
	// SendOTP delivers the passcode to the recipient mailbox.
	SendOTP(context context.Context, recipient, code string) error
}

// Service implements the authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to credential checks,
// token issuance, or the OTP flow must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
	otpSender      OTPSender
}

// NewService constructs a new [Service] with its dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider, otpSender OTPSender) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
		otpSender:      otpSender,
	}
}

// issueTokenPair generates and returns a matched access/refresh pair.
func (service *Service) issueTokenPair(user *User, rememberMe bool) (*TokenPair, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, string(user.Role), rememberMe)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, err := service.tokenProvider.GenerateRefreshToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// sendOTP dispatches the challenge email. Delivery failures are logged and
// swallowed: the challenge stays valid in storage, so support can re-trigger
// delivery without restarting the flow.
func (service *Service) sendOTP(context context.Context, email string, challenge OTPChallenge) {
	if err := service.otpSender.SendOTP(context, email, challenge.Code); err != nil {
		ctxutil.GetLogger(context).Error("auth_otp_delivery_failed",
			slog.String("email", email),
			slog.Any("error", err),
		)
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// LoginResult represents the outcome of a login attempt.
//
// Exactly one of the two branches is populated: Tokens for a verified
// account, or RequiresVerification with the public profile when a fresh OTP
// challenge was dispatched instead.
type LoginResult struct {
	Tokens               *TokenPair
	User                 PublicProfile
	RequiresVerification bool
}

/*
Login validates user credentials and issues security tokens.

Description: Verifies identity with constant-time password comparison. If the
email is not yet verified, no tokens are issued: a fresh OTP challenge is
stored and mailed, and the caller is told to complete verification first.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Token pair, or a pending-verification signal
  - err: NotFound, Forbidden (blocked), ValidationError (no stored hash),
    Unauthorized (wrong password), or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {
	user, err := service.userRepository.FindByEmail(context, NormalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}

	// Blocked accounts can never authenticate, even with correct credentials.
	if user.Status == StatusBlocked {
		return nil, apperr.Forbidden("Your account has been blocked. Please contact support.")
	}

	// Social-only accounts carry no password hash; a password login against
	// one is a malformed request, not a failed credential check.
	if user.PasswordHash == nil {
		return nil, apperr.ValidationError("Password is required")
	}

	if !sec.CheckPasswordHash(input.Password, *user.PasswordHash) {
		return nil, apperr.Unauthorized("Password is incorrect")
	}

	// Unverified accounts get a fresh challenge instead of tokens.
	if !user.IsVerified {
		challenge := NewOTPChallenge()
		if err := service.userRepository.SetOTP(context, user.ID, challenge); err != nil {
			return nil, fmt.Errorf("auth_service_set_otp_failed: %w", err)
		}

		service.sendOTP(context, user.Email, challenge)

		return &LoginResult{User: user.Public(), RequiresVerification: true}, nil
	}

	tokens, err := service.issueTokenPair(user, input.RememberMe)
	if err != nil {
		return nil, err
	}

	if err := service.userRepository.SetTokens(context, user.ID, tokens.AccessToken, tokens.RefreshToken); err != nil {
		return nil, fmt.Errorf("auth_service_store_tokens_failed: %w", err)
	}

	return &LoginResult{Tokens: tokens, User: user.Public()}, nil
}

/*
VerifyOTP completes email verification and establishes the first session.

Description: Validates the submitted passcode against the stored challenge
(match first, then expiry), flips the account to verified, consumes the
challenge, and issues the initial token pair in one repository update.
A challenge is single-use: success or expiry both destroy it.

Parameters:
  - context: context.Context
  - email: string
  - code: string

Returns:
  - *TokenPair: First session credentials
  - err: NotFound, ValidationError (wrong or expired code), or storage failures
*/
func (service *Service) VerifyOTP(context context.Context, email, code string) (*TokenPair, error) {
	user, err := service.userRepository.FindByEmail(context, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if user.OTP == nil || !user.OTP.Matches(code) {
		return nil, apperr.ValidationError("Invalid OTP")
	}

	if user.OTP.Expired(time.Now()) {
		return nil, apperr.ValidationError("OTP has expired")
	}

	tokens, err := service.issueTokenPair(user, false)
	if err != nil {
		return nil, err
	}

	if err := service.userRepository.MarkVerified(context, user.ID, tokens.AccessToken, tokens.RefreshToken); err != nil {
		return nil, fmt.Errorf("auth_service_mark_verified_failed: %w", err)
	}

	return tokens, nil
}

// # Session Management

/*
RefreshAccessToken issues a new access token from a valid refresh token.

Description: Verifies the refresh JWT cryptographically, then checks it
against the token stored on the user row. A logout or a newer login replaces
the stored value, which retires every previously issued refresh token.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - string: Fresh access token
  - err: Unauthorized (invalid, expired, or revoked) or storage failures
*/
func (service *Service) RefreshAccessToken(context context.Context, refreshToken string) (string, error) {
	claims, err := service.tokenProvider.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := service.userRepository.FindByEmail(context, claims.Email)
	if err != nil {
		return "", err
	}

	// Revocation check: the presented token must be the stored one.
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return "", apperr.Unauthorized("Invalid or expired token")
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, string(user.Role), false)
	if err != nil {
		return "", fmt.Errorf("auth_service_refresh_access_token_failed: %w", err)
	}

	if err := service.userRepository.SetAccessToken(context, user.ID, accessToken); err != nil {
		return "", fmt.Errorf("auth_service_store_access_token_failed: %w", err)
	}

	return accessToken, nil
}

/*
Logout revokes the user's active session.

Description: Nulls the stored token pair, which instantly retires both the
access and the refresh token regardless of their remaining JWT lifetime.

Parameters:
  - context: context.Context
  - email: string (from the authenticated access token's claims)

Returns:
  - err: NotFound or revocation failures
*/
func (service *Service) Logout(context context.Context, email string) error {
	user, err := service.userRepository.FindByEmail(context, NormalizeEmail(email))
	if err != nil {
		return err
	}

	if err := service.userRepository.ClearTokens(context, user.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Password Recovery

/*
ForgetPassword initiates the password recovery flow.

Description: Stores a fresh OTP challenge on the account and mails the code.
Delivery failures do not invalidate the stored challenge.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - err: NotFound or storage failures
*/
func (service *Service) ForgetPassword(context context.Context, email string) error {
	user, err := service.userRepository.FindByEmail(context, NormalizeEmail(email))
	if err != nil {
		return err
	}

	challenge := NewOTPChallenge()
	if err := service.userRepository.SetOTP(context, user.ID, challenge); err != nil {
		return fmt.Errorf("auth_service_forget_password_failed: %w", err)
	}

	service.sendOTP(context, user.Email, challenge)

	return nil
}

/*
ResetPassword completes the password recovery flow.

Description: Hashes the new password and stores it, clearing any pending OTP
challenge in the same update. The flow trusts the client to have completed
OTP verification via VerifyOTP beforehand; the stored token pair is left
untouched so active sessions survive a routine password change.

Parameters:
  - context: context.Context
  - email: string
  - newPassword: string

Returns:
  - err: NotFound, hashing failures, or update failures
*/
func (service *Service) ResetPassword(context context.Context, email, newPassword string) error {
	user, err := service.userRepository.FindByEmail(context, NormalizeEmail(email))
	if err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	if err := service.userRepository.ResetPassword(context, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	return nil
}

// # Profile

/*
GetProfile returns the authenticated user's own profile.

Parameters:
  - context: context.Context
  - email: string (from the authenticated access token's claims)

Returns:
  - *Profile: Full self-view projection
  - err: NotFound or retrieval failures
*/
func (service *Service) GetProfile(context context.Context, email string) (*Profile, error) {
	user, err := service.userRepository.FindByEmail(context, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	profile := user.SelfProfile()
	return &profile, nil
}
