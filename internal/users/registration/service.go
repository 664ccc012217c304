// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registration

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/worklink/internal/platform/apperr"
	"github.com/taibuivan/worklink/internal/platform/ctxutil"
	"github.com/taibuivan/worklink/internal/platform/sec"
	"github.com/taibuivan/worklink/internal/users/auth"
	"github.com/taibuivan/worklink/pkg/pointer"
	"github.com/taibuivan/worklink/pkg/uuidv7"
)

// # Service

// Service implements the enrollment use cases.
type Service struct {
	userRepository     auth.UserRepository
	employerRepository EmployerRepository
	tokenProvider      auth.TokenProvider
	otpSender          auth.OTPSender
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	userRepo auth.UserRepository,
	employerRepo EmployerRepository,
	tokenProv auth.TokenProvider,
	otpSender auth.OTPSender,
) *Service {
	return &Service{
		userRepository:     userRepo,
		employerRepository: employerRepo,
		tokenProvider:      tokenProv,
		otpSender:          otpSender,
	}
}

// ensureEmailAvailable fails with Conflict when the email is already taken.
//
// The unique index on users.account remains the race backstop; this check
// exists to give a clean Conflict before any hashing work happens.
func (service *Service) ensureEmailAvailable(context context.Context, email string) error {
	_, err := service.userRepository.FindByEmail(context, email)
	if err == nil {
		return apperr.Conflict("An account with this email already exists")
	}
	if !apperr.IsNotFound(err) {
		return err
	}
	return nil
}

// createUnverifiedUser builds and persists a password account with a pending
// OTP challenge, then dispatches the code. Delivery failures are logged but
// non-fatal: the user can trigger a fresh code by attempting to log in.
func (service *Service) createUnverifiedUser(context context.Context, input MemberInput, role sec.UserRole) (*auth.User, error) {
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("registration_service_hash_failed: %w", err)
	}

	challenge := auth.NewOTPChallenge()

	// Time-sortable ID to prevent PG index fragmentation.
	user := &auth.User{
		ID:             uuidv7.Must(),
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		Email:          auth.NormalizeEmail(input.Email),
		PasswordHash:   pointer.To(hashedPassword),
		Role:           role,
		Status:         auth.StatusActive,
		IsVerified:     false,
		OTP:            &challenge,
		Provider:       auth.ProviderLocal,
		AcceptedTerms:  input.AcceptedTerms,
		MarketingOptIn: input.MarketingOptIn,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	if err := service.otpSender.SendOTP(context, user.Email, challenge.Code); err != nil {
		ctxutil.GetLogger(context).Error("registration_otp_delivery_failed",
			slog.String("email", user.Email),
			slog.Any("error", err),
		)
	}

	return user, nil
}

// # Member Enrollment

// MemberInput holds the data required to enroll a new member account.
type MemberInput struct {
	FirstName      string
	LastName       string
	Email          string
	Password       string
	AcceptedTerms  bool
	MarketingOptIn bool
}

/*
RegisterMember enrolls a standard member account.

Description: Validates consent, hashes the password, persists the account in
the unverified state with a pending OTP challenge, and mails the code. No
tokens are issued; the first session starts after OTP verification.

Parameters:
  - context: context.Context
  - input: MemberInput

Returns:
  - *auth.PublicProfile: Created account projection
  - err: ValidationError (consent), Conflict (duplicate email), or storage errors
*/
func (service *Service) RegisterMember(context context.Context, input MemberInput) (*auth.PublicProfile, error) {
	if !input.AcceptedTerms {
		return nil, apperr.ValidationError("You must accept the terms and conditions")
	}

	if err := service.ensureEmailAvailable(context, auth.NormalizeEmail(input.Email)); err != nil {
		return nil, err
	}

	user, err := service.createUnverifiedUser(context, input, sec.RoleMember)
	if err != nil {
		return nil, err
	}

	profile := user.Public()
	return &profile, nil
}

// # Employer Enrollment

// EmployerInput extends member enrollment with company details.
type EmployerInput struct {
	MemberInput

	CompanyName string
	Country     string
	City        string
	CompanySize string
	Plan        string
	Telephone   string
	ProfileURL  string
}

/*
RegisterEmployer enrolls an employer account together with its company record.

Description: Creates the account exactly like a member enrollment but with
the employer role, then persists the company and employer link atomically.
The account still requires OTP verification before its first session.

Parameters:
  - context: context.Context
  - input: EmployerInput

Returns:
  - *auth.PublicProfile: Created account projection
  - err: ValidationError, Conflict, or storage errors
*/
func (service *Service) RegisterEmployer(context context.Context, input EmployerInput) (*auth.PublicProfile, error) {
	if !input.AcceptedTerms {
		return nil, apperr.ValidationError("You must accept the terms and conditions")
	}

	if err := service.ensureEmailAvailable(context, auth.NormalizeEmail(input.Email)); err != nil {
		return nil, err
	}

	user, err := service.createUnverifiedUser(context, input.MemberInput, sec.RoleEmployer)
	if err != nil {
		return nil, err
	}

	plan := input.Plan
	if plan == "" {
		plan = PlanFree
	}

	company := &Company{
		ID:      uuidv7.Must(),
		Name:    strings.TrimSpace(input.CompanyName),
		Country: input.Country,
		City:    input.City,
		Size:    input.CompanySize,
	}

	employer := &Employer{
		ID:         uuidv7.Must(),
		UserID:     user.ID,
		CompanyID:  company.ID,
		Plan:       plan,
		Telephone:  input.Telephone,
		ProfileURL: input.ProfileURL,
	}

	if err := service.employerRepository.CreateEmployerProfile(context, employer, company); err != nil {
		return nil, fmt.Errorf("registration_service_employer_profile_failed: %w", err)
	}

	profile := user.Public()
	return &profile, nil
}

// # Social Sign-In

// SocialInput holds the verified identity asserted by a social provider.
//
// The transport layer is expected to have authenticated the provider
// assertion; this service trusts the email it carries.
type SocialInput struct {
	Email     string
	Name      string
	AvatarURL string
	Provider  auth.AuthProvider
}

// SocialSession is the outcome of a social sign-in: a token pair plus the
// account it belongs to.
type SocialSession struct {
	Tokens TokenResult        `json:"tokens"`
	User   auth.PublicProfile `json:"user"`
}

// TokenResult mirrors [auth.TokenPair] for transport.
type TokenResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

/*
RegisterSocial signs a user in via a social identity, creating the account
on first contact.

Description: An existing account gets a fresh token pair (unless blocked).
A new account is created already verified, with no password, carrying the
provider identity, and receives its first token pair immediately.

Parameters:
  - context: context.Context
  - input: SocialInput

Returns:
  - *SocialSession: Token pair and account projection
  - err: Forbidden (blocked account) or storage failures
*/
func (service *Service) RegisterSocial(context context.Context, input SocialInput) (*SocialSession, error) {
	email := auth.NormalizeEmail(input.Email)

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, err
	}

	if user == nil {
		firstName, lastName := splitName(input.Name)

		user = &auth.User{
			ID:            uuidv7.Must(),
			FirstName:     firstName,
			LastName:      lastName,
			Email:         email,
			Role:          sec.RoleMember,
			Status:        auth.StatusActive,
			IsVerified:    true, // The provider already verified the mailbox.
			Provider:      input.Provider,
			AvatarURL:     input.AvatarURL,
			AcceptedTerms: true,
		}

		if err := service.userRepository.Create(context, user); err != nil {
			return nil, err
		}
	} else if user.Status == auth.StatusBlocked {
		return nil, apperr.Forbidden("Your account has been blocked. Please contact support.")
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, string(user.Role), false)
	if err != nil {
		return nil, fmt.Errorf("registration_service_social_access_token_failed: %w", err)
	}

	refreshToken, err := service.tokenProvider.GenerateRefreshToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("registration_service_social_refresh_token_failed: %w", err)
	}

	if err := service.userRepository.SetTokens(context, user.ID, accessToken, refreshToken); err != nil {
		return nil, fmt.Errorf("registration_service_social_store_tokens_failed: %w", err)
	}

	return &SocialSession{
		Tokens: TokenResult{AccessToken: accessToken, RefreshToken: refreshToken},
		User:   user.Public(),
	}, nil
}

// splitName divides a provider-supplied display name into first and last
// parts. Everything after the first word becomes the last name.
func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
