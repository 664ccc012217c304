// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/worklink/internal/platform/apperr"
	"github.com/taibuivan/worklink/internal/platform/sec"
	"github.com/taibuivan/worklink/internal/users/auth"
)

// # Test Doubles

// fakeUserRepository is an in-memory UserRepository for service tests.
type fakeUserRepository struct {
	users map[string]*auth.User // keyed by email
}

func newFakeUserRepository(users ...*auth.User) *fakeUserRepository {
	repo := &fakeUserRepository{users: map[string]*auth.User{}}
	for _, user := range users {
		repo.users[user.Email] = user
	}
	return repo
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if user, ok := repo.users[email]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, ok := repo.users[user.Email]; ok {
		return apperr.Conflict("User already exists")
	}
	repo.users[user.Email] = user
	return nil
}

func (repo *fakeUserRepository) SetOTP(_ context.Context, userID string, challenge auth.OTPChallenge) error {
	user := repo.byID(userID)
	user.OTP = &challenge
	return nil
}

func (repo *fakeUserRepository) SetTokens(_ context.Context, userID, accessToken, refreshToken string) error {
	user := repo.byID(userID)
	user.AccessToken = &accessToken
	user.RefreshToken = &refreshToken
	return nil
}

func (repo *fakeUserRepository) SetAccessToken(_ context.Context, userID, accessToken string) error {
	user := repo.byID(userID)
	user.AccessToken = &accessToken
	return nil
}

func (repo *fakeUserRepository) ClearTokens(_ context.Context, userID string) error {
	user := repo.byID(userID)
	user.AccessToken = nil
	user.RefreshToken = nil
	return nil
}

func (repo *fakeUserRepository) MarkVerified(_ context.Context, userID, accessToken, refreshToken string) error {
	user := repo.byID(userID)
	user.IsVerified = true
	user.OTP = nil
	user.AccessToken = &accessToken
	user.RefreshToken = &refreshToken
	return nil
}

func (repo *fakeUserRepository) ResetPassword(_ context.Context, userID, newHash string) error {
	user := repo.byID(userID)
	user.PasswordHash = &newHash
	user.OTP = nil
	return nil
}

func (repo *fakeUserRepository) byID(userID string) *auth.User {
	for _, user := range repo.users {
		if user.ID == userID {
			return user
		}
	}
	return nil
}

// fakeOTPSender records dispatched codes instead of sending email.
type fakeOTPSender struct {
	recipients []string
	codes      []string
	err        error
}

func (sender *fakeOTPSender) SendOTP(_ context.Context, recipient, code string) error {
	if sender.err != nil {
		return sender.err
	}
	sender.recipients = append(sender.recipients, recipient)
	sender.codes = append(sender.codes, code)
	return nil
}

// # Fixtures

func newTokenService(t *testing.T) *sec.TokenService {
	t.Helper()

	service, err := sec.NewTokenService(sec.TokenConfig{
		AccessSecret:      "test-access-secret",
		RefreshSecret:     "test-refresh-secret",
		Issuer:            "worklink.test",
		AccessTTL:         2 * time.Hour,
		AccessRememberTTL: 30 * 24 * time.Hour,
		RefreshTTL:        30 * 24 * time.Hour,
	})
	require.NoError(t, err)

	return service
}

func hashOf(t *testing.T, password string) *string {
	t.Helper()

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	return &hash
}

func verifiedUser(t *testing.T) *auth.User {
	t.Helper()

	return &auth.User{
		ID:           "user-1",
		FirstName:    "Linh",
		LastName:     "Tran",
		Email:        "linh@example.com",
		PasswordHash: hashOf(t, "correct-horse"),
		Role:         sec.RoleMember,
		Status:       auth.StatusActive,
		IsVerified:   true,
		Provider:     auth.ProviderLocal,
	}
}

// # Login

/*
TestLogin_Success verifies that correct credentials on a verified account
yield a stored token pair.
*/
func TestLogin_Success(t *testing.T) {
	user := verifiedUser(t)
	repo := newFakeUserRepository(user)
	service := auth.NewService(repo, newTokenService(t), &fakeOTPSender{})

	result, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "linh@example.com",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.False(t, result.RequiresVerification)
	require.NotNil(t, result.Tokens)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)

	// Tokens must be persisted on the user row for later revocation checks.
	stored := repo.users["linh@example.com"]
	require.NotNil(t, stored.AccessToken)
	assert.Equal(t, result.Tokens.AccessToken, *stored.AccessToken)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, result.Tokens.RefreshToken, *stored.RefreshToken)
}

/*
TestLogin_NormalizesEmail verifies that lookup is case-insensitive on email.
*/
func TestLogin_NormalizesEmail(t *testing.T) {
	repo := newFakeUserRepository(verifiedUser(t))
	service := auth.NewService(repo, newTokenService(t), &fakeOTPSender{})

	result, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "  LINH@Example.COM ",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.NotNil(t, result.Tokens)
}

/*
TestLogin_WrongPassword verifies the Unauthorized outcome on a bad password.
*/
func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepository(verifiedUser(t))
	service := auth.NewService(repo, newTokenService(t), &fakeOTPSender{})

	_, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "linh@example.com",
		Password: "wrong",
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeUnauthorized, appError.Code)
}

/*
TestLogin_UnknownEmail verifies the NotFound outcome for an unknown account.
*/
func TestLogin_UnknownEmail(t *testing.T) {
	repo := newFakeUserRepository()
	service := auth.NewService(repo, newTokenService(t), &fakeOTPSender{})

	_, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	assert.True(t, apperr.IsNotFound(err))
}

/*
TestLogin_BlockedAccount verifies that a blocked account is rejected before
the password is even checked.
*/
func TestLogin_BlockedAccount(t *testing.T) {
	user := verifiedUser(t)
	user.Status = auth.StatusBlocked
	repo := newFakeUserRepository(user)
	service := auth.NewService(repo, newTokenService(t), &fakeOTPSender{})

	_, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "linh@example.com",
		Password: "correct-horse",
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeForbidden, appError.Code)
}

/*
TestLogin_UnverifiedTriggersOTP verifies that an unverified account gets a
fresh mailed challenge and no tokens.
*/
func TestLogin_UnverifiedTriggersOTP(t *testing.T) {
	user := verifiedUser(t)
	user.IsVerified = false
	repo := newFakeUserRepository(user)
	sender := &fakeOTPSender{}
	service := auth.NewService(repo, newTokenService(t), sender)

	result, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "linh@example.com",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.True(t, result.RequiresVerification)
	assert.Nil(t, result.Tokens)
	assert.Equal(t, "linh@example.com", result.User.Email)

	// A challenge was stored and its exact code dispatched.
	stored := repo.users["linh@example.com"]
	require.NotNil(t, stored.OTP)
	require.Len(t, sender.codes, 1)
	assert.Equal(t, stored.OTP.Code, sender.codes[0])
	assert.Len(t, sender.codes[0], sec.OTPDigits)

	// No tokens exist while unverified.
	assert.Nil(t, stored.AccessToken)
	assert.Nil(t, stored.RefreshToken)
}

/*
TestLogin_OTPSurvivesMailFailure verifies that a delivery failure does not
invalidate the stored challenge or fail the login call.
*/
func TestLogin_OTPSurvivesMailFailure(t *testing.T) {
	user := verifiedUser(t)
	user.IsVerified = false
	repo := newFakeUserRepository(user)
	sender := &fakeOTPSender{err: assert.AnError}
	service := auth.NewService(repo, newTokenService(t), sender)

	result, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "linh@example.com",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.True(t, result.RequiresVerification)
	assert.NotNil(t, repo.users["linh@example.com"].OTP)
}

/*
TestLogin_SocialAccountHasNoPassword verifies that a password login against
a social-only account (no stored hash) is rejected as a validation failure,
distinct from the Unauthorized returned for a wrong password.
*/
func TestLogin_SocialAccountHasNoPassword(t *testing.T) {
	user := verifiedUser(t)
	user.PasswordHash = nil
	user.Provider = auth.ProviderGoogle
	repo := newFakeUserRepository(user)
	service := auth.NewService(repo, newTokenService(t), &fakeOTPSender{})

	_, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "linh@example.com",
		Password: "anything",
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeValidation, appError.Code)
}

// # OTP Verification

/*
TestVerifyOTP_Success verifies the happy path: matching code flips the
account to verified, consumes the challenge, and issues tokens.
*/
func TestVerifyOTP_Success(t *testing.T) {
	user := verifiedUser(t)
	user.IsVerified = false
	user.OTP = &auth.OTPChallenge{Code: "123456", ExpiresAt: time.Now().Add(auth.OTPTTL)}
	repo := newFakeUserRepository(user)
	service := auth.NewService(repo, newTokenService(t), &fakeOTPSender{})

	tokens, err := service.VerifyOTP(context.Background(), "linh@example.com", "123456")

	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	stored := repo.users["linh@example.com"]
	assert.True(t, stored.IsVerified)
	assert.Nil(t, stored.OTP, "challenge must be single-use")
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, tokens.RefreshToken, *stored.RefreshToken)
}

/*
TestVerifyOTP_WrongCode verifies rejection of a non-matching code.
*/
func TestVerifyOTP_WrongCode(t *testing.T) {
	user := verifiedUser(t)
	user.IsVerified = false
	user.OTP = &auth.OTPChallenge{Code: "123456", ExpiresAt: time.Now().Add(auth.OTPTTL)}
	repo := newFakeUserRepository(user)
	service := auth.NewService(repo, newTokenService(t), &fakeOTPSender{})

	_, err := service.VerifyOTP(context.Background(), "linh@example.com", "654321")

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeValidation, appError.Code)
	assert.False(t, repo.users["linh@example.com"].IsVerified)
}

/*
TestVerifyOTP_Expired verifies rejection of an expired challenge.
*/
func TestVerifyOTP_Expired(t *testing.T) {
	user := verifiedUser(t)
	user.IsVerified = false
	user.OTP = &auth.OTPChallenge{Code: "123456", ExpiresAt: time.Now().Add(-time.Minute)}
	repo := newFakeUserRepository(user)
	service := auth.NewService(repo, newTokenService(t), &fakeOTPSender{})

	_, err := service.VerifyOTP(context.Background(), "linh@example.com", "123456")

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeValidation, appError.Code)
}

/*
TestVerifyOTP_NoChallenge verifies rejection when no challenge is pending.
*/
func TestVerifyOTP_NoChallenge(t *testing.T) {
	user := verifiedUser(t)
	repo := newFakeUserRepository(user)
	service := auth.NewService(repo, newTokenService(t), &fakeOTPSender{})

	_, err := service.VerifyOTP(context.Background(), "linh@example.com", "123456")

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeValidation, appError.Code)
}

// # Token Refresh

/*
TestRefreshAccessToken_Success verifies that a stored refresh token mints a
new access token and persists it.
*/
func TestRefreshAccessToken_Success(t *testing.T) {
	user := verifiedUser(t)
	repo := newFakeUserRepository(user)
	tokens := newTokenService(t)
	service := auth.NewService(repo, tokens, &fakeOTPSender{})

	// Establish a session first.
	result, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "linh@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	accessToken, err := service.RefreshAccessToken(context.Background(), result.Tokens.RefreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	stored := repo.users["linh@example.com"]
	require.NotNil(t, stored.AccessToken)
	assert.Equal(t, accessToken, *stored.AccessToken)

	// Refresh rotates the access token only; the refresh token survives.
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, result.Tokens.RefreshToken, *stored.RefreshToken)
}

/*
TestRefreshAccessToken_RevokedByLogout verifies that a cryptographically
valid refresh token is rejected once logout cleared the stored pair.
*/
func TestRefreshAccessToken_RevokedByLogout(t *testing.T) {
	user := verifiedUser(t)
	repo := newFakeUserRepository(user)
	service := auth.NewService(repo, newTokenService(t), &fakeOTPSender{})

	result, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "linh@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), "linh@example.com"))

	_, err = service.RefreshAccessToken(context.Background(), result.Tokens.RefreshToken)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeUnauthorized, appError.Code)
}

/*
TestRefreshAccessToken_SupersededByNewLogin verifies that an older refresh
token dies when a newer login replaces the stored pair.
*/
func TestRefreshAccessToken_SupersededByNewLogin(t *testing.T) {
	user := verifiedUser(t)
	repo := newFakeUserRepository(user)
	service := auth.NewService(repo, newTokenService(t), &fakeOTPSender{})

	first, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "linh@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	// Signing happens at second granularity; make sure the second login
	// produces a distinct token.
	time.Sleep(1100 * time.Millisecond)

	second, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "linh@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotEqual(t, first.Tokens.RefreshToken, second.Tokens.RefreshToken)

	_, err = service.RefreshAccessToken(context.Background(), first.Tokens.RefreshToken)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeUnauthorized, appError.Code)

	// The current session keeps working.
	_, err = service.RefreshAccessToken(context.Background(), second.Tokens.RefreshToken)
	assert.NoError(t, err)
}

/*
TestRefreshAccessToken_Garbage verifies that an unparseable token fails closed.
*/
func TestRefreshAccessToken_Garbage(t *testing.T) {
	repo := newFakeUserRepository(verifiedUser(t))
	service := auth.NewService(repo, newTokenService(t), &fakeOTPSender{})

	_, err := service.RefreshAccessToken(context.Background(), "not-a-jwt")

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeUnauthorized, appError.Code)
}

// # Logout

/*
TestLogout_ClearsTokens verifies that logout nulls both stored tokens.
*/
func TestLogout_ClearsTokens(t *testing.T) {
	user := verifiedUser(t)
	repo := newFakeUserRepository(user)
	service := auth.NewService(repo, newTokenService(t), &fakeOTPSender{})

	_, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "linh@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), "linh@example.com"))

	stored := repo.users["linh@example.com"]
	assert.Nil(t, stored.AccessToken)
	assert.Nil(t, stored.RefreshToken)
}

// # Password Recovery

/*
TestForgetPassword_StoresAndMailsChallenge verifies the recovery kickoff.
*/
func TestForgetPassword_StoresAndMailsChallenge(t *testing.T) {
	user := verifiedUser(t)
	repo := newFakeUserRepository(user)
	sender := &fakeOTPSender{}
	service := auth.NewService(repo, newTokenService(t), sender)

	require.NoError(t, service.ForgetPassword(context.Background(), "linh@example.com"))

	stored := repo.users["linh@example.com"]
	require.NotNil(t, stored.OTP)
	require.Len(t, sender.codes, 1)
	assert.Equal(t, stored.OTP.Code, sender.codes[0])
	assert.Equal(t, []string{"linh@example.com"}, sender.recipients)
}

/*
TestForgetPassword_UnknownEmail verifies the NotFound outcome.
*/
func TestForgetPassword_UnknownEmail(t *testing.T) {
	repo := newFakeUserRepository()
	service := auth.NewService(repo, newTokenService(t), &fakeOTPSender{})

	err := service.ForgetPassword(context.Background(), "ghost@example.com")

	assert.True(t, apperr.IsNotFound(err))
}

/*
TestResetPassword_ReplacesHashAndClearsOTP verifies that the new password
takes effect and any pending challenge is destroyed.
*/
func TestResetPassword_ReplacesHashAndClearsOTP(t *testing.T) {
	user := verifiedUser(t)
	user.OTP = &auth.OTPChallenge{Code: "123456", ExpiresAt: time.Now().Add(auth.OTPTTL)}
	repo := newFakeUserRepository(user)
	service := auth.NewService(repo, newTokenService(t), &fakeOTPSender{})

	require.NoError(t, service.ResetPassword(context.Background(), "linh@example.com", "new-password"))

	stored := repo.users["linh@example.com"]
	assert.Nil(t, stored.OTP)
	require.NotNil(t, stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("new-password", *stored.PasswordHash))
	assert.False(t, sec.CheckPasswordHash("correct-horse", *stored.PasswordHash))
}

// # Profile

/*
TestGetProfile verifies the self-view projection.
*/
func TestGetProfile(t *testing.T) {
	user := verifiedUser(t)
	repo := newFakeUserRepository(user)
	service := auth.NewService(repo, newTokenService(t), &fakeOTPSender{})

	profile, err := service.GetProfile(context.Background(), "linh@example.com")

	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.ID)
	assert.Equal(t, "Linh", profile.FirstName)
	assert.Equal(t, sec.RoleMember, profile.Role)
	assert.True(t, profile.IsVerified)
}
