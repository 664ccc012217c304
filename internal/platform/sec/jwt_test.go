// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/worklink/internal/platform/apperr"
	"github.com/taibuivan/worklink/internal/platform/sec"
)

func newTokenService(t *testing.T) *sec.TokenService {
	t.Helper()

	service, err := sec.NewTokenService(sec.TokenConfig{
		AccessSecret:      "unit-test-access-secret",
		RefreshSecret:     "unit-test-refresh-secret",
		Issuer:            "worklink.test",
		AccessTTL:         2 * time.Hour,
		AccessRememberTTL: 30 * 24 * time.Hour,
		RefreshTTL:        30 * 24 * time.Hour,
	})
	require.NoError(t, err)

	return service
}

/*
TestTokenService_Config verifies the constructor's secret hygiene rules.
*/
func TestTokenService_Config(t *testing.T) {
	// Empty secrets are refused.
	_, err := sec.NewTokenService(sec.TokenConfig{AccessSecret: "", RefreshSecret: "x"})
	assert.Error(t, err)

	// Shared secrets are refused: an access token must never verify as a
	// refresh token.
	_, err = sec.NewTokenService(sec.TokenConfig{AccessSecret: "same", RefreshSecret: "same"})
	assert.Error(t, err)
}

/*
TestTokenService_AccessRoundTrip verifies sign-then-verify with claim integrity.
*/
func TestTokenService_AccessRoundTrip(t *testing.T) {
	service := newTokenService(t)

	token, err := service.GenerateAccessToken("user-1", "linh@example.com", "member", false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "linh@example.com", claims.Email)
	assert.Equal(t, "member", claims.Role)
	assert.Equal(t, "worklink.test", claims.Issuer)
}

/*
TestTokenService_RefreshRoundTrip verifies the refresh token path.
*/
func TestTokenService_RefreshRoundTrip(t *testing.T) {
	service := newTokenService(t)

	token, err := service.GenerateRefreshToken("user-1", "linh@example.com", "member")
	require.NoError(t, err)

	claims, err := service.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

/*
TestTokenService_CrossVerificationFails verifies that a token signed for one
purpose never verifies as the other.
*/
func TestTokenService_CrossVerificationFails(t *testing.T) {
	service := newTokenService(t)

	accessToken, err := service.GenerateAccessToken("user-1", "linh@example.com", "member", false)
	require.NoError(t, err)

	refreshToken, err := service.GenerateRefreshToken("user-1", "linh@example.com", "member")
	require.NoError(t, err)

	_, err = service.VerifyRefreshToken(accessToken)
	assert.Error(t, err)

	_, err = service.VerifyAccessToken(refreshToken)
	assert.Error(t, err)
}

/*
TestTokenService_ExpiredToken verifies that an expired token fails closed
with an Unauthorized error.
*/
func TestTokenService_ExpiredToken(t *testing.T) {
	service, err := sec.NewTokenService(sec.TokenConfig{
		AccessSecret:  "unit-test-access-secret",
		RefreshSecret: "unit-test-refresh-secret",
		Issuer:        "worklink.test",
		AccessTTL:     -time.Minute, // Already expired at issuance.
		RefreshTTL:    time.Hour,
	})
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-1", "linh@example.com", "member", false)
	require.NoError(t, err)

	_, err = service.VerifyAccessToken(token)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeUnauthorized, ae.Code)
}

/*
TestTokenService_GarbageToken verifies that unparseable input fails closed.
*/
func TestTokenService_GarbageToken(t *testing.T) {
	service := newTokenService(t)

	for _, input := range []string{"", "garbage", "a.b.c"} {
		_, err := service.VerifyAccessToken(input)
		assert.Error(t, err, "input %q must be rejected", input)
	}
}

/*
TestTokenService_WrongSecret verifies that a token signed elsewhere is rejected.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	service := newTokenService(t)

	other, err := sec.NewTokenService(sec.TokenConfig{
		AccessSecret:  "a-completely-different-secret",
		RefreshSecret: "another-different-secret",
		Issuer:        "worklink.test",
		AccessTTL:     time.Hour,
		RefreshTTL:    time.Hour,
	})
	require.NoError(t, err)

	foreign, err := other.GenerateAccessToken("user-1", "linh@example.com", "member", false)
	require.NoError(t, err)

	_, err = service.VerifyAccessToken(foreign)
	assert.Error(t, err)
}
