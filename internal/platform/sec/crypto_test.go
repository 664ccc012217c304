// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/worklink/internal/platform/sec"
)

/*
TestHashPassword verifies hashing and constant-time verification.
*/
func TestHashPassword(t *testing.T) {
	hash, err := sec.HashPassword("secret-pass")
	require.NoError(t, err)

	// The hash must never equal the plaintext.
	assert.NotEqual(t, "secret-pass", hash)

	assert.True(t, sec.CheckPasswordHash("secret-pass", hash))
	assert.False(t, sec.CheckPasswordHash("wrong-pass", hash))
	assert.False(t, sec.CheckPasswordHash("secret-pass", "not-a-bcrypt-hash"))
}

/*
TestHashPassword_UniqueSalts verifies that equal inputs produce distinct hashes.
*/
func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := sec.HashPassword("secret-pass")
	require.NoError(t, err)

	second, err := sec.HashPassword("secret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

/*
TestGenerateOTP verifies the passcode format and value range.
*/
func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := sec.GenerateOTP()

		require.Len(t, code, sec.OTPDigits)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}
