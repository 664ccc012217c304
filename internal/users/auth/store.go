// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Mutation methods that touch the OTP challenge or the token pair always
// write both paired columns in one statement, so a reader can never observe
// a code without its expiry or an access token without its refresh sibling.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string (already normalized to lowercase)

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict on duplicate email, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		SetOTP replaces the pending verification challenge for the user.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - challenge: OTPChallenge

		Returns:
		  - error: Persistence failures
	*/
	SetOTP(context context.Context, userID string, challenge OTPChallenge) error

	/*
		SetTokens stores a freshly issued access/refresh token pair.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - accessToken: string
		  - refreshToken: string

		Returns:
		  - error: Persistence failures
	*/
	SetTokens(context context.Context, userID, accessToken, refreshToken string) error

	/*
		SetAccessToken replaces only the stored access token, leaving the
		refresh token untouched. Used by the refresh flow.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - accessToken: string

		Returns:
		  - error: Persistence failures
	*/
	SetAccessToken(context context.Context, userID, accessToken string) error

	/*
		ClearTokens revokes the stored token pair by nulling both columns.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	ClearTokens(context context.Context, userID string) error

	/*
		MarkVerified flips the account to verified, consumes the pending OTP
		challenge, and stores the first token pair, all in one update.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - accessToken: string
		  - refreshToken: string

		Returns:
		  - error: Persistence failures
	*/
	MarkVerified(context context.Context, userID, accessToken, refreshToken string) error

	/*
		ResetPassword replaces the password hash and clears any pending OTP
		challenge in the same update.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	ResetPassword(context context.Context, userID, newHash string) error
}
