// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// PostgreSQL implementation of the auth storage contracts.
//
// # Architecture
//
// Repositories here are strictly separated from domain logic. They implement
// the domain-defined [UserRepository] interface using the [pgxpool.Pool]
// connection manager.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, SQLSTATE 23505) are mapped to
// domain-friendly [apperr.AppError] values via [dberr.Wrap] so callers never
// see storage implementation details.
package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/worklink/internal/platform/dberr"
)

// # User Repository

// userColumns is the canonical SELECT list shared by every lookup query.
const userColumns = `
	id, firstname, lastname, email, passwordhash, role, status, isverified,
	otpcode, otpexpiresat, accesstoken, refreshtoken,
	provider, avatarurl, acceptedterms, marketingoptin, createdat, updatedat`

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// scanUser hydrates a User from a row following the userColumns order.
//
// The OTP code/expiry columns are reassembled into a single [OTPChallenge]
// value; both must be present for the challenge to exist.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	var otpCode *string
	var otpExpiresAt *time.Time

	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
		&user.IsVerified,
		&otpCode,
		&otpExpiresAt,
		&user.AccessToken,
		&user.RefreshToken,
		&user.Provider,
		&user.AvatarURL,
		&user.AcceptedTerms,
		&user.MarketingOptIn,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if otpCode != nil && otpExpiresAt != nil {
		user.OTP = &OTPChallenge{Code: *otpCode, ExpiresAt: *otpExpiresAt}
	}

	return user, nil
}

/*
Create persists a new user record into the users.account table.

Description: Deep-persists account state including any initial OTP challenge,
initializing timestamps when not provided.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, firstname, lastname, email, passwordhash, role, status, isverified,
			otpcode, otpexpiresat, provider, avatarurl, acceptedterms, marketingoptin,
			createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	var otpCode *string
	var otpExpiresAt *time.Time
	if user.OTP != nil {
		otpCode = &user.OTP.Code
		otpExpiresAt = &user.OTP.ExpiresAt
	}

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.IsVerified,
		otpCode,
		otpExpiresAt,
		user.Provider,
		user.AvatarURL,
		user.AcceptedTerms,
		user.MarketingOptIn,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "User")
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string (already lowercased by the service layer)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM users.account WHERE email = $1`

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM users.account WHERE id = $1`

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

/*
SetOTP replaces the pending verification challenge for the user.

Description: Writes the code and its expiry in a single statement so the
pair is never observed half-set.

Parameters:
  - context: context.Context
  - userID: string
  - challenge: OTPChallenge

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) SetOTP(context context.Context, userID string, challenge OTPChallenge) error {
	const query = `
		UPDATE users.account
		SET otpcode = $2, otpexpiresat = $3, updatedat = $4
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, challenge.Code, challenge.ExpiresAt, time.Now())
	if err != nil {
		return dberr.Wrap(err, "User")
	}

	return nil
}

/*
SetTokens stores a freshly issued access/refresh token pair.

Parameters:
  - context: context.Context
  - userID: string
  - accessToken: string
  - refreshToken: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) SetTokens(context context.Context, userID, accessToken, refreshToken string) error {
	const query = `
		UPDATE users.account
		SET accesstoken = $2, refreshtoken = $3, updatedat = $4
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, accessToken, refreshToken, time.Now())
	if err != nil {
		return dberr.Wrap(err, "User")
	}

	return nil
}

/*
SetAccessToken replaces only the stored access token.

Parameters:
  - context: context.Context
  - userID: string
  - accessToken: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) SetAccessToken(context context.Context, userID, accessToken string) error {
	const query = `
		UPDATE users.account
		SET accesstoken = $2, updatedat = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, accessToken, time.Now())
	if err != nil {
		return dberr.Wrap(err, "User")
	}

	return nil
}

/*
ClearTokens revokes the stored token pair by nulling both columns.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) ClearTokens(context context.Context, userID string) error {
	const query = `
		UPDATE users.account
		SET accesstoken = NULL, refreshtoken = NULL, updatedat = $2
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, time.Now())
	if err != nil {
		return dberr.Wrap(err, "User")
	}

	return nil
}

/*
MarkVerified flips the account to verified, consumes the pending OTP
challenge, and stores the first token pair, all in one update.

Parameters:
  - context: context.Context
  - userID: string
  - accessToken: string
  - refreshToken: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) MarkVerified(context context.Context, userID, accessToken, refreshToken string) error {
	const query = `
		UPDATE users.account
		SET isverified = TRUE,
		    otpcode = NULL, otpexpiresat = NULL,
		    accesstoken = $2, refreshtoken = $3,
		    updatedat = $4
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, accessToken, refreshToken, time.Now())
	if err != nil {
		return dberr.Wrap(err, "User")
	}

	return nil
}

/*
ResetPassword replaces the password hash and clears any pending OTP
challenge in the same update.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) ResetPassword(context context.Context, userID, newHash string) error {
	const query = `
		UPDATE users.account
		SET passwordhash = $2,
		    otpcode = NULL, otpexpiresat = NULL,
		    updatedat = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, newHash, time.Now())
	if err != nil {
		return dberr.Wrap(err, "User")
	}

	return nil
}
