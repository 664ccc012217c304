// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// PostgreSQL implementation of the admin directory storage contract.
package account

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/worklink/internal/platform/dberr"
	"github.com/taibuivan/worklink/internal/users/auth"
)

// # Account Repository

// PostgresAccountRepository implements the AccountRepository interface using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

const summaryColumns = `
	id, firstname, lastname, email, role, status, isverified,
	provider, avatarurl, createdat, updatedat`

/*
List returns one page of non-blocked accounts plus the total matching count.

Description: Search matches first name, last name, and email with a
case-insensitive substring. Results are newest-first; UUIDv7 primary keys
make the id ordering chronological.

Parameters:
  - context: context.Context
  - filter: ListFilter

Returns:
  - []AccountSummary: Page of matching accounts
  - int: Total matching accounts
  - error: Query failures
*/
func (repository *PostgresAccountRepository) List(context context.Context, filter ListFilter) ([]AccountSummary, int, error) {
	const listQuery = `
		SELECT ` + summaryColumns + `
		FROM users.account
		WHERE status != 'BLOCKED'
		  AND ($1 = '' OR firstname ILIKE '%' || $1 || '%'
		       OR lastname ILIKE '%' || $1 || '%'
		       OR email ILIKE '%' || $1 || '%')
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`

	const countQuery = `
		SELECT COUNT(*)
		FROM users.account
		WHERE status != 'BLOCKED'
		  AND ($1 = '' OR firstname ILIKE '%' || $1 || '%'
		       OR lastname ILIKE '%' || $1 || '%'
		       OR email ILIKE '%' || $1 || '%')`

	rows, err := repository.pool.Query(context, listQuery, filter.Search, filter.Limit, filter.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	summaries := []AccountSummary{}
	for rows.Next() {
		var summary AccountSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.FirstName,
			&summary.LastName,
			&summary.Email,
			&summary.Role,
			&summary.Status,
			&summary.IsVerified,
			&summary.Provider,
			&summary.AvatarURL,
			&summary.CreatedAt,
			&summary.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_account_repo_scan_failed: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_rows_failed: %w", err)
	}

	var total int
	if err := repository.pool.QueryRow(context, countQuery, filter.Search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_count_failed: %w", err)
	}

	return summaries, total, nil
}

/*
UpdateStatus sets the administrative standing of an account and returns the
updated projection.

Parameters:
  - context: context.Context
  - userID: string
  - status: auth.UserStatus

Returns:
  - *AccountSummary: Updated account projection
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresAccountRepository) UpdateStatus(context context.Context, userID string, status auth.UserStatus) (*AccountSummary, error) {
	const query = `
		UPDATE users.account
		SET status = $2, updatedat = $3
		WHERE id = $1
		RETURNING ` + summaryColumns

	var summary AccountSummary
	err := repository.pool.QueryRow(context, query, userID, status, time.Now()).Scan(
		&summary.ID,
		&summary.FirstName,
		&summary.LastName,
		&summary.Email,
		&summary.Role,
		&summary.Status,
		&summary.IsVerified,
		&summary.Provider,
		&summary.AvatarURL,
		&summary.CreatedAt,
		&summary.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return &summary, nil
}
