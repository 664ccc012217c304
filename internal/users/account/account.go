// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account implements administrative account management.

It provides the admin-facing directory of registered users (search and
pagination, backed by a Redis listing cache) and the moderation switch for
blocking and unblocking accounts.

# Architecture

  - Entities: AccountSummary (DTO over the auth.User row).
  - Domain: This package depends on the auth package for statuses and roles.
  - Caching: Listing pages are cached; any status change invalidates them.
*/
package account

import (
	"context"
	"time"

	"github.com/taibuivan/worklink/internal/platform/sec"
	"github.com/taibuivan/worklink/internal/users/auth"
	"github.com/taibuivan/worklink/pkg/pagination"
)

// # Domain Entities

// AccountSummary is the admin-directory projection of a user account.
// It omits credentials, tokens, and the OTP challenge for transport.
type AccountSummary struct {
	ID         string            `json:"id"`
	FirstName  string            `json:"first_name"`
	LastName   string            `json:"last_name"`
	Email      string            `json:"email"`
	Role       sec.UserRole      `json:"role"`
	Status     auth.UserStatus   `json:"status"`
	IsVerified bool              `json:"is_verified"`
	Provider   auth.AuthProvider `json:"provider"`
	AvatarURL  string            `json:"avatar_url,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// ListFilter narrows the admin directory query.
type ListFilter struct {
	// Search matches name and email, case-insensitively. Empty means all.
	Search string

	pagination.Params
}

// # Repository Contracts

// AccountRepository defines the persistence contract for the admin directory.
type AccountRepository interface {
	/*
		List returns one page of non-blocked accounts plus the total count
		matching the filter.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter

		Returns:
		  - []AccountSummary: Page of matching accounts
		  - int: Total matching accounts across all pages
		  - error: Storage failures
	*/
	List(context context.Context, filter ListFilter) ([]AccountSummary, int, error)

	/*
		UpdateStatus sets the administrative standing of an account.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - status: auth.UserStatus

		Returns:
		  - *AccountSummary: Updated account projection
		  - error: apperr.NotFound or storage failures
	*/
	UpdateStatus(context context.Context, userID string, status auth.UserStatus) (*AccountSummary, error)
}
