// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/worklink/internal/platform/cache"
	"github.com/taibuivan/worklink/internal/platform/constants"
	"github.com/taibuivan/worklink/internal/users/auth"
)

// # Service Layer

// ListCache is the caching contract the directory needs. Satisfied by
// [cache.Cache]; defined here so tests can swap in a fake.
type ListCache interface {
	Get(context context.Context, key string, target interface{}) bool
	Set(context context.Context, key string, value interface{}, ttl time.Duration)
	DeleteByPrefix(context context.Context, prefix string)
}

// Service orchestrates the admin-facing account directory and moderation.
type Service struct {
	accountRepository AccountRepository
	listCache         ListCache
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(accountRepo AccountRepository, listCache ListCache, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		listCache:         listCache,
		logger:            logger,
	}
}

// DirectoryPage is one cached page of the admin directory.
type DirectoryPage struct {
	Users []AccountSummary `json:"users"`
	Total int              `json:"total"`
}

// listCacheKey derives the cache key for one filter combination. The key
// embeds every query parameter so distinct pages never collide.
func listCacheKey(filter ListFilter) string {
	return fmt.Sprintf("%s%s:%d:%d",
		constants.RedisPrefixUserList, filter.Search, filter.Page, filter.Limit)
}

// # Directory

/*
ListUsers returns one page of the admin account directory.

Description: Cache-aside read over the account table. Blocked accounts are
excluded from the directory; they surface only through support tooling.
Pages are cached for one minute and invalidated by any status change.

Parameters:
  - context: context.Context
  - filter: ListFilter

Returns:
  - *DirectoryPage: Page of accounts plus the total count
  - err: Storage failures
*/
func (service *Service) ListUsers(context context.Context, filter ListFilter) (*DirectoryPage, error) {
	key := listCacheKey(filter)

	var page DirectoryPage
	if service.listCache.Get(context, key, &page) {
		return &page, nil
	}

	users, total, err := service.accountRepository.List(context, filter)
	if err != nil {
		return nil, fmt.Errorf("account_service_list_failed: %w", err)
	}

	page = DirectoryPage{Users: users, Total: total}
	service.listCache.Set(context, key, page, cache.TTLMinute)

	return &page, nil
}

// # Moderation

/*
UpdateStatus blocks or unblocks an account.

Description: Applies the new status and invalidates every cached directory
page. Blocking takes effect on the next credential or token check; already
issued JWTs are not recalled here.

Parameters:
  - context: context.Context
  - userID: string
  - status: auth.UserStatus

Returns:
  - *AccountSummary: Updated account projection
  - err: NotFound or storage failures
*/
func (service *Service) UpdateStatus(context context.Context, userID string, status auth.UserStatus) (*AccountSummary, error) {
	summary, err := service.accountRepository.UpdateStatus(context, userID, status)
	if err != nil {
		return nil, err
	}

	service.listCache.DeleteByPrefix(context, constants.RedisPrefixUserList)

	service.logger.Warn("user_status_changed",
		slog.String("user_id", userID),
		slog.String("status", string(status)),
	)

	return summary, nil
}
