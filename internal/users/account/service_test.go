// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/worklink/internal/platform/apperr"
	"github.com/taibuivan/worklink/internal/platform/sec"
	"github.com/taibuivan/worklink/internal/users/account"
	"github.com/taibuivan/worklink/internal/users/auth"
	"github.com/taibuivan/worklink/pkg/pagination"
)

// # Test Doubles

// fakeAccountRepository counts queries so cache behavior is observable.
type fakeAccountRepository struct {
	accounts  []account.AccountSummary
	listCalls int
}

func (repo *fakeAccountRepository) List(_ context.Context, filter account.ListFilter) ([]account.AccountSummary, int, error) {
	repo.listCalls++

	matched := []account.AccountSummary{}
	for _, summary := range repo.accounts {
		if summary.Status == auth.StatusBlocked {
			continue
		}
		matched = append(matched, summary)
	}

	return matched, len(matched), nil
}

func (repo *fakeAccountRepository) UpdateStatus(_ context.Context, userID string, status auth.UserStatus) (*account.AccountSummary, error) {
	for i := range repo.accounts {
		if repo.accounts[i].ID == userID {
			repo.accounts[i].Status = status
			copied := repo.accounts[i]
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

// fakeListCache is a map-backed account.ListCache.
type fakeListCache struct {
	entries map[string]account.DirectoryPage
}

func newFakeListCache() *fakeListCache {
	return &fakeListCache{entries: map[string]account.DirectoryPage{}}
}

func (cache *fakeListCache) Get(_ context.Context, key string, target interface{}) bool {
	page, ok := cache.entries[key]
	if !ok {
		return false
	}
	*(target.(*account.DirectoryPage)) = page
	return true
}

func (cache *fakeListCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) {
	cache.entries[key] = value.(account.DirectoryPage)
}

func (cache *fakeListCache) DeleteByPrefix(_ context.Context, _ string) {
	cache.entries = map[string]account.DirectoryPage{}
}

// # Fixtures

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func summaries() []account.AccountSummary {
	return []account.AccountSummary{
		{ID: "user-1", FirstName: "Linh", Email: "linh@example.com", Role: sec.RoleMember, Status: auth.StatusActive},
		{ID: "user-2", FirstName: "Minh", Email: "minh@example.com", Role: sec.RoleEmployer, Status: auth.StatusActive},
		{ID: "user-3", FirstName: "Chi", Email: "chi@example.com", Role: sec.RoleMember, Status: auth.StatusBlocked},
	}
}

func defaultFilter() account.ListFilter {
	return account.ListFilter{Params: pagination.Params{Page: 1, Limit: 20}}
}

// # Directory

/*
TestListUsers_ExcludesBlocked verifies that blocked accounts never appear in
the directory.
*/
func TestListUsers_ExcludesBlocked(t *testing.T) {
	repo := &fakeAccountRepository{accounts: summaries()}
	service := account.NewService(repo, newFakeListCache(), testLogger())

	page, err := service.ListUsers(context.Background(), defaultFilter())

	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	for _, summary := range page.Users {
		assert.NotEqual(t, auth.StatusBlocked, summary.Status)
	}
}

/*
TestListUsers_CachesPages verifies the cache-aside behavior: a repeated
query is served from cache without touching the repository.
*/
func TestListUsers_CachesPages(t *testing.T) {
	repo := &fakeAccountRepository{accounts: summaries()}
	service := account.NewService(repo, newFakeListCache(), testLogger())

	first, err := service.ListUsers(context.Background(), defaultFilter())
	require.NoError(t, err)

	second, err := service.ListUsers(context.Background(), defaultFilter())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listCalls, "second read must hit the cache")
	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, first.Users, second.Users)
}

/*
TestListUsers_DistinctFiltersDistinctKeys verifies that different filter
combinations do not share cache entries.
*/
func TestListUsers_DistinctFiltersDistinctKeys(t *testing.T) {
	repo := &fakeAccountRepository{accounts: summaries()}
	service := account.NewService(repo, newFakeListCache(), testLogger())

	_, err := service.ListUsers(context.Background(), defaultFilter())
	require.NoError(t, err)

	other := defaultFilter()
	other.Search = "minh"
	_, err = service.ListUsers(context.Background(), other)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.listCalls)
}

// # Moderation

/*
TestUpdateStatus_InvalidatesCache verifies that blocking a user flushes the
cached directory so stale pages never survive a moderation action.
*/
func TestUpdateStatus_InvalidatesCache(t *testing.T) {
	repo := &fakeAccountRepository{accounts: summaries()}
	service := account.NewService(repo, newFakeListCache(), testLogger())

	// Warm the cache.
	_, err := service.ListUsers(context.Background(), defaultFilter())
	require.NoError(t, err)

	summary, err := service.UpdateStatus(context.Background(), "user-2", auth.StatusBlocked)
	require.NoError(t, err)
	assert.Equal(t, auth.StatusBlocked, summary.Status)

	// The next read goes back to the repository and sees the change.
	page, err := service.ListUsers(context.Background(), defaultFilter())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
	assert.Equal(t, 1, page.Total)
}

/*
TestUpdateStatus_UnknownUser verifies the NotFound outcome.
*/
func TestUpdateStatus_UnknownUser(t *testing.T) {
	repo := &fakeAccountRepository{accounts: summaries()}
	service := account.NewService(repo, newFakeListCache(), testLogger())

	_, err := service.UpdateStatus(context.Background(), "ghost", auth.StatusBlocked)

	assert.True(t, apperr.IsNotFound(err))
}
