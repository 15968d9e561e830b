package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/jobmarket-api/internal/core"
	"github.com/target/jobmarket-api/internal/domain/model"
	"github.com/target/jobmarket-api/internal/testutil"
)

func TestRedisCacheRepo_CandidateLists(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	repo := NewRedisCacheRepo(client)
	cache := core.NewCandidateCache(core.CandidateCacheOptions{Cache: repo, TTL: time.Minute})

	t.Run("miss before put", func(t *testing.T) {
		got, hit, err := cache.Get(ctx, "job-a", "v1")
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Nil(t, got)
	})

	t.Run("put stores list under job key with ttl", func(t *testing.T) {
		list := []*model.Employee{{ID: "emp-1", Name: "Asha"}, {ID: "emp-2", Name: "Vikram"}}
		require.NoError(t, cache.Put(ctx, "job-a", "v1", list))

		got, hit, err := cache.Get(ctx, "job-a", "v1")
		require.NoError(t, err)
		require.True(t, hit)
		require.Len(t, got, 2)
		assert.Equal(t, "Vikram", got[1].Name)

		_, hit, err = cache.Get(ctx, "job-a", "v2")
		require.NoError(t, err)
		assert.False(t, hit, "a newer job revision must not see this list")

		ttl := client.TTL(ctx, core.CandidateCacheKey("job-a")).Val()
		assert.True(t, ttl > 0 && ttl <= time.Minute, "ttl %s", ttl)
	})

	t.Run("empty list is still a hit", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, "job-b", "v1", []*model.Employee{}))
		got, hit, err := cache.Get(ctx, "job-b", "v1")
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Empty(t, got)
	})

	t.Run("invalidate removes one job", func(t *testing.T) {
		removed, err := cache.Invalidate(ctx, "job-a")
		require.NoError(t, err)
		assert.True(t, removed)
		_, hit, err := cache.Get(ctx, "job-a", "v1")
		require.NoError(t, err)
		assert.False(t, hit)

		deleted, err := repo.Delete(ctx, core.CandidateCacheKey("job-a"))
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("purge leaves foreign keys alone", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "sessions:42", []byte("x"), time.Minute))
		require.NoError(t, cache.Put(ctx, "job-c", "v1", nil))

		n, err := cache.Purge(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n) // job-b and job-c

		kept, err := repo.Get(ctx, "sessions:42")
		require.NoError(t, err)
		assert.Equal(t, []byte("x"), kept)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, repo.Health(ctx))
	})
}

func TestRedisCacheRepo_RejectsEmptyKeys(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	repo := NewRedisCacheRepo(client)

	assert.ErrorContains(t, repo.Set(ctx, "", []byte("v"), time.Minute), "key cannot be empty")
	_, err := repo.Get(ctx, "")
	assert.Error(t, err)
	_, err = repo.Delete(ctx, "")
	assert.Error(t, err)
	_, err = repo.DeleteByPrefix(ctx, "")
	assert.ErrorContains(t, err, "prefix cannot be empty")
}
