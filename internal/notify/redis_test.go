package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fcbarera0210/biomachinis/internal/testutils"
)

// TestCacheInvalidatorContentChanged 通知后对应路径的缓存 key 被删除
func TestCacheInvalidatorContentChanged(t *testing.T) {
	redis := testutils.SetupTestRedis(t)
	if redis == nil {
		t.Skip("Redis not available")
	}

	ctx := context.Background()
	invalidator := NewCacheInvalidator(redis)

	// 预置两个页面缓存和一个无关 key
	assert.NoError(t, redis.Set(ctx, "page_cache:/", "html", time.Minute).Err())
	assert.NoError(t, redis.Set(ctx, "page_cache:/noticias/mi-post", "html", time.Minute).Err())
	assert.NoError(t, redis.Set(ctx, "page_cache:/otro", "html", time.Minute).Err())

	invalidator.ContentChanged("/", "/noticias/mi-post")

	count, err := redis.Exists(ctx, "page_cache:/", "page_cache:/noticias/mi-post").Result()
	assert.NoError(t, err)
	assert.Zero(t, count)

	// 未通知的路径不受影响
	count, err = redis.Exists(ctx, "page_cache:/otro").Result()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// TestCacheInvalidatorEmptyPaths 空路径列表直接返回
func TestCacheInvalidatorEmptyPaths(t *testing.T) {
	redis := testutils.SetupTestRedis(t)
	if redis == nil {
		t.Skip("Redis not available")
	}

	invalidator := NewCacheInvalidator(redis)
	invalidator.ContentChanged()
}
