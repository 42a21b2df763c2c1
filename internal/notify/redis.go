package notify

import (
	"context"
	"log"
	"time"

	"github.com/fcbarera0210/biomachinis/pkg/database"
)

// 渲染层缓存的 key 前缀，与前端渲染服务约定一致
const pageCachePrefix = "page_cache:"

// CacheInvalidator 基于 Redis 的页面缓存失效器
// 删除对应路径的渲染缓存 key，下一次访问重新生成
type CacheInvalidator struct {
	redis *database.RedisClient
}

func NewCacheInvalidator(redis *database.RedisClient) *CacheInvalidator {
	return &CacheInvalidator{redis: redis}
}

func (n *CacheInvalidator) ContentChanged(paths ...string) {
	if len(paths) == 0 {
		return
	}

	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		keys = append(keys, pageCachePrefix+p)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := n.redis.Del(ctx, keys...).Err(); err != nil {
		// 尽力而为，失败不向上传播
		log.Printf("[biomachinis] 页面缓存失效失败: %v", err)
	}
}
