package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/patrickmn/go-cache"
)

// NewCache 创建进程内缓存，清理间隔取过期时间的两倍
func NewCache(ttl time.Duration) *cache.Cache {
	return cache.New(ttl, 2*ttl)
}

type cacheItem[T any] struct {
	value     T
	expiredAt time.Time
}

// LRUCache 带过期时间的 LRU 缓存，用于搜索结果
type LRUCache[T any] struct {
	storage *lru.Cache[string, cacheItem[T]]
	ttl     time.Duration
}

// NewLRUCache size 为最大条数，ttl 为有效期
func NewLRUCache[T any](size int, ttl time.Duration) *LRUCache[T] {
	c, err := lru.New[string, cacheItem[T]](size)
	if err != nil {
		// size <= 0
		c, _ = lru.New[string, cacheItem[T]](128)
	}
	return &LRUCache[T]{storage: c, ttl: ttl}
}

func (c *LRUCache[T]) Set(key string, value T) {
	c.storage.Add(key, cacheItem[T]{value: value, expiredAt: time.Now().Add(c.ttl)})
}

// Get 读取缓存，过期的条目会被移除
func (c *LRUCache[T]) Get(key string) (T, bool) {
	var zero T
	item, ok := c.storage.Get(key)
	if !ok {
		return zero, false
	}
	if time.Now().After(item.expiredAt) {
		c.storage.Remove(key)
		return zero, false
	}
	return item.value, true
}

func (c *LRUCache[T]) Purge() {
	c.storage.Purge()
}

func (c *LRUCache[T]) Len() int {
	return c.storage.Len()
}
