package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheItem struct {
	data      interface{}
	expiresAt time.Time
}

// Cache is a small LRU with per-entry TTL for rendered feed pages. Handlers
// hold their own instance; there is no package-level singleton.
type Cache struct {
	lru *lru.Cache[string, cacheItem]
}

func NewCache(size int) (*Cache, error) {
	l, err := lru.New[string, cacheItem](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l}, nil
}

func (c *Cache) Set(key string, data interface{}, ttl time.Duration) {
	c.lru.Add(key, cacheItem{data: data, expiresAt: time.Now().Add(ttl)})
}

// Get 获取缓存，不存在或已过期返回 nil
func (c *Cache) Get(key string) interface{} {
	item, ok := c.lru.Get(key)
	if !ok {
		return nil
	}
	if time.Now().After(item.expiresAt) {
		c.lru.Remove(key)
		return nil
	}
	return item.data
}

func (c *Cache) Delete(key string) {
	c.lru.Remove(key)
}

// Purge drops every entry; mutations call this instead of tracking which
// filter combinations are cached.
func (c *Cache) Purge() {
	c.lru.Purge()
}
