package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/domain"
)

const (
	keyPostsAll       = "posts:all"
	keyPostsAvailable = "posts:available"

	listingTTL = time.Minute
)

// PostCache caches post listings in Redis. A nil receiver or nil client
// is a permanent miss, so the service works without Redis.
type PostCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewPostCache builds the cache. client may be nil.
func NewPostCache(client *redis.Client, logger *zap.Logger) *PostCache {
	return &PostCache{client: client, logger: logger}
}

// GetListing returns the cached listing for the scope, or ok=false on miss.
func (pc *PostCache) GetListing(ctx context.Context, allScope bool) ([]domain.Post, bool) {
	if pc == nil || pc.client == nil {
		return nil, false
	}
	raw, err := pc.client.Get(ctx, listingKey(allScope)).Bytes()
	if err != nil {
		if err != redis.Nil {
			pc.logger.Warn("post cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var posts []domain.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, false
	}
	return posts, true
}

// SetListing stores the listing for the scope.
func (pc *PostCache) SetListing(ctx context.Context, allScope bool, posts []domain.Post) {
	if pc == nil || pc.client == nil {
		return
	}
	raw, err := json.Marshal(posts)
	if err != nil {
		return
	}
	if err := pc.client.Set(ctx, listingKey(allScope), raw, listingTTL).Err(); err != nil {
		pc.logger.Warn("post cache write failed", zap.Error(err))
	}
}

// Invalidate drops all cached listings. Called after any post mutation.
func (pc *PostCache) Invalidate(ctx context.Context) {
	if pc == nil || pc.client == nil {
		return
	}
	if err := pc.client.Del(ctx, keyPostsAll, keyPostsAvailable).Err(); err != nil {
		pc.logger.Warn("post cache invalidation failed", zap.Error(err))
	}
}

func listingKey(allScope bool) string {
	if allScope {
		return keyPostsAll
	}
	return keyPostsAvailable
}
