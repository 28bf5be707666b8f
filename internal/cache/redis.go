package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/zxinyun/ai-humanizer-zh/internal/detector"
)

// RedisCache handles Redis-based caching of detection results
type RedisCache struct {
	client *redis.Client
	config *Config
	logger *zap.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisCache creates a new Redis-based detection cache
func NewRedisCache(config *Config, logger *zap.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.PoolSize = config.MaxConnections
	opts.MinIdleConns = config.MinIdleConns

	cache := &RedisCache{
		client: redis.NewClient(opts),
		config: config,
		logger: logger,
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := cache.ping(ctx); err != nil {
		cache.client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Detection cache initialized successfully",
		zap.String("redis_url", maskRedisURL(config.RedisURL)),
		zap.Int("max_connections", config.MaxConnections),
		zap.Duration("default_ttl", config.DefaultTTL))

	return cache, nil
}

// ping tests the Redis connection
func (rc *RedisCache) ping(ctx context.Context) error {
	_, err := rc.client.Ping(ctx).Result()
	return err
}

// Lookup returns the cached detection for text. Lookup failures count as
// misses so callers can always fall back to detecting directly.
func (rc *RedisCache) Lookup(ctx context.Context, text string) (*CachedDetection, bool) {
	cacheKey := detectionKey(rc.config.KeyPrefix, text)

	cachedData, err := rc.client.Get(ctx, cacheKey).Result()
	if errors.Is(err, redis.Nil) {
		rc.misses.Add(1)
		rc.logger.Debug("Cache miss", zap.String("key", cacheKey))
		return nil, false
	} else if err != nil {
		rc.misses.Add(1)
		rc.logger.Error("Cache lookup failed", zap.Error(err))
		return nil, false
	}

	var cached CachedDetection
	if err := json.Unmarshal([]byte(cachedData), &cached); err != nil {
		rc.misses.Add(1)
		rc.logger.Error("Failed to unmarshal cached detection", zap.Error(err))
		// Delete corrupted cache entry
		rc.client.Del(ctx, cacheKey)
		return nil, false
	}

	rc.hits.Add(1)
	rc.logger.Debug("Cache hit", zap.String("key", cacheKey))
	return &cached, true
}

// Store caches a detection result under the text's key
func (rc *RedisCache) Store(ctx context.Context, text string, result detector.Result) error {
	cacheKey := detectionKey(rc.config.KeyPrefix, text)

	data, err := json.Marshal(CachedDetection{
		Signals:  result,
		Chars:    utf8.RuneCountInString(text),
		CachedAt: time.Now(),
		TTL:      int64(rc.config.DefaultTTL.Seconds()),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal detection for caching: %w", err)
	}

	if err := rc.client.Set(ctx, cacheKey, data, rc.config.DefaultTTL).Err(); err != nil {
		rc.logger.Error("Failed to cache detection", zap.Error(err))
		return fmt.Errorf("failed to cache detection: %w", err)
	}

	rc.logger.Debug("Detection cached", zap.String("key", cacheKey), zap.Int("signal_total", result.Total()))
	return nil
}

// GetStats returns cache performance statistics
func (rc *RedisCache) GetStats(ctx context.Context) (*CacheStats, error) {
	info, err := rc.client.Info(ctx, "memory").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get Redis info: %w", err)
	}

	stats := &CacheStats{
		Hits:   rc.hits.Load(),
		Misses: rc.misses.Load(),
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total) * 100
	}
	stats.MemoryUsage = parseUsedMemory(info)

	if keys, err := rc.client.DBSize(ctx).Result(); err == nil {
		stats.TotalKeys = keys
	}

	return stats, nil
}

// Clear removes all cached detections
func (rc *RedisCache) Clear(ctx context.Context) error {
	pattern := rc.config.KeyPrefix + ":detect:*"

	iter := rc.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	// Delete keys in batches
	batchSize := 100
	for i := 0; i < len(keys); i += batchSize {
		end := min(i+batchSize, len(keys))
		if err := rc.client.Del(ctx, keys[i:end]...).Err(); err != nil {
			return fmt.Errorf("failed to delete cache keys: %w", err)
		}
	}

	rc.logger.Info("Cache cleared", zap.Int("deleted_keys", len(keys)))
	return nil
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	if rc.client != nil {
		return rc.client.Close()
	}
	return nil
}

// detectionKey creates a cache key from the input text
func detectionKey(prefix, text string) string {
	sum := sha256.Sum256([]byte(text))
	hash := hex.EncodeToString(sum[:])
	return fmt.Sprintf("%s:detect:%s", prefix, hash[:16])
}

func parseUsedMemory(info string) int64 {
	for _, line := range strings.Split(info, "\r\n") {
		if memStr, ok := strings.CutPrefix(line, "used_memory:"); ok {
			if mem, err := strconv.ParseInt(memStr, 10, 64); err == nil {
				return mem
			}
		}
	}
	return 0
}

// maskRedisURL masks sensitive information in Redis URL for logging
func maskRedisURL(url string) string {
	if strings.Contains(url, "@") {
		parts := strings.Split(url, "@")
		if len(parts) >= 2 {
			userPart := parts[0]
			if strings.Contains(userPart, ":") {
				userParts := strings.Split(userPart, ":")
				if len(userParts) >= 3 {
					userParts[len(userParts)-1] = "***"
					parts[0] = strings.Join(userParts, ":")
				}
			}
			return strings.Join(parts, "@")
		}
	}
	return url
}
