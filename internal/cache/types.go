package cache

import (
	"context"
	"time"

	"github.com/zxinyun/ai-humanizer-zh/internal/detector"
)

// CachedDetection is the stored form of one detection result
type CachedDetection struct {
	Signals  detector.Result `json:"signals"`
	Chars    int             `json:"chars"`
	CachedAt time.Time       `json:"cached_at"`
	TTL      int64           `json:"ttl"`
}

// CacheStats represents cache performance statistics
type CacheStats struct {
	Hits        int64   `json:"hits"`
	Misses      int64   `json:"misses"`
	HitRate     float64 `json:"hit_rate"`
	TotalKeys   int64   `json:"total_keys"`
	MemoryUsage int64   `json:"memory_usage_bytes"`
}

// Config contains cache configuration
type Config struct {
	RedisURL       string        `yaml:"redis_url" mapstructure:"redis_url"`
	MaxConnections int           `yaml:"max_connections" mapstructure:"max_connections"`
	MinIdleConns   int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"`
	DefaultTTL     time.Duration `yaml:"default_ttl" mapstructure:"default_ttl"`
	KeyPrefix      string        `yaml:"key_prefix" mapstructure:"key_prefix"`
}

// DetectionCache stores detection results keyed by input text
type DetectionCache interface {
	Lookup(ctx context.Context, text string) (*CachedDetection, bool)
	Store(ctx context.Context, text string, result detector.Result) error
	GetStats(ctx context.Context) (*CacheStats, error)
	Close() error
}
