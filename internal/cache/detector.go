package cache

import (
	"context"

	"go.uber.org/zap"

	"github.com/zxinyun/ai-humanizer-zh/internal/detector"
)

// Detector runs detection through an optional cache
type Detector struct {
	cache  DetectionCache
	logger *zap.Logger
}

// NewDetector wraps c. A nil cache detects every text directly.
func NewDetector(c DetectionCache, logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{cache: c, logger: logger}
}

// Detect returns the signals for text and whether they came from the cache
func (d *Detector) Detect(ctx context.Context, text string) (detector.Result, bool) {
	if d.cache == nil {
		return detector.Detect(text), false
	}

	if cached, ok := d.cache.Lookup(ctx, text); ok {
		return cached.Signals, true
	}

	result := detector.Detect(text)
	if err := d.cache.Store(ctx, text, result); err != nil {
		d.logger.Warn("Detection not cached", zap.Error(err))
	}
	return result, false
}

// Enabled reports whether a cache backs the detector
func (d *Detector) Enabled() bool {
	return d.cache != nil
}
