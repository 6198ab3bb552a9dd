package cache

import (
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
)

// CacheManager holds all application caches
type CacheManager struct {
	// Parsed extraction results keyed by the uploaded image bytes
	Extractions *UnifiedCache[*models.ItineraryData]
}

// NewCacheManager creates a cache manager; extraction results live for ttl.
func NewCacheManager(ttl time.Duration, logger *zap.Logger) *CacheManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &CacheManager{
		Extractions: NewUnifiedCache[*models.ItineraryData](ttl, "extractions", logger),
	}
}

// GetAllMetrics returns metrics for all caches
func (cm *CacheManager) GetAllMetrics() map[string]CacheMetrics {
	return map[string]CacheMetrics{
		"extractions": cm.Extractions.GetMetrics(),
	}
}
