// Package catalogue wraps the remote skip catalogue behind a
// cache-then-network lookup keyed by the exact (postcode, area) pair.
package catalogue

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/skiphire/skip-browser/internal/domain/models"
	catalogueclient "github.com/skiphire/skip-browser/pkg/clients/catalogue"
)

// Service resolves offer lists for locations, serving repeated identical
// queries from cache. A changed pair always reaches the network.
type Service struct {
	client catalogueclient.Client
	cache  *locationCache
	logger *zap.Logger
}

// NewService wires a new catalogue service instance.
func NewService(client catalogueclient.Client, cacheTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		cache:  newLocationCache(cacheTTL),
		logger: logger,
	}
}

// Lookup returns the offers available for the given location. Errors are not
// cached, so a resubmitted query after a failure retries the network.
func (s *Service) Lookup(ctx context.Context, postcode, area string) ([]models.Skip, error) {
	key := cacheKey(postcode, area)

	if skips, ok := s.cache.get(key); ok {
		s.logger.Debug("catalogue cache hit",
			zap.String("postcode", postcode),
			zap.String("area", area))
		return skips, nil
	}

	skips, err := s.client.FetchByLocation(ctx, postcode, area)
	if err != nil {
		s.logger.Warn("catalogue lookup failed",
			zap.String("postcode", postcode),
			zap.String("area", area),
			zap.Error(err))
		return nil, err
	}

	s.cache.set(key, skips)
	s.logger.Info("catalogue lookup resolved",
		zap.String("postcode", postcode),
		zap.String("area", area),
		zap.Int("offers", len(skips)))
	return skips, nil
}

// EvictExpired drops cache entries past their TTL. Called by the janitor.
func (s *Service) EvictExpired() {
	if evicted := s.cache.evictExpired(); evicted > 0 {
		s.logger.Info("evicted expired catalogue entries", zap.Int("count", evicted))
	}
}
