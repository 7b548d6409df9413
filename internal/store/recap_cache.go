package store

import (
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/listenupapp/shelfwrapped/internal/domain"
)

const (
	defaultRecapEntries = 256
	defaultRecapTTL     = 30 * time.Minute
)

// RecapCache is a bounded, time-expiring cache of finished recaps keyed by
// profile and year. Bundles are immutable, so the same pointer is shared
// between readers.
type RecapCache struct {
	lru *expirable.LRU[string, *domain.StatsBundle]
}

// NewRecapCache creates a cache holding at most size bundles for ttl each.
func NewRecapCache(size int, ttl time.Duration) *RecapCache {
	if size <= 0 {
		size = defaultRecapEntries
	}
	if ttl <= 0 {
		ttl = defaultRecapTTL
	}
	return &RecapCache{
		lru: expirable.NewLRU[string, *domain.StatsBundle](size, nil, ttl),
	}
}

// RecapKey builds the cache key for a profile and year.
func RecapKey(profileID string, year int) string {
	return profileID + ":" + strconv.Itoa(year)
}

// Get returns the cached bundle, if present and not expired.
func (c *RecapCache) Get(profileID string, year int) (*domain.StatsBundle, bool) {
	return c.lru.Get(RecapKey(profileID, year))
}

// Add stores a bundle, evicting the least recently used entry when full.
func (c *RecapCache) Add(bundle *domain.StatsBundle) {
	if bundle == nil {
		return
	}
	c.lru.Add(RecapKey(bundle.ProfileID, bundle.Year), bundle)
}

// Remove drops a cached bundle.
func (c *RecapCache) Remove(profileID string, year int) bool {
	return c.lru.Remove(RecapKey(profileID, year))
}

// Len returns the number of cached bundles.
func (c *RecapCache) Len() int {
	return c.lru.Len()
}
