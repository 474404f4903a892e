package cache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"appointment-slot-service/internal/domain"
)

// TTLTravelCache holds recently priced coordinate pairs in memory for a
// bounded lifetime, so a burst of optimization requests around the same
// neighborhood does not hammer the routes backend. Entries expire after the
// configured TTL; the underlying store is safe for concurrent use.
type TTLTravelCache struct {
	store *gocache.Cache
}

func NewTTLTravelCache(ttl time.Duration) *TTLTravelCache {
	return &TTLTravelCache{store: gocache.New(ttl, 2*ttl)}
}

// PairKey identifies a directed origin->destination coordinate pair. Six
// decimal places (~0.1m) keeps keys stable across float formatting.
func PairKey(origin, destination domain.Location) string {
	return fmt.Sprintf("%.6f,%.6f|%.6f,%.6f", origin.Lat, origin.Lng, destination.Lat, destination.Lng)
}

func (c *TTLTravelCache) Get(key string) (int, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return 0, false
	}
	minutes, ok := v.(int)
	return minutes, ok
}

func (c *TTLTravelCache) Put(key string, minutes int) {
	c.store.Set(key, minutes, gocache.DefaultExpiration)
}
