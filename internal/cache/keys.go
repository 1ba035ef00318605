package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	propertyKeyPrefix = "property:%d"
	// ActiveListingsKey caches the public browse page.
	ActiveListingsKey = "properties:active"
	// AmenityCatalogKey caches the full amenity catalog.
	AmenityCatalogKey = "amenities:catalog"
)

// Cache TTLs. The amenity catalog is immutable reference data and can live long.
const (
	PropertyTTL       = 10 * time.Minute
	ActiveListingsTTL = 1 * time.Minute
	AmenityCatalogTTL = 12 * time.Hour
)

// PropertyKey returns the cache key for one listing projection.
func PropertyKey(propertyID uint) string {
	return fmt.Sprintf(propertyKeyPrefix, propertyID)
}

// Invalidate removes a key, best-effort.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateProperty drops a listing's cached projection and the browse page.
func InvalidateProperty(ctx context.Context, propertyID uint) {
	Invalidate(ctx, PropertyKey(propertyID))
	Invalidate(ctx, ActiveListingsKey)
}
