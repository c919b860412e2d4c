package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Settlement results are cached per trip and variant (policy + keyword)
// and dropped on any write to the trip's records. Redis is optional; every
// helper is a no-op when it is not connected.

const settlementCacheTTL = 10 * time.Minute

func settlementCacheKey(tripID uuid.UUID, variant string) string {
	return "settlement:" + tripID.String() + ":" + variant
}

func CacheSettlement(ctx context.Context, tripID uuid.UUID, variant string, value interface{}) {
	if Redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	Redis.Set(ctx, settlementCacheKey(tripID, variant), data, settlementCacheTTL)
}

// GetCachedSettlement unmarshals a cached result into dest, reporting
// whether anything was found.
func GetCachedSettlement(ctx context.Context, tripID uuid.UUID, variant string, dest interface{}) bool {
	if Redis == nil {
		return false
	}
	data, err := Redis.Get(ctx, settlementCacheKey(tripID, variant)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// InvalidateSettlement drops every cached variant for the trip.
func InvalidateSettlement(ctx context.Context, tripID uuid.UUID) {
	if Redis == nil {
		return
	}
	pattern := "settlement:" + tripID.String() + ":*"
	iter := Redis.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		Redis.Del(ctx, iter.Val())
	}
}
