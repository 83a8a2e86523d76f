package cache

// SQL schemas for cache tables
// All cache tables use "cache_key" as the primary key column for consistency

// TikHubCacheSchema defines the schema for video metadata responses.
const TikHubCacheSchema = `
CREATE TABLE IF NOT EXISTS tikhub_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tikhub_cached_at ON tikhub_cache(cached_at);
`

// AmapCacheSchema defines the schema for geocoding responses.
const AmapCacheSchema = `
CREATE TABLE IF NOT EXISTS amap_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_amap_cached_at ON amap_cache(cached_at);
`

// AllCacheSchemas lists every cache table schema, applied on startup.
var AllCacheSchemas = []string{
	TikHubCacheSchema,
	AmapCacheSchema,
}

// ValidCacheTableNames whitelists table names accepted by cache operations.
var ValidCacheTableNames = map[string]bool{
	"tikhub_cache": true,
	"amap_cache":   true,
}
