package config

import (
    "strings"
    "time"
)

// CacheConfig drives the catalog response cache.  Only GET requests whose
// route is listed in Routes are cached; admin writes drop every entry under
// Prefix so the next catalog read sees the canonical list.
type CacheConfig struct {
    Enabled      bool
    Routes       map[string]bool
    TTL          time.Duration
    Prefix       string
    MaxBodyBytes int
}

func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        Routes:       parseList(envStr("CACHE_ROUTES", "/v1/services,/v1/services/:id,/v1/catalog/vocabulary")),
        TTL:          envDur("CACHE_TTL", 30*time.Second),
        Prefix:       envStr("CACHE_PREFIX", "lawshop:cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
    }
}

func parseList(s string) map[string]bool {
    m := map[string]bool{}
    for _, p := range strings.Split(s, ",") {
        if p = strings.TrimSpace(p); p != "" {
            m[p] = true
        }
    }
    return m
}
