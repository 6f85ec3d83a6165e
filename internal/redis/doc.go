// Package redis implements Redis-backed supporting stores.
//
// Provides CatalogCache (read-through caching of the public services list
// with explicit invalidation on mutation) and LoginLimiter (fixed-window
// rate limiting of admin login attempts).
package redis
