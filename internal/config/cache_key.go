package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

// CacheKey builds the Redis key names used for admin session tracking.
var CacheKey = &CacheKeyStruct{}

// AdminSessionKey returns the cache key for an admin's active session.
func (r *CacheKeyStruct) AdminSessionKey(adminID int) string {
	return fmt.Sprintf("session:admin:%d", adminID)
}
