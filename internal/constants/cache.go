package constants

import "time"

const (
	UserCachePrefix = "user_id" // Single cache by user ID (CacheBuilder adds colon)
	UserCacheExpiry = 7 * 24 * time.Hour

	TokenExpiry = time.Hour // verification and reset tokens
)
