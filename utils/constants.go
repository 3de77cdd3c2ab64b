package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// SessionPrefix is the prefix used for Redis request session keys.
const SessionPrefix = "session:"

// SessionCookieName carries the session id for browser clients.
const SessionCookieName = "review_session"

// SessionHeader carries the session id for API clients.
const SessionHeader = "X-Session-ID"
