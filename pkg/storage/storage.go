// Package storage is the client-side key/value store that plays the role of
// browser localStorage: one small string map per browser scope.
package storage

import (
	"context"
)

const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
	KeyVisitorID    = "visitor_id"
	KeyBlogPreview  = "blog_preview"
)

// AuthKeys are the keys cleared on logout and on an admin-scoped 401.
var AuthKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUser}

// Store reads and writes single keys atomically. Implementations are safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
}

// Provider opens the Store belonging to one browser scope.
type Provider interface {
	Open(scope string) Store
}
