package drafts

import "context"

// Repository is a durable string key/value store for form drafts.
//
// Get reports ok=false (and no error) when the key has never been written.
// Set overwrites unconditionally; there is no versioning or expiry.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
