package ports

import "context"

// ResultCache stores encoded kernel results. Kernel operations are pure, so a result
// keyed by operation, kernel settings and input stays valid forever; backends may still
// expire entries to bound memory.
type ResultCache interface {
	// Get returns the stored value or domain.ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key.
	Set(ctx context.Context, key string, value []byte) error
}
