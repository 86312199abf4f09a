package compound

import (
	// 外部依赖
	"context"

	// 内部引用
	common "github.com/scienceol/molcache/pkg/common"
)

// Service owns the compound cache: lookup with read-through fetch,
// bulk prefetch, eviction, listing and persistence. Implementations are
// safe for concurrent use.
type Service interface {
	// Lookup serves one query from the cache, fetching and caching it on a
	// miss. Refresh bypasses the cached entry and overwrites it.
	Lookup(ctx context.Context, req *LookupReq) (*LookupResp, error)

	// Prefetch warms the cache for many queries concurrently. Per-query
	// failures are reported in the response, not as an error.
	Prefetch(ctx context.Context, req *PrefetchReq) (*PrefetchResp, error)

	// Evict drops one entry. Evicting an absent key is a no-op, reported
	// through Removed.
	Evict(ctx context.Context, req *EvictReq) (*EvictResp, error)

	// Entries lists cached entries in stable key order.
	Entries(ctx context.Context, req *EntriesReq) (*common.PageResp[[]*EntryItem], error)

	// Stats summarizes the cache contents.
	Stats(ctx context.Context) (*StatsResp, error)

	// Flush persists the cache to its file.
	Flush(ctx context.Context) error

	// Close drains the prefetch pool and persists unsaved changes.
	Close(ctx context.Context) error
}
