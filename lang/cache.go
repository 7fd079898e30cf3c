package lang

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/zeebo/xxh3"
)

// globalCache stores parsed invocations keyed by a hash of the source text
// and the options that affect parsing. Entries are never handed out
// directly; callers receive clones.
var globalCache sync.Map

// maxCacheEntries bounds globalCache. The cache is emptied when a new entry
// would exceed it.
var maxCacheEntries int64 = 1 << 12

// cacheSize counts the entries stored since the cache was last emptied.
var cacheSize atomic.Int64

// entry holds the outcome of parsing one source string.
type entry struct {
	once   sync.Once
	source string
	inv    *Invocation
	err    error
}

// cacheKey combines the source hash with the parse-affecting options.
// The logger does not affect the result and is excluded.
func cacheKey(source string, o options) string {
	h := xxh3.HashString(source)
	if o.mixed {
		h = ^h
	}

	return strconv.FormatUint(h, 36) + ":" + strconv.Itoa(len(source))
}

// parseCached parses source once per distinct (source, options) pair.
func parseCached(
	ctx context.Context,
	source string,
	o options,
) (*Invocation, error) {
	key := cacheKey(source, o)

	if _, ok := globalCache.Load(key); !ok && cacheSize.Add(1) > maxCacheEntries {
		o.logger.DebugContext(ctx, "cache full, clearing",
			slog.Int64("limit", maxCacheEntries))
		ClearCache()
		cacheSize.Add(1)
	}

	value, hit := globalCache.LoadOrStore(key, new(entry))

	e, ok := value.(*entry)
	if !ok {
		return parse(ctx, source, o)
	}

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("key", key),
		slog.Bool("cache_hit", hit))

	e.once.Do(func() {
		e.source = source
		e.inv, e.err = parse(ctx, source, o)
	})

	// Hash collisions between distinct sources are resolved by reparsing.
	if e.source != source {
		return parse(ctx, source, o)
	}

	if e.err != nil {
		return nil, e.err
	}

	return e.inv.clone(), nil
}

// ClearCache removes all memoized invocations.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
	cacheSize.Store(0)
}
