package cascade

import (
	"context"
	"sync"

	"github.com/procurahq/lib-reqdraft/reqdraft/catalog"
	"github.com/procurahq/lib-reqdraft/reqdraft/log"
)

// ResolveFunc resolves one domain's option set. catalog.Resolver.Resolve
// satisfies it.
type ResolveFunc func(ctx context.Context, domain catalog.Domain, params catalog.Params) ([]catalog.Entry, error)

// Key identifies one cached option set. ParentID is empty for unscoped
// domains and carries the product id for item descriptions.
type Key struct {
	Domain   catalog.Domain
	ParentID string
}

// DescriptionKey builds the key for a product's scoped description set.
func DescriptionKey(productID string) Key {
	return Key{Domain: catalog.DomainItemDescription, ParentID: productID}
}

// Result reports the outcome of one Refresh.
type Result struct {
	// Applied is false when the completion arrived after a newer Refresh
	// for the same key and was discarded.
	Applied bool
	Entries []catalog.Entry
	Err     error
}

// Cache holds resolved entries per key with per-key request tokens.
type Cache struct {
	mu      sync.Mutex
	resolve ResolveFunc
	entries map[Key][]catalog.Entry
	tokens  map[Key]uint64
	logger  log.Logger
}

// New creates a Cache over the given resolve function.
func New(resolve ResolveFunc, logger log.Logger) *Cache {
	return &Cache{
		resolve: resolve,
		entries: make(map[Key][]catalog.Entry),
		tokens:  make(map[Key]uint64),
		logger:  log.Or(logger),
	}
}

// Lookup returns the cached entries for key without mutating cache state.
// The returned slice is a copy; callers may not observe later refreshes
// through it.
func (c *Cache) Lookup(key Key) ([]catalog.Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	return append([]catalog.Entry(nil), entries...), true
}

// Invalidate clears the cached entries for key and advances its token so any
// in-flight resolve for the key is discarded on completion.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	c.tokens[key]++
}

// Refresh synchronously clears key and its cached entries, then resolves the
// key in the background under a freshly minted token. The returned channel
// receives exactly one Result when the resolve completes; a completion whose
// token is no longer current is reported with Applied=false and leaves the
// cache untouched.
//
// Re-entrant calls while a fetch is outstanding are safe: only the most
// recently issued request can ever install entries.
func (c *Cache) Refresh(ctx context.Context, key Key) <-chan Result {
	c.mu.Lock()
	delete(c.entries, key)
	c.tokens[key]++
	token := c.tokens[key]
	c.mu.Unlock()

	done := make(chan Result, 1)

	go func() {
		entries, err := c.resolve(ctx, key.Domain, catalog.Params{ProductID: key.ParentID})

		done <- c.apply(ctx, key, token, entries, err)
	}()

	return done
}

// apply installs entries iff token is still the key's current token.
func (c *Cache) apply(ctx context.Context, key Key, token uint64, entries []catalog.Entry, err error) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tokens[key] != token {
		c.logger.Log(ctx, log.LevelDebug, "stale catalog response discarded",
			log.String("domain", string(key.Domain)),
			log.String("parent", key.ParentID),
		)

		return Result{Applied: false, Entries: entries, Err: err}
	}

	if err != nil {
		return Result{Applied: false, Err: err}
	}

	c.entries[key] = append([]catalog.Entry(nil), entries...)

	return Result{Applied: true, Entries: entries}
}

// Keys returns the keys currently holding cached entries, for diagnostics.
func (c *Cache) Keys() []Key {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]Key, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}

	return keys
}
