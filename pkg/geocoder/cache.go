package geocoder

import (
	"sync"

	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
	"go.uber.org/zap"
)

// Store persists the serialized cache under the fixed namespace key. It is
// read once at startup and rewritten after every new successful resolution.
type Store interface {
	Load() (map[string]*datastructure.Location, error)
	Save(entries map[string]*datastructure.Location) error
}

// Cache maps exact query strings to resolved locations. The query string is
// the key as-is, normalization is the caller's business.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*datastructure.Location
	store   Store
	log     *zap.Logger
}

func NewCache(store Store, log *zap.Logger) (*Cache, error) {
	entries, err := store.Load()
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = make(map[string]*datastructure.Location)
	}
	log.Info("geocode cache loaded", zap.Int("entries", len(entries)))

	return &Cache{
		entries: entries,
		store:   store,
		log:     log,
	}, nil
}

func (c *Cache) Get(query string) (*datastructure.Location, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	loc, ok := c.entries[query]
	return loc, ok
}

// Put stores a resolved location and persists the whole cache immediately.
// The write is idempotent, a redundant resolution of the same query just
// overwrites the entry with an equal value.
func (c *Cache) Put(query string, loc *datastructure.Location) error {
	c.mu.Lock()
	c.entries[query] = loc
	snapshot := make(map[string]*datastructure.Location, len(c.entries))
	for k, v := range c.entries {
		snapshot[k] = v
	}
	c.mu.Unlock()

	return c.store.Save(snapshot)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
