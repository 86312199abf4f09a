package molcache

import "sort"

// Cache is an in-memory map from compound keys to property records.
// Zero remote awareness: a miss is reported, never resolved. Construct
// with New or Load; the zero value is not usable.
type Cache struct {
	entries map[Key]*Record
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[Key]*Record)}
}

// Get returns a copy of the record stored under key. The bool is false on
// a miss. A miss is an ordinary outcome; whether to fetch and Insert is up
// to the caller.
func (c *Cache) Get(key Key) (*Record, bool) {
	rec, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// Insert stores a copy of record under key, overwriting any previous entry.
// It returns the record that was displaced and whether an overwrite
// happened. A nil record is stored as an empty one so every cached entry
// serializes.
func (c *Cache) Insert(key Key, record *Record) (*Record, bool) {
	if record == nil {
		record = &Record{}
	}
	prev, ok := c.entries[key]
	c.entries[key] = record.Clone()
	return prev, ok
}

// Remove deletes the entry for key and returns it, or (nil, false) when
// nothing was stored.
func (c *Cache) Remove(key Key) (*Record, bool) {
	rec, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	delete(c.entries, key)
	return rec, true
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	return len(c.entries)
}

// IsEmpty reports whether the cache holds nothing.
func (c *Cache) IsEmpty() bool {
	return len(c.entries) == 0
}

// Keys returns every cached key sorted by namespace, then identifier.
func (c *Cache) Keys() []Key {
	keys := make([]Key, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Less(keys[j])
	})
	return keys
}
