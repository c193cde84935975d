package tzzone

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// generation is one immutable snapshot of the zone-id cache. Zones inside
// are themselves immutable, so "clearing" the cache is just publishing a
// fresh empty generation: concurrent readers mid-lookup keep seeing the
// old generation until their own next load.
type generation struct {
	id    uuid.UUID
	zones map[string]*Zone
}

func newGeneration() *generation {
	return &generation{id: uuid.New(), zones: make(map[string]*Zone)}
}

// Cache is a process-wide, concurrency-safe mapping from zone id to
// already-constructed Zone, plus a lazily-resolved Local zone handle.
type Cache struct {
	gen atomic.Pointer[generation]

	localOnce sync.Once
	local     *Zone
	localErr  error
}

// NewCache returns an empty Cache, ready for concurrent use.
func NewCache() *Cache {
	c := &Cache{}
	c.gen.Store(newGeneration())
	return c
}

// Get returns the cached Zone for id, if any.
func (c *Cache) Get(id string) (*Zone, bool) {
	g := c.gen.Load()
	z, ok := g.zones[id]
	return z, ok
}

// Put records z under id in the current generation. Put does not mutate
// the generation readers may currently hold; it builds a fresh map copy-
// on-write so concurrent Gets never observe a half-populated map.
func (c *Cache) Put(id string, z *Zone) {
	for {
		old := c.gen.Load()
		next := &generation{id: old.id, zones: make(map[string]*Zone, len(old.zones)+1)}
		for k, v := range old.zones {
			next.zones[k] = v
		}
		next.zones[id] = z
		if c.gen.CompareAndSwap(old, next) {
			return
		}
	}
}

// Clear atomically swaps the cache for a fresh, empty generation. Readers
// already holding a reference to the old generation (via an in-flight Get)
// are unaffected: this is acceptable because Zones are immutable and the
// cache is purely an identity optimization.
func (c *Cache) Clear() {
	c.gen.Store(newGeneration())
	c.localOnce = sync.Once{}
	c.local, c.localErr = nil, nil
}

// GenerationID returns the identifier of the cache's current generation,
// useful for diagnostics ("has Clear run since I last looked?").
func (c *Cache) GenerationID() uuid.UUID {
	return c.gen.Load().id
}

// Local resolves and caches the host's current local zone via src exactly
// once per cache generation.
func (c *Cache) Local(src Source) (*Zone, error) {
	c.localOnce.Do(func() {
		id, bytes, reg, err := src.ResolveLocal()
		if err != nil {
			c.localErr = err
			return
		}
		switch {
		case bytes != nil:
			c.local, c.localErr = decodeBytesZone(id, bytes)
		case reg != nil:
			c.local, c.localErr = decodeRegistryZone(id, *reg)
		default:
			c.local = UTC
		}
		if c.local != nil {
			c.Put(id, c.local)
		}
	})
	return c.local, c.localErr
}

// decodeBytesZone and decodeRegistryZone are set by the tzif and tzreg
// packages at init time (via RegisterBytesDecoder/RegisterRegistryDecoder)
// to avoid an import cycle: tzzone must not import its own decoders.
var (
	decodeBytesZoneFn    func(id string, bytes []byte) (*Zone, error)
	decodeRegistryZoneFn func(id string, fields RegistryFields) (*Zone, error)
)

// RegisterBytesDecoder installs the TZif-bytes-to-Zone decoder used by
// Cache.Local and FindZoneByID. Called from tzif's package init.
func RegisterBytesDecoder(fn func(id string, bytes []byte) (*Zone, error)) {
	decodeBytesZoneFn = fn
}

// RegisterRegistryDecoder installs the registry-fields-to-Zone decoder
// used by Cache.Local and FindZoneByID. Called from tzreg's package init.
func RegisterRegistryDecoder(fn func(id string, fields RegistryFields) (*Zone, error)) {
	decodeRegistryZoneFn = fn
}

func decodeBytesZone(id string, bytes []byte) (*Zone, error) {
	return decodeBytesZoneFn(id, bytes)
}

func decodeRegistryZone(id string, fields RegistryFields) (*Zone, error) {
	return decodeRegistryZoneFn(id, fields)
}
