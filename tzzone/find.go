package tzzone

import (
	"fmt"
	"strings"

	"github.com/ngrash/go-tzrules/tzerr"
)

// MaxRegistryIDLength is the id length bound enforced for the registry
// platform.
const MaxRegistryIDLength = 255

func validateID(id string, enforceRegistryLength bool) error {
	if id == "" {
		return fmt.Errorf("%w: id must not be empty", tzerr.ErrZoneNotFound)
	}
	if strings.ContainsRune(id, 0) {
		return fmt.Errorf("%w: id must not contain NUL", tzerr.ErrZoneNotFound)
	}
	if enforceRegistryLength && len(id) > MaxRegistryIDLength {
		return fmt.Errorf("%w: id exceeds %d characters", tzerr.ErrZoneNotFound, MaxRegistryIDLength)
	}
	return nil
}

// FindZoneByID resolves a zone by id: consult cache, else ask src to load
// bytes (falling back to the registry form), decode, and cache the result.
func FindZoneByID(cache *Cache, src Source, id string, enforceRegistryLength bool) (*Zone, error) {
	if err := validateID(id, enforceRegistryLength); err != nil {
		return nil, err
	}
	if z, ok := cache.Get(id); ok {
		return z, nil
	}

	bytes, err := src.LoadBytes(id)
	if err == nil {
		z, derr := decodeBytesZone(id, bytes)
		if derr != nil {
			return nil, fmt.Errorf("%w: %v", tzerr.ErrInvalidZone, derr)
		}
		cache.Put(id, z)
		return z, nil
	}

	fields, rerr := src.LoadRegistry(id)
	if rerr != nil {
		return nil, fmt.Errorf("%w: %v", tzerr.ErrZoneNotFound, rerr)
	}
	z, derr := decodeRegistryZone(id, fields)
	if derr != nil {
		return nil, fmt.Errorf("%w: %v", tzerr.ErrInvalidZone, derr)
	}
	cache.Put(id, z)
	return z, nil
}

// ListSystemZones enumerates then decodes every zone id src knows about,
// sorted by baseUtcOffset ascending then displayName ascending (ordinal).
func ListSystemZones(cache *Cache, src Source) ([]*Zone, error) {
	ids, err := src.Enumerate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tzerr.ErrZoneNotFound, err)
	}
	zones := make([]*Zone, 0, len(ids))
	for _, id := range ids {
		z, err := FindZoneByID(cache, src, id, false)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	sortZonesByOffsetThenName(zones)
	return zones, nil
}
