// Package tzzone implements Zone: the immutable owner of a named civil
// time zone's ordered AdjustmentRule array, base offset, and identifiers.
// It exposes the conversion, classification, and offset-query operations,
// delegating the hard rule-selection and classification math to package
// tzrule.
package tzzone

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ngrash/go-tzrules/tzerr"
	"github.com/ngrash/go-tzrules/tzrule"
)

// Zone is an immutable named civil time zone: an id, display-only names, a
// base UTC offset, and an ordered (possibly empty) array of adjustment
// rules.
type Zone struct {
	id          string
	displayName string
	standardName string
	daylightName string
	baseUtcOffset tzrule.Offset
	rules       []tzrule.AdjustmentRule
}

// New constructs a Zone directly from an id, base offset, display names,
// and an ordered rule array. Rules must already be in chronological,
// non-overlapping order (the invariant: rule[i].DateStart >
// rule[i-1].DateEnd); New returns an error otherwise.
func New(id string, baseUtcOffset tzrule.Offset, displayName, standardName, daylightName string, rules []tzrule.AdjustmentRule) (*Zone, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id must not be empty", tzerr.ErrInvalidZone)
	}
	if strings.ContainsRune(id, 0) {
		return nil, fmt.Errorf("%w: id must not contain NUL", tzerr.ErrInvalidZone)
	}
	if !baseUtcOffset.Valid() {
		return nil, fmt.Errorf("%w: baseUtcOffset %v out of range", tzerr.ErrInvalidZone, baseUtcOffset)
	}
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: rule %d: %v", tzerr.ErrInvalidZone, i, err)
		}
		if i > 0 && rules[i-1].DateEnd.Compare(r.DateStart) >= 0 {
			return nil, fmt.Errorf("%w: rule %d overlaps or is out of order with rule %d", tzerr.ErrInvalidZone, i, i-1)
		}
	}
	cp := make([]tzrule.AdjustmentRule, len(rules))
	copy(cp, rules)
	return &Zone{
		id:            id,
		displayName:   displayName,
		standardName:  standardName,
		daylightName:  daylightName,
		baseUtcOffset: baseUtcOffset,
		rules:         cp,
	}, nil
}

// UTC is the process-wide sentinel zone representing Coordinated Universal
// Time: no rules, zero base offset.
var UTC = mustNew("UTC", 0, "UTC", "UTC", "UTC", nil)

func mustNew(id string, off tzrule.Offset, d, s, dl string, rules []tzrule.AdjustmentRule) *Zone {
	z, err := New(id, off, d, s, dl, rules)
	if err != nil {
		panic(err)
	}
	return z
}

func (z *Zone) ID() string            { return z.id }
func (z *Zone) DisplayName() string   { return z.displayName }
func (z *Zone) StandardName() string  { return z.standardName }
func (z *Zone) DaylightName() string  { return z.daylightName }
func (z *Zone) BaseUtcOffset() tzrule.Offset { return z.baseUtcOffset }

// Rules returns a copy of the zone's ordered adjustment rules.
func (z *Zone) Rules() []tzrule.AdjustmentRule {
	cp := make([]tzrule.AdjustmentRule, len(z.rules))
	copy(cp, z.rules)
	return cp
}

// SupportsDST reports whether any rule in the zone ever puts it into
// daylight time.
func (z *Zone) SupportsDST() bool {
	for _, r := range z.rules {
		if r.HasDaylightSaving() {
			return true
		}
	}
	return false
}

// Equal compares zone identity: id case-insensitively, baseUtcOffset, and
// structural equality of the rule array. Display names are not compared.
func (z *Zone) Equal(other *Zone) bool {
	if z == nil || other == nil {
		return z == other
	}
	if !strings.EqualFold(z.id, other.id) {
		return false
	}
	if z.baseUtcOffset != other.baseUtcOffset {
		return false
	}
	if len(z.rules) != len(other.rules) {
		return false
	}
	for i := range z.rules {
		if z.rules[i] != other.rules[i] {
			return false
		}
	}
	return true
}

// sortZonesByOffsetThenName sorts zones ascending by base offset, then by
// display name (ordinal), per the listSystemZones ordering.
func sortZonesByOffsetThenName(zones []*Zone) {
	sort.Slice(zones, func(i, j int) bool {
		if zones[i].baseUtcOffset != zones[j].baseUtcOffset {
			return zones[i].baseUtcOffset < zones[j].baseUtcOffset
		}
		return zones[i].displayName < zones[j].displayName
	})
}
