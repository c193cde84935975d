package tzzone

import (
	"fmt"
	"sort"

	"github.com/ngrash/go-tzrules/tzerr"
	"github.com/ngrash/go-tzrules/tzrule"
)

// ConvertOptions carries the options Convert recognizes.
type ConvertOptions struct {
	// NoThrowOnInvalidTime suppresses ErrInvalidTime for a wall time that
	// falls in a DST invalid window; the conversion proceeds using the
	// pre-transition (standard) offset. Defaults to false, except the hot-path
	// offset query (GetOffset) which always behaves as if this were
	// true.
	NoThrowOnInvalidTime bool
}

// GetOffset returns the effective UTC offset for t, which may be Absolute
// or Wall-tagged (in this zone, or another).
func (z *Zone) GetOffset(t tzrule.CalendarDateTime) (tzrule.Offset, error) {
	switch t.Tag {
	case tzrule.Absolute:
		u, err := t.Instant()
		if err != nil {
			return 0, err
		}
		off, _, _ := tzrule.OffsetFromInstant(z.rules, z.baseUtcOffset, u)
		return off, nil
	case tzrule.Wall, tzrule.Unspecified:
		return tzrule.GetOffsetWall(z.rules, z.baseUtcOffset, t), nil
	default:
		return 0, fmt.Errorf("%w: unrecognized tag %v", tzerr.ErrTagMismatch, t.Tag)
	}
}

// IsDaylightSaving reports whether t (Absolute or Wall) falls within
// daylight time in this zone.
func (z *Zone) IsDaylightSaving(t tzrule.CalendarDateTime) (bool, error) {
	if t.Tag == tzrule.Absolute {
		u, err := t.Instant()
		if err != nil {
			return false, err
		}
		_, dst, _ := tzrule.OffsetFromInstant(z.rules, z.baseUtcOffset, u)
		return dst, nil
	}
	idx, ok := tzrule.SelectRule(z.rules, t, z.baseUtcOffset, false)
	if !ok {
		return false, nil
	}
	return tzrule.RuleIsDST(z.rules, idx, z.baseUtcOffset, t), nil
}

// IsAmbiguous reports whether the wall time t is ambiguous (repeated) in
// this zone. For an Absolute t it reports whether that instant falls in
// the UTC window whose local wall time is repeated.
func (z *Zone) IsAmbiguous(t tzrule.CalendarDateTime) (bool, error) {
	if t.Tag == tzrule.Absolute {
		u, err := t.Instant()
		if err != nil {
			return false, err
		}
		_, _, amb := tzrule.OffsetFromInstant(z.rules, z.baseUtcOffset, u)
		return amb, nil
	}
	idx, ok := tzrule.SelectRule(z.rules, t, z.baseUtcOffset, false)
	if !ok {
		return false, nil
	}
	return tzrule.RuleIsAmbiguous(z.rules, idx, z.baseUtcOffset, t), nil
}

// IsInvalid reports whether the wall time t names a skipped (nonexistent)
// clock reading in this zone.
func (z *Zone) IsInvalid(t tzrule.CalendarDateTime) (bool, error) {
	if t.Tag == tzrule.Absolute {
		return false, nil
	}
	idx, ok := tzrule.SelectRule(z.rules, t, z.baseUtcOffset, false)
	if !ok {
		return false, nil
	}
	return tzrule.RuleIsInvalid(z.rules, idx, z.baseUtcOffset, t), nil
}

// GetAmbiguousOffsets returns, for an ambiguous wall time t, the two
// candidate offsets in ascending order.
func (z *Zone) GetAmbiguousOffsets(t tzrule.CalendarDateTime) ([2]tzrule.Offset, error) {
	var result [2]tzrule.Offset
	if !z.SupportsDST() {
		return result, fmt.Errorf("%w: zone does not support DST", tzerr.ErrNotAmbiguous)
	}
	amb, err := z.IsAmbiguous(t)
	if err != nil {
		return result, err
	}
	if !amb {
		return result, fmt.Errorf("%w: %v", tzerr.ErrNotAmbiguous, t)
	}
	idx, ok := tzrule.SelectRule(z.rules, t, z.baseUtcOffset, false)
	if !ok {
		return result, fmt.Errorf("%w: %v", tzerr.ErrNotAmbiguous, t)
	}
	r := z.rules[idx]
	standard := z.baseUtcOffset + tzrule.Offset(r.BaseUtcOffsetDelta)
	daylight := standard + tzrule.Offset(r.DaylightDelta)
	offs := []tzrule.Offset{standard, daylight}
	sort.Slice(offs, func(i, j int) bool { return offs[i] < offs[j] })
	result[0], result[1] = offs[0], offs[1]
	return result, nil
}

// Convert reinterprets t (tagged for sourceZone) as the equivalent time in
// destZone.
func Convert(t tzrule.CalendarDateTime, sourceZone, destZone *Zone, options ConvertOptions) (tzrule.CalendarDateTime, error) {
	var u tzrule.Instant
	switch t.Tag {
	case tzrule.Absolute:
		var err error
		u, err = t.Instant()
		if err != nil {
			return tzrule.CalendarDateTime{}, err
		}
	case tzrule.Wall, tzrule.Unspecified:
		if !options.NoThrowOnInvalidTime {
			invalid, err := sourceZone.IsInvalid(t)
			if err != nil {
				return tzrule.CalendarDateTime{}, err
			}
			if invalid {
				return tzrule.CalendarDateTime{}, fmt.Errorf("%w: %v in zone %s", tzerr.ErrInvalidTime, t, sourceZone.id)
			}
		}
		off, err := sourceZone.GetOffset(t)
		if err != nil {
			return tzrule.CalendarDateTime{}, err
		}
		ti, err := t.Instant()
		if err != nil {
			return tzrule.CalendarDateTime{}, err
		}
		u = ti - off.Duration()
	default:
		return tzrule.CalendarDateTime{}, fmt.Errorf("%w: unrecognized tag %v", tzerr.ErrTagMismatch, t.Tag)
	}

	destOff, _, _ := tzrule.OffsetFromInstant(destZone.rules, destZone.baseUtcOffset, u)
	result := tzrule.NewAbsolute(u.AddMinutes(int(destOff)))
	result.Tag = tzrule.Wall
	return result, nil
}
