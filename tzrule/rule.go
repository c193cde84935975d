package tzrule

import "fmt"

// AdjustmentRule is a contiguous validity window over which a zone's
// offset is computed one particular way: either by applying a yearly DST
// transition (the common case) or by fixing a single offset for the whole
// window (a "no-transition rule").
type AdjustmentRule struct {
	// DateStart and DateEnd bound the rule's validity window. Each is
	// Unspecified or Absolute; when Unspecified the time-of-day must be
	// zero. Chronologically DateStart <= DateEnd.
	DateStart, DateEnd CalendarDateTime

	// DaylightDelta is the signed difference, in whole minutes, between
	// daylight and standard offset within this rule's window. Range
	// [-23h, +14h].
	DaylightDelta int

	// DaylightTransitionStart and DaylightTransitionEnd identify the
	// yearly DST boundary within [DateStart, DateEnd]. Ignored (but
	// still carried) when NoDaylightTransitions is true.
	DaylightTransitionStart, DaylightTransitionEnd TransitionTime

	// BaseUtcOffsetDelta is an optional per-window correction added to
	// the owning zone's base offset.
	BaseUtcOffsetDelta int

	// NoDaylightTransitions, when true, means this rule fixes a single
	// offset (BaseUtcOffsetDelta, plus DaylightDelta if nonzero) over
	// its entire [DateStart, DateEnd] window rather than oscillating
	// yearly. DateStart/DateEnd must both be Absolute in this shape.
	NoDaylightTransitions bool
}

// dstTypeSentinel is the TransitionTime a binary-decoder rule stamps on
// DaylightTransitionStart when it represents a single DST-typed TZif local
// time type record whose offset happens to coincide with the zone's base
// offset (DaylightDelta rounds to 0): HasDaylightSaving still reports true
// for it, because the type record's own isdst bit said so. The 2ms offset
// keeps it distinct from a genuine year-start marker, which always carries
// a zero time-of-day.
var dstTypeSentinel = TransitionTime{Kind: FixedDate, Month: 1, Day: 1, Time: TimeOfDay{Millisecond: 2}}

// DSTTypeSentinel returns the marker TransitionTime described above, for
// use by decoders that need to preserve a DST classification bit on a
// zero-delta no-transition rule.
func DSTTypeSentinel() TransitionTime {
	return dstTypeSentinel
}

// HasDaylightSaving reports whether this rule ever puts the zone into
// daylight time: true whenever DaylightDelta != 0, or when
// DaylightTransitionStart carries the decoder's DST-type sentinel marker
// despite a zero delta.
func (r AdjustmentRule) HasDaylightSaving() bool {
	if r.DaylightDelta != 0 {
		return true
	}
	return r.DaylightTransitionStart == dstTypeSentinel
}

// Validate checks the structural invariants that apply to a single rule,
// independent of its neighbors in a Zone's rule array.
func (r AdjustmentRule) Validate() error {
	if r.DateStart.Tag == Unspecified && (r.DateStart.Hour != 0 || r.DateStart.Minute != 0 || r.DateStart.Second != 0 || r.DateStart.Millisecond != 0) {
		return fmt.Errorf("tzrule: Unspecified DateStart must have zero time-of-day")
	}
	if r.DateEnd.Tag == Unspecified && (r.DateEnd.Hour != 0 || r.DateEnd.Minute != 0 || r.DateEnd.Second != 0 || r.DateEnd.Millisecond != 0) {
		return fmt.Errorf("tzrule: Unspecified DateEnd must have zero time-of-day")
	}
	if r.DateStart.Compare(r.DateEnd) > 0 {
		return fmt.Errorf("tzrule: DateStart must be <= DateEnd")
	}
	if r.DaylightDelta < -23*60 || r.DaylightDelta > 14*60 {
		return fmt.Errorf("tzrule: DaylightDelta %d out of range [-23h,+14h]", r.DaylightDelta)
	}
	if r.NoDaylightTransitions {
		if r.DateStart.Tag != Absolute || r.DateEnd.Tag != Absolute {
			return fmt.Errorf("tzrule: no-transition rule requires Absolute DateStart/DateEnd")
		}
	}
	return nil
}
