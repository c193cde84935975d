package tzif

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ngrash/go-tzrules/tzerr"
	"github.com/ngrash/go-tzrules/tzposix"
	"github.com/ngrash/go-tzrules/tzrule"
	"github.com/ngrash/go-tzrules/tzzone"
)

func init() {
	tzzone.RegisterBytesDecoder(DecodeZone)
}

var unixEpoch = mustUnixEpoch()

func mustUnixEpoch() tzrule.Instant {
	i, err := tzrule.NewInstant(1970, 1, 1, 0, 0, 0, 0)
	if err != nil {
		panic(err)
	}
	return i
}

// minUnixSec and maxUnixSec bound the unix-second range that converts to a
// representable tzrule.Instant without overflowing int64 ticks.
var minUnixSec, maxUnixSec = unixSecBounds()

func unixSecBounds() (int64, int64) {
	min := (int64(tzrule.MinInstant) - int64(unixEpoch)) / int64(tzrule.TicksPerSecond)
	max := (int64(tzrule.MaxInstant) - int64(unixEpoch)) / int64(tzrule.TicksPerSecond)
	return min, max
}

// unixToInstant converts a TZif unix-leap-time value to a tzrule.Instant.
// ok is false when sec falls outside the representable [MinInstant,
// MaxInstant] range, which happens for the "-2**59 predates the Big Bang"
// sentinel transitions RFC 8536 describes; such transitions are coalesced
// into the zone's opening rule.
func unixToInstant(sec int64) (tzrule.Instant, bool) {
	if sec < minUnixSec || sec > maxUnixSec {
		return 0, false
	}
	return unixEpoch + tzrule.Instant(sec)*tzrule.TicksPerSecond, true
}

func designationAt(designations []byte, idx uint8) string {
	i := int(idx)
	if i >= len(designations) {
		return ""
	}
	end := bytes.IndexByte(designations[i:], 0)
	if end < 0 {
		return string(designations[i:])
	}
	return string(designations[i : i+end])
}

// block is the version-independent view of a V1DataBlock/V2DataBlock this
// decoder needs.
type block struct {
	times []int64
	types []uint8
	recs  []LocalTimeTypeRecord
	names []byte
}

func blockOf(f File) block {
	if f.Version == V1 {
		times := make([]int64, len(f.V1Data.TransitionTimes))
		for i, t := range f.V1Data.TransitionTimes {
			times[i] = int64(t)
		}
		return block{times: times, types: f.V1Data.TransitionTypes, recs: f.V1Data.LocalTimeTypeRecord, names: f.V1Data.TimeZoneDesignation}
	}
	return block{times: f.V2Data.TransitionTimes, types: f.V2Data.TransitionTypes, recs: f.V2Data.LocalTimeTypeRecord, names: f.V2Data.TimeZoneDesignation}
}

// pickBaseUtcOffset implements the zoneBaseUtcOffset rule: the
// most recent non-DST type's offset as of the current wall-clock, falling
// back to the first non-DST type, falling back to the first type.
func pickBaseUtcOffset(b block, now int64) int32 {
	var lastNonDst *int32
	for i, t := range b.times {
		if t > now {
			break
		}
		typ := b.recs[b.types[i]]
		if !typ.Dst {
			off := typ.Utoff
			lastNonDst = &off
		}
	}
	if lastNonDst != nil {
		return *lastNonDst
	}
	for _, typ := range b.recs {
		if !typ.Dst {
			return typ.Utoff
		}
	}
	if len(b.recs) > 0 {
		return b.recs[0].Utoff
	}
	return 0
}

func firstRecordPreferringStandard(recs []LocalTimeTypeRecord) LocalTimeTypeRecord {
	for _, r := range recs {
		if !r.Dst {
			return r
		}
	}
	if len(recs) > 0 {
		return recs[0]
	}
	return LocalTimeTypeRecord{}
}

// segmentRule builds the no-transition AdjustmentRule for one fixed-offset
// segment of the zone's history (the opening rule and each
// inter-transition span): typ's offset relative to zoneBase becomes either
// BaseUtcOffsetDelta or DaylightDelta depending on typ.Dst.
func segmentRule(start, end tzrule.Instant, typ LocalTimeTypeRecord, zoneBase int32) tzrule.AdjustmentRule {
	delta := tzrule.RoundSecondsToMinutes(int(typ.Utoff) - int(zoneBase))
	r := tzrule.AdjustmentRule{
		DateStart:             tzrule.NewAbsolute(start),
		DateEnd:               tzrule.NewAbsolute(end),
		NoDaylightTransitions: true,
	}
	if typ.Dst {
		r.DaylightDelta = delta
		r.DaylightTransitionStart = tzrule.DSTTypeSentinel()
		r.DaylightTransitionEnd = tzrule.DSTTypeSentinel()
	} else {
		r.BaseUtcOffsetDelta = delta
	}
	return r
}

// DecodeZone decodes a TZif byte blob into a named
// *tzzone.Zone. Registered with tzzone as the bytes decoder at init time.
func DecodeZone(id string, data []byte) (*tzzone.Zone, error) {
	f, err := DecodeFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode tzif: %v", tzerr.ErrInvalidZone, err)
	}
	if err := Validate(f); err != nil {
		return nil, fmt.Errorf("%w: validate tzif: %v", tzerr.ErrInvalidZone, err)
	}

	b := blockOf(f)
	if len(b.recs) == 0 {
		return nil, fmt.Errorf("%w: tzif file has no local time type records", tzerr.ErrInvalidZone)
	}

	zoneBase := pickBaseUtcOffset(b, time.Now().Unix())
	baseOffsetMinutes := tzrule.RoundSecondsToMinutes(int(zoneBase))
	hasTail := f.Version >= V2 && len(f.V2Footer.TZString) > 0

	parseTail := func(start tzrule.Instant) (tzrule.AdjustmentRule, error) {
		result, perr := tzposix.Parse(string(f.V2Footer.TZString))
		if perr != nil {
			return tzrule.AdjustmentRule{}, fmt.Errorf("%w: extended-future string: %v", tzerr.ErrInvalidZone, perr)
		}
		return result.ToAdjustmentRule(start, baseOffsetMinutes), nil
	}

	var rules []tzrule.AdjustmentRule

	if len(b.times) == 0 {
		if hasTail {
			r, err := parseTail(tzrule.MinInstant)
			if err != nil {
				return nil, err
			}
			rules = append(rules, r)
		} else {
			rules = append(rules, segmentRule(tzrule.MinInstant, tzrule.MaxInstant, firstRecordPreferringStandard(b.recs), zoneBase))
		}
	} else {
		// Transitions are strictly ascending (RFC 8536): once one
		// converts within [MinInstant, MaxInstant], every later one does
		// too. Find the first representable transition; any earlier ones
		// are "before the Big Bang" sentinels that coalesce into an
		// opening rule.
		realStart := len(b.times)
		for i, t := range b.times {
			if _, ok := unixToInstant(t); ok {
				realStart = i
				break
			}
		}

		if realStart == len(b.times) {
			// No representable transition at all; treat like the
			// no-transitions case above.
			if hasTail {
				r, err := parseTail(tzrule.MinInstant)
				if err != nil {
					return nil, err
				}
				rules = append(rules, r)
			} else {
				rules = append(rules, segmentRule(tzrule.MinInstant, tzrule.MaxInstant, firstRecordPreferringStandard(b.recs), zoneBase))
			}
		} else {
			firstInstant, _ := unixToInstant(b.times[realStart])
			if realStart > 0 {
				rules = append(rules, segmentRule(tzrule.MinInstant, firstInstant-1, firstRecordPreferringStandard(b.recs), zoneBase))
			}
			for i := realStart; i < len(b.times); i++ {
				start, _ := unixToInstant(b.times[i])
				typ := b.recs[b.types[i]]
				if i+1 < len(b.times) {
					end, _ := unixToInstant(b.times[i+1])
					rules = append(rules, segmentRule(start, end-1, typ, zoneBase))
					continue
				}
				if hasTail {
					r, err := parseTail(start)
					if err != nil {
						return nil, err
					}
					rules = append(rules, r)
				} else {
					rules = append(rules, segmentRule(start, tzrule.MaxInstant, typ, zoneBase))
				}
			}
		}
	}

	standardName := firstRecordPreferringStandard(b.recs)
	var daylightName string
	for _, r := range b.recs {
		if r.Dst {
			daylightName = designationAt(b.names, r.Idx)
			break
		}
	}

	z, err := tzzone.New(id, tzrule.Offset(baseOffsetMinutes), id,
		designationAt(b.names, standardName.Idx), daylightName, rules)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tzerr.ErrInvalidZone, err)
	}
	return z, nil
}
