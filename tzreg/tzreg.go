// Package tzreg implements the OS registry decoder: it
// turns a tzzone.RegistryFields struct — a default fixed record plus an
// optional sequence of per-year dynamic records — into a *tzzone.Zone.
//
// There is no registry wire format of its own to parse here; the bytes-
// to-struct step is a collaborator responsibility, unlike package tzif,
// which reads its header and data blocks from raw TZif bytes itself.
package tzreg

import (
	"fmt"
	"sort"

	"github.com/ngrash/go-tzrules/tzerr"
	"github.com/ngrash/go-tzrules/tzrule"
	"github.com/ngrash/go-tzrules/tzzone"
)

func init() {
	tzzone.RegisterRegistryDecoder(DecodeZone)
}

func materializeTransition(s tzzone.RegistrySystemTime) (tzrule.TransitionTime, error) {
	tod := tzrule.TimeOfDay{Hour: s.Hour, Minute: s.Minute, Second: s.Second, Millisecond: s.Milliseconds}
	if s.Year == 0 {
		return tzrule.NewFloating(tod, s.Month, s.Day, s.DayOfWeek)
	}
	return tzrule.NewFixedDate(tod, s.Month, s.Day)
}

func yearStart(year int) tzrule.Instant {
	i, _ := tzrule.NewInstant(year, 1, 1, 0, 0, 0, 0)
	return i
}

func yearEnd(year int) tzrule.Instant {
	i, _ := tzrule.NewInstant(year, 12, 31, 23, 59, 59, 999)
	return i + 9999
}

// dstRule builds the transitioning rule for one default-or-per-year record:
// DaylightDate marks the transition into daylight time, StandardDate marks
// the transition back to standard time (the Windows registry convention).
func dstRule(start, end tzrule.Instant, baseUtcOffsetDelta, daylightBias int, standardDate, daylightDate tzzone.RegistrySystemTime) (tzrule.AdjustmentRule, error) {
	ts, err := materializeTransition(daylightDate)
	if err != nil {
		return tzrule.AdjustmentRule{}, fmt.Errorf("daylight date: %w", err)
	}
	te, err := materializeTransition(standardDate)
	if err != nil {
		return tzrule.AdjustmentRule{}, fmt.Errorf("standard date: %w", err)
	}
	return tzrule.AdjustmentRule{
		DateStart:               tzrule.NewAbsolute(start),
		DateEnd:                 tzrule.NewAbsolute(end),
		BaseUtcOffsetDelta:      baseUtcOffsetDelta,
		DaylightDelta:           -daylightBias,
		DaylightTransitionStart: ts,
		DaylightTransitionEnd:   te,
	}, nil
}

// DecodeZone turns RegistryFields into a *tzzone.Zone. Registered with
// tzzone as the registry decoder at init time.
func DecodeZone(id string, fields tzzone.RegistryFields) (*tzzone.Zone, error) {
	zoneBaseUtcOffset := tzrule.Offset(-fields.Bias)
	if !zoneBaseUtcOffset.Valid() {
		return nil, fmt.Errorf("%w: baseUtcOffset %v out of range", tzerr.ErrInvalidZone, zoneBaseUtcOffset)
	}

	var rules []tzrule.AdjustmentRule

	switch {
	case len(fields.DynamicRules) > 0:
		recs := make([]tzzone.RegistryYearRecord, len(fields.DynamicRules))
		copy(recs, fields.DynamicRules)
		sort.Slice(recs, func(i, j int) bool { return recs[i].Year < recs[j].Year })

		for i, rec := range recs {
			start, end := yearStart(rec.Year), yearEnd(rec.Year)
			if i == 0 {
				start = tzrule.MinInstant
			}
			if i == len(recs)-1 {
				end = tzrule.MaxInstant
			}

			delta := int(fields.Bias) - rec.Bias
			if rec.StandardDate.IsZero() && rec.DaylightDate.IsZero() {
				if delta == 0 {
					continue
				}
				rules = append(rules, tzrule.AdjustmentRule{
					DateStart:             tzrule.NewAbsolute(start),
					DateEnd:               tzrule.NewAbsolute(end),
					BaseUtcOffsetDelta:    delta,
					NoDaylightTransitions: true,
				})
				continue
			}

			r, err := dstRule(start, end, delta, rec.DaylightBias, rec.StandardDate, rec.DaylightDate)
			if err != nil {
				return nil, fmt.Errorf("%w: dynamic rule %d: %v", tzerr.ErrInvalidZone, rec.Year, err)
			}
			rules = append(rules, r)
		}

	case fields.StandardDate.IsZero() && fields.DaylightDate.IsZero():
		// No DST record at all; base offset alone describes the zone.

	default:
		r, err := dstRule(tzrule.MinInstant, tzrule.MaxInstant, 0, fields.DaylightBias, fields.StandardDate, fields.DaylightDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", tzerr.ErrInvalidZone, err)
		}
		rules = append(rules, r)
	}

	z, err := tzzone.New(id, zoneBaseUtcOffset, id, fields.StandardName, fields.DaylightName, rules)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tzerr.ErrInvalidZone, err)
	}
	return z, nil
}
