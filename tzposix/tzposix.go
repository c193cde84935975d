// Package tzposix implements the extended-future mini-parser:
// the POSIX-style "std offset dst [offset] [,start[/time],end[/time]]"
// string trailing a v2/v3 TZif blob, turned into the zone's final
// AdjustmentRule.
//
// The manual scanning style here follows package tzdata's own line
// parser: plain string slicing and strconv, no regexp dependency.
package tzposix

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ngrash/go-tzrules/tzerr"
	"github.com/ngrash/go-tzrules/tzrule"
)

// Result is the parsed content of a POSIX TZ-style extended-future
// string, before it is composed into a final tzrule.AdjustmentRule (which
// requires the zone's baseUtcOffset and a start-of-validity date the
// caller supplies).
type Result struct {
	StdName          string
	StdOffsetMinutes int // actual UTC offset in minutes (sign already inverted from POSIX convention)

	HasDST              bool
	DstName             string
	DstOffsetMinutes    int  // actual UTC offset in minutes; StdOffsetMinutes+60 unless DstOffsetExplicit
	DstOffsetExplicit   bool
	Start, End          tzrule.TransitionTime
}

// Parse parses s, the trailing extended-future string of a v2/v3 TZif
// blob (with its surrounding newlines already stripped by the caller).
func Parse(s string) (Result, error) {
	var r Result

	name, rest, err := scanName(s)
	if err != nil {
		return r, fmt.Errorf("%w: std name: %v", tzerr.ErrInvalidZone, err)
	}
	r.StdName = name

	offMinutes, rest, err := scanOffset(rest)
	if err != nil {
		return r, fmt.Errorf("%w: std offset: %v", tzerr.ErrInvalidZone, err)
	}
	r.StdOffsetMinutes = -offMinutes

	if rest == "" {
		return r, nil
	}

	r.HasDST = true
	dstName, rest2, err := scanName(rest)
	if err != nil {
		return r, fmt.Errorf("%w: dst name: %v", tzerr.ErrInvalidZone, err)
	}
	r.DstName = dstName
	rest = rest2

	if rest != "" && rest[0] != ',' {
		off, rest3, err := scanOffset(rest)
		if err != nil {
			return r, fmt.Errorf("%w: dst offset: %v", tzerr.ErrInvalidZone, err)
		}
		r.DstOffsetMinutes = -off
		r.DstOffsetExplicit = true
		rest = rest3
	} else {
		r.DstOffsetMinutes = r.StdOffsetMinutes + 60 // default daylightDelta = +1h
	}

	if rest == "" {
		// DST name present with no start/end rule is underspecified; the
		// caller has no transitions to materialize. Treat as std-only.
		r.HasDST = false
		return r, nil
	}
	if rest[0] != ',' {
		return r, fmt.Errorf("%w: expected ',' before start rule, got %q", tzerr.ErrInvalidZone, rest)
	}
	rest = rest[1:]

	start, rest4, err := scanDateRule(rest)
	if err != nil {
		return r, fmt.Errorf("%w: start rule: %v", tzerr.ErrInvalidZone, err)
	}
	r.Start = start
	rest = rest4

	if rest == "" || rest[0] != ',' {
		return r, fmt.Errorf("%w: expected ',' before end rule, got %q", tzerr.ErrInvalidZone, rest)
	}
	rest = rest[1:]

	end, rest5, err := scanDateRule(rest)
	if err != nil {
		return r, fmt.Errorf("%w: end rule: %v", tzerr.ErrInvalidZone, err)
	}
	r.End = end
	rest = rest5

	if rest != "" {
		return r, fmt.Errorf("%w: unexpected trailing data %q", tzerr.ErrInvalidZone, rest)
	}

	return r, nil
}

// scanName consumes a std/dst designation: one or more characters other
// than digits, '+', '-', ','. A POSIX quoted <...> form is accepted too.
func scanName(s string) (name string, rest string, err error) {
	if s == "" {
		return "", "", fmt.Errorf("empty name")
	}
	if s[0] == '<' {
		end := strings.IndexByte(s, '>')
		if end < 0 {
			return "", "", fmt.Errorf("unterminated quoted name %q", s)
		}
		return s[1:end], s[end+1:], nil
	}
	i := 0
	for i < len(s) {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '+' || c == '-' || c == ',' {
			break
		}
		i++
	}
	if i == 0 {
		return "", "", fmt.Errorf("empty name in %q", s)
	}
	return s[:i], s[i:], nil
}

// scanOffset consumes a POSIX offset of the form [+-]H[:M[:S]], returning
// its value in minutes as written (sign NOT inverted — callers invert per
// the POSIX west-of-UTC convention).
func scanOffset(s string) (minutes int, rest string, err error) {
	if s == "" {
		return 0, "", fmt.Errorf("missing offset")
	}
	sign := 1
	i := 0
	if s[0] == '+' {
		i++
	} else if s[0] == '-' {
		sign = -1
		i++
	}
	h, n, err := scanUint(s[i:])
	if err != nil {
		return 0, "", fmt.Errorf("hour: %v", err)
	}
	i += n
	minute, second := 0, 0
	if i < len(s) && s[i] == ':' {
		i++
		minute, n, err = scanUint(s[i:])
		if err != nil {
			return 0, "", fmt.Errorf("minute: %v", err)
		}
		i += n
		if i < len(s) && s[i] == ':' {
			i++
			second, n, err = scanUint(s[i:])
			if err != nil {
				return 0, "", fmt.Errorf("second: %v", err)
			}
			i += n
		}
	}
	totalSeconds := sign * (h*3600 + minute*60 + second)
	minutes = tzrule.RoundSecondsToMinutes(totalSeconds)
	return minutes, s[i:], nil
}

func scanUint(s string) (v int, n int, err error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, 0, fmt.Errorf("expected digits, got %q", s)
	}
	v64, err := strconv.ParseInt(s[:i], 10, 32)
	if err != nil {
		return 0, 0, err
	}
	return int(v64), i, nil
}

// scanDateRule consumes one of a start/end rule pair: "Mm.w.d[/time]".
// The Jn and bare-n (Julian day) forms are recognized and rejected
// explicitly rather than silently mishandled.
func scanDateRule(s string) (tzrule.TransitionTime, string, error) {
	if s == "" {
		return tzrule.TransitionTime{}, "", fmt.Errorf("empty date rule")
	}
	if s[0] == 'J' || (s[0] >= '0' && s[0] <= '9') {
		return tzrule.TransitionTime{}, "", fmt.Errorf("julian-day date rule %q is not supported", s)
	}
	if s[0] != 'M' {
		return tzrule.TransitionTime{}, "", fmt.Errorf("unrecognized date rule %q", s)
	}
	rest := s[1:]
	month, n, err := scanUint(rest)
	if err != nil {
		return tzrule.TransitionTime{}, "", fmt.Errorf("month: %v", err)
	}
	rest = rest[n:]
	if rest == "" || rest[0] != '.' {
		return tzrule.TransitionTime{}, "", fmt.Errorf("expected '.' after month in %q", s)
	}
	rest = rest[1:]
	week, n, err := scanUint(rest)
	if err != nil {
		return tzrule.TransitionTime{}, "", fmt.Errorf("week: %v", err)
	}
	rest = rest[n:]
	if rest == "" || rest[0] != '.' {
		return tzrule.TransitionTime{}, "", fmt.Errorf("expected '.' after week in %q", s)
	}
	rest = rest[1:]
	dow, n, err := scanUint(rest)
	if err != nil {
		return tzrule.TransitionTime{}, "", fmt.Errorf("weekday: %v", err)
	}
	rest = rest[n:]

	hour, minute, second, dayShift := 2, 0, 0, 0 // default 02:00
	if rest != "" && rest[0] == '/' {
		totalSeconds, timeRest, err := scanExtendedTimeSeconds(rest[1:])
		if err != nil {
			return tzrule.TransitionTime{}, "", fmt.Errorf("time: %v", err)
		}
		rest = timeRest
		dayShift = floorDiv(totalSeconds, 86400)
		secOfDay := totalSeconds - dayShift*86400
		hour, minute, second = secOfDay/3600, (secOfDay%3600)/60, secOfDay%60
	}

	tt, err := tzrule.NewFloating(tzrule.TimeOfDay{Hour: hour, Minute: minute, Second: second}, month, week, dow)
	if err != nil {
		return tzrule.TransitionTime{}, "", err
	}
	tt.DayShift = dayShift
	return tt, rest, nil
}

// scanExtendedTimeSeconds parses the "/time" suffix, which per RFC 8536
// §3.3.1 may range outside an ordinary [0,24h) time-of-day in V3 files
// (and may be negative). It consumes the rest of the string (there is no
// trailing separator after the last field).
func scanExtendedTimeSeconds(s string) (seconds int, rest string, err error) {
	sign := 1
	i := 0
	if i < len(s) && s[i] == '+' {
		i++
	} else if i < len(s) && s[i] == '-' {
		sign = -1
		i++
	}
	h, n, err := scanUint(s[i:])
	if err != nil {
		return 0, "", fmt.Errorf("hour: %v", err)
	}
	i += n
	minute, second := 0, 0
	if i < len(s) && s[i] == ':' {
		i++
		minute, n, err = scanUint(s[i:])
		if err != nil {
			return 0, "", fmt.Errorf("minute: %v", err)
		}
		i += n
		if i < len(s) && s[i] == ':' {
			i++
			second, n, err = scanUint(s[i:])
			if err != nil {
				return 0, "", fmt.Errorf("second: %v", err)
			}
			i += n
		}
	}
	return sign * (h*3600 + minute*60 + second), s[i:], nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ToAdjustmentRule builds the final tail rule spanning [start, MaxInstant]:
// a fixed-offset no-transition rule when the string named no dst, or a
// transitioning rule otherwise.
// zoneBaseUtcOffsetMinutes is the owning zone's base offset, used to turn
// r's absolute UTC offsets into the deltas an AdjustmentRule stores.
func (r Result) ToAdjustmentRule(start tzrule.Instant, zoneBaseUtcOffsetMinutes int) tzrule.AdjustmentRule {
	rule := tzrule.AdjustmentRule{
		DateStart: tzrule.NewAbsolute(start),
		DateEnd:   tzrule.NewAbsolute(tzrule.MaxInstant),
	}
	baseDelta := r.StdOffsetMinutes - zoneBaseUtcOffsetMinutes
	rule.BaseUtcOffsetDelta = baseDelta

	if !r.HasDST {
		rule.NoDaylightTransitions = true
		return rule
	}

	rule.DaylightDelta = r.DstOffsetMinutes - r.StdOffsetMinutes
	rule.DaylightTransitionStart = r.Start
	rule.DaylightTransitionEnd = r.End
	return rule
}
