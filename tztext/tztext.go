// Package tztext implements the textual codec: the
// externally stable wire format for round-tripping a *tzzone.Zone through
// a single semicolon-delimited string.
//
// The manual field-scanning style mirrors package tzposix and the
// tzdata package's own line parser: plain string slicing, no regexp.
package tztext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ngrash/go-tzrules/tzerr"
	"github.com/ngrash/go-tzrules/tzrule"
	"github.com/ngrash/go-tzrules/tzzone"
)

// Serialize renders z in this grammar:
//
//	zone = id ";" baseOffsetMinutes ";" display ";" standard ";" daylight ";" rule* ";"
func Serialize(z *tzzone.Zone) string {
	var b strings.Builder
	writeField(&b, z.ID())
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(int(z.BaseUtcOffset())))
	b.WriteByte(';')
	writeField(&b, z.DisplayName())
	b.WriteByte(';')
	writeField(&b, z.StandardName())
	b.WriteByte(';')
	writeField(&b, z.DaylightName())
	b.WriteByte(';')
	for _, r := range z.Rules() {
		writeRule(&b, r)
	}
	b.WriteByte(';')
	return b.String()
}

func writeRule(b *strings.Builder, r tzrule.AdjustmentRule) {
	b.WriteByte('[')
	writeDate(b, r.DateStart)
	b.WriteByte(';')
	writeDate(b, r.DateEnd)
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(r.DaylightDelta))
	b.WriteByte(';')
	writeTransitionTime(b, r.DaylightTransitionStart)
	b.WriteByte(';')
	writeTransitionTime(b, r.DaylightTransitionEnd)
	b.WriteByte(';')
	if r.BaseUtcOffsetDelta != 0 {
		b.WriteString(strconv.Itoa(r.BaseUtcOffsetDelta))
		b.WriteByte(';')
	}
	if r.NoDaylightTransitions {
		b.WriteString("1;")
	}
	b.WriteByte(']')
}

func writeTransitionTime(b *strings.Builder, t tzrule.TransitionTime) {
	b.WriteByte('[')
	if t.Kind == tzrule.FixedDate {
		b.WriteString("1;")
	} else {
		b.WriteString("0;")
	}
	b.WriteString(t.Time.String())
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(t.Month))
	b.WriteByte(';')
	if t.Kind == tzrule.FixedDate {
		b.WriteString(strconv.Itoa(t.Day))
	} else {
		b.WriteString(strconv.Itoa(t.Week))
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(t.DayOfWeek))
	}
	b.WriteByte(';')
	b.WriteByte(']')
}

func writeDate(b *strings.Builder, c tzrule.CalendarDateTime) {
	b.WriteString(fmt.Sprintf("%02d:%02d:%04d", c.Month, c.Day, c.Year))
}

func writeField(b *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '\\', ';', '[', ']':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
}

// Deserialize parses s back into a *tzzone.Zone. Any malformed escape,
// missing separator, bad numeric token, or AdjustmentRule validation
// failure is reported as ErrSerialization.
func Deserialize(s string) (*tzzone.Zone, error) {
	p := &parser{s: s}

	id, err := p.field()
	if err != nil {
		return nil, serr("id", err)
	}
	baseOffsetStr, err := p.rawField()
	if err != nil {
		return nil, serr("baseOffsetMinutes", err)
	}
	baseOffset, err := strconv.Atoi(baseOffsetStr)
	if err != nil {
		return nil, serr("baseOffsetMinutes", err)
	}
	display, err := p.field()
	if err != nil {
		return nil, serr("display", err)
	}
	standard, err := p.field()
	if err != nil {
		return nil, serr("standard", err)
	}
	daylight, err := p.field()
	if err != nil {
		return nil, serr("daylight", err)
	}

	var rules []tzrule.AdjustmentRule
	for p.peek() == '[' {
		r, err := p.rule()
		if err != nil {
			return nil, serr("rule", err)
		}
		rules = append(rules, r)
	}
	if err := p.expect(';'); err != nil {
		return nil, serr("zone terminator", err)
	}
	if !p.atEnd() {
		return nil, serr("trailing data", fmt.Errorf("unexpected %q", p.s[p.i:]))
	}

	z, err := tzzone.New(id, tzrule.Offset(baseOffset), display, standard, daylight, rules)
	if err != nil {
		return nil, serr("zone", err)
	}
	return z, nil
}

func serr(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", tzerr.ErrSerialization, what, err)
}

type parser struct {
	s string
	i int
}

func (p *parser) peek() byte {
	if p.i >= len(p.s) {
		return 0
	}
	return p.s[p.i]
}

func (p *parser) atEnd() bool { return p.i >= len(p.s) }

// field reads one escaped, ';'-terminated top-level string field.
func (p *parser) field() (string, error) {
	var b strings.Builder
	for {
		if p.i >= len(p.s) {
			return "", fmt.Errorf("unterminated field")
		}
		c := p.s[p.i]
		switch c {
		case ';':
			p.i++
			return b.String(), nil
		case '\\':
			p.i++
			if p.i >= len(p.s) {
				return "", fmt.Errorf("dangling escape")
			}
			esc := p.s[p.i]
			switch esc {
			case '\\', ';', '[', ']':
				b.WriteByte(esc)
			default:
				return "", fmt.Errorf("invalid escape sequence \\%c", esc)
			}
			p.i++
		default:
			b.WriteByte(c)
			p.i++
		}
	}
}

// rawField reads a ';'-terminated field without unescaping, used for
// plain numeric tokens.
func (p *parser) rawField() (string, error) {
	end := strings.IndexByte(p.s[p.i:], ';')
	if end < 0 {
		return "", fmt.Errorf("unterminated field")
	}
	v := p.s[p.i : p.i+end]
	p.i += end + 1
	return v, nil
}

func (p *parser) expect(c byte) error {
	if p.i >= len(p.s) || p.s[p.i] != c {
		return fmt.Errorf("expected %q", string(c))
	}
	p.i++
	return nil
}

func (p *parser) rule() (tzrule.AdjustmentRule, error) {
	var r tzrule.AdjustmentRule
	if err := p.expect('['); err != nil {
		return r, err
	}
	start, err := p.date()
	if err != nil {
		return r, fmt.Errorf("dateStart: %v", err)
	}
	r.DateStart = start
	end, err := p.date()
	if err != nil {
		return r, fmt.Errorf("dateEnd: %v", err)
	}
	r.DateEnd = end

	delta, err := p.rawField()
	if err != nil {
		return r, fmt.Errorf("daylightDeltaMinutes: %v", err)
	}
	r.DaylightDelta, err = strconv.Atoi(delta)
	if err != nil {
		return r, fmt.Errorf("daylightDeltaMinutes: %v", err)
	}

	r.DaylightTransitionStart, err = p.transitionTime()
	if err != nil {
		return r, fmt.Errorf("ttStart: %v", err)
	}
	r.DaylightTransitionEnd, err = p.transitionTime()
	if err != nil {
		return r, fmt.Errorf("ttEnd: %v", err)
	}

	// Trailing fields are optional and positional: a first
	// numeric token is baseUtcOffsetDelta, a literal "1" after that (or
	// alone, directly after ttEnd) is noDaylightTransitions. Any further
	// token is an unknown forward-compatible extension and is skipped.
	var trailing []string
	for p.peek() != ']' {
		if p.atEnd() {
			return r, fmt.Errorf("unterminated rule")
		}
		tok, err := p.rawField()
		if err != nil {
			return r, fmt.Errorf("trailing field: %v", err)
		}
		trailing = append(trailing, tok)
	}
	switch len(trailing) {
	case 0:
	case 1:
		if trailing[0] == "1" {
			r.NoDaylightTransitions = true
		} else if n, err := strconv.Atoi(trailing[0]); err == nil {
			r.BaseUtcOffsetDelta = n
		}
	default:
		if n, err := strconv.Atoi(trailing[0]); err == nil {
			r.BaseUtcOffsetDelta = n
		}
		if trailing[1] == "1" {
			r.NoDaylightTransitions = true
		}
	}
	if err := p.expect(']'); err != nil {
		return r, err
	}
	return r, nil
}

func (p *parser) transitionTime() (tzrule.TransitionTime, error) {
	var tt tzrule.TransitionTime
	if err := p.expect('['); err != nil {
		return tt, err
	}
	isFixed, err := p.rawField()
	if err != nil {
		return tt, fmt.Errorf("isFixed: %v", err)
	}
	tod, err := p.timeOfDay()
	if err != nil {
		return tt, fmt.Errorf("timeOfDay: %v", err)
	}
	monthStr, err := p.rawField()
	if err != nil {
		return tt, fmt.Errorf("month: %v", err)
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return tt, fmt.Errorf("month: %v", err)
	}

	if isFixed == "1" {
		dayStr, err := p.rawField()
		if err != nil {
			return tt, fmt.Errorf("day: %v", err)
		}
		day, err := strconv.Atoi(dayStr)
		if err != nil {
			return tt, fmt.Errorf("day: %v", err)
		}
		switch {
		case month == 0 && day == 0 && tod == (tzrule.TimeOfDay{}):
			// The zero-value TransitionTime a no-transition rule carries
			// for its (unused) DaylightTransitionStart/End round-trips as
			// plain zero fields rather than a validated FixedDate, since
			// month 0 would otherwise fail NewFixedDate's range check.
			tt = tzrule.TransitionTime{}
		default:
			tt, err = tzrule.NewFixedDate(tod, month, day)
			if err != nil {
				return tt, err
			}
		}
	} else {
		weekStr, err := p.rawField()
		if err != nil {
			return tt, fmt.Errorf("week: %v", err)
		}
		week, err := strconv.Atoi(weekStr)
		if err != nil {
			return tt, fmt.Errorf("week: %v", err)
		}
		dowStr, err := p.rawField()
		if err != nil {
			return tt, fmt.Errorf("dayOfWeek: %v", err)
		}
		dow, err := strconv.Atoi(dowStr)
		if err != nil {
			return tt, fmt.Errorf("dayOfWeek: %v", err)
		}
		tt, err = tzrule.NewFloating(tod, month, week, dow)
		if err != nil {
			return tt, err
		}
	}

	// Skip any unknown trailing fields before the closing ']'.
	for p.peek() != ']' {
		if p.atEnd() {
			return tt, fmt.Errorf("unterminated transition time")
		}
		if _, err := p.rawField(); err != nil {
			return tt, err
		}
	}
	if err := p.expect(']'); err != nil {
		return tt, err
	}
	return tt, nil
}

func (p *parser) date() (tzrule.CalendarDateTime, error) {
	raw, err := p.rawField()
	if err != nil {
		return tzrule.CalendarDateTime{}, err
	}
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return tzrule.CalendarDateTime{}, fmt.Errorf("malformed date %q, want MM:dd:yyyy", raw)
	}
	month, err1 := strconv.Atoi(parts[0])
	day, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return tzrule.CalendarDateTime{}, fmt.Errorf("malformed date %q", raw)
	}
	return tzrule.CalendarDateTime{Year: year, Month: month, Day: day, Tag: tzrule.Absolute}, nil
}

func (p *parser) timeOfDay() (tzrule.TimeOfDay, error) {
	raw, err := p.rawField()
	if err != nil {
		return tzrule.TimeOfDay{}, err
	}
	hms := strings.SplitN(raw, ".", 2)
	clock := strings.Split(hms[0], ":")
	if len(clock) != 3 {
		return tzrule.TimeOfDay{}, fmt.Errorf("malformed time %q, want HH:mm:ss.FFF", raw)
	}
	h, err1 := strconv.Atoi(clock[0])
	mi, err2 := strconv.Atoi(clock[1])
	s, err3 := strconv.Atoi(clock[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return tzrule.TimeOfDay{}, fmt.Errorf("malformed time %q", raw)
	}
	ms := 0
	if len(hms) == 2 {
		ms, err = strconv.Atoi(hms[1])
		if err != nil {
			return tzrule.TimeOfDay{}, fmt.Errorf("malformed milliseconds %q", raw)
		}
	}
	return tzrule.TimeOfDay{Hour: h, Minute: mi, Second: s, Millisecond: ms}, nil
}
