package tzrule

import "fmt"

// TimeOfDay is a time-of-day with millisecond granularity, used as the
// clock reading at which a yearly DST transition occurs. It
// carries no date of its own (conceptually year=month=day=1).
type TimeOfDay struct {
	Hour, Minute, Second, Millisecond int
}

// Ticks returns the time-of-day as a tick offset from midnight.
func (t TimeOfDay) Ticks() Instant {
	return Instant(t.Hour)*TicksPerHour + Instant(t.Minute)*TicksPerMinute +
		Instant(t.Second)*TicksPerSecond + Instant(t.Millisecond)*TicksPerMillisecond
}

func (t TimeOfDay) valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59 &&
		t.Second >= 0 && t.Second <= 59 && t.Millisecond >= 0 && t.Millisecond <= 999
}

// IsMidnight reports whether t names 00:00:00.000.
func (t TimeOfDay) IsMidnight() bool {
	return t.Hour == 0 && t.Minute == 0 && t.Second == 0 && t.Millisecond == 0
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d", t.Hour, t.Minute, t.Second, t.Millisecond)
}

// TransitionKind discriminates the two shapes a TransitionTime can take.
type TransitionKind int

const (
	// FixedDate identifies a transition that happens on the same
	// calendar day (month/day) every year.
	FixedDate TransitionKind = iota
	// Floating identifies a transition that happens on the Nth (or
	// last) occurrence of a weekday within a month every year.
	Floating
)

// TransitionTime is the discriminated value identifying a yearly DST
// boundary: either a fixed month/day, or a floating weekday-of-week-of-
// month ("2nd Sunday in March").
type TransitionTime struct {
	Kind TransitionKind
	Time TimeOfDay
	Month int // 1..12, both kinds

	// FixedDate fields.
	Day int // 1..31; clamped to the last day of Month for a given year.

	// Floating fields.
	Week      int // 1..5; 5 means "last occurrence".
	DayOfWeek int // 0..6, 0 = Sunday.

	// DayShift is an extra whole-day shift (positive or negative)
	// applied after materializing the boundary. It is always zero for
	// transitions decoded from TZif or the registry form; the POSIX
	// extended-future mini-parser (package tzposix) uses it to carry a
	// start/end time-of-day outside the ordinary [0,24h) range (RFC 8536
	// §3.3.1's "time may be the literal 25" V3 extension) without
	// widening TimeOfDay's hour range.
	DayShift int
}

// NewFixedDate constructs a FixedDate TransitionTime.
func NewFixedDate(t TimeOfDay, month, day int) (TransitionTime, error) {
	if !t.valid() {
		return TransitionTime{}, fmt.Errorf("tzrule: invalid time-of-day %v", t)
	}
	if month < 1 || month > 12 {
		return TransitionTime{}, fmt.Errorf("tzrule: month %d out of range", month)
	}
	if day < 1 || day > 31 {
		return TransitionTime{}, fmt.Errorf("tzrule: day %d out of range", day)
	}
	return TransitionTime{Kind: FixedDate, Time: t, Month: month, Day: day}, nil
}

// NewFloating constructs a Floating TransitionTime. week=5 means "last
// occurrence of dayOfWeek in month".
func NewFloating(t TimeOfDay, month, week, dayOfWeek int) (TransitionTime, error) {
	if !t.valid() {
		return TransitionTime{}, fmt.Errorf("tzrule: invalid time-of-day %v", t)
	}
	if month < 1 || month > 12 {
		return TransitionTime{}, fmt.Errorf("tzrule: month %d out of range", month)
	}
	if week < 1 || week > 5 {
		return TransitionTime{}, fmt.Errorf("tzrule: week %d out of range", week)
	}
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return TransitionTime{}, fmt.Errorf("tzrule: dayOfWeek %d out of range", dayOfWeek)
	}
	return TransitionTime{Kind: Floating, Time: t, Month: month, Week: week, DayOfWeek: dayOfWeek}, nil
}

// IsYearStartMarker reports whether this is the sentinel "January 1st,
// 00:00:00.000" fixed date used to mean "the year opens already inside the
// window" (the startMarker/endMarker).
func (t TransitionTime) IsYearStartMarker() bool {
	return t.Kind == FixedDate && t.Month == 1 && t.Day == 1 && t.Time.IsMidnight()
}

// Materialize returns the wall-clock Instant this TransitionTime names in
// the given year.
func (t TransitionTime) Materialize(year int) Instant {
	var base Instant
	switch t.Kind {
	case FixedDate:
		day := t.Day
		if max := DaysInMonth(year, t.Month); day > max {
			day = max
		}
		base = mustInstant(year, t.Month, day, 0, 0, 0, 0) + t.Time.Ticks()
	case Floating:
		var day int
		if t.Week == 5 {
			day = lastWeekdayOfMonth(year, t.Month, t.DayOfWeek)
		} else {
			day = firstWeekdayOfMonth(year, t.Month, t.DayOfWeek) + (t.Week-1)*7
		}
		base = mustInstant(year, t.Month, day, 0, 0, 0, 0) + t.Time.Ticks()
	default:
		panic(fmt.Errorf("tzrule: invalid TransitionKind %d", t.Kind))
	}
	return base + Instant(t.DayShift)*TicksPerDay
}

// firstWeekdayOfMonth returns the day-of-month (1-based) of the first
// occurrence of dayOfWeek in the given month/year.
func firstWeekdayOfMonth(year, month, dayOfWeek int) int {
	first := dateToDays(year, month, 1)
	wd := weekdayOf(first)
	delta := dayOfWeek - wd
	if delta < 0 {
		delta += 7
	}
	return 1 + delta
}

// lastWeekdayOfMonth returns the day-of-month (1-based) of the last
// occurrence of dayOfWeek in the given month/year, walking backward from
// the last day of the month.
func lastWeekdayOfMonth(year, month, dayOfWeek int) int {
	lastDay := DaysInMonth(year, month)
	last := dateToDays(year, month, lastDay)
	wd := weekdayOf(last)
	delta := wd - dayOfWeek
	if delta < 0 {
		delta += 7
	}
	return lastDay - delta
}
