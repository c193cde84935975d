package tzrule

// This file implements the rule-selection and classification algorithms:
// rule selection, yearly window materialization,
// is-DST/is-ambiguous/is-invalid on wall time, offset-from-instant,
// and the UTC anchors of the DST window.

func cmpInstant(a, b Instant) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// prevRuleFullOffset returns the combined base+daylight delta of the rule
// immediately preceding rules[idx] in the ordered array, or zero when idx
// is the first rule ("rPrev is r itself when none exists"
// collapses to a zero delta here since idx's own delta is added by the
// caller separately).
func prevRuleFullOffset(rules []AdjustmentRule, idx int) Offset {
	if idx == 0 {
		return 0
	}
	p := rules[idx-1]
	return Offset(p.BaseUtcOffsetDelta) + Offset(p.DaylightDelta)
}

// nextRuleFullOffset returns the combined base+daylight delta of the rule
// immediately following rules[idx] in the ordered array, or zero when idx
// is the last rule.
func nextRuleFullOffset(rules []AdjustmentRule, idx int) Offset {
	if idx == len(rules)-1 {
		return 0
	}
	n := rules[idx+1]
	return Offset(n.BaseUtcOffsetDelta) + Offset(n.DaylightDelta)
}

// SelectRule returns the index of the first rule
// in rules whose validity window contains t, or ok=false if none matches.
//
// dateTimeIsUtc controls how an Absolute-tagged rule endpoint is compared
// against an Absolute-tagged t: when true (the offset-from-instant caller
// passes the already utc-adjusted date), Absolute endpoints and t
// compare directly as instants. dateTimeIsUtc has no effect when t is not
// Absolute.
func SelectRule(rules []AdjustmentRule, t CalendarDateTime, baseOffset Offset, dateTimeIsUtc bool) (int, bool) {
	for i := range rules {
		if ruleContains(rules, i, t, baseOffset, dateTimeIsUtc) {
			return i, true
		}
	}
	return -1, false
}

func ruleContains(rules []AdjustmentRule, i int, t CalendarDateTime, baseOffset Offset, dateTimeIsUtc bool) bool {
	startCmp := compareAgainstEndpoint(rules, i, true, t, baseOffset, dateTimeIsUtc)
	endCmp := compareAgainstEndpoint(rules, i, false, t, baseOffset, dateTimeIsUtc)
	return startCmp >= 0 && endCmp <= 0
}

func compareAgainstEndpoint(rules []AdjustmentRule, i int, isStart bool, t CalendarDateTime, baseOffset Offset, dateTimeIsUtc bool) int {
	r := rules[i]
	endpoint := r.DateStart
	if !isStart {
		endpoint = r.DateEnd
	}

	if endpoint.Tag == Absolute {
		if t.Tag == Absolute {
			tv, errT := t.Instant()
			ev, errE := endpoint.Instant()
			if errT != nil || errE != nil {
				return 0
			}
			_ = dateTimeIsUtc // direct comparison regardless; utc-adjustment already applied by caller
			return cmpInstant(tv, ev)
		}
		// t is Wall or Unspecified: convert to UTC using the relevant
		// rule's offsets and compare against the endpoint instant.
		var off Offset
		if isStart {
			off = baseOffset + prevRuleFullOffset(rules, i)
		} else {
			off = baseOffset + Offset(r.BaseUtcOffsetDelta) + Offset(r.DaylightDelta)
		}
		tv, err := t.Instant()
		if err != nil {
			return 0
		}
		tUtc := tv - off.Duration()
		ev, _ := endpoint.Instant()
		return cmpInstant(tUtc, ev)
	}

	// Endpoint is Unspecified: compare only the date portion, shifting an
	// Absolute t into the zone's wall frame first.
	wallT := t
	if t.Tag == Absolute {
		wallT = t.AddOffset(baseOffset)
	}
	return wallT.DateOnly().Compare(endpoint.DateOnly())
}

// Window is the materialized yearly DST boundary for one rule in one year,
// with year-edge marker substitution already applied to Start/End.
type Window struct {
	Start, End             Instant
	Delta                  int
	StartMarker, EndMarker bool
}

func yearEndInstant(year int) Instant {
	return mustInstant(year, 12, 31, 23, 59, 59, 999) + 9999
}

// computeWindow returns the (startWall, endWall,
// delta) triple for rules[idx] materialized in the given calendar year.
func computeWindow(rules []AdjustmentRule, idx int, baseOffset Offset, year int) Window {
	r := rules[idx]

	if r.NoDaylightTransitions {
		prevOff := baseOffset + prevRuleFullOffset(rules, idx)
		ownOff := baseOffset + Offset(r.BaseUtcOffsetDelta) + Offset(r.DaylightDelta)
		ds, _ := r.DateStart.Instant()
		de, _ := r.DateEnd.Instant()
		return Window{
			Start: ds + prevOff.Duration(),
			End:   de + ownOff.Duration(),
			Delta: r.DaylightDelta,
		}
	}

	start := r.DaylightTransitionStart.Materialize(year)
	end := r.DaylightTransitionEnd.Materialize(year)

	sameYear := r.DateStart.Year == r.DateEnd.Year
	startMarker := r.DaylightTransitionStart.IsYearStartMarker() && sameYear
	endMarker := r.DaylightTransitionEnd.IsYearStartMarker() && sameYear
	if startMarker {
		start = mustInstant(year, 1, 1, 0, 0, 0, 0)
	}
	if endMarker {
		end = yearEndInstant(year)
	}

	return Window{Start: start, End: end, Delta: r.DaylightDelta, StartMarker: startMarker, EndMarker: endMarker}
}

// isDSTInWindow decides DST membership of t against a (start, end, delta)
// triple, in either the wall or UTC frame: the southern-hemisphere wrap
// and no-transition-rule variants mirror directly onto the UTC anchors
// used by the instant-based query, so this one helper serves both.
func isDSTInWindow(start, end Instant, delta int, noTransition bool, t Instant) bool {
	if start > end {
		return t.Before(end) || !t.Before(start)
	}
	if noTransition {
		return !t.Before(start) && !t.After(end)
	}
	effStart, effEnd := start, end
	if delta > 0 {
		effStart = start + Instant(delta)*TicksPerMinute
	} else if delta < 0 {
		effEnd = end - Instant(delta)*TicksPerMinute
	}
	return !t.Before(effStart) && t.Before(effEnd)
}

// ambiguousWindow returns the repeated-time window for a (start, end,
// delta) triple, per the is-ambiguous rule. ok is false when
// delta == 0 (no ambiguity possible).
func ambiguousWindow(start, end Instant, delta int) (lo, hi Instant, ok bool) {
	if delta == 0 {
		return 0, 0, false
	}
	if delta > 0 {
		return end - Instant(delta)*TicksPerMinute, end, true
	}
	return start, start - Instant(delta)*TicksPerMinute, true
}

// invalidWindow returns the skipped-time window for a (start, end, delta)
// triple, per the is-invalid rule.
func invalidWindow(start, end Instant, delta int) (lo, hi Instant, ok bool) {
	if delta == 0 {
		return 0, 0, false
	}
	if delta > 0 {
		return start, start + Instant(delta)*TicksPerMinute, true
	}
	return end, end - Instant(delta)*TicksPerMinute, true
}

func straddlesYearBoundary(lo, hi Instant) bool {
	if hi <= lo {
		return false
	}
	return lo.Year() != (hi - 1).Year()
}

// RuleIsDST implements the is-DST predicate for a Wall (or
// Unspecified) CalendarDateTime already known to be selected by rules[idx].
func RuleIsDST(rules []AdjustmentRule, idx int, baseOffset Offset, t CalendarDateTime) bool {
	r := rules[idx]
	ti, err := t.Instant()
	if err != nil {
		return false
	}
	w := computeWindow(rules, idx, baseOffset, t.Year)
	dst := isDSTInWindow(w.Start, w.End, w.Delta, r.NoDaylightTransitions, ti)
	if dst && t.Tag == Wall && RuleIsAmbiguous(rules, idx, baseOffset, t) {
		dst = t.IsDstIfAmbiguous
	}
	return dst
}

// RuleIsAmbiguous implements the is-ambiguous predicate.
func RuleIsAmbiguous(rules []AdjustmentRule, idx int, baseOffset Offset, t CalendarDateTime) bool {
	r := rules[idx]
	if !r.HasDaylightSaving() {
		return false
	}
	ti, err := t.Instant()
	if err != nil {
		return false
	}
	inYear := func(year int) bool {
		w := computeWindow(rules, idx, baseOffset, year)
		lo, hi, ok := ambiguousWindow(w.Start, w.End, w.Delta)
		if !ok {
			return false
		}
		if w.Delta > 0 && w.EndMarker {
			return false
		}
		if w.Delta < 0 && w.StartMarker {
			return false
		}
		return !ti.Before(lo) && ti.Before(hi)
	}
	if inYear(t.Year) {
		return true
	}
	w := computeWindow(rules, idx, baseOffset, t.Year)
	lo, hi, ok := ambiguousWindow(w.Start, w.End, w.Delta)
	if ok && straddlesYearBoundary(lo, hi) {
		return inYear(t.Year-1) || inYear(t.Year+1)
	}
	return false
}

// RuleIsInvalid implements the is-invalid predicate.
func RuleIsInvalid(rules []AdjustmentRule, idx int, baseOffset Offset, t CalendarDateTime) bool {
	r := rules[idx]
	if !r.HasDaylightSaving() {
		return false
	}
	ti, err := t.Instant()
	if err != nil {
		return false
	}
	inYear := func(year int) bool {
		w := computeWindow(rules, idx, baseOffset, year)
		lo, hi, ok := invalidWindow(w.Start, w.End, w.Delta)
		if !ok {
			return false
		}
		if w.Delta > 0 && w.StartMarker {
			return false
		}
		if w.Delta < 0 && w.EndMarker {
			return false
		}
		return !ti.Before(lo) && ti.Before(hi)
	}
	if inYear(t.Year) {
		return true
	}
	w := computeWindow(rules, idx, baseOffset, t.Year)
	lo, hi, ok := invalidWindow(w.Start, w.End, w.Delta)
	if ok && straddlesYearBoundary(lo, hi) {
		return inYear(t.Year-1) || inYear(t.Year+1)
	}
	return false
}

// OffsetFromInstant takes an Absolute instant u
// and a zone's rules/baseOffset, and returns the effective offset plus
// whether u falls in daylight time and whether u falls in the
// locally-ambiguous UTC window.
func OffsetFromInstant(rules []AdjustmentRule, baseOffset Offset, u Instant) (offset Offset, isDst bool, isAmbiguousLocalDst bool) {
	offset = baseOffset

	utcAdjusted := NewAbsolute(u.AddMinutes(int(baseOffset)))
	idx, ok := SelectRule(rules, utcAdjusted, baseOffset, true)
	if !ok {
		return offset, false, false
	}
	r := rules[idx]
	offset += Offset(r.BaseUtcOffsetDelta)
	if !r.HasDaylightSaving() {
		return offset, false, false
	}

	anchorsForYear := func(year int) (startUtc, endUtc Instant, delta int, startMarker, endMarker bool) {
		w := computeWindow(rules, idx, baseOffset, year)
		if r.NoDaylightTransitions {
			su, _ := r.DateStart.Instant()
			eu, _ := r.DateEnd.Instant()
			return su, eu, w.Delta, false, false
		}
		startOff := baseOffset + Offset(r.BaseUtcOffsetDelta)
		if w.StartMarker {
			// The wall boundary is the literal Jan 1 marker, a
			// continuation of DST already active at the end of the
			// previous year, not a genuine transition under this
			// rule's own offset.
			startOff = baseOffset + prevRuleFullOffset(rules, idx)
		}
		endOff := baseOffset + Offset(r.BaseUtcOffsetDelta) + Offset(r.DaylightDelta)
		if w.EndMarker {
			// Symmetrically, the year-end marker hands off to next
			// year's rule, so its own offset governs the boundary.
			endOff = baseOffset + nextRuleFullOffset(rules, idx)
		}
		su := w.Start - startOff.Duration()
		eu := w.End - endOff.Duration()
		return su, eu, w.Delta, w.StartMarker, w.EndMarker
	}

	year := utcAdjusted.Year
	startUtc, endUtc, delta, _, _ := anchorsForYear(year)
	isDst = isDSTInWindow(startUtc, endUtc, delta, r.NoDaylightTransitions, u)
	if isDst {
		offset += Offset(delta)
	}

	lo, hi, hasAmb := ambiguousWindow(startUtc, endUtc, delta)
	if hasAmb {
		_, _, _, startMarker, endMarker := anchorsForYear(year)
		suppressed := (delta > 0 && endMarker) || (delta < 0 && startMarker)
		if !suppressed {
			if !u.Before(lo) && u.Before(hi) {
				isAmbiguousLocalDst = true
			} else if straddlesYearBoundary(lo, hi) && !r.NoDaylightTransitions {
				for _, dy := range [2]int{-1, 1} {
					su, eu, d2, _, _ := anchorsForYear(year + dy)
					lo2, hi2, ok2 := ambiguousWindow(su, eu, d2)
					if ok2 && !u.Before(lo2) && u.Before(hi2) {
						isAmbiguousLocalDst = true
						break
					}
				}
			}
		}
	}

	return offset, isDst, isAmbiguousLocalDst
}

// GetOffsetWall computes a Wall-tagged (or Unspecified) CalendarDateTime's
// effective offset directly, the same-zone fast path,
// without any UTC round trip.
func GetOffsetWall(rules []AdjustmentRule, baseOffset Offset, t CalendarDateTime) Offset {
	idx, ok := SelectRule(rules, t, baseOffset, false)
	if !ok {
		return baseOffset
	}
	r := rules[idx]
	offset := baseOffset + Offset(r.BaseUtcOffsetDelta)
	if r.HasDaylightSaving() && RuleIsDST(rules, idx, baseOffset, t) {
		offset += Offset(r.DaylightDelta)
	}
	return offset
}
