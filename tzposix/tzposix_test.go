package tzposix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngrash/go-tzrules/tzrule"
)

func TestParseStdOnly(t *testing.T) {
	r, err := Parse("UTC0")
	require.NoError(t, err)
	assert.Equal(t, "UTC", r.StdName)
	assert.Equal(t, 0, r.StdOffsetMinutes)
	assert.False(t, r.HasDST)
}

func TestParseStdOnlyWithOffset(t *testing.T) {
	// POSIX offsets are west-of-UTC positive; a zone 5 hours behind UTC
	// (US Eastern standard time) is written "EST5".
	r, err := Parse("EST5")
	require.NoError(t, err)
	assert.Equal(t, "EST", r.StdName)
	assert.Equal(t, -300, r.StdOffsetMinutes)
	assert.False(t, r.HasDST)
}

func TestParseUSStyleDST(t *testing.T) {
	r, err := Parse("EST5EDT,M3.2.0,M11.1.0")
	require.NoError(t, err)
	assert.Equal(t, "EST", r.StdName)
	assert.Equal(t, -300, r.StdOffsetMinutes)
	assert.True(t, r.HasDST)
	assert.Equal(t, "EDT", r.DstName)
	assert.False(t, r.DstOffsetExplicit)
	assert.Equal(t, -240, r.DstOffsetMinutes) // default +1h from std

	assert.Equal(t, tzrule.Floating, r.Start.Kind)
	assert.Equal(t, 3, r.Start.Month)
	assert.Equal(t, 2, r.Start.Week)
	assert.Equal(t, 0, r.Start.DayOfWeek)
	assert.Equal(t, 2, r.Start.Time.Hour) // default 02:00

	assert.Equal(t, 11, r.End.Month)
	assert.Equal(t, 1, r.End.Week)
}

func TestParseEUStyleDSTWithExplicitTimeAndOffset(t *testing.T) {
	r, err := Parse("CET-1CEST,M3.5.0/2,M10.5.0/3")
	require.NoError(t, err)
	assert.Equal(t, "CET", r.StdName)
	assert.Equal(t, 60, r.StdOffsetMinutes)
	assert.True(t, r.HasDST)
	assert.Equal(t, "CEST", r.DstName)
	assert.False(t, r.DstOffsetExplicit) // no explicit dst offset field here
	assert.Equal(t, 5, r.Start.Week)      // last Sunday
	assert.Equal(t, 3, r.Start.Month)
	assert.Equal(t, 2, r.Start.Time.Hour)
	assert.Equal(t, 10, r.End.Month)
	assert.Equal(t, 3, r.End.Time.Hour)
}

func TestParseExplicitDSTOffset(t *testing.T) {
	r, err := Parse("XST-2XDT-3,M3.5.0,M10.5.0")
	require.NoError(t, err)
	assert.True(t, r.DstOffsetExplicit)
	assert.Equal(t, 180, r.DstOffsetMinutes)
}

func TestParseQuotedNames(t *testing.T) {
	r, err := Parse("<+03>-3")
	require.NoError(t, err)
	assert.Equal(t, "+03", r.StdName)
	assert.Equal(t, 180, r.StdOffsetMinutes)
}

func TestParseDSTNameWithoutRuleIsTreatedAsStdOnly(t *testing.T) {
	r, err := Parse("EST5EDT")
	require.NoError(t, err)
	assert.False(t, r.HasDST)
}

func TestParseRejectsJulianDayRule(t *testing.T) {
	_, err := Parse("EST5EDT,J60,J300")
	assert.Error(t, err)
}

func TestParseRejectsMissingStartEndSeparator(t *testing.T) {
	_, err := Parse("EST5EDT,M3.2.0 M11.1.0")
	assert.Error(t, err)
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	_, err := Parse("EST5EDT,M3.2.0,M11.1.0,garbage")
	assert.Error(t, err)
}

func TestParseExtendedTimeOutsideOrdinaryRange(t *testing.T) {
	// RFC 8536 v3 permits /time to exceed 24h; 25:00 shifts a day forward
	// and leaves a 01:00 time-of-day.
	r, err := Parse("EST5EDT,M3.2.0/25,M11.1.0")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Start.DayShift)
	assert.Equal(t, 1, r.Start.Time.Hour)
}

func TestToAdjustmentRuleNoDST(t *testing.T) {
	r, err := Parse("UTC0")
	require.NoError(t, err)
	rule := r.ToAdjustmentRule(tzrule.MinInstant, 0)
	assert.True(t, rule.NoDaylightTransitions)
	assert.Equal(t, 0, rule.BaseUtcOffsetDelta)
}

func TestToAdjustmentRuleWithDST(t *testing.T) {
	r, err := Parse("EST5EDT,M3.2.0,M11.1.0")
	require.NoError(t, err)
	rule := r.ToAdjustmentRule(tzrule.MinInstant, -300)
	assert.False(t, rule.NoDaylightTransitions)
	assert.Equal(t, 0, rule.BaseUtcOffsetDelta)
	assert.Equal(t, 60, rule.DaylightDelta)
	assert.NoError(t, rule.Validate())
}
