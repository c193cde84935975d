package tzzone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngrash/go-tzrules/tzrule"
)

func absYear(year int) tzrule.CalendarDateTime {
	i, err := tzrule.NewInstant(year, 1, 1, 0, 0, 0, 0)
	if err != nil {
		panic(err)
	}
	return tzrule.NewAbsolute(i)
}

func absEndOfYear(year int) tzrule.CalendarDateTime {
	i, err := tzrule.NewInstant(year, 12, 31, 23, 59, 59, 999)
	if err != nil {
		panic(err)
	}
	return tzrule.NewAbsolute(i)
}

func euStyleRule(startYear, endYear int) tzrule.AdjustmentRule {
	start, _ := tzrule.NewFloating(tzrule.TimeOfDay{Hour: 2}, 3, 5, 0)
	end, _ := tzrule.NewFloating(tzrule.TimeOfDay{Hour: 3}, 10, 5, 0)
	return tzrule.AdjustmentRule{
		DateStart:               absYear(startYear),
		DateEnd:                 absEndOfYear(endYear),
		DaylightDelta:           60,
		DaylightTransitionStart: start,
		DaylightTransitionEnd:   end,
	}
}

func TestNewRejectsEmptyID(t *testing.T) {
	_, err := New("", 60, "Berlin", "CET", "CEST", nil)
	assert.Error(t, err)
}

func TestNewRejectsInvalidBaseOffset(t *testing.T) {
	_, err := New("Europe/Berlin", tzrule.MaxOffset+1, "Berlin", "CET", "CEST", nil)
	assert.Error(t, err)
}

func TestNewRejectsOverlappingRules(t *testing.T) {
	r1 := euStyleRule(2020, 2024)
	r2 := euStyleRule(2022, 2026)
	_, err := New("Europe/Berlin", 60, "Berlin", "CET", "CEST", []tzrule.AdjustmentRule{r1, r2})
	assert.Error(t, err)
}

func TestNewAcceptsNonOverlappingRules(t *testing.T) {
	r1 := euStyleRule(2000, 2010)
	r2 := euStyleRule(2011, 2020)
	z, err := New("Europe/Berlin", 60, "Berlin", "CET", "CEST", []tzrule.AdjustmentRule{r1, r2})
	require.NoError(t, err)
	assert.Len(t, z.Rules(), 2)
}

func TestZoneAccessors(t *testing.T) {
	z, err := New("Europe/Berlin", 60, "Berlin", "CET", "CEST", nil)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", z.ID())
	assert.Equal(t, "Berlin", z.DisplayName())
	assert.Equal(t, "CET", z.StandardName())
	assert.Equal(t, "CEST", z.DaylightName())
	assert.Equal(t, tzrule.Offset(60), z.BaseUtcOffset())
}

func TestZoneSupportsDST(t *testing.T) {
	z, err := New("Europe/Berlin", 60, "Berlin", "CET", "CEST", []tzrule.AdjustmentRule{euStyleRule(2000, 2030)})
	require.NoError(t, err)
	assert.True(t, z.SupportsDST())

	noDst, err := New("UTC+2", 120, "UTC+2", "UTC+2", "UTC+2", nil)
	require.NoError(t, err)
	assert.False(t, noDst.SupportsDST())
}

func TestZoneEqual(t *testing.T) {
	r := euStyleRule(2000, 2030)
	z1, err := New("Europe/Berlin", 60, "Berlin", "CET", "CEST", []tzrule.AdjustmentRule{r})
	require.NoError(t, err)
	z2, err := New("europe/berlin", 60, "Different Display Name", "CET", "CEST", []tzrule.AdjustmentRule{r})
	require.NoError(t, err)
	assert.True(t, z1.Equal(z2))

	z3, err := New("Europe/Berlin", 61, "Berlin", "CET", "CEST", []tzrule.AdjustmentRule{r})
	require.NoError(t, err)
	assert.False(t, z1.Equal(z3))
}

func TestZoneEqualHandlesNil(t *testing.T) {
	var z1, z2 *Zone
	assert.True(t, z1.Equal(z2))

	z3, err := New("UTC", 0, "UTC", "UTC", "UTC", nil)
	require.NoError(t, err)
	assert.False(t, z1.Equal(z3))
	assert.False(t, z3.Equal(nil))
}

func TestUTCSentinel(t *testing.T) {
	assert.Equal(t, "UTC", UTC.ID())
	assert.Equal(t, tzrule.Offset(0), UTC.BaseUtcOffset())
	assert.False(t, UTC.SupportsDST())
}

func TestRulesReturnsCopy(t *testing.T) {
	r := euStyleRule(2000, 2030)
	z, err := New("Europe/Berlin", 60, "Berlin", "CET", "CEST", []tzrule.AdjustmentRule{r})
	require.NoError(t, err)
	rules := z.Rules()
	rules[0].DaylightDelta = 0
	assert.Equal(t, 60, z.Rules()[0].DaylightDelta)
}
