package tzrule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func euRule(startYear, endYear int) AdjustmentRule {
	start, _ := NewFloating(TimeOfDay{Hour: 1}, 3, 5, 0)
	end, _ := NewFloating(TimeOfDay{Hour: 1}, 10, 5, 0)
	return AdjustmentRule{
		DateStart:               NewAbsolute(mustInstant(startYear, 1, 1, 0, 0, 0, 0)),
		DateEnd:                 NewAbsolute(mustInstant(endYear, 12, 31, 23, 59, 59, 999)),
		DaylightDelta:            60,
		DaylightTransitionStart: start,
		DaylightTransitionEnd:   end,
	}
}

func TestAdjustmentRuleHasDaylightSaving(t *testing.T) {
	r := euRule(2020, 2030)
	assert.True(t, r.HasDaylightSaving())

	noDst := AdjustmentRule{DaylightDelta: 0}
	assert.False(t, noDst.HasDaylightSaving())
}

func TestAdjustmentRuleHasDaylightSavingSentinel(t *testing.T) {
	r := AdjustmentRule{DaylightDelta: 0, DaylightTransitionStart: DSTTypeSentinel()}
	assert.True(t, r.HasDaylightSaving())
}

func TestAdjustmentRuleValidate(t *testing.T) {
	r := euRule(2020, 2030)
	assert.NoError(t, r.Validate())
}

func TestAdjustmentRuleValidateRejectsBadTimeOfDayOnUnspecified(t *testing.T) {
	r := AdjustmentRule{
		DateStart: CalendarDateTime{Year: 2020, Month: 1, Day: 1, Hour: 1, Tag: Unspecified},
		DateEnd:   CalendarDateTime{Year: 2030, Month: 1, Day: 1, Tag: Unspecified},
	}
	assert.Error(t, r.Validate())
}

func TestAdjustmentRuleValidateRejectsStartAfterEnd(t *testing.T) {
	r := AdjustmentRule{
		DateStart: NewAbsolute(mustInstant(2030, 1, 1, 0, 0, 0, 0)),
		DateEnd:   NewAbsolute(mustInstant(2020, 1, 1, 0, 0, 0, 0)),
	}
	assert.Error(t, r.Validate())
}

func TestAdjustmentRuleValidateRejectsDaylightDeltaOutOfRange(t *testing.T) {
	r := AdjustmentRule{
		DateStart:     NewAbsolute(mustInstant(2020, 1, 1, 0, 0, 0, 0)),
		DateEnd:       NewAbsolute(mustInstant(2030, 1, 1, 0, 0, 0, 0)),
		DaylightDelta: -24 * 60,
	}
	assert.Error(t, r.Validate())
}

func TestAdjustmentRuleValidateNoTransitionRequiresAbsoluteEndpoints(t *testing.T) {
	r := AdjustmentRule{
		DateStart:             CalendarDateTime{Year: 2020, Month: 1, Day: 1, Tag: Unspecified},
		DateEnd:               CalendarDateTime{Year: 2030, Month: 1, Day: 1, Tag: Unspecified},
		NoDaylightTransitions: true,
	}
	require.Error(t, r.Validate())

	r2 := AdjustmentRule{
		DateStart:             NewAbsolute(mustInstant(2020, 1, 1, 0, 0, 0, 0)),
		DateEnd:               NewAbsolute(mustInstant(2030, 1, 1, 0, 0, 0, 0)),
		NoDaylightTransitions: true,
	}
	assert.NoError(t, r2.Validate())
}
