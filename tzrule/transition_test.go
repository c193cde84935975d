package tzrule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeOfDayValidation(t *testing.T) {
	_, err := NewFixedDate(TimeOfDay{Hour: 24}, 1, 1)
	assert.Error(t, err)

	_, err = NewFixedDate(TimeOfDay{Hour: 2, Minute: 60}, 1, 1)
	assert.Error(t, err)

	_, err = NewFixedDate(TimeOfDay{Hour: 2}, 1, 1)
	assert.NoError(t, err)
}

func TestTimeOfDayIsMidnight(t *testing.T) {
	assert.True(t, TimeOfDay{}.IsMidnight())
	assert.False(t, TimeOfDay{Hour: 1}.IsMidnight())
}

func TestNewFixedDate(t *testing.T) {
	tt, err := NewFixedDate(TimeOfDay{Hour: 2}, 3, 30)
	require.NoError(t, err)
	assert.Equal(t, FixedDate, tt.Kind)
	assert.Equal(t, 3, tt.Month)
	assert.Equal(t, 30, tt.Day)
}

func TestNewFixedDateRejectsOutOfRange(t *testing.T) {
	_, err := NewFixedDate(TimeOfDay{}, 13, 1)
	assert.Error(t, err)
	_, err = NewFixedDate(TimeOfDay{}, 1, 32)
	assert.Error(t, err)
}

func TestNewFloating(t *testing.T) {
	// Last Sunday in March, the canonical EU spring-forward rule.
	tt, err := NewFloating(TimeOfDay{Hour: 1}, 3, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, Floating, tt.Kind)
	assert.Equal(t, 5, tt.Week)
	assert.Equal(t, 0, tt.DayOfWeek)
}

func TestNewFloatingRejectsOutOfRange(t *testing.T) {
	_, err := NewFloating(TimeOfDay{}, 3, 6, 0)
	assert.Error(t, err)
	_, err = NewFloating(TimeOfDay{}, 3, 1, 7)
	assert.Error(t, err)
}

func TestTransitionTimeMaterializeFixedDate(t *testing.T) {
	tt, err := NewFixedDate(TimeOfDay{Hour: 2}, 3, 15)
	require.NoError(t, err)
	i := tt.Materialize(2024)
	year, month, day, hour, _, _, _ := i.Date()
	assert.Equal(t, 2024, year)
	assert.Equal(t, 3, month)
	assert.Equal(t, 15, day)
	assert.Equal(t, 2, hour)
}

func TestTransitionTimeMaterializeFixedDateClampsDay(t *testing.T) {
	// Feb 30 doesn't exist; even in a leap year it clamps to the 29th.
	tt, err := NewFixedDate(TimeOfDay{}, 2, 30)
	require.NoError(t, err)
	i := tt.Materialize(2024)
	_, month, day, _, _, _, _ := i.Date()
	assert.Equal(t, 2, month)
	assert.Equal(t, 29, day)
}

func TestTransitionTimeMaterializeFloatingLastSunday(t *testing.T) {
	// Last Sunday in March 2024 is the 31st.
	tt, err := NewFloating(TimeOfDay{Hour: 1}, 3, 5, 0)
	require.NoError(t, err)
	i := tt.Materialize(2024)
	_, month, day, hour, _, _, _ := i.Date()
	assert.Equal(t, 3, month)
	assert.Equal(t, 31, day)
	assert.Equal(t, 1, hour)
}

func TestTransitionTimeMaterializeFloatingFirstOccurrence(t *testing.T) {
	// First Sunday in November 2024 is the 3rd.
	tt, err := NewFloating(TimeOfDay{Hour: 2}, 11, 1, 0)
	require.NoError(t, err)
	i := tt.Materialize(2024)
	_, month, day, _, _, _, _ := i.Date()
	assert.Equal(t, 11, month)
	assert.Equal(t, 3, day)
}

func TestTransitionTimeMaterializeDayShift(t *testing.T) {
	tt, err := NewFixedDate(TimeOfDay{}, 1, 1)
	require.NoError(t, err)
	tt.DayShift = 1
	i := tt.Materialize(2024)
	_, month, day, _, _, _, _ := i.Date()
	assert.Equal(t, 1, month)
	assert.Equal(t, 2, day)
}

func TestTransitionTimeIsYearStartMarker(t *testing.T) {
	tt, err := NewFixedDate(TimeOfDay{}, 1, 1)
	require.NoError(t, err)
	assert.True(t, tt.IsYearStartMarker())

	tt2, err := NewFixedDate(TimeOfDay{Hour: 1}, 1, 1)
	require.NoError(t, err)
	assert.False(t, tt2.IsYearStartMarker())

	tt3, err := NewFixedDate(TimeOfDay{}, 1, 2)
	require.NoError(t, err)
	assert.False(t, tt3.IsYearStartMarker())
}
