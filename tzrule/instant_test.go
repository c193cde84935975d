package tzrule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstant(t *testing.T) {
	i, err := NewInstant(2024, 2, 29, 13, 30, 15, 500)
	require.NoError(t, err)
	year, month, day, hour, minute, second, ms := i.Date()
	assert.Equal(t, 2024, year)
	assert.Equal(t, 2, month)
	assert.Equal(t, 29, day)
	assert.Equal(t, 13, hour)
	assert.Equal(t, 30, minute)
	assert.Equal(t, 15, second)
	assert.Equal(t, 500, ms)
}

func TestNewInstantRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name                                        string
		year, month, day, hour, minute, second, ms int
	}{
		{"year too small", 0, 1, 1, 0, 0, 0, 0},
		{"year too large", 10000, 1, 1, 0, 0, 0, 0},
		{"month zero", 2024, 0, 1, 0, 0, 0, 0},
		{"month too large", 2024, 13, 1, 0, 0, 0, 0},
		{"day zero", 2024, 1, 0, 0, 0, 0, 0},
		{"Feb 29 in non-leap year", 2023, 2, 29, 0, 0, 0, 0},
		{"hour too large", 2024, 1, 1, 24, 0, 0, 0},
		{"minute too large", 2024, 1, 1, 0, 60, 0, 0},
		{"second too large", 2024, 1, 1, 0, 0, 60, 0},
		{"millisecond too large", 2024, 1, 1, 0, 0, 0, 1000},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewInstant(c.year, c.month, c.day, c.hour, c.minute, c.second, c.ms)
			assert.Error(t, err)
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, 2))
	assert.Equal(t, 28, DaysInMonth(2023, 2))
	assert.Equal(t, 31, DaysInMonth(2024, 1))
	assert.Equal(t, 30, DaysInMonth(2024, 4))
	assert.Equal(t, 29, DaysInMonth(2000, 2)) // divisible by 400
	assert.Equal(t, 28, DaysInMonth(1900, 2)) // divisible by 100, not 400
}

func TestInstantAddAndSub(t *testing.T) {
	i, err := NewInstant(2024, 1, 1, 0, 0, 0, 0)
	require.NoError(t, err)
	j := i.AddMinutes(90)
	year, month, day, hour, minute, _, _ := j.Date()
	assert.Equal(t, 2024, year)
	assert.Equal(t, 1, month)
	assert.Equal(t, 1, day)
	assert.Equal(t, 1, hour)
	assert.Equal(t, 30, minute)

	assert.Equal(t, Instant(90)*TicksPerMinute, j.Sub(i))
	assert.True(t, i.Before(j))
	assert.True(t, j.After(i))
	assert.False(t, i.After(j))
}

func TestInstantWeekday(t *testing.T) {
	// 2024-01-01 is a Monday.
	i, err := NewInstant(2024, 1, 1, 0, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, i.Weekday())

	// 2024-01-07 is a Sunday.
	j, err := NewInstant(2024, 1, 7, 0, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, j.Weekday())
}

func TestInstantString(t *testing.T) {
	i, err := NewInstant(2024, 3, 9, 2, 5, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09T02:05:01.007", i.String())
}

func TestInstantYear(t *testing.T) {
	i, err := NewInstant(1999, 12, 31, 23, 59, 59, 999)
	require.NoError(t, err)
	assert.Equal(t, 1999, i.Year())
}

func TestMinMaxInstant(t *testing.T) {
	assert.True(t, MinInstant.Before(MaxInstant))
	year, _, _, _, _, _, _ := MinInstant.Date()
	assert.Equal(t, 1, year)
}
