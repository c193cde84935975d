package tzrule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagString(t *testing.T) {
	assert.Equal(t, "Unspecified", Unspecified.String())
	assert.Equal(t, "Absolute", Absolute.String())
	assert.Equal(t, "Wall", Wall.String())
}

func TestNewAbsoluteAndNewWall(t *testing.T) {
	i, err := NewInstant(2024, 6, 15, 10, 0, 0, 0)
	require.NoError(t, err)

	abs := NewAbsolute(i)
	assert.Equal(t, Absolute, abs.Tag)
	assert.Equal(t, 2024, abs.Year)
	assert.Equal(t, 6, abs.Month)
	assert.Equal(t, 15, abs.Day)

	wall := NewWall(i, true)
	assert.Equal(t, Wall, wall.Tag)
	assert.True(t, wall.IsDstIfAmbiguous)
}

func TestCalendarDateTimeInstant(t *testing.T) {
	c := CalendarDateTime{Year: 2024, Month: 2, Day: 29, Hour: 12}
	i, err := c.Instant()
	require.NoError(t, err)
	year, month, day, _, _, _, _ := i.Date()
	assert.Equal(t, 2024, year)
	assert.Equal(t, 2, month)
	assert.Equal(t, 29, day)

	bad := CalendarDateTime{Year: 2023, Month: 2, Day: 29}
	_, err = bad.Instant()
	assert.Error(t, err)
}

func TestCalendarDateTimeDateOnly(t *testing.T) {
	c := CalendarDateTime{Year: 2024, Month: 1, Day: 1, Hour: 5, Minute: 30, Second: 1, Millisecond: 1, Tag: Wall}
	d := c.DateOnly()
	assert.Equal(t, 0, d.Hour)
	assert.Equal(t, 0, d.Minute)
	assert.Equal(t, 0, d.Second)
	assert.Equal(t, 0, d.Millisecond)
	assert.Equal(t, Wall, d.Tag)
}

func TestCalendarDateTimeAddOffset(t *testing.T) {
	c := CalendarDateTime{Year: 2024, Month: 1, Day: 1, Hour: 23, Minute: 30, Tag: Absolute}
	shifted := c.AddOffset(60)
	assert.Equal(t, Absolute, shifted.Tag)
	assert.Equal(t, 2024, shifted.Year)
	assert.Equal(t, 1, shifted.Month)
	assert.Equal(t, 2, shifted.Day)
	assert.Equal(t, 0, shifted.Hour)
	assert.Equal(t, 30, shifted.Minute)
}

func TestCalendarDateTimeAddOffsetPreservesTagAndDstFlag(t *testing.T) {
	c := CalendarDateTime{Year: 2024, Month: 3, Day: 1, Tag: Wall, IsDstIfAmbiguous: true}
	shifted := c.AddOffset(-30)
	assert.Equal(t, Wall, shifted.Tag)
	assert.True(t, shifted.IsDstIfAmbiguous)
}

func TestCalendarDateTimeAddOffsetOnInvalidDateIsNoOp(t *testing.T) {
	c := CalendarDateTime{Year: 2023, Month: 2, Day: 29, Tag: Absolute}
	shifted := c.AddOffset(60)
	assert.Equal(t, c, shifted)
}

func TestCalendarDateTimeCompare(t *testing.T) {
	a := CalendarDateTime{Year: 2024, Month: 1, Day: 1}
	b := CalendarDateTime{Year: 2024, Month: 1, Day: 2}
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
}

func TestCalendarDateTimeCompareIgnoresTag(t *testing.T) {
	a := CalendarDateTime{Year: 2024, Month: 1, Day: 1, Tag: Absolute}
	b := CalendarDateTime{Year: 2024, Month: 1, Day: 1, Tag: Wall}
	assert.Equal(t, 0, a.Compare(b))
}
