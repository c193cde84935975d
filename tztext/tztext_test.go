package tztext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngrash/go-tzrules/tzrule"
	"github.com/ngrash/go-tzrules/tzzone"
)

func dateOnlyAbsolute(year, month, day int) tzrule.CalendarDateTime {
	i, err := tzrule.NewInstant(year, month, day, 0, 0, 0, 0)
	if err != nil {
		panic(err)
	}
	return tzrule.NewAbsolute(i)
}

func berlinLikeRule() tzrule.AdjustmentRule {
	start, _ := tzrule.NewFloating(tzrule.TimeOfDay{Hour: 2}, 3, 5, 0)
	end, _ := tzrule.NewFloating(tzrule.TimeOfDay{Hour: 3}, 10, 5, 0)
	return tzrule.AdjustmentRule{
		DateStart:               dateOnlyAbsolute(2000, 1, 1),
		DateEnd:                 dateOnlyAbsolute(2099, 1, 1),
		DaylightDelta:           60,
		DaylightTransitionStart: start,
		DaylightTransitionEnd:   end,
	}
}

func TestSerializeDeserializeRoundTripWithRules(t *testing.T) {
	z, err := tzzone.New("Europe/Berlin", 60, "Berlin", "CET", "CEST", []tzrule.AdjustmentRule{berlinLikeRule()})
	require.NoError(t, err)

	s := Serialize(z)
	got, err := Deserialize(s)
	require.NoError(t, err)
	assert.True(t, z.Equal(got))
}

func TestSerializeDeserializeRoundTripWithoutRules(t *testing.T) {
	z, err := tzzone.New("UTC+2", 120, "UTC+2", "UTC+2", "UTC+2", nil)
	require.NoError(t, err)

	s := Serialize(z)
	got, err := Deserialize(s)
	require.NoError(t, err)
	assert.True(t, z.Equal(got))
}

func TestSerializeEscapesSpecialCharacters(t *testing.T) {
	z, err := tzzone.New("Weird;Zone[1]", 0, "Weird\\Name", "STD", "DST", nil)
	require.NoError(t, err)

	s := Serialize(z)
	got, err := Deserialize(s)
	require.NoError(t, err)
	assert.Equal(t, "Weird;Zone[1]", got.ID())
	assert.Equal(t, "Weird\\Name", got.DisplayName())
}

func TestSerializeDeserializeNoDaylightTransitionsRule(t *testing.T) {
	r := tzrule.AdjustmentRule{
		DateStart:             dateOnlyAbsolute(2020, 1, 1),
		DateEnd:               dateOnlyAbsolute(2030, 1, 1),
		BaseUtcOffsetDelta:    -30,
		NoDaylightTransitions: true,
	}
	z, err := tzzone.New("Custom/Zone", 60, "Custom", "Custom", "Custom", []tzrule.AdjustmentRule{r})
	require.NoError(t, err)

	s := Serialize(z)
	got, err := Deserialize(s)
	require.NoError(t, err)
	assert.True(t, z.Equal(got))
}

func TestSerializeDeserializeBaseUtcOffsetDeltaWithoutNoDaylightTransitions(t *testing.T) {
	start, _ := tzrule.NewFloating(tzrule.TimeOfDay{Hour: 2}, 3, 5, 0)
	end, _ := tzrule.NewFloating(tzrule.TimeOfDay{Hour: 3}, 10, 5, 0)
	r := tzrule.AdjustmentRule{
		DateStart:               dateOnlyAbsolute(2020, 1, 1),
		DateEnd:                 dateOnlyAbsolute(2030, 1, 1),
		BaseUtcOffsetDelta:      15,
		DaylightDelta:           60,
		DaylightTransitionStart: start,
		DaylightTransitionEnd:   end,
	}
	z, err := tzzone.New("Custom/Zone", 60, "Custom", "Custom", "Custom", []tzrule.AdjustmentRule{r})
	require.NoError(t, err)

	s := Serialize(z)
	got, err := Deserialize(s)
	require.NoError(t, err)
	require.Len(t, got.Rules(), 1)
	assert.Equal(t, 15, got.Rules()[0].BaseUtcOffsetDelta)
	assert.False(t, got.Rules()[0].NoDaylightTransitions)
}

func TestDeserializeRejectsTruncatedInput(t *testing.T) {
	_, err := Deserialize("Europe/Berlin;60;Berlin;CET")
	assert.Error(t, err)
}

func TestDeserializeRejectsBadBaseOffset(t *testing.T) {
	_, err := Deserialize("Europe/Berlin;notanumber;Berlin;CET;CEST;")
	assert.Error(t, err)
}

func TestDeserializeRejectsUnterminatedRule(t *testing.T) {
	_, err := Deserialize("Europe/Berlin;60;Berlin;CET;CEST;[01:01:2000;01:01:2099;60;")
	assert.Error(t, err)
}

func TestDeserializeRejectsTrailingGarbage(t *testing.T) {
	_, err := Deserialize("Europe/Berlin;60;Berlin;CET;CEST;garbage")
	assert.Error(t, err)
}
