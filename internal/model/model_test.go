package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsKnownMood(t *testing.T) {
	for _, m := range Moods {
		assert.True(t, IsKnownMood(string(m)), m)
	}
	assert.True(t, IsKnownMood(Unspecified))
	assert.False(t, IsKnownMood("adventure"))
	assert.False(t, IsKnownMood(""))
}

func TestMemberInputDefaults(t *testing.T) {
	row := MemberInput{Name: "Ann", Budget: 500, Airport: "IAD"}.ToGroupMember()
	assert.Equal(t, Unspecified, row.Continent)
	assert.Equal(t, Unspecified, row.Mood)
	assert.Zero(t, row.TripID)

	row = MemberInput{Name: "Bo", Budget: 500, Airport: "JFK", Continent: "Asia", Mood: "Romantic"}.ToGroupMember()
	assert.Equal(t, "Asia", row.Continent)
	assert.Equal(t, "Romantic", row.Mood)
}

func TestTripModeValid(t *testing.T) {
	assert.True(t, ModeIndividual.Valid())
	assert.True(t, ModeGroup.Valid())
	assert.False(t, TripMode("solo").Valid())
}

func TestLocalTime(t *testing.T) {
	ts := LocalTime(time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-09 14:05:00", ts.String())

	b, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-09 14:05:00"`, string(b))
}
