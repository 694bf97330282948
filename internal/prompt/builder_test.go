package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"trip-planner-go/internal/model"
)

func TestBuildIndividualPrompt(t *testing.T) {
	got := BuildIndividualPrompt(IndividualInput{Budget: 1000, Days: 5, Airport: "JFK", Continent: "Europe"})
	want := "My budget is $1000, I want to travel for 5 days, and my nearest airport is JFK. " +
		"I prefer visiting Europe. " + IndividualClosing
	assert.Equal(t, want, got)
}

func TestBuildIndividualPromptWithoutContinent(t *testing.T) {
	got := BuildIndividualPrompt(IndividualInput{Budget: 1250.5, Days: 3, Airport: "SFO"})
	assert.Equal(t, "My budget is $1250.5, I want to travel for 3 days, and my nearest airport is SFO. "+IndividualClosing, got)
	assert.NotContains(t, got, "I prefer visiting")
}

func TestBuildGroupPrompt(t *testing.T) {
	members := []model.MemberInput{
		{Name: "Ann", Budget: 1000, Airport: "JFK", Continent: "Europe", Mood: "Adventure"},
		{Name: "Bo", Budget: 1500, Airport: "LAX", Continent: "Asia", Mood: "Relaxation"},
	}
	got := BuildGroupPrompt(members, 7)

	assert.True(t, strings.HasPrefix(got, "A group of 2 people is planning a 7-day trip. "))
	assert.Contains(t, got, "Total combined budget: $2500.00 (~$1250.00/person). ")
	assert.Contains(t, got, "Nearest airports: JFK, LAX. ")
	assert.Contains(t, got, "Group personalities: Ann (Adventure), Bo (Relaxation). ")
	assert.Contains(t, got, "Preferred regions: Asia, Europe. ")
	assert.True(t, strings.HasSuffix(got, GroupClosing))
}

func TestBuildGroupPromptDedupesAndSkipsUnspecified(t *testing.T) {
	members := []model.MemberInput{
		{Name: "A", Budget: 100, Airport: "JFK", Continent: model.Unspecified},
		{Name: "B", Budget: 100, Airport: "JFK"},
		{Name: "C", Budget: 100, Airport: "BOS", Mood: "Culture"},
	}
	got := BuildGroupPrompt(members, 2)

	assert.Contains(t, got, "Nearest airports: BOS, JFK. ")
	assert.Equal(t, 1, strings.Count(got, "JFK"))
	assert.NotContains(t, got, "Preferred regions")
	assert.Contains(t, got, "A (unspecified), B (unspecified), C (Culture)")
}

func TestAverageBudget(t *testing.T) {
	members := []model.MemberInput{{Budget: 100}, {Budget: 100}, {Budget: 101}}
	assert.InDelta(t, 301.0, TotalBudget(members), 1e-9)
	assert.InDelta(t, 100.33, AverageBudget(members), 1e-9)
	assert.Zero(t, AverageBudget(nil))
}

func TestMoodDistribution(t *testing.T) {
	members := []model.MemberInput{
		{Mood: "Culture"},
		{Mood: "Adventure"},
		{Mood: "Culture"},
		{},
		{Mood: "Adventure"},
		{Mood: "Romantic"},
	}
	got := MoodDistribution(members)
	assert.Equal(t, []MoodCount{
		{Mood: "Adventure", Count: 2},
		{Mood: "Culture", Count: 2},
		{Mood: "Romantic", Count: 1},
		{Mood: "unspecified", Count: 1},
	}, got)
}
