package service

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"trip-planner-go/internal/config"
	"trip-planner-go/internal/model"
	"trip-planner-go/internal/pipeline"
	"trip-planner-go/internal/repository"
	"trip-planner-go/pkg/database"
	"trip-planner-go/pkg/errs"
)

type stubLLM struct {
	reply string
	err   error
	calls int
	last  string
}

func (s *stubLLM) Send(_ context.Context, _, userText string) (string, error) {
	s.calls++
	s.last = userText
	return s.reply, s.err
}

func setup(t *testing.T, llm *stubLLM) (PlannerService, *gorm.DB) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "trips.db") + "?_foreign_keys=on"
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn, LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	repo := repository.NewTripRepository(db)
	require.NoError(t, repo.Initialize(context.Background()))
	return NewPlannerServiceWithPipeline(repo, pipeline.NewWithClient(llm)), db
}

func countTrips(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.Trip{}).Count(&n).Error)
	return n
}

func TestPlanIndividual(t *testing.T) {
	llm := &stubLLM{reply: "1. Lisbon\nMood Harmony Score: 7/10"}
	svc, db := setup(t, llm)

	res, err := svc.PlanIndividual(context.Background(), IndividualRequest{Budget: 1000, Days: 5, Airport: " IAD ", Continent: "Europe"})
	require.NoError(t, err)

	assert.NotZero(t, res.TripID)
	assert.Equal(t, model.ModeIndividual, res.Mode)
	assert.Equal(t, 7, res.Score)
	assert.Equal(t, llm.reply, res.Response)
	assert.Equal(t, res.Prompt, llm.last)
	assert.Contains(t, res.Prompt, "nearest airport is IAD.")
	assert.Nil(t, res.MoodDistribution)
	assert.EqualValues(t, 1, countTrips(t, db))

	members, err := svc.TripMembers(context.Background(), res.TripID)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestPlanGroup(t *testing.T) {
	llm := &stubLLM{reply: "Mood Harmony Score: 6/10"}
	svc, _ := setup(t, llm)

	res, err := svc.PlanGroup(context.Background(), GroupRequest{
		Days: 6,
		Members: []model.MemberInput{
			{Name: "Ann", Budget: 1000, Airport: "IAD", Mood: "Culture"},
			{Name: "Bo", Budget: 2000, Airport: "IAD", Continent: "Asia"},
			{Name: "Cy", Budget: 1500, Airport: "JFK", Mood: "Culture"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 6, res.Score)
	assert.Contains(t, res.Prompt, "Total combined budget: $4500.00 (~$1500.00/person).")
	assert.Contains(t, res.Prompt, "Nearest airports: IAD, JFK.")
	require.Len(t, res.MoodDistribution, 2)
	assert.Equal(t, "Culture", res.MoodDistribution[0].Mood)
	assert.Equal(t, 2, res.MoodDistribution[0].Count)

	members, err := svc.TripMembers(context.Background(), res.TripID)
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, model.Unspecified, members[0].Continent)
	assert.Equal(t, model.Unspecified, members[1].Mood)

	trips, err := svc.RecentTrips(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, model.ModeGroup, trips[0].Mode)
}

func TestRemoteFailureWritesNothing(t *testing.T) {
	llm := &stubLLM{err: &errs.RemoteServiceError{Provider: "stub", Err: errors.New("connection refused")}}
	svc, db := setup(t, llm)

	_, err := svc.PlanGroup(context.Background(), GroupRequest{
		Days:    3,
		Members: []model.MemberInput{{Name: "A", Budget: 100, Airport: "IAD"}, {Name: "B", Budget: 100, Airport: "IAD"}},
	})
	require.Error(t, err)
	assert.True(t, errs.IsRemote(err))
	assert.Zero(t, countTrips(t, db))

	var members int64
	require.NoError(t, db.Model(&model.GroupMember{}).Count(&members).Error)
	assert.Zero(t, members)
}

func TestValidation(t *testing.T) {
	llm := &stubLLM{reply: "ok"}
	svc, db := setup(t, llm)
	ctx := context.Background()

	cases := []struct {
		name string
		run  func() error
	}{
		{"budget below minimum", func() error {
			_, err := svc.PlanIndividual(ctx, IndividualRequest{Budget: 99, Days: 1, Airport: "IAD"})
			return err
		}},
		{"zero days", func() error {
			_, err := svc.PlanIndividual(ctx, IndividualRequest{Budget: 100, Days: 0, Airport: "IAD"})
			return err
		}},
		{"blank airport", func() error {
			_, err := svc.PlanIndividual(ctx, IndividualRequest{Budget: 100, Days: 1, Airport: "  "})
			return err
		}},
		{"group too small", func() error {
			_, err := svc.PlanGroup(ctx, GroupRequest{Days: 1, Members: []model.MemberInput{{Name: "A", Budget: 100, Airport: "IAD"}}})
			return err
		}},
		{"NaN budget", func() error {
			_, err := svc.PlanIndividual(ctx, IndividualRequest{Budget: math.NaN(), Days: 1, Airport: "IAD"})
			return err
		}},
		{"infinite budget", func() error {
			_, err := svc.PlanIndividual(ctx, IndividualRequest{Budget: math.Inf(1), Days: 1, Airport: "IAD"})
			return err
		}},
		{"member with NaN budget", func() error {
			_, err := svc.PlanGroup(ctx, GroupRequest{Days: 1, Members: []model.MemberInput{
				{Name: "A", Budget: 500, Airport: "IAD"},
				{Name: "B", Budget: math.NaN(), Airport: "IAD"},
			}})
			return err
		}},
		{"member with infinite budget", func() error {
			_, err := svc.PlanGroup(ctx, GroupRequest{Days: 1, Members: []model.MemberInput{
				{Name: "A", Budget: math.Inf(1), Airport: "IAD"},
				{Name: "B", Budget: 500, Airport: "IAD"},
			}})
			return err
		}},
		{"group too large", func() error {
			members := make([]model.MemberInput, 11)
			for i := range members {
				members[i] = model.MemberInput{Name: "M", Budget: 100, Airport: "IAD"}
			}
			_, err := svc.PlanGroup(ctx, GroupRequest{Days: 1, Members: members})
			return err
		}},
		{"unknown mood", func() error {
			_, err := svc.PlanGroup(ctx, GroupRequest{Days: 1, Members: []model.MemberInput{
				{Name: "A", Budget: 100, Airport: "IAD", Mood: "Sleepy"},
				{Name: "B", Budget: 100, Airport: "IAD"},
			}})
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Zero(t, llm.calls)
	assert.Zero(t, countTrips(t, db))
}

func TestMissingCredentialSurfacesConfigurationError(t *testing.T) {
	cfg := config.DefaultLLMConfig()
	cfg.APIKey = ""
	svc := NewPlannerService(nil, cfg, 0)

	_, err := svc.PlanIndividual(context.Background(), IndividualRequest{Budget: 500, Days: 2, Airport: "IAD"})
	require.Error(t, err)
	assert.True(t, errs.IsConfiguration(err))
}
