package sim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DentalAI22/dental-tycoon-sub000/internal/catalog"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/config"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/event"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/practice"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/rng"
)

func testEngine(p *practice.Practice, bal config.Balance) *Engine {
	return &Engine{
		Practice:  practice.NewMemoryRepo(p),
		Catalog:   catalog.Default(),
		Balance:   bal,
		Events:    event.NewLive(rng.New(11)),
		Rand:      rng.New(12),
		Clock:     NewFakeClock(time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)),
		Decisions: DefaultDecisionRules(),
	}
}

func TestAdvanceDayCommitsAtomically(t *testing.T) {
	ctx := context.Background()
	e := testEngine(steadyPractice(), config.Default())

	require.Nil(t, e.LastOutcome())

	report, err := e.AdvanceDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 41, report.Day)
	require.NotNil(t, e.LastOutcome())

	// The report mirrors the committed state exactly.
	p, err := e.Practice.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, report.Day, p.Day)
	assert.InDelta(t, report.Cash, p.Cash, 1e-9)
	assert.InDelta(t, report.Reputation, p.Reputation, 1e-9)
	assert.Equal(t, report.Patients, p.Patients)
	assert.InDelta(t, 83.5, p.Cleanliness, 1e-9, "daily grime")
}

func TestAdvanceDayStopsAtSeasonEnd(t *testing.T) {
	ctx := context.Background()
	bal := config.Default()
	bal.SeasonDays = 42

	e := testEngine(steadyPractice(), bal) // starts at day 40

	r1, err := e.AdvanceDay(ctx)
	require.NoError(t, err)
	assert.False(t, r1.SeasonOver)

	r2, err := e.AdvanceDay(ctx)
	require.NoError(t, err)
	assert.True(t, r2.SeasonOver)

	_, err = e.AdvanceDay(ctx)
	require.ErrorIs(t, err, ErrSeasonOver)
}

func TestStatsStayBoundedOverFullSeason(t *testing.T) {
	ctx := context.Background()
	bal := config.Default()

	p := steadyPractice()
	p.Day = 0
	p.Marketing = []string{"local_seo"}
	e := testEngine(p, bal)

	for i := 0; i < bal.SeasonDays; i++ {
		_, err := e.AdvanceDay(ctx)
		require.NoError(t, err)
	}

	final, err := e.Practice.Get(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, final.Reputation, 0.0)
	assert.LessOrEqual(t, final.Reputation, 5.0)
	assert.GreaterOrEqual(t, final.Cleanliness, 0.0)
	assert.LessOrEqual(t, final.Cleanliness, 100.0)
	assert.GreaterOrEqual(t, final.Patients, 0)
	for _, s := range final.Staff {
		assert.GreaterOrEqual(t, s.Morale, 0.0)
		assert.LessOrEqual(t, s.Morale, 100.0)
	}
	assert.GreaterOrEqual(t, final.Totals.PeakCash, final.Totals.WorstCash)
}

func TestColdStartNeverIgnitesWithoutMarketing(t *testing.T) {
	ctx := context.Background()
	bal := config.Default()
	bal.EventFrequency = 0 // no random patient windfalls

	p := practice.New("Ghost Town Dental")
	e := testEngine(p, bal)

	for i := 0; i < 100; i++ {
		_, err := e.AdvanceDay(ctx)
		require.NoError(t, err)
	}

	final, err := e.Practice.Get(ctx)
	require.NoError(t, err)
	assert.Less(t, final.Patients, bal.ColdStartFloor,
		"no marketing, no word of mouth: the practice never ignites")
}

func TestNegativeCashRaisesLoanDecision(t *testing.T) {
	ctx := context.Background()
	p := steadyPractice()
	p.Cash = -200000 // one day of revenue won't dig out of this
	p.Marketing = nil
	e := testEngine(p, config.Default())

	report, err := e.AdvanceDay(ctx)
	require.NoError(t, err)
	assert.Contains(t, report.PendingDecisions, "emergency_loan")
}

func TestBuildoutCountsDownDaily(t *testing.T) {
	ctx := context.Background()
	p := steadyPractice()
	loc := satellite("b1")
	loc.BuildoutDays = 2
	p.Locations = []practice.Location{loc}
	e := testEngine(p, config.Default())

	report, err := e.AdvanceDay(ctx)
	require.NoError(t, err)
	got, _ := e.Practice.Get(ctx)
	assert.Equal(t, 1, got.Locations[0].BuildoutDays)
	assert.Empty(t, report.OpenedLocations)

	// The day the countdown reaches zero the report announces the opening.
	report, err = e.AdvanceDay(ctx)
	require.NoError(t, err)
	got, _ = e.Practice.Get(ctx)
	assert.Equal(t, 0, got.Locations[0].BuildoutDays)
	assert.Equal(t, []string{"b1"}, report.OpenedLocations)

	// Now operating: the next day produces revenue at the site.
	report, err = e.AdvanceDay(ctx)
	require.NoError(t, err)
	require.Len(t, report.Locations.Results, 1)
	assert.False(t, report.Locations.Results[0].UnderConstruction)
	assert.Greater(t, report.Locations.Results[0].Revenue, 0.0)
	assert.Empty(t, report.OpenedLocations)
}
