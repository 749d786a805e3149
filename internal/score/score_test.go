package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DentalAI22/dental-tycoon-sub000/internal/config"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/practice"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/sim"
)

func strongPractice() (*practice.Practice, *sim.Outcome) {
	p := practice.New("Score Test")
	p.Day = 15
	p.Cash = 60000
	p.Debt = 0
	p.Patients = 100
	p.Reputation = 4.6
	p.Sqft = 1200
	p.CompletedTraining = []string{"ce_endo", "ce_hygiene", "ce_frontoffice"}
	p.Totals.Revenue = 45000
	p.Totals.Expenses = 20250 // 45% overhead, 55% margin before rounding
	for i := range p.Staff {
		p.Staff[i].Skill = 78
		p.Staff[i].Attitude = 76
		p.Staff[i].Reliability = 80
		p.Staff[i].Morale = 78
	}
	out := &sim.Outcome{
		Revenue:       3000,
		Satisfaction:  80,
		EffectiveRate: 0.86,
	}
	return p, out
}

func TestScoreUnavailableBeforeDayTen(t *testing.T) {
	p, out := strongPractice()
	p.Day = 9
	assert.Nil(t, Compute(p, out, config.Default()))
	assert.Nil(t, Compute(p, nil, config.Default()))
}

func TestStrongPracticeLandsInTopTwoBands(t *testing.T) {
	p, out := strongPractice()
	res := Compute(p, out, config.Default())
	require.NotNil(t, res)

	assert.GreaterOrEqual(t, res.Overall, 800)
	assert.Contains(t, []string{"A", "A+"}, res.Grade)
}

func TestWeightsSumToHundred(t *testing.T) {
	p, out := strongPractice()

	check := func(res *Result) {
		require.NotNil(t, res)
		total := 0.0
		for _, c := range res.Categories {
			total += c.Weight
		}
		assert.InDelta(t, 100.0, total, 0.001)
	}

	check(Compute(p, out, config.Default()))

	// Empire category joins with a second location; the total must not move.
	p.Locations = append(p.Locations, practice.Location{ID: "loc1", Reputation: 3.5})
	res := Compute(p, out, config.Default())
	check(res)
	assert.Contains(t, res.Categories, CatEmpire)
}

func TestDifficultyMultiplierScalesOverall(t *testing.T) {
	p, out := strongPractice()

	owner := Compute(p, out, config.Default())
	mogul := Compute(p, out, config.Mogul())
	require.NotNil(t, owner)
	require.NotNil(t, mogul)

	assert.Greater(t, mogul.Overall, owner.Overall)
	assert.LessOrEqual(t, mogul.Overall, 1000)
}

func TestOverallClampedToFloorOfOne(t *testing.T) {
	p := practice.New("Broke")
	p.Day = 20
	p.Cash = -5000
	p.Totals.Revenue = 0
	p.Totals.Expenses = 30000
	for i := range p.Staff {
		p.Staff[i].Skill = 5
		p.Staff[i].Attitude = 5
		p.Staff[i].Reliability = 5
		p.Staff[i].Morale = 5
	}
	out := &sim.Outcome{Satisfaction: 5, EffectiveRate: 0.3}

	res := Compute(p, out, config.Default())
	require.NotNil(t, res)
	assert.GreaterOrEqual(t, res.Overall, 1)
	assert.Equal(t, "F", res.Grade)
}

func TestBandScoreLowerBetterOrdering(t *testing.T) {
	def := categoryDef{lowerBetter: true, bands: []Band{{0.45, 100}, {0.55, 85}}, floor: 10}
	assert.Equal(t, 100.0, bandScore(def, 0.40))
	assert.Equal(t, 100.0, bandScore(def, 0.45))
	assert.Equal(t, 85.0, bandScore(def, 0.50))
	assert.Equal(t, 10.0, bandScore(def, 0.90))
}

func TestEmpireMetricPunishesMissingManager(t *testing.T) {
	p, out := strongPractice()
	p.Locations = []practice.Location{
		{ID: "a", Reputation: 4.5},
		{ID: "b", Reputation: 4.5},
		{ID: "c", Reputation: 4.5},
	}
	p.HasRegionalManager = false
	noMgr := metricEmpire(p, out)

	p.HasRegionalManager = true
	withMgr := metricEmpire(p, out)

	assert.Less(t, noMgr, withMgr)
	assert.Equal(t, 4.5, withMgr)
}

func TestSummarizeSplitsStrengthsAndWeaknesses(t *testing.T) {
	p, out := strongPractice()
	res := Compute(p, out, config.Default())
	require.NotNil(t, res)

	fb := Summarize(res)
	assert.NotEmpty(t, fb.Strengths)
	assert.Len(t, fb.Tips, len(fb.Weaknesses))
}

func TestCompareReportsOverallLine(t *testing.T) {
	p, out := strongPractice()
	a := Compute(p, out, config.Default())
	b := Compute(p, out, config.Mogul())

	lines := Compare(a, b)
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[len(lines)-1], "Overall:")
}
