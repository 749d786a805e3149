package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresets(t *testing.T) {
	def := Default()
	assert.Equal(t, DifficultyOwner, def.Difficulty)
	assert.False(t, def.ExpertEventsEnabled())

	rookie := Rookie()
	assert.Greater(t, rookie.WalkInRate, def.WalkInRate)
	assert.Less(t, rookie.DepartureChance, def.DepartureChance)
	assert.Less(t, rookie.ScoreMultiplier, def.ScoreMultiplier)

	mogul := Mogul()
	assert.Less(t, mogul.WalkInRate, def.WalkInRate)
	assert.Greater(t, mogul.DepartureChance, def.DepartureChance)
	assert.Greater(t, mogul.ScoreMultiplier, def.ScoreMultiplier)
	assert.True(t, mogul.ExpertEventsEnabled())
}

func TestForDifficulty(t *testing.T) {
	assert.Equal(t, DifficultyRookie, ForDifficulty(DifficultyRookie).Difficulty)
	assert.Equal(t, DifficultyMogul, ForDifficulty(DifficultyMogul).Difficulty)
	assert.Equal(t, DifficultyOwner, ForDifficulty("nonsense").Difficulty)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DIFFICULTY", "mogul")
	t.Setenv("SEASON_DAYS", "60")
	t.Setenv("BASE_VISIT_FEE", "150")
	t.Setenv("WALK_IN_RATE", "garbage")

	cfg := FromEnv()
	assert.Equal(t, DifficultyMogul, cfg.Difficulty)
	assert.Equal(t, 60, cfg.SeasonDays)
	assert.InDelta(t, 150.0, cfg.BaseVisitFee, 1e-9)
	// Unparseable values fall back to the preset.
	assert.InDelta(t, Mogul().WalkInRate, cfg.WalkInRate, 1e-9)
}
