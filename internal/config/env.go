package config

import (
	"os"
	"strconv"
)

// FromEnv loads balance configuration from environment variables, falling
// back to the preset for DIFFICULTY (or the owner default).
func FromEnv() Balance {
	cfg := Default()
	if mode := os.Getenv("DIFFICULTY"); mode != "" {
		cfg = ForDifficulty(Difficulty(mode))
	}

	if val := getEnvInt("SEASON_DAYS"); val > 0 {
		cfg.SeasonDays = val
	}
	if val := getEnvFloat("WALK_IN_RATE"); val > 0 {
		cfg.WalkInRate = val
	}
	if val := getEnvFloat("BASE_VISIT_FEE"); val > 0 {
		cfg.BaseVisitFee = val
	}
	if val := getEnvFloat("DAILY_EVENT_CHANCE"); val > 0 {
		cfg.DailyEventChance = val
	}
	if val := getEnvFloat("EVENT_FREQUENCY"); val > 0 {
		cfg.EventFrequency = val
	}
	if val := getEnvInt("FLOAT_WINDOW_DAYS"); val > 0 {
		cfg.FloatWindowDays = val
	}
	if val := getEnvInt("CREDENTIAL_DAYS"); val > 0 {
		cfg.CredentialDays = val
	}
	if val := getEnvFloat("DEPARTURE_CHANCE"); val > 0 {
		cfg.DepartureChance = val
	}
	if val := getEnvFloat("SCORE_MULTIPLIER"); val > 0 {
		cfg.ScoreMultiplier = val
	}

	return cfg
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvFloat(key string) float64 {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0
	}
	return num
}
