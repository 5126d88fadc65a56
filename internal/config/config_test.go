package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should use defaults when file is missing", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.NoError(t, err)
		assert.Equal(t, ":8181", cfg.Addr)
		assert.Equal(t, "medium", cfg.Game.Difficulty)
		assert.Equal(t, "sharedApartment", cfg.Game.Housing)
		assert.Equal(t, 200.0, cfg.Game.Rules.HousingChangeFee)
		assert.Equal(t, 0.35, cfg.Game.Rules.DefaultRandomProbability)
	})

	t.Run("should read yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "application.yaml")
		content := `
addr: ":9000"
game:
  difficulty: hard
  seed: 42
  rules:
    borrowchunk: 150
    randomevents:
      carBreakdown:
        probability: 0.5
        maxperyear: 1
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, ":9000", cfg.Addr)
		assert.Equal(t, "hard", cfg.Game.Difficulty)
		assert.Equal(t, uint64(42), cfg.Game.Seed)
		assert.Equal(t, 150.0, cfg.Game.Rules.BorrowChunk)
		assert.Equal(t, 1, cfg.Game.Rules.RandomEvents["carBreakdown"].MaxPerYear)
		assert.Equal(t, 200.0, cfg.Game.Rules.HousingChangeFee)
	})

	t.Run("should let environment override file", func(t *testing.T) {
		t.Setenv("FINKANBAN_GAME_HOUSING", "luxury")
		t.Setenv("FINKANBAN_LOG_LEVEL", "debug")

		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.NoError(t, err)
		assert.Equal(t, "luxury", cfg.Game.Housing)
		assert.Equal(t, "debug", cfg.Log.Level)
	})
}

func TestGame_EngineRules(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	cfg.Game.Rules.DebtBorrowCeiling = 5000
	cfg.Game.Rules.RandomEvents = map[string]RandomEvent{"taxRefund": {Probability: 0.9, MaxPerYear: 2}}

	rules := cfg.Game.EngineRules()

	assert.NoError(t, rules.Validate())
	assert.True(t, rules.HousingChangeFee.Equal(decimal.NewFromInt(200)))
	assert.True(t, rules.CreditInterestRate.Equal(decimal.RequireFromString("0.02")))
	assert.True(t, rules.DebtBorrowCeiling.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, 2, rules.RandomRules["taxRefund"].MaxPerYear)
}
