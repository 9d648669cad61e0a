package payouts

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bramblecoop/bramble/types"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, time.Monday, cfg.Schedule.Weekday)
	assert.Equal(t, "00:00:00", cfg.Schedule.At)
	assert.Equal(t, "0 0 * * 1", cfg.Schedule.Cron())

	p := cfg.Policy
	assert.True(t, p.MinPayout.Equal(decimal.NewFromInt(10)))
	assert.True(t, p.ProcessingFee.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, 7*24*time.Hour, p.Lookback)
	assert.Equal(t, 3*24*time.Hour, p.SettlementDelay)
	assert.Equal(t, []types.EntityType{types.EntityInstructor, types.EntityCoop}, p.EntityTypes)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
schedule:
  weekday: Friday
  at: "18:30"
  location: UTC
min_payout: "25.00"
processing_fee: "0.75"
lookback: 336h
settlement_delay: 24h
run_timeout: 1m
entity_types: [instructor]
`))
	require.NoError(t, err)

	assert.Equal(t, time.Friday, cfg.Schedule.Weekday)
	assert.Equal(t, time.UTC, cfg.Schedule.Location)
	assert.Equal(t, "30 18 * * 5", cfg.Schedule.Cron())
	assert.True(t, cfg.Policy.MinPayout.Equal(decimal.NewFromInt(25)))
	assert.True(t, cfg.Policy.ProcessingFee.Equal(decimal.RequireFromString("0.75")))
	assert.Equal(t, 14*24*time.Hour, cfg.Policy.Lookback)
	assert.Equal(t, 24*time.Hour, cfg.Policy.SettlementDelay)
	assert.Equal(t, time.Minute, cfg.Policy.RunTimeout)
	assert.Equal(t, []types.EntityType{types.EntityInstructor}, cfg.Policy.EntityTypes)
}

func TestParseConfigErrors(t *testing.T) {
	cases := map[string]string{
		"weekday":     "schedule: {weekday: someday}",
		"clock":       `schedule: {at: "25:61"}`,
		"location":    "schedule: {location: Mars/Olympus}",
		"amount":      "min_payout: ten",
		"negative":    `processing_fee: "-1"`,
		"duration":    "lookback: a week",
		"zero window": "lookback: 0s",
		"timeout":     `run_timeout: "-1m"`,
		"entity":      "entity_types: [TUTOR]",
		"yaml":        "schedule: [",
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(in))
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("does/not/exist.yml")
	assert.Error(t, err)
}
