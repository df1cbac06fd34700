package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DEPOSIT_PERCENT", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 50, cfg.Business.DepositPercent)
	assert.Equal(t, 8*time.Hour, cfg.Business.PrivilegedLead)
	assert.Equal(t, 72*time.Hour, cfg.Redis.CartTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("STANDARD_LEAD_DAYS", "3")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := Load()
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 3, cfg.Business.StandardLeadDays)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestScheduleRules(t *testing.T) {
	b := BusinessConfig{
		Timezone:         "UTC",
		StandardLeadDays: 2,
		PrivilegedLead:   8 * time.Hour,
		SlotOpen:         "09:00",
		SlotClose:        "18:30",
		SlotMinutes:      30,
	}

	rules, err := b.ScheduleRules()
	require.NoError(t, err)
	assert.Equal(t, "09:00", rules.Open.String())
	assert.Equal(t, "18:30", rules.Close.String())
	assert.Equal(t, 30*time.Minute, rules.SlotStep)

	b.SlotClose = "07:00"
	_, err = b.ScheduleRules()
	assert.Error(t, err)

	b.SlotClose = "18:30"
	b.Timezone = "Mars/Olympus"
	_, err = b.ScheduleRules()
	assert.Error(t, err)
}
