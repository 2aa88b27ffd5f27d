package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRiskConfig(t *testing.T) {
	cfg := DefaultRiskConfig()
	assert.Equal(t, 1000.0, cfg.DebtThreshold)
	assert.Equal(t, 3, cfg.UnpaidThreshold)
}

func TestDefaultRiskConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DEBT_THRESHOLD", "2500.5")
	t.Setenv("UNPAID_N", "5")

	cfg := DefaultRiskConfig()
	assert.Equal(t, 2500.5, cfg.DebtThreshold)
	assert.Equal(t, 5, cfg.UnpaidThreshold)
}

func TestDefaultRiskConfig_MalformedEnvFallsBack(t *testing.T) {
	t.Setenv("DEBT_THRESHOLD", "lots")
	t.Setenv("UNPAID_N", "few")

	cfg := DefaultRiskConfig()
	assert.Equal(t, 1000.0, cfg.DebtThreshold)
	assert.Equal(t, 3, cfg.UnpaidThreshold)
}

func TestValidateRiskConfig(t *testing.T) {
	assert.NoError(t, validateRiskConfig(RiskConfig{DebtThreshold: 0, UnpaidThreshold: 1}))
	assert.Error(t, validateRiskConfig(RiskConfig{DebtThreshold: -1, UnpaidThreshold: 3}))
	assert.Error(t, validateRiskConfig(RiskConfig{DebtThreshold: 100, UnpaidThreshold: 0}))
}

func TestStaticRiskConfigHolder(t *testing.T) {
	holder := NewStaticRiskConfigHolder(RiskConfig{DebtThreshold: 42, UnpaidThreshold: 2})
	assert.Equal(t, 42.0, holder.Get().DebtThreshold)
	assert.Equal(t, 2, holder.Get().UnpaidThreshold)
}
