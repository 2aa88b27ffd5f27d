package calc

import (
	"testing"
	"time"

	"github.com/smallbiznis/riskwatch/internal/config"
	"github.com/smallbiznis/riskwatch/internal/risk/domain"
	"github.com/stretchr/testify/assert"
)

func testRiskConfig() config.RiskConfig {
	return config.RiskConfig{
		DebtThreshold:   1000,
		UnpaidThreshold: 3,
	}
}

func TestScore_OverdueAndHighDebt(t *testing.T) {
	today := time.Date(2026, 3, 15, 10, 30, 0, 0, time.Local)

	invoices := []map[string]any{
		{"total_ttc": 1650.5, "paid": float64(0), "date_lim_reglement": "2026-02-01"},
		{"total_ttc": 500.0, "paid": float64(0), "date_lim_reglement": "2026-12-31"},
		{"total_ttc": 9999.0, "paid": float64(1), "date_lim_reglement": "2025-01-01"},
	}

	got := Score(invoices, today, testRiskConfig())

	assert.Equal(t, 2, got.UnpaidCount)
	assert.Equal(t, 2150.5, got.TotalOpenDebt)
	assert.True(t, got.HasOverdue)
	assert.Equal(t, 80.0, got.RiskScore)
	assert.Equal(t, domain.LevelHigh, got.RiskLevel)
	assert.Equal(t, []string{
		"Has at least one overdue invoice (+50)",
		"Total open debt 2150.50 > 1000 (+30)",
	}, got.Reasons)
}

func TestScore_AllPaidIsSafe(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	invoices := []map[string]any{
		{"total_ttc": 300.0, "paid": float64(1), "date_lim_reglement": "2020-01-01"},
		{"total_ttc": 120.0, "paid": float64(1)},
	}

	got := Score(invoices, today, testRiskConfig())

	assert.Equal(t, 0, got.UnpaidCount)
	assert.Equal(t, 0.0, got.TotalOpenDebt)
	assert.False(t, got.HasOverdue)
	assert.Equal(t, 0.0, got.RiskScore)
	assert.Equal(t, domain.LevelSafe, got.RiskLevel)
	assert.Empty(t, got.Reasons)
}

func TestScore_EmptyInvoiceListIsSafe(t *testing.T) {
	got := Score(nil, time.Now(), testRiskConfig())

	assert.Equal(t, domain.LevelSafe, got.RiskLevel)
	assert.Equal(t, 0.0, got.RiskScore)
	assert.Empty(t, got.Reasons)
}

func TestScore_FutureDueDateIsNotOverdue(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	invoices := []map[string]any{
		{"total_ttc": 50.0, "paid": float64(0), "date_lim_reglement": "2026-03-16"},
	}

	got := Score(invoices, today, testRiskConfig())

	assert.False(t, got.HasOverdue)
	assert.Equal(t, 0.0, got.RiskScore)
	assert.Equal(t, domain.LevelSafe, got.RiskLevel)
}

func TestScore_DueTodayIsNotOverdue(t *testing.T) {
	today := time.Date(2026, 3, 15, 23, 59, 0, 0, time.Local)

	invoices := []map[string]any{
		{"total_ttc": 50.0, "paid": float64(0), "date_lim_reglement": "2026-03-15"},
	}

	got := Score(invoices, today, testRiskConfig())

	assert.False(t, got.HasOverdue)
}

func TestScore_PaidFlagIsStrict(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	// Only the numeric value 1 marks an invoice paid. "1", true and 2 do not.
	invoices := []map[string]any{
		{"total_ttc": 10.0, "paid": "1"},
		{"total_ttc": 10.0, "paid": true},
		{"total_ttc": 10.0, "paid": float64(2)},
		{"total_ttc": 10.0},
	}

	got := Score(invoices, today, testRiskConfig())

	assert.Equal(t, 4, got.UnpaidCount)
	assert.Equal(t, 40.0, got.TotalOpenDebt)
	// 4 unpaid >= 3, under the debt threshold, nothing overdue.
	assert.Equal(t, 20.0, got.RiskScore)
	assert.Equal(t, domain.LevelLow, got.RiskLevel)
	assert.Equal(t, []string{"Unpaid invoices 4 >= 3 (+20)"}, got.Reasons)
}

func TestScore_AmountFieldFallback(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	invoices := []map[string]any{
		// total_ttc blank, falls back to total.
		{"total_ttc": "", "total": 700.0, "paid": float64(0)},
		// total_ttc zero counts as absent, falls back to amount.
		{"total_ttc": float64(0), "amount": "400.50", "paid": float64(0)},
		// nothing usable degrades to zero.
		{"paid": float64(0)},
	}

	got := Score(invoices, today, testRiskConfig())

	assert.Equal(t, 3, got.UnpaidCount)
	assert.Equal(t, 1100.5, got.TotalOpenDebt)
	// debt over threshold plus unpaid count at threshold.
	assert.Equal(t, 50.0, got.RiskScore)
	assert.Equal(t, domain.LevelMedium, got.RiskLevel)
}

func TestScore_DebtAtThresholdDoesNotTrigger(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	invoices := []map[string]any{
		{"total_ttc": 1000.0, "paid": float64(0)},
	}

	got := Score(invoices, today, testRiskConfig())

	assert.Equal(t, 0.0, got.RiskScore)
	assert.Equal(t, domain.LevelSafe, got.RiskLevel)
}

func TestScore_MalformedDueDateIgnored(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	invoices := []map[string]any{
		{"total_ttc": 10.0, "paid": float64(0), "date_lim_reglement": "not-a-date"},
	}

	got := Score(invoices, today, testRiskConfig())

	assert.False(t, got.HasOverdue)
}

func TestScore_DueDateFieldFallback(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	invoices := []map[string]any{
		{"total_ttc": 10.0, "paid": float64(0), "due_date": "2026-01-01"},
		{"total_ttc": 10.0, "paid": float64(0), "date_lim_reglement": "", "datedue": float64(time.Date(2026, 1, 2, 12, 0, 0, 0, time.Local).Unix())},
	}

	got := Score(invoices, today, testRiskConfig())

	assert.True(t, got.HasOverdue)
}

func TestScore_RoundsDebtToCents(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	invoices := []map[string]any{
		{"total_ttc": 0.1, "paid": float64(0)},
		{"total_ttc": 0.2, "paid": float64(0)},
	}

	got := Score(invoices, today, testRiskConfig())

	assert.Equal(t, 0.3, got.TotalOpenDebt)
}

func TestLevelForScore(t *testing.T) {
	cases := []struct {
		score float64
		want  domain.Level
	}{
		{0, domain.LevelSafe},
		{20, domain.LevelLow},
		{39, domain.LevelLow},
		{40, domain.LevelMedium},
		{50, domain.LevelMedium},
		{69, domain.LevelMedium},
		{70, domain.LevelHigh},
		{100, domain.LevelHigh},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.LevelForScore(tc.score), "score %v", tc.score)
	}
}
