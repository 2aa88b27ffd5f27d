// Package calc reduces a customer's raw invoice records into a risk
// assessment. It is deliberately pure: no I/O, no persistence, no panics —
// malformed upstream fields degrade to safe defaults.
package calc

import (
	"fmt"
	"math"
	"time"

	"github.com/smallbiznis/riskwatch/internal/config"
	"github.com/smallbiznis/riskwatch/internal/risk/domain"
)

const (
	overdueScore = 50
	debtScore    = 30
	unpaidScore  = 20
)

// Score reduces an invoice list as of the given evaluation date.
func Score(invoices []map[string]any, today time.Time, cfg config.RiskConfig) domain.Assessment {
	today = DateOf(today)

	unpaidCount := 0
	totalOpenDebt := 0.0
	hasOverdue := false

	for _, inv := range invoices {
		if isPaid(inv) {
			continue
		}

		unpaidCount++
		totalOpenDebt += amountOf(inv)

		if due, ok := NormalizeDate(dueDateRaw(inv)); ok && due.Before(today) {
			hasOverdue = true
		}
	}

	score := 0.0
	reasons := []string{}

	if hasOverdue {
		score += overdueScore
		reasons = append(reasons, fmt.Sprintf("Has at least one overdue invoice (+%d)", overdueScore))
	}
	if totalOpenDebt > cfg.DebtThreshold {
		score += debtScore
		reasons = append(reasons, fmt.Sprintf("Total open debt %.2f > %g (+%d)", totalOpenDebt, cfg.DebtThreshold, debtScore))
	}
	if unpaidCount >= cfg.UnpaidThreshold {
		score += unpaidScore
		reasons = append(reasons, fmt.Sprintf("Unpaid invoices %d >= %d (+%d)", unpaidCount, cfg.UnpaidThreshold, unpaidScore))
	}

	return domain.Assessment{
		UnpaidCount:   unpaidCount,
		TotalOpenDebt: round2(totalOpenDebt),
		HasOverdue:    hasOverdue,
		RiskScore:     score,
		RiskLevel:     domain.LevelForScore(score),
		Reasons:       reasons,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
