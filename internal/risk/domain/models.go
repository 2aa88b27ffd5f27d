package domain

import "time"

// Level is the categorical risk bucket derived from the numeric score.
type Level string

const (
	LevelSafe   Level = "Safe"
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// LevelForScore maps a total score to its bucket.
func LevelForScore(score float64) Level {
	switch {
	case score == 0:
		return LevelSafe
	case score <= 39:
		return LevelLow
	case score <= 69:
		return LevelMedium
	default:
		return LevelHigh
	}
}

// Assessment is the result of reducing one customer's invoice list.
type Assessment struct {
	UnpaidCount   int      `json:"unpaid_count"`
	TotalOpenDebt float64  `json:"total_open_debt"`
	HasOverdue    bool     `json:"has_overdue"`
	RiskScore     float64  `json:"risk_score"`
	RiskLevel     Level    `json:"risk_level"`
	Reasons       []string `json:"reasons"`
}

// CustomerRisk pairs an assessment with the customer it belongs to.
type CustomerRisk struct {
	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Assessment
}

// RiskSnapshot is the latest persisted assessment for a customer.
// Exactly one row exists per customer_id; it is overwritten in place on
// every recomputation and removed only by an explicit delete.
type RiskSnapshot struct {
	ID           int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID   int64   `gorm:"uniqueIndex;not null" json:"customer_id"`
	CustomerName string  `gorm:"not null" json:"customer_name"`
	UnpaidCount  int     `gorm:"not null;default:0" json:"unpaid_count"`
	TotalOpenDebt float64 `gorm:"not null;default:0" json:"total_open_debt"`
	HasOverdue   bool    `gorm:"not null;default:false" json:"has_overdue"`
	RiskScore    float64 `gorm:"not null;default:0" json:"risk_score"`
	RiskLevel    string  `gorm:"not null;default:Safe" json:"risk_level"`
	// Reasons is "; "-joined at write time. Lossy when a reason itself
	// contains the delimiter; kept that way on purpose.
	Reasons   string    `gorm:"type:text;not null;default:''" json:"reasons"`
	UpdatedAt time.Time `json:"updated_at"`
}
