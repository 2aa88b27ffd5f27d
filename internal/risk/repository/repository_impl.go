package repository

import (
	"context"
	"strings"

	"github.com/smallbiznis/riskwatch/internal/risk/domain"
	"github.com/smallbiznis/riskwatch/pkg/db"
	"gorm.io/gorm"
)

// ReasonsDelimiter joins the reasons list into the snapshot's text column.
const ReasonsDelimiter = "; "

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Upsert(ctx context.Context, conn *gorm.DB, risk domain.CustomerRisk) (*domain.RiskSnapshot, error) {
	values := map[string]any{
		"customer_name":   risk.CustomerName,
		"unpaid_count":    risk.UnpaidCount,
		"total_open_debt": risk.TotalOpenDebt,
		"has_overdue":     risk.HasOverdue,
		"risk_score":      risk.RiskScore,
		"risk_level":      string(risk.RiskLevel),
		"reasons":         strings.Join(risk.Reasons, ReasonsDelimiter),
	}

	res := conn.WithContext(ctx).
		Model(&domain.RiskSnapshot{}).
		Where("customer_id = ?", risk.CustomerID).
		Updates(values)
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		snap := snapshotFrom(risk)
		err := conn.WithContext(ctx).Create(snap).Error
		if err == nil {
			return snap, nil
		}
		if !db.IsDuplicateKeyErr(err) {
			return nil, err
		}
		// Lost the insert race for this customer; fall through and overwrite.
		res = conn.WithContext(ctx).
			Model(&domain.RiskSnapshot{}).
			Where("customer_id = ?", risk.CustomerID).
			Updates(values)
		if res.Error != nil {
			return nil, res.Error
		}
	}

	return r.FindByCustomerID(ctx, conn, risk.CustomerID)
}

func (r *repo) FindByCustomerID(ctx context.Context, conn *gorm.DB, customerID int64) (*domain.RiskSnapshot, error) {
	var snap domain.RiskSnapshot
	err := conn.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Limit(1).
		Find(&snap).Error
	if err != nil {
		return nil, err
	}
	if snap.ID == 0 {
		return nil, nil
	}
	return &snap, nil
}

func (r *repo) List(ctx context.Context, conn *gorm.DB) ([]domain.RiskSnapshot, error) {
	var snapshots []domain.RiskSnapshot
	err := conn.WithContext(ctx).
		Order("risk_score desc").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (r *repo) Delete(ctx context.Context, conn *gorm.DB, customerID int64) (bool, error) {
	res := conn.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&domain.RiskSnapshot{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func snapshotFrom(risk domain.CustomerRisk) *domain.RiskSnapshot {
	return &domain.RiskSnapshot{
		CustomerID:    risk.CustomerID,
		CustomerName:  risk.CustomerName,
		UnpaidCount:   risk.UnpaidCount,
		TotalOpenDebt: risk.TotalOpenDebt,
		HasOverdue:    risk.HasOverdue,
		RiskScore:     risk.RiskScore,
		RiskLevel:     string(risk.RiskLevel),
		Reasons:       strings.Join(risk.Reasons, ReasonsDelimiter),
	}
}
