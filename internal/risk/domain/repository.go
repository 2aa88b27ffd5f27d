package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// Upsert writes the latest assessment for its customer, overwriting any
	// existing snapshot row. The reasons list is flattened here.
	Upsert(ctx context.Context, db *gorm.DB, risk CustomerRisk) (*RiskSnapshot, error)
	FindByCustomerID(ctx context.Context, db *gorm.DB, customerID int64) (*RiskSnapshot, error)
	List(ctx context.Context, db *gorm.DB) ([]RiskSnapshot, error)
	Delete(ctx context.Context, db *gorm.DB, customerID int64) (bool, error)
}
