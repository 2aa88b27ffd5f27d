package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("snapshot_not_found")

type Service interface {
	// AssessAll scores every customer from the external source, ordered by
	// descending risk. It does not persist anything.
	AssessAll(ctx context.Context) ([]CustomerRisk, error)
	// RefreshAll is AssessAll plus one snapshot upsert per returned customer.
	RefreshAll(ctx context.Context) ([]CustomerRisk, error)
	GetSnapshot(ctx context.Context, customerID int64) (RiskSnapshot, error)
	ListSnapshots(ctx context.Context) ([]RiskSnapshot, error)
	DeleteSnapshot(ctx context.Context, customerID int64) error
}
