package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/riskwatch/internal/clock"
	"github.com/smallbiznis/riskwatch/internal/config"
	"github.com/smallbiznis/riskwatch/internal/dolibarr"
	"github.com/smallbiznis/riskwatch/internal/risk/domain"
	"github.com/smallbiznis/riskwatch/internal/risk/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeSource struct {
	customers    []map[string]any
	invoices     map[int64][]map[string]any
	customersErr error
	invoicesErr  error
}

func (f *fakeSource) ListCustomers(ctx context.Context) ([]map[string]any, error) {
	_ = ctx
	if f.customersErr != nil {
		return nil, f.customersErr
	}
	return f.customers, nil
}

func (f *fakeSource) ListInvoices(ctx context.Context, customerID int64) ([]map[string]any, error) {
	_ = ctx
	if f.invoicesErr != nil {
		return nil, f.invoicesErr
	}
	return f.invoices[customerID], nil
}

func newTestService(t *testing.T, source dolibarr.Source) (domain.Service, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, conn.AutoMigrate(&domain.RiskSnapshot{}))

	svc := New(Params{
		DB:     conn,
		Log:    zap.NewNop(),
		Source: source,
		Repo:   repository.Provide(),
		Risk: config.NewStaticRiskConfigHolder(config.RiskConfig{
			DebtThreshold:   1000,
			UnpaidThreshold: 3,
		}),
		Clock: clock.NewFakeClock(time.Date(2026, 3, 15, 9, 0, 0, 0, time.Local)),
	})
	return svc, conn
}

func TestAssessAll_OrdersByDescendingScore(t *testing.T) {
	source := &fakeSource{
		customers: []map[string]any{
			{"id": float64(1), "name": "Calm & Co"},
			{"id": float64(2), "name": "Troubled SARL"},
		},
		invoices: map[int64][]map[string]any{
			1: {
				{"total_ttc": 100.0, "paid": float64(1)},
			},
			2: {
				{"total_ttc": 1650.5, "paid": float64(0), "date_lim_reglement": "2026-02-01"},
				{"total_ttc": 500.0, "paid": float64(0)},
			},
		},
	}

	svc, _ := newTestService(t, source)

	results, err := svc.AssessAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, results, 2)

	assert.Equal(t, int64(2), results[0].CustomerID)
	assert.Equal(t, "Troubled SARL", results[0].CustomerName)
	assert.Equal(t, 80.0, results[0].RiskScore)
	assert.Equal(t, domain.LevelHigh, results[0].RiskLevel)

	assert.Equal(t, int64(1), results[1].CustomerID)
	assert.Equal(t, 0.0, results[1].RiskScore)
	assert.Equal(t, domain.LevelSafe, results[1].RiskLevel)
}

func TestAssessAll_CustomerIDAndNameCoercion(t *testing.T) {
	source := &fakeSource{
		customers: []map[string]any{
			{"id": "42", "nom": "Legacy Nom"},
			{"id": float64(43)},
			{"id": "not-a-number", "name": "Broken"},
			{"name": "No ID At All"},
		},
		invoices: map[int64][]map[string]any{},
	}

	svc, _ := newTestService(t, source)

	results, err := svc.AssessAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, results, 2)

	byID := map[int64]string{}
	for _, r := range results {
		byID[r.CustomerID] = r.CustomerName
	}
	assert.Equal(t, "Legacy Nom", byID[42])
	assert.Equal(t, "customer_43", byID[43])
}

func TestAssessAll_SourceFailurePropagates(t *testing.T) {
	wrapped := fmt.Errorf("%w: connection refused", dolibarr.ErrUnavailable)
	svc, _ := newTestService(t, &fakeSource{customersErr: wrapped})

	_, err := svc.AssessAll(context.Background())
	assert.ErrorIs(t, err, dolibarr.ErrUnavailable)
}

func TestAssessAll_InvoiceFailurePropagates(t *testing.T) {
	wrapped := fmt.Errorf("%w: status 500", dolibarr.ErrUnavailable)
	source := &fakeSource{
		customers:   []map[string]any{{"id": float64(1), "name": "Acme"}},
		invoicesErr: wrapped,
	}
	svc, _ := newTestService(t, source)

	_, err := svc.AssessAll(context.Background())
	assert.ErrorIs(t, err, dolibarr.ErrUnavailable)
}

func TestRefreshAll_PersistsOneSnapshotPerCustomer(t *testing.T) {
	source := &fakeSource{
		customers: []map[string]any{
			{"id": float64(1), "name": "Calm & Co"},
			{"id": float64(2), "name": "Troubled SARL"},
		},
		invoices: map[int64][]map[string]any{
			2: {
				{"total_ttc": 1650.5, "paid": float64(0), "date_lim_reglement": "2026-02-01"},
			},
		},
	}

	svc, conn := newTestService(t, source)
	ctx := context.Background()

	results, err := svc.RefreshAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, results, 2)

	var count int64
	assert.NoError(t, conn.Model(&domain.RiskSnapshot{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	// A second refresh overwrites rather than accumulating.
	_, err = svc.RefreshAll(ctx)
	assert.NoError(t, err)
	assert.NoError(t, conn.Model(&domain.RiskSnapshot{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	snap, err := svc.GetSnapshot(ctx, 2)
	assert.NoError(t, err)
	assert.Equal(t, "Troubled SARL", snap.CustomerName)
	assert.Equal(t, 80.0, snap.RiskScore)
}

func TestGetSnapshot_MissingReturnsNotFound(t *testing.T) {
	svc, _ := newTestService(t, &fakeSource{})

	_, err := svc.GetSnapshot(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteSnapshot(t *testing.T) {
	source := &fakeSource{
		customers: []map[string]any{{"id": float64(5), "name": "Acme"}},
		invoices:  map[int64][]map[string]any{},
	}
	svc, _ := newTestService(t, source)
	ctx := context.Background()

	_, err := svc.RefreshAll(ctx)
	assert.NoError(t, err)

	assert.NoError(t, svc.DeleteSnapshot(ctx, 5))
	assert.ErrorIs(t, svc.DeleteSnapshot(ctx, 5), domain.ErrNotFound)
}
