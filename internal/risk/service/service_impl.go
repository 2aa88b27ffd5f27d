package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/smallbiznis/riskwatch/internal/clock"
	"github.com/smallbiznis/riskwatch/internal/config"
	"github.com/smallbiznis/riskwatch/internal/dolibarr"
	obsmetrics "github.com/smallbiznis/riskwatch/internal/observability/metrics"
	"github.com/smallbiznis/riskwatch/internal/risk/calc"
	"github.com/smallbiznis/riskwatch/internal/risk/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Source  dolibarr.Source
	Repo    domain.Repository
	Risk    *config.RiskConfigHolder
	Clock   clock.Clock
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	source  dolibarr.Source
	repo    domain.Repository
	risk    *config.RiskConfigHolder
	clock   clock.Clock
	metrics *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("risk.service"),
		source:  p.Source,
		repo:    p.Repo,
		risk:    p.Risk,
		clock:   p.Clock,
		metrics: p.Metrics,
	}
}

func (s *Service) AssessAll(ctx context.Context) ([]domain.CustomerRisk, error) {
	customers, err := s.source.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}

	cfg := s.risk.Get()
	today := calc.DateOf(s.clock.Now())

	results := make([]domain.CustomerRisk, 0, len(customers))
	for _, customer := range customers {
		id, ok := customerID(customer)
		if !ok {
			s.log.Warn("skipping customer without usable id", zap.Any("record_id", customer["id"]))
			continue
		}

		// Sequential by design: the customer list is small and the source
		// enforces its own request timeout.
		invoices, err := s.source.ListInvoices(ctx, id)
		if err != nil {
			return nil, err
		}

		results = append(results, domain.CustomerRisk{
			CustomerID:   id,
			CustomerName: customerName(customer, id),
			Assessment:   calc.Score(invoices, today, cfg),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RiskScore > results[j].RiskScore
	})
	return results, nil
}

func (s *Service) RefreshAll(ctx context.Context) ([]domain.CustomerRisk, error) {
	results, err := s.AssessAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, result := range results {
		if _, err := s.repo.Upsert(ctx, s.db, result); err != nil {
			return nil, err
		}
		s.metrics.RecordAssessment(ctx, string(result.RiskLevel))
	}

	s.log.Info("risk snapshots refreshed", zap.Int("customers", len(results)))
	return results, nil
}

func (s *Service) GetSnapshot(ctx context.Context, customerID int64) (domain.RiskSnapshot, error) {
	snap, err := s.repo.FindByCustomerID(ctx, s.db, customerID)
	if err != nil {
		return domain.RiskSnapshot{}, err
	}
	if snap == nil {
		return domain.RiskSnapshot{}, domain.ErrNotFound
	}
	return *snap, nil
}

func (s *Service) ListSnapshots(ctx context.Context) ([]domain.RiskSnapshot, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) DeleteSnapshot(ctx context.Context, customerID int64) error {
	deleted, err := s.repo.Delete(ctx, s.db, customerID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

func customerID(customer map[string]any) (int64, bool) {
	switch v := customer["id"].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}

func customerName(customer map[string]any, id int64) string {
	for _, key := range []string{"name", "nom"} {
		if name, ok := customer[key].(string); ok && strings.TrimSpace(name) != "" {
			return name
		}
	}
	return fmt.Sprintf("customer_%d", id)
}
