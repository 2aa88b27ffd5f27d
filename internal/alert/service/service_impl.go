package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/riskwatch/internal/alert/domain"
	"github.com/smallbiznis/riskwatch/internal/clock"
	"github.com/smallbiznis/riskwatch/internal/config"
	"github.com/smallbiznis/riskwatch/internal/notifier"
	obsmetrics "github.com/smallbiznis/riskwatch/internal/observability/metrics"
	riskdomain "github.com/smallbiznis/riskwatch/internal/risk/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Cfg       config.Config
	GenID     *snowflake.Node
	Clock     clock.Clock
	Repo      domain.Repository
	Snapshots riskdomain.Repository
	Notifier  notifier.Notifier
	Metrics   *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	cfg       config.Config
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	snapshots riskdomain.Repository
	notifier  notifier.Notifier
	metrics   *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("alert.service"),
		cfg:       p.Cfg,
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		snapshots: p.Snapshots,
		notifier:  p.Notifier,
		metrics:   p.Metrics,
	}
}

func (s *Service) CreateFromSnapshot(ctx context.Context, req domain.CreateAlertRequest) (domain.Alert, error) {
	snap, err := s.snapshots.FindByCustomerID(ctx, s.db, req.CustomerID)
	if err != nil {
		return domain.Alert{}, err
	}
	if snap == nil {
		return domain.Alert{}, domain.ErrNoSnapshot
	}

	alert := domain.Alert{
		ID:           s.genID.Generate(),
		CustomerID:   req.CustomerID,
		CustomerName: snap.CustomerName,
		Message:      resolveMessage(req),
		Status:       domain.StatusSent,
		CreatedAt:    s.clock.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &alert); err != nil {
		return domain.Alert{}, err
	}

	// Handoff strictly after commit; delivery outcome stays invisible here.
	s.notifier.Enqueue(notifier.Notification{
		To:      s.cfg.Email.To,
		Subject: fmt.Sprintf("Risk alert for %s", alert.CustomerName),
		Body:    alert.Message,
	})

	s.metrics.RecordAlertCreated(ctx)
	s.log.Info("alert created",
		zap.Int64("customer_id", alert.CustomerID),
		zap.String("alert_id", alert.ID.String()),
	)
	return alert, nil
}

func (s *Service) List(ctx context.Context, limit int) ([]domain.Alert, error) {
	return s.repo.List(ctx, s.db, limit)
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateAlertRequest) (domain.Alert, error) {
	alert, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Alert{}, err
	}
	if alert == nil {
		return domain.Alert{}, domain.ErrNotFound
	}

	if req.Message != nil {
		alert.Message = *req.Message
	}
	if req.Status != nil {
		alert.Status = *req.Status
	}

	if err := s.repo.Save(ctx, s.db, alert); err != nil {
		return domain.Alert{}, err
	}
	return *alert, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	deleted, err := s.repo.Delete(ctx, s.db, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// resolveMessage picks the first non-blank candidate in priority order.
func resolveMessage(req domain.CreateAlertRequest) string {
	for _, candidate := range []string{req.Message, req.Preview, req.EmailBody} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return domain.DefaultMessage
}
