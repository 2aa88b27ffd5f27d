// Package notifier decouples notification delivery from the request path.
// Alerts are committed first; delivery happens on a background worker and
// its outcome is never visible to the caller.
package notifier

import (
	"context"
	"sync"
	"time"

	obsmetrics "github.com/smallbiznis/riskwatch/internal/observability/metrics"
	"github.com/smallbiznis/riskwatch/internal/providers/email"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	queueSize   = 64
	sendTimeout = 30 * time.Second
)

type Notification struct {
	To      string
	Subject string
	Body    string
}

// Notifier is the handoff contract the alert workflow depends on.
type Notifier interface {
	Enqueue(n Notification)
}

type Dispatcher struct {
	provider email.Provider
	log      *zap.Logger
	metrics  *obsmetrics.Metrics

	mu     sync.Mutex
	queue  chan Notification
	done   chan struct{}
	closed bool
}

type Params struct {
	fx.In

	Provider email.Provider
	Log      *zap.Logger
	Metrics  *obsmetrics.Metrics `optional:"true"`
}

func NewDispatcher(lc fx.Lifecycle, p Params) *Dispatcher {
	d := &Dispatcher{
		provider: p.Provider,
		log:      p.Log.Named("notifier"),
		metrics:  p.Metrics,
		queue:    make(chan Notification, queueSize),
		done:     make(chan struct{}),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go d.run()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			d.stop()
			select {
			case <-d.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})

	return d
}

// Enqueue hands off a notification without ever blocking the caller.
// A full queue drops the notification with a warning.
func (d *Dispatcher) Enqueue(n Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.log.Warn("dispatcher stopped, notification dropped", zap.String("to", n.To))
		return
	}
	select {
	case d.queue <- n:
	default:
		d.log.Warn("notification queue full, notification dropped", zap.String("to", n.To))
		d.metrics.RecordNotification(context.Background(), "dropped")
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *Dispatcher) deliver(n Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := d.provider.Send(ctx, n.To, n.Subject, n.Body); err != nil {
		// Best effort only. The alert row is already committed.
		d.log.Warn("notification delivery failed",
			zap.String("to", n.To),
			zap.String("subject", n.Subject),
			zap.Error(err),
		)
		d.metrics.RecordNotification(ctx, "failed")
		return
	}

	d.log.Info("notification delivered", zap.String("to", n.To))
	d.metrics.RecordNotification(ctx, "delivered")
}

func (d *Dispatcher) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
}

var Module = fx.Module("notifier",
	fx.Provide(fx.Annotate(NewDispatcher, fx.As(new(Notifier)))),
)
