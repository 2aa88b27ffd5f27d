package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	// ErrNoSnapshot means alert creation was requested for a customer with
	// no stored risk snapshot. Recoverable: refresh risk first.
	ErrNoSnapshot = errors.New("no_risk_snapshot")
	ErrNotFound   = errors.New("alert_not_found")
)

// CreateAlertRequest carries the customer plus the ordered message
// candidates; the first non-blank one wins.
type CreateAlertRequest struct {
	CustomerID int64
	Message    string
	Preview    string
	EmailBody  string
}

// UpdateAlertRequest patches an alert for administrative correction.
// Nil fields are left untouched.
type UpdateAlertRequest struct {
	Message *string
	Status  *string
}

type Service interface {
	CreateFromSnapshot(ctx context.Context, req CreateAlertRequest) (Alert, error)
	List(ctx context.Context, limit int) ([]Alert, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateAlertRequest) (Alert, error)
	Delete(ctx context.Context, id snowflake.ID) error
}
