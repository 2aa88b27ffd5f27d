package email

import "context"

type Provider interface {
	Send(ctx context.Context, to string, subject string, body string) error
}

// NoOpProvider swallows every send. Used when SMTP is not configured.
type NoOpProvider struct{}

func (p *NoOpProvider) Send(ctx context.Context, to string, subject string, body string) error {
	return nil
}
