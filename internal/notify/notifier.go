// Package notify provides the outbound alert channel. Delivery is
// best-effort: the reconciliation flow never fails because an alert could
// not be sent.
package notify

import "context"

// Notifier dispatches a free-text alert message to the operator channel.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// Noop is a Notifier that silently discards messages. It stands in for the
// real channel when no credentials are configured.
type Noop struct{}

// Send discards the message.
func (Noop) Send(_ context.Context, _ string) error {
	return nil
}
