package events

import (
	"context"
	"log/slog"

	portsevents "github.com/SscSPs/payables_ledger/internal/core/ports/events"
)

// NoopPublisher drops events. Used when no broker is configured.
type NoopPublisher struct{}

var _ portsevents.Publisher = NoopPublisher{}

func (NoopPublisher) PublishObligationSettled(ctx context.Context, event portsevents.ObligationSettled) error {
	slog.DebugContext(ctx, "Event publishing disabled, dropping event",
		slog.String("type", event.Type),
		slog.String("obligation_id", event.ObligationID))
	return nil
}

func (NoopPublisher) Close() error { return nil }
