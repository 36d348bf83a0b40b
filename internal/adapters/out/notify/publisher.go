package notify

import (
	"context"
	"log/slog"
	"strings"

	"mestrace/internal/core/ports"
)

// SlogEventPublisher delivers outbound events as structured log records. It
// stands in for an external notification channel: recipients are named by
// role and resolution to actual users happens downstream.
type SlogEventPublisher struct {
	logger *slog.Logger
}

// NewSlogEventPublisher creates a publisher that writes events to the given
// logger.
func NewSlogEventPublisher(logger *slog.Logger) *SlogEventPublisher {
	return &SlogEventPublisher{
		logger: logger.With("component", "event_publisher"),
	}
}

// Publish emits one event. Never blocks and never fails: a notification is
// advisory, the state change it describes has already committed.
func (p *SlogEventPublisher) Publish(ctx context.Context, event ports.Event) {
	attrs := []any{
		"event", event.Kind.String(),
		"recipients", joinRoles(event.Recipients),
		"occurred_at", event.OccurredAt,
	}

	if event.MOID != nil {
		attrs = append(attrs, "mo_id", event.MOID.String())
	}
	if event.BatchID != nil {
		attrs = append(attrs, "batch_id", event.BatchID.String())
	}
	if event.ExecutionID != nil {
		attrs = append(attrs, "execution_id", event.ExecutionID.String())
	}
	for key, value := range event.Attributes {
		attrs = append(attrs, key, value)
	}

	p.logger.InfoContext(ctx, "Notification event", attrs...)
}

func joinRoles(roles []ports.RecipientRole) string {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.String())
	}
	return strings.Join(names, ",")
}
