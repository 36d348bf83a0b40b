package notify_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"mestrace/internal/adapters/out/notify"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/ports"

	"github.com/stretchr/testify/assert"
)

func TestSlogEventPublisher_Publish(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	publisher := notify.NewSlogEventPublisher(logger)

	batchID := kernel.NewUUID()
	publisher.Publish(t.Context(), ports.Event{
		Kind:       ports.EventBatchReceived,
		Recipients: []ports.RecipientRole{ports.RoleSupervisor, ports.RoleOperator},
		OccurredAt: time.Now().UTC(),
		BatchID:    &batchID,
		Attributes: map[string]string{"batch_number": "BATCH-MO-2025-0042-001"},
	})

	out := buf.String()
	assert.Contains(t, out, "event=batch_received")
	assert.Contains(t, out, "recipients=supervisor,operator")
	assert.Contains(t, out, "batch_id="+batchID.String())
	assert.Contains(t, out, "batch_number=BATCH-MO-2025-0042-001")
	assert.Contains(t, out, "component=event_publisher")
}

func TestSlogEventPublisher_Publish_MinimalEvent(t *testing.T) {
	var buf bytes.Buffer
	publisher := notify.NewSlogEventPublisher(slog.New(slog.NewTextHandler(&buf, nil)))

	publisher.Publish(t.Context(), ports.Event{
		Kind:       ports.EventMOCreated,
		Recipients: []ports.RecipientRole{ports.RoleManager},
		OccurredAt: time.Now().UTC(),
	})

	out := buf.String()
	assert.Contains(t, out, "event=mo_created")
	assert.NotContains(t, out, "mo_id=")
}
