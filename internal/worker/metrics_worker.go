package worker

import (
	"context"

	"github.com/spec-kit/task-service/internal/events"
	"github.com/spec-kit/task-service/internal/observability"
)

// StartMetricsWorker subscribes domain counters to the event stream.
// Counters driven by events stay correct no matter which service or code
// path produced the change.
func StartMetricsWorker(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}

	dispatcher.Subscribe(events.EventTaskAssigned, func(ctx context.Context, event events.Event) error {
		if payload, ok := event.Payload.(events.TaskAssignedPayload); ok {
			observability.AssignmentEventsTotal.WithLabelValues(string(payload.Strategy)).Inc()
		}
		return nil
	})

	dispatcher.Subscribe(events.EventTaskStatusChanged, func(ctx context.Context, event events.Event) error {
		if payload, ok := event.Payload.(events.TaskStatusChangedPayload); ok {
			observability.StatusTransitionsTotal.WithLabelValues(
				string(payload.OldStatus),
				string(payload.NewStatus),
			).Inc()
		}
		return nil
	})

	dispatcher.Subscribe(events.EventUserStatusChanged, func(ctx context.Context, event events.Event) error {
		if payload, ok := event.Payload.(events.UserStatusChangedPayload); ok {
			if payload.Active {
				observability.AccountActivationsTotal.WithLabelValues("activated").Inc()
			} else {
				observability.AccountActivationsTotal.WithLabelValues("deactivated").Inc()
			}
		}
		return nil
	})
}
