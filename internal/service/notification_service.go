package service

import (
	"context"
	"fmt"

	"ai-schemadesign-be/internal/pkg/logger"
	"ai-schemadesign-be/pkg/events"
	pktNats "ai-schemadesign-be/pkg/nats"
)

// ThreadEventDelivery defines how to push real-time thread updates.
// Typically implemented by the WebSocket Hub.
type ThreadEventDelivery interface {
	Broadcast(event events.Event)
}

// NotificationService forwards thread lifecycle events from the NATS bus to
// the connected UIs so thread lists stay in sync without polling.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   ThreadEventDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery ThreadEventDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "thread-event-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start event subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	s.logger.Info("NotificationService", fmt.Sprintf("Forwarding event: %s", event.EventType()), map[string]interface{}{"type": event.EventType()})

	if s.delivery != nil {
		s.delivery.Broadcast(event)
	}
	return nil
}
