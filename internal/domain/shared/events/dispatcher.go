package events

import (
	"context"
	"fmt"
	"sync"

	"tracker/internal/shared/logger"
)

// SyncDispatcher delivers events to subscribers on the caller's goroutine.
// Handler errors are logged and never returned; a failing subscriber cannot
// undo a committed change or block the remaining subscribers.
type SyncDispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]namedHandler
	logger   logger.Interface
}

type namedHandler struct {
	name    string
	handler EventHandler
}

func NewSyncDispatcher(log logger.Interface) *SyncDispatcher {
	return &SyncDispatcher{
		handlers: make(map[string][]namedHandler),
		logger:   log,
	}
}

// Subscribe registers handler for eventType. name identifies it in logs.
func (d *SyncDispatcher) Subscribe(eventType, name string, handler EventHandler) error {
	if eventType == "" {
		return fmt.Errorf("event type cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], namedHandler{name: name, handler: handler})
	return nil
}

func (d *SyncDispatcher) Publish(ctx context.Context, evts ...DomainEvent) {
	for _, event := range evts {
		d.mu.RLock()
		handlers := d.handlers[event.GetEventType()]
		d.mu.RUnlock()

		for _, h := range handlers {
			d.deliver(ctx, h, event)
		}
	}
}

func (d *SyncDispatcher) deliver(ctx context.Context, h namedHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Errorw("event handler panicked",
				"handler", h.name,
				"event_type", event.GetEventType(),
				"panic", r,
			)
		}
	}()

	if err := h.handler.Handle(ctx, event); err != nil {
		d.logger.Warnw("event handler failed",
			"handler", h.name,
			"event_type", event.GetEventType(),
			"aggregate_id", event.GetAggregateID(),
			"error", err,
		)
	}
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...DomainEvent) {}
