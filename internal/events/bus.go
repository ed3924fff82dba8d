package events

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// EventListener processes events
type EventListener interface {
	HandleEvent(event Event) error
	Priority() int
	ID() string
}

// Bus delivers weapon events to listeners in priority order
type Bus struct {
	listeners map[EventType][]EventListener
	mu        sync.RWMutex
	logger    *slog.Logger
}

// NewBus creates a new event bus; a nil logger uses slog.Default()
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		listeners: make(map[EventType][]EventListener),
		logger:    logger.With("component", "event_bus"),
	}
}

// Subscribe adds a listener for an event type
func (b *Bus) Subscribe(eventType EventType, listener EventListener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventType] = append(b.listeners[eventType], listener)
	b.sortLocked(eventType)

	b.logger.Debug("subscribed listener",
		"listener", listener.ID(), "event", eventType, "priority", listener.Priority())
}

// Unsubscribe removes a listener
func (b *Bus) Unsubscribe(eventType EventType, listenerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	listeners := b.listeners[eventType]
	for i, l := range listeners {
		if l.ID() != listenerID {
			continue
		}
		listeners[i] = listeners[len(listeners)-1]
		b.listeners[eventType] = listeners[:len(listeners)-1]
		b.sortLocked(eventType)

		b.logger.Debug("unsubscribed listener", "listener", listenerID, "event", eventType)
		return
	}
}

// Emit sends an event to every listener of its type. Propagation stops when
// a listener cancels the event or returns an error.
func (b *Bus) Emit(event Event) error {
	b.mu.RLock()
	listeners := make([]EventListener, len(b.listeners[event.GetType()]))
	copy(listeners, b.listeners[event.GetType()])
	b.mu.RUnlock()

	for _, listener := range listeners {
		if event.IsCancelled() {
			b.logger.Debug("event cancelled, stopping propagation", "event", event.GetType())
			break
		}

		if err := listener.HandleEvent(event); err != nil {
			return fmt.Errorf("listener %s failed: %w", listener.ID(), err)
		}
	}

	return nil
}

// ListenerCount returns how many listeners are subscribed to eventType
func (b *Bus) ListenerCount(eventType EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[eventType])
}

// Clear removes all listeners
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = make(map[EventType][]EventListener)
}

func (b *Bus) sortLocked(eventType EventType) {
	sort.SliceStable(b.listeners[eventType], func(i, j int) bool {
		return b.listeners[eventType][i].Priority() < b.listeners[eventType][j].Priority()
	})
}
