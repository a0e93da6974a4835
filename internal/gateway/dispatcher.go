package gateway

import "log/slog"

// Dispatcher fans one event out to every registered connection. Delivery is
// best-effort: a full buffer or dead peer is counted and logged, never raised
// to the caller, and never delays the remaining recipients.
type Dispatcher struct {
	registry *Registry
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *Registry, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		logger:   logger.With(slog.String("component", "gateway-dispatcher")),
	}
}

// BroadcastPresence sends the current connection list to every live
// connection. The list is derived fresh from the registry on every call, so
// it always reflects a state at least as new as the mutation that triggered
// the broadcast.
func (d *Dispatcher) BroadcastPresence() {
	connected := d.registry.ListConnected()
	frame, err := encodeEvent(EventClientsUpdated, connected)
	if err != nil {
		d.logger.Error("gateway failed to encode presence event", slog.String("error", err.Error()))
		return
	}
	d.fanOut(EventClientsUpdated, frame)
}

// BroadcastMessage sends a chat message, annotated with the sender's display
// name, to every live connection including the sender.
func (d *Dispatcher) BroadcastMessage(senderDisplayName, text string) {
	frame, err := encodeEvent(EventMessageFromServer, ServerMessage{
		DisplayName: senderDisplayName,
		Message:     text,
	})
	if err != nil {
		d.logger.Error("gateway failed to encode message event", slog.String("error", err.Error()))
		return
	}
	d.fanOut(EventMessageFromServer, frame)
}

func (d *Dispatcher) fanOut(event string, frame []byte) {
	sentCount := 0
	droppedCount := 0
	for _, client := range d.registry.clients() {
		if client.trySend(frame) {
			sentCount++
		} else {
			droppedCount++
			d.logger.Warn("gateway frame dropped - client buffer full or closed",
				slog.String("event", event),
				slog.String("connection_id", client.id))
		}
	}
	if droppedCount > 0 {
		d.logger.Warn("gateway broadcast partial delivery",
			slog.String("event", event),
			slog.Int("sent", sentCount),
			slog.Int("dropped", droppedCount))
	}
}
