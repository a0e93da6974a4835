package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mfreitas/storegate/internal/model"
)

// TokenVerifier validates a bearer credential and resolves the principal it
// was issued to. Verification may block on external calls; the session never
// holds a registry lock while calling it.
type TokenVerifier interface {
	Verify(ctx context.Context, credential string) (model.UserID, error)
}

// DirectoryLookup resolves the display name for a principal. Called once per
// registration, not per message.
type DirectoryLookup interface {
	LookupDisplayName(ctx context.Context, id model.UserID) (string, error)
}

// State is the lifecycle state of one gateway session.
type State int32

const (
	StateConnecting State = iota
	StateAuthenticating
	StateAuthenticated
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session drives one connection through its lifecycle:
// Connecting -> Authenticating -> Authenticated -> Closed, with a direct edge
// to Closed on authentication failure. There is no transition out of Closed.
type Session struct {
	id         string
	registry   *Registry
	dispatcher *Dispatcher
	state      atomic.Int32
	logger     *slog.Logger
}

func newSession(id string, registry *Registry, dispatcher *Dispatcher, logger *slog.Logger) *Session {
	s := &Session{
		id:         id,
		registry:   registry,
		dispatcher: dispatcher,
		logger:     logger.With(slog.String("connection_id", id)),
	}
	s.state.Store(int32(StateConnecting))
	return s
}

// ID returns the transport-assigned connection id.
func (s *Session) ID() string {
	return s.id
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) setState(st State) {
	s.state.Store(int32(st))
}

// run registers the authenticated connection, announces it, and then pumps
// inbound messages until the transport closes. It blocks until the session is
// over; cleanup and the departure broadcast happen unconditionally on exit.
func (s *Session) run(conn *websocket.Conn, principalID model.UserID, displayName string) {
	client := newClient(s.id, conn, s.logger)

	evicted, err := s.registry.Register(s.id, string(principalID), displayName, client)
	if err != nil {
		// Fatal to this connection only.
		s.logger.Error("gateway registration rejected", slog.String("error", err.Error()))
		s.setState(StateClosed)
		client.shutdown()
		return
	}
	if evicted != nil {
		// Close the displaced connection off the hot path; its own session
		// handles deregistration and the presence broadcast.
		go evicted.shutdown()
	}

	s.setState(StateAuthenticated)
	s.logger.Info("gateway client connected",
		slog.String("principal_id", string(principalID)),
		slog.String("display_name", displayName))

	go client.writePump()
	s.dispatcher.BroadcastPresence()

	s.readLoop(conn)

	// Remove is idempotent: safe even if this connection was evicted or never
	// finished registering.
	s.registry.Remove(s.id)
	s.setState(StateClosed)
	client.shutdown()
	s.dispatcher.BroadcastPresence()
	s.logger.Info("gateway client disconnected", slog.String("principal_id", string(principalID)))
}

// readLoop processes inbound frames until the transport errors or closes.
// Messages on a single connection are handled strictly in order.
func (s *Session) readLoop(conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("gateway unexpected close", slog.String("error", err.Error()))
			}
			return
		}
		s.handleInbound(raw)
	}
}

// handleInbound annotates a client message with the sender's display name and
// fans it out to every connected peer, sender included.
func (s *Session) handleInbound(raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.logger.Warn("gateway invalid frame", slog.String("error", err.Error()))
		return
	}
	if env.Event != EventMessageFromClient {
		s.logger.Debug("gateway unhandled event", slog.String("event", env.Event))
		return
	}

	var msg ClientMessage
	if len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, &msg); err != nil {
			s.logger.Warn("gateway invalid message payload", slog.String("error", err.Error()))
			return
		}
	}

	text := msg.Message
	if text == "" {
		text = DefaultMessageText
	}

	s.dispatcher.BroadcastMessage(s.registry.DisplayNameOf(s.id), text)
}
