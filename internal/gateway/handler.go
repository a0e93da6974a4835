package gateway

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler authenticates inbound websocket handshakes and hands accepted
// connections to per-connection sessions. All collaborators are supplied at
// construction; nothing is looked up from request-scoped or global state.
type Handler struct {
	registry   *Registry
	dispatcher *Dispatcher
	verifier   TokenVerifier
	directory  DirectoryLookup
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewHandler creates the gateway's HTTP endpoint.
func NewHandler(registry *Registry, dispatcher *Dispatcher, verifier TokenVerifier, directory DirectoryLookup, logger *slog.Logger) *Handler {
	return &Handler{
		registry:   registry,
		dispatcher: dispatcher,
		verifier:   verifier,
		directory:  directory,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With(slog.String("component", "gateway")),
	}
}

// ServeHTTP drives the handshake: extract the credential, verify it, resolve
// the principal's display name, and only then upgrade the transport. An
// unauthenticated peer never completes the handshake and never appears in
// presence state; the rejection carries no application-level detail.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	connectionID := uuid.NewString()
	session := newSession(connectionID, h.registry, h.dispatcher, h.logger)

	session.setState(StateAuthenticating)
	credential := ExtractCredential(r)
	principalID, err := h.verifier.Verify(r.Context(), credential)
	if err != nil {
		// Expected and silent: a verifier fault is treated identically to an
		// invalid credential, and neither is a server fault.
		session.setState(StateClosed)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	displayName, err := h.directory.LookupDisplayName(r.Context(), principalID)
	if err != nil {
		session.setState(StateClosed)
		h.logger.Warn("gateway display name lookup failed",
			slog.String("principal_id", string(principalID)),
			slog.String("error", err.Error()))
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	// Verification involved await points; if the peer already went away,
	// discard the result rather than register a dead connection.
	if r.Context().Err() != nil {
		session.setState(StateClosed)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade writes its own error response.
		session.setState(StateClosed)
		h.logger.Warn("gateway upgrade failed", slog.String("error", err.Error()))
		return
	}

	session.run(conn, principalID, displayName)
}

// ExtractCredential pulls the bearer credential from handshake metadata. The
// Authentication header is the primary wire contract; the Authorization
// header and token query parameter are accepted because browsers cannot set
// custom headers on a websocket handshake.
func ExtractCredential(r *http.Request) string {
	if v := r.Header.Get("Authentication"); v != "" {
		return v
	}
	if v := r.Header.Get("Authorization"); strings.HasPrefix(v, "Bearer ") {
		return strings.TrimPrefix(v, "Bearer ")
	}
	return r.URL.Query().Get("token")
}
