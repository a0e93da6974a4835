package gateway

import (
	"sort"
	"sync"
)

// UnknownDisplayName is returned for connections not currently registered.
// Covers the race where a message is processed after disconnect cleanup has
// started or before registration completes.
const UnknownDisplayName = "unknown"

// Policy controls how the registry resolves principal-level conflicts.
type Policy struct {
	// SinglePerPrincipal evicts a principal's previous connection when that
	// principal registers a new one. When false, connections for the same
	// principal coexist in the presence list.
	SinglePerPrincipal bool
}

type entry struct {
	connectionID string
	principalID  string
	displayName  string
	client       *Client
	seq          uint64
}

// Registry is the single source of truth for which connections are
// authenticated and who they belong to. All mutation is serialized behind one
// mutex; it performs no I/O and calls no external collaborator.
type Registry struct {
	policy Policy

	mu      sync.RWMutex
	entries map[string]*entry
	nextSeq uint64
}

// NewRegistry creates an empty registry. Registry state is process-wide and
// ephemeral; nothing survives a restart.
func NewRegistry(policy Policy) *Registry {
	return &Registry{
		policy:  policy,
		entries: make(map[string]*entry),
	}
}

// Register inserts or replaces the entry for connectionID. Re-registering the
// same connection id overwrites (re-authentication); there is no other
// failure mode beyond an empty id. The returned client, when non-nil, is a
// previous connection evicted by the SinglePerPrincipal policy; the caller
// must close it outside the registry (the registry never touches transports).
func (r *Registry) Register(connectionID, principalID, displayName string, client *Client) (*Client, error) {
	if connectionID == "" {
		return nil, ErrInvalidConnection
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted *Client
	if r.policy.SinglePerPrincipal {
		for id, e := range r.entries {
			if e.principalID == principalID && id != connectionID {
				evicted = e.client
				delete(r.entries, id)
				break
			}
		}
	}

	seq := r.nextSeq
	if existing, ok := r.entries[connectionID]; ok {
		// Re-registration keeps the original position in the presence list.
		seq = existing.seq
	} else {
		r.nextSeq++
	}

	r.entries[connectionID] = &entry{
		connectionID: connectionID,
		principalID:  principalID,
		displayName:  displayName,
		client:       client,
		seq:          seq,
	}

	return evicted, nil
}

// Remove deletes the entry for connectionID if present. Removing an id that
// was never registered, or removing twice, is a no-op: disconnect-before-
// register and double-disconnect are valid races, not faults.
func (r *Registry) Remove(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, connectionID)
}

// ListConnected returns a snapshot of all current entries in registration
// order. The snapshot is consistent at the moment of the call; callers must
// not assume it stays current.
func (r *Registry) ListConnected() []ConnectedClient {
	r.mu.RLock()
	snapshot := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		snapshot = append(snapshot, e)
	}
	r.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].seq < snapshot[j].seq
	})

	clients := make([]ConnectedClient, len(snapshot))
	for i, e := range snapshot {
		clients[i] = ConnectedClient{
			ConnectionID: e.connectionID,
			PrincipalID:  e.principalID,
			DisplayName:  e.displayName,
		}
	}
	return clients
}

// DisplayNameOf returns the display name registered for a connection, or
// UnknownDisplayName when the connection is not currently registered.
func (r *Registry) DisplayNameOf(connectionID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.entries[connectionID]; ok {
		return e.displayName
	}
	return UnknownDisplayName
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// clients returns a snapshot of the registered transports for fan-out.
func (r *Registry) clients() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Client, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.client)
	}
	return out
}
