package gateway

import "encoding/json"

// Wire-level event names. These are fixed by the protocol; clients match on
// them verbatim.
const (
	EventClientsUpdated    = "clients-updated"
	EventMessageFromServer = "message-from-server"
	EventMessageFromClient = "message-from-client"
)

// DefaultMessageText replaces an empty or missing inbound message body.
const DefaultMessageText = "no message"

// Envelope is the frame carried on every websocket text message, in both
// directions.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ConnectedClient is one entry in a clients-updated payload.
type ConnectedClient struct {
	ConnectionID string `json:"connectionId"`
	PrincipalID  string `json:"principalId"`
	DisplayName  string `json:"displayName"`
}

// ServerMessage is the payload of a message-from-server event.
type ServerMessage struct {
	DisplayName string `json:"displayName"`
	Message     string `json:"message"`
}

// ClientMessage is the payload of a message-from-client event.
type ClientMessage struct {
	Message string `json:"message"`
}

// encodeEvent builds the wire frame for an outbound event.
func encodeEvent(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Payload: data})
}
