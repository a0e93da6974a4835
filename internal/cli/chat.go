package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

// Gateway wire events
const (
	eventClientsUpdated    = "clients-updated"
	eventMessageFromServer = "message-from-server"
	eventMessageFromClient = "message-from-client"
)

// wsEnvelope is a gateway frame
type wsEnvelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// wsClient is a connected peer in a presence update
type wsClient struct {
	ConnectionID string `json:"connectionId"`
	PrincipalID  string `json:"principalId"`
	DisplayName  string `json:"displayName"`
}

// wsServerMessage is a chat message relayed by the server
type wsServerMessage struct {
	DisplayName string `json:"displayName"`
	Message     string `json:"message"`
}

func newChatCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Connect to the real-time gateway",
		Long: `Connect to the websocket gateway and join the chat.

Incoming events:
  - clients-updated: the connected client list changed
  - message-from-server: a chat message from another client

Lines typed on stdin are sent as chat messages.
Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Token == "" {
				return fmt.Errorf("a token is required; login first")
			}
			return runChat(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

func runChat(jsonOutput bool) error {
	wsURL, err := gatewayURL(cfg.ServerURL)
	if err != nil {
		return err
	}

	header := http.Header{"Authentication": []string{cfg.Token}}
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("connection rejected: invalid or expired token")
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if !jsonOutput {
		fmt.Println("Connected. Type a message and press enter to send.")
	}

	done := make(chan struct{})

	// Reader: print incoming gateway events
	go func() {
		defer close(done)
		for {
			var env wsEnvelope
			if err := conn.ReadJSON(&env); err != nil {
				return
			}
			printGatewayEvent(env, jsonOutput)
		}
	}()

	// Writer: forward stdin lines as chat messages
	input := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			input <- scanner.Text()
		}
		close(input)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-done:
			if !jsonOutput {
				fmt.Println("Disconnected")
			}
			return nil
		case <-sigCh:
			// Ask the server to close cleanly
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			if !jsonOutput {
				fmt.Println("\nDisconnected")
			}
			return nil
		case line, ok := <-input:
			if !ok {
				return nil
			}
			if err := sendChatMessage(conn, line); err != nil {
				return fmt.Errorf("send failed: %w", err)
			}
		}
	}
}

func sendChatMessage(conn *websocket.Conn, text string) error {
	payload, err := json.Marshal(map[string]string{"message": text})
	if err != nil {
		return err
	}
	return conn.WriteJSON(wsEnvelope{Event: eventMessageFromClient, Payload: payload})
}

func printGatewayEvent(env wsEnvelope, jsonOutput bool) {
	if jsonOutput {
		data, _ := json.Marshal(env)
		fmt.Println(string(data))
		return
	}

	timestamp := time.Now().Format("15:04:05")

	switch env.Event {
	case eventClientsUpdated:
		var clients []wsClient
		if err := json.Unmarshal(env.Payload, &clients); err != nil {
			return
		}
		names := make([]string, len(clients))
		for i, c := range clients {
			names[i] = c.DisplayName
		}
		fmt.Printf("[%s] online (%d): %s\n", timestamp, len(clients), strings.Join(names, ", "))
	case eventMessageFromServer:
		var msg wsServerMessage
		if err := json.Unmarshal(env.Payload, &msg); err != nil {
			return
		}
		fmt.Printf("[%s] %s: %s\n", timestamp, msg.DisplayName, msg.Message)
	default:
		fmt.Printf("[%s] %s: %s\n", timestamp, env.Event, string(env.Payload))
	}
}

// gatewayURL converts the configured server URL to its websocket endpoint
func gatewayURL(serverURL string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	return u.String(), nil
}
