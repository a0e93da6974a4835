package factory

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"

	"github.com/mfreitas/storegate/internal/api"
	apiresponse "github.com/mfreitas/storegate/internal/api/response"
	"github.com/mfreitas/storegate/internal/gateway"
	"github.com/mfreitas/storegate/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app    *TestApp
	server *httptest.Server
	ctx    context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	app, err := NewTestApp(s.T().TempDir())
	s.Require().NoError(err)
	s.app = app
	s.ctx = context.Background()

	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		AuthService:    app.AuthService,
		ProductService: app.ProductService,
		FileService:    app.FileService,
		SeedService:    app.SeedService,
		GatewayHandler: app.GatewayHandler,
	})
	s.server = httptest.NewServer(router)
	s.T().Cleanup(s.server.Close)
}

func (s *IntegrationSuite) post(path, bearer string, body any) *http.Response {
	data, err := json.Marshal(body)
	s.Require().NoError(err)

	req, err := http.NewRequest(http.MethodPost, s.server.URL+path, bytes.NewReader(data))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *IntegrationSuite) register(email, fullName string) apiresponse.AuthResponse {
	resp := s.post("/api/v1/auth/register", "", map[string]string{
		"email":     email,
		"password":  "Abc12345",
		"full_name": fullName,
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	defer resp.Body.Close()

	var ar apiresponse.AuthResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&ar))
	return ar
}

func (s *IntegrationSuite) dial(token string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws"
	header := http.Header{"Authentication": []string{token}}

	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	s.Require().NoError(err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	s.T().Cleanup(func() { conn.Close() })
	return conn
}

// readEvent reads frames until one matching the wanted event arrives
func (s *IntegrationSuite) readEvent(conn *websocket.Conn, want string) json.RawMessage {
	deadline := time.Now().Add(2 * time.Second)
	s.Require().NoError(conn.SetReadDeadline(deadline))
	for {
		var env gateway.Envelope
		s.Require().NoError(conn.ReadJSON(&env))
		if env.Event == want {
			return env.Payload
		}
	}
}

// TestRegisteredUserCanChat walks the full path: REST registration,
// websocket handshake with the issued token, presence and messaging.
func (s *IntegrationSuite) TestRegisteredUserCanChat() {
	ada := s.register("ada@example.com", "Ada Lovelace")
	grace := s.register("grace@example.com", "Grace Hopper")

	adaConn := s.dial(ada.Token)
	payload := s.readEvent(adaConn, gateway.EventClientsUpdated)

	var clients []gateway.ConnectedClient
	s.Require().NoError(json.Unmarshal(payload, &clients))
	s.Require().Len(clients, 1)
	s.Equal("Ada Lovelace", clients[0].DisplayName)

	graceConn := s.dial(grace.Token)
	s.readEvent(graceConn, gateway.EventClientsUpdated)

	// Grace sends a message; Ada receives it attributed by full name
	msg, err := json.Marshal(gateway.ClientMessage{Message: "hello"})
	s.Require().NoError(err)
	env, err := json.Marshal(gateway.Envelope{Event: gateway.EventMessageFromClient, Payload: msg})
	s.Require().NoError(err)
	s.Require().NoError(graceConn.WriteMessage(websocket.TextMessage, env))

	received := s.readEvent(adaConn, gateway.EventMessageFromServer)
	var sm gateway.ServerMessage
	s.Require().NoError(json.Unmarshal(received, &sm))
	s.Equal("Grace Hopper", sm.DisplayName)
	s.Equal("hello", sm.Message)
}

// TestExpiredTokenCannotConnect verifies the handshake is refused once
// the token issued at login has expired.
func (s *IntegrationSuite) TestExpiredTokenCannotConnect() {
	ada := s.register("ada@example.com", "Ada Lovelace")

	s.app.MockClock.Advance(3 * time.Hour)

	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws"
	header := http.Header{"Authentication": []string{ada.Token}}

	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	s.Require().Error(err)
	s.Require().NotNil(resp)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	s.Equal(0, s.app.Registry.Len())
}

// TestSeededCatalogueVisibleOverREST seeds through the service and
// reads the catalogue back through the public listing.
func (s *IntegrationSuite) TestSeededCatalogueVisibleOverREST() {
	result, err := s.app.SeedService.Run(s.ctx)
	s.Require().NoError(err)

	resp, err := s.server.Client().Get(s.server.URL + "/api/v1/products?limit=100")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var page []apiresponse.Product
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&page))
	s.Len(page, result.Products)
}
