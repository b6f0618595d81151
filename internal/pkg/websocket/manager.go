package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/profleet/fleettrack/internal/pkg/constants"
	jwtpkg "github.com/profleet/fleettrack/internal/pkg/jwt"
	"github.com/profleet/fleettrack/internal/pkg/logger"
	"github.com/profleet/fleettrack/internal/pkg/models"
	"github.com/profleet/fleettrack/internal/utils"
)

const writeWait = 10 * time.Second

// Client is one authenticated websocket connection. A user may hold several.
type Client struct {
	ID     string
	Caller models.Caller
	Conn   *websocket.Conn

	writeMu sync.Mutex
}

// Manager manages WebSocket connections and client state
type Manager struct {
	sync.RWMutex
	clients  map[string]*Client
	cfg      models.JWTConfig
	upgrader websocket.Upgrader
}

// NewManager creates a new WebSocket manager
func NewManager(jwtConfig models.JWTConfig) *Manager {
	return &Manager{
		clients: make(map[string]*Client),
		cfg:     jwtConfig,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection authenticates the caller, runs authorize before upgrading so refusals
// stay plain HTTP responses, then hands the connection to handleClient until it returns
func (m *Manager) HandleConnection(
	c echo.Context,
	authorize func(models.Caller) error,
	handleClient func(*Client) error,
) error {
	caller, err := m.authenticate(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, err.Error())
	}

	if authorize != nil {
		if err := authorize(caller); err != nil {
			return utils.AppErrorResponse(c, err)
		}
	}

	ws, err := m.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	client := &Client{ID: uuid.NewString(), Caller: caller, Conn: ws}
	m.AddClient(client)
	defer m.RemoveClient(client.ID)

	return handleClient(client)
}

// authenticate reads the bearer token from the header or the token query parameter
func (m *Manager) authenticate(c echo.Context) (models.Caller, error) {
	tokenString := c.QueryParam("token")
	if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.Caller{}, fmt.Errorf("Invalid authorization format")
		}
		tokenString = parts[1]
	}
	if tokenString == "" {
		return models.Caller{}, fmt.Errorf("Authorization header is required")
	}

	caller, err := jwtpkg.CallerFromToken(tokenString, m.cfg.Secret)
	if err != nil {
		logger.Warn("Token validation failed", logger.Err(err))
		return models.Caller{}, fmt.Errorf("Invalid token")
	}
	return caller, nil
}

// AddClient safely adds a client to the manager
func (m *Manager) AddClient(client *Client) {
	m.Lock()
	defer m.Unlock()
	m.clients[client.ID] = client
}

// RemoveClient safely removes a client from the manager
func (m *Manager) RemoveClient(clientID string) {
	m.Lock()
	defer m.Unlock()
	delete(m.clients, clientID)
}

// ClientCount returns the number of open connections
func (m *Manager) ClientCount() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.clients)
}

// SendMessage sends an {event, data} envelope to a client
func (m *Manager) SendMessage(client *Client, event string, data interface{}) error {
	if client == nil || client.Conn == nil {
		return nil
	}

	rawData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error marshaling message data: %w", err)
	}

	client.writeMu.Lock()
	defer client.writeMu.Unlock()
	_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return client.Conn.WriteJSON(models.WSMessage{Event: event, Data: rawData})
}

// SendPing writes a ping control frame
func (m *Manager) SendPing(client *Client) error {
	client.writeMu.Lock()
	defer client.writeMu.Unlock()
	return client.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// SendErrorMessage sends an {event: error, data: {code, message}} envelope to a client
func (m *Manager) SendErrorMessage(client *Client, code string, message string) error {
	return m.SendMessage(client, constants.EventError, models.WSErrorMessage{
		Code:    code,
		Message: message,
	})
}
