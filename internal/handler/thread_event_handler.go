package handler

import (
	"os"

	"ai-schemadesign-be/internal/pkg/logger"
	internalWS "ai-schemadesign-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ThreadEventHandler upgrades authenticated connections into hub clients so
// the UI receives thread lifecycle events as they happen.
type ThreadEventHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewThreadEventHandler(hub *internalWS.Hub, log logger.ILogger) *ThreadEventHandler {
	return &ThreadEventHandler{
		hub:    hub,
		logger: log,
	}
}

// RegisterRoutes registers the event stream endpoint.
func (h *ThreadEventHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}

// ServeWs handles websocket requests from the peer.
func (h *ThreadEventHandler) ServeWs(c *fiber.Ctx) error {
	// Browsers cannot set headers on websocket handshakes, so the token may
	// arrive as a query parameter instead.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("ThreadEventHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	return websocket.New(func(conn *websocket.Conn) {
		client := &internalWS.Client{
			Hub:    h.hub,
			Conn:   conn,
			ConnId: uuid.New(),
			Send:   make(chan []byte, 256),
		}
		h.hub.Register(client)

		go client.WritePump()
		client.ReadPump()
	})(c)
}
