package handler

import (
	"go-stock-ledger/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// UpgradeOnly rejects plain HTTP requests on the websocket path.
func UpgradeOnly(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return c.SendStatus(fiber.StatusUpgradeRequired)
}

// Live registers each connection with hub until the client goes away.
func Live(hub *ws.Hub) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		if !hub.Join(c) {
			c.Close()
			return
		}
		defer hub.Leave(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
