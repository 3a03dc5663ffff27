package handler

import (
	"go-stock-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helper untuk ambil User Info dari JWT Context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return "system"
	}
	return userID
}

func getUserName(c *fiber.Ctx) string {
	userName, ok := c.Locals("user_name").(string)
	if !ok {
		return ""
	}
	return userName
}

func getUserEmail(c *fiber.Ctx) string {
	userEmail, ok := c.Locals("user_email").(string)
	if !ok {
		return ""
	}
	return userEmail
}

func actorFrom(c *fiber.Ctx) service.Actor {
	return service.Actor{
		ID:    getUserID(c),
		Name:  getUserName(c),
		Email: getUserEmail(c),
	}
}

// Helper untuk parse UUID dari path param
func parseUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}
